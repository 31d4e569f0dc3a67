package matrix

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MaxEntities bounds the matrix size so that every off-diagonal cell fits a
// 32-bit cell index.
const MaxEntities = 1 << 16

// ErrIndexOutOfRange is returned for cell coordinates outside the matrix.
type ErrIndexOutOfRange struct {
	I, J int
	N    int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("matrix: cell (%d, %d) out of range for size %d", e.I, e.J, e.N)
}

// Dense is a square symmetric distance matrix with a zero diagonal.
//
// Dense is not safe for concurrent writers. Readers may run concurrently once
// writing is finished.
type Dense struct {
	names  []string
	data   []float64
	filled *roaring.Bitmap
}

// New creates an n x n zero matrix with the given row/column names.
func New(names []string) (*Dense, error) {
	if len(names) > MaxEntities {
		return nil, fmt.Errorf("matrix: %d entities exceed the maximum of %d", len(names), MaxEntities)
	}
	n := len(names)
	return &Dense{
		names:  append([]string(nil), names...),
		data:   make([]float64, n*n),
		filled: roaring.New(),
	}, nil
}

// Len returns the number of rows.
func (m *Dense) Len() int { return len(m.names) }

// Names returns the entity names in row order.
func (m *Dense) Names() []string { return append([]string(nil), m.names...) }

// Set assigns v to cells (i, j) and (j, i). The diagonal is fixed at 0 and
// Set(i, i, 0) is accepted as a no-op.
func (m *Dense) Set(i, j int, v float64) error {
	n := len(m.names)
	if i < 0 || j < 0 || i >= n || j >= n {
		return &ErrIndexOutOfRange{I: i, J: j, N: n}
	}
	if i == j {
		if v != 0 {
			return fmt.Errorf("matrix: diagonal cell (%d, %d) must be 0, got %v", i, j, v)
		}
		return nil
	}
	m.data[i*n+j] = v
	m.data[j*n+i] = v
	m.filled.Add(m.cell(i, j))
	return nil
}

// At returns the value of cell (i, j).
func (m *Dense) At(i, j int) float64 {
	return m.data[i*len(m.names)+j]
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) []float64 {
	n := len(m.names)
	return append([]float64(nil), m.data[i*n:(i+1)*n]...)
}

// IsSet reports whether the unordered pair (i, j) has been assigned.
func (m *Dense) IsSet(i, j int) bool {
	if i == j {
		return true
	}
	return m.filled.Contains(m.cell(i, j))
}

// Complete reports whether every off-diagonal pair has been assigned.
func (m *Dense) Complete() bool {
	n := uint64(len(m.names))
	return m.filled.GetCardinality() == n*(n-1)/2
}

// Missing returns the unassigned pairs (i < j) in row-major order.
func (m *Dense) Missing() [][2]int {
	var out [][2]int
	n := len(m.names)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !m.filled.Contains(m.cell(i, j)) {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// IsSymmetric reports whether the matrix is symmetric with a zero diagonal.
// NaN cells compare equal to NaN.
func (m *Dense) IsSymmetric() bool {
	n := len(m.names)
	for i := 0; i < n; i++ {
		if m.At(i, i) != 0 {
			return false
		}
		for j := i + 1; j < n; j++ {
			a, b := m.At(i, j), m.At(j, i)
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		}
	}
	return true
}

// cell maps i != j to its index in the strict upper triangle.
func (m *Dense) cell(i, j int) uint32 {
	if i > j {
		i, j = j, i
	}
	n := len(m.names)
	return uint32(i*(2*n-i-1)/2 + (j - i - 1))
}
