package distance

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/netcmp/signature"
)

// GraphletCorrelation computes the graphlet correlation matrix of sig over the
// orbits in set.
//
// A dummy node with all counts equal to 1 is appended before ranking so that
// columns which are constant across real nodes still vary. The matrix holds
// the Pearson correlation of the per-orbit rank columns (Spearman's rho).
// Columns that remain constant produce NaN entries.
func GraphletCorrelation(sig signature.Signature, set OrbitSet) *mat.SymDense {
	rows := len(sig) + 1
	k := len(set)

	data := mat.NewDense(rows, k, nil)
	col := make([]float64, rows)
	for c, orbit := range set {
		for r := range sig {
			col[r] = sig[r][orbit]
		}
		col[rows-1] = 1
		data.SetCol(c, Rank(col))
	}

	var gcm mat.SymDense
	stat.CorrelationMatrix(&gcm, data, nil)
	return &gcm
}

// GCD returns the graphlet correlation distance between two correlation
// matrices: the Euclidean norm of the differences over the strict upper
// triangle.
func GCD(a, b mat.Symmetric) (float64, error) {
	n := a.SymmetricDim()
	if m := b.SymmetricDim(); m != n {
		return 0, &ErrDimensionMismatch{Expected: n, Actual: m}
	}

	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := a.At(i, j) - b.At(i, j)
			sum += d * d
		}
	}
	return math.Sqrt(sum), nil
}
