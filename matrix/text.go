package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatValue renders a cell value using the shortest representation that
// round-trips.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTo writes the matrix in tab-delimited form.
func (m *Dense) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	writeLine := func(fields []string) error {
		line := strings.TrimRight(strings.Join(fields, "\t"), " \t\r\n")
		n, err := bw.WriteString(line + "\n")
		written += int64(n)
		return err
	}

	header := append([]string{""}, m.names...)
	if err := writeLine(header); err != nil {
		return written, err
	}

	n := len(m.names)
	fields := make([]string, n+1)
	for i, name := range m.names {
		fields[0] = name
		for j := 0; j < n; j++ {
			fields[j+1] = FormatValue(m.At(i, j))
		}
		if err := writeLine(fields); err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// String returns the tab-delimited representation.
func (m *Dense) String() string {
	var sb strings.Builder
	_, _ = m.WriteTo(&sb)
	return sb.String()
}

// Read parses a matrix written by WriteTo. Every parsed off-diagonal cell is
// marked as assigned; the result is validated for symmetry.
func Read(r io.Reader) (*Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("matrix: read header: %w", err)
		}
		return nil, fmt.Errorf("matrix: missing header")
	}

	var names []string
	if header := sc.Text(); header != "" {
		if !strings.HasPrefix(header, "\t") {
			return nil, fmt.Errorf("matrix: header must start with a tab")
		}
		names = strings.Split(header[1:], "\t")
	}

	m, err := New(names)
	if err != nil {
		return nil, err
	}

	row := 0
	for sc.Scan() {
		if sc.Text() == "" {
			continue
		}
		fields := strings.Split(sc.Text(), "\t")
		if row >= len(names) {
			return nil, fmt.Errorf("matrix: unexpected row %q", fields[0])
		}
		if fields[0] != names[row] {
			return nil, fmt.Errorf("matrix: row %d is %q, header says %q", row, fields[0], names[row])
		}
		if len(fields) != len(names)+1 {
			return nil, fmt.Errorf("matrix: row %q has %d values, want %d", fields[0], len(fields)-1, len(names))
		}
		for j, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("matrix: row %q column %d: %w", fields[0], j, err)
			}
			m.data[row*len(names)+j] = v
			if j != row {
				m.filled.Add(m.cell(row, j))
			}
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("matrix: read: %w", err)
	}
	if row != len(names) {
		return nil, fmt.Errorf("matrix: got %d rows, want %d", row, len(names))
	}
	if !m.IsSymmetric() {
		return nil, fmt.Errorf("matrix: not symmetric with zero diagonal")
	}
	return m, nil
}
