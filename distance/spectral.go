package distance

import "gonum.org/v1/gonum/floats"

// Spectral returns the Euclidean distance between two descending eigenvalue
// sequences. The shorter sequence is padded with zeros.
func Spectral(a, b []float64) float64 {
	n := max(len(a), len(b))
	return floats.Distance(padZeros(a, n), padZeros(b, n), 2)
}

// padZeros returns x extended with zeros to length n. x is returned as is
// when it is already long enough.
func padZeros(x []float64, n int) []float64 {
	if len(x) >= n {
		return x
	}
	out := make([]float64, n)
	copy(out, x)
	return out
}
