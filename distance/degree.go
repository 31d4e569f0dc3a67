package distance

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DegreeDistribution compares two degree histograms, where h[d] is the number
// of nodes of degree d.
//
// Each histogram is scaled as h[d]/d for d >= 1 and normalized to sum 1; the
// distance is the Euclidean norm of the difference over the union of degrees.
// A histogram with no node of degree >= 1 normalizes to all zeros.
func DegreeDistribution(h1, h2 []float64) float64 {
	n := max(len(h1), len(h2))
	// Index 0 is always zero after normalization.
	return floats.Distance(padZeros(normalizeDegrees(h1), n), padZeros(normalizeDegrees(h2), n), 2)
}

func normalizeDegrees(h []float64) []float64 {
	norm := make([]float64, len(h))
	for d := 1; d < len(h); d++ {
		norm[d] = h[d] / float64(d)
	}
	total := floats.Sum(norm)
	if total == 0 {
		return norm
	}
	floats.Scale(1/total, norm)
	return norm
}

// Absolute is the distance between two scalar network properties.
func Absolute(a, b float64) float64 {
	return math.Abs(a - b)
}
