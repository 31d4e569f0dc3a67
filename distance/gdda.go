package distance

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/netcmp/signature"
)

// Distribution maps an orbit degree to its scaled, normalized frequency.
// Degree 0 never appears as a key.
type Distribution map[float64]float64

// Distributions holds one distribution per orbit.
type Distributions [signature.Orbits]Distribution

// OrbitDistributions derives the graphlet degree distribution of every orbit.
//
// For each orbit the number of nodes with each nonzero degree is divided by
// the degree and the result normalized to sum to 1. An orbit in which every
// node has degree 0 yields an empty distribution.
func OrbitDistributions(sig signature.Signature) Distributions {
	var out Distributions
	for orbit := 0; orbit < signature.Orbits; orbit++ {
		dist := make(Distribution)
		for i := range sig {
			if v := sig[i][orbit]; v != 0 {
				dist[v]++
			}
		}

		var total float64
		for deg, count := range dist {
			dist[deg] = count / deg
			total += dist[deg]
		}
		for deg := range dist {
			dist[deg] /= total
		}
		out[orbit] = dist
	}
	return out
}

// OrbitAgreement returns 1 - ||a-b||₂/√2 over the union of both key sets,
// missing keys counting as zero. Identical distributions agree exactly (1).
func OrbitAgreement(a, b Distribution) float64 {
	var sum float64
	for deg, p := range a {
		d := p - b[deg]
		sum += d * d
	}
	for deg, q := range b {
		if _, ok := a[deg]; !ok {
			sum += q * q
		}
	}
	return 1 - math.Sqrt(sum)/math.Sqrt2
}

// GDDAgreement returns the arithmetic and geometric means of the per-orbit
// agreements between a and b.
//
// The geometric mean follows gonum: any zero agreement yields 0 and a
// negative agreement yields NaN.
func GDDAgreement(a, b *Distributions) (arithmetic, geometric float64) {
	scores := make([]float64, signature.Orbits)
	for orbit := range scores {
		scores[orbit] = OrbitAgreement(a[orbit], b[orbit])
	}
	return stat.Mean(scores, nil), stat.GeometricMean(scores, nil)
}

// GDDA returns the arithmetic and geometric GDD agreement distances
// (1-GDDA, 1-GDDG).
func GDDA(a, b *Distributions) (arithmetic, geometric float64) {
	am, gm := GDDAgreement(a, b)
	return 1 - am, 1 - gm
}
