package distance

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/netcmp/signature"
)

// GraphletVectorSize is the number of graphlet types compared by RGF.
const GraphletVectorSize = 29

// GraphletVector holds per-graphlet counts, one entry per graphlet type.
type GraphletVector [GraphletVectorSize]float64

var (
	// rgfOrbits picks one representative orbit per 2-to-5 node graphlet.
	rgfOrbits = [GraphletVectorSize]int{
		2, 3, 5, 7, 8, 9, 12, 14, 17, 18, 23, 25, 27, 33, 34,
		35, 39, 44, 45, 50, 52, 55, 56, 61, 62, 65, 69, 70, 72,
	}
	// rgfWeights is the number of nodes touching each representative orbit.
	rgfWeights = [GraphletVectorSize]float64{
		1, 3, 2, 1, 4, 1, 2, 4, 1, 1, 1, 1, 1, 1, 5,
		1, 1, 1, 1, 2, 1, 2, 1, 1, 1, 1, 1, 2, 5,
	}
)

// rgfUnitTotal replaces a total of exactly 1 so that ln(T) is nonzero.
const rgfUnitTotal = 1.0000000001

// GraphletCounts sums the representative orbit columns over all nodes and
// divides each by its orbit multiplicity, yielding graphlet counts.
func GraphletCounts(sig signature.Signature) GraphletVector {
	var v GraphletVector
	for k, orbit := range rgfOrbits {
		var sum float64
		for i := range sig {
			sum += sig[i][orbit]
		}
		v[k] = sum / rgfWeights[k]
	}
	return v
}

// LogScale returns the relative graphlet frequencies -ln(f)/ln(T) of v, where
// T is the total count. Zero counts stay zero.
func LogScale(v GraphletVector) GraphletVector {
	total := floats.Sum(v[:])
	if total == 1 {
		total = rgfUnitTotal
	}
	lnT := math.Log(total)

	var out GraphletVector
	for k, f := range v {
		if f != 0 {
			out[k] = -math.Log(f) / lnT
		}
	}
	return out
}

// RelativeFrequencies is LogScale(GraphletCounts(sig)).
func RelativeFrequencies(sig signature.Signature) GraphletVector {
	return LogScale(GraphletCounts(sig))
}

// RGF returns the relative graphlet frequency distance between two log scaled
// graphlet vectors as produced by LogScale.
func RGF(a, b GraphletVector) float64 {
	return floats.Distance(a[:], b[:], 1)
}
