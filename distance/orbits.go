package distance

import "github.com/hupe1980/netcmp/signature"

// OrbitSet is an ordered selection of orbit indices.
type OrbitSet []int

var (
	// Orbits73 selects every 2-to-5 node graphlet orbit.
	Orbits73 = orbitRange(signature.Orbits)
	// Orbits15 selects every 2-to-4 node graphlet orbit.
	Orbits15 = orbitRange(15)
	// Orbits58 selects the non-redundant 2-to-5 node graphlet orbits.
	Orbits58 = orbitRange(signature.Orbits, 3, 5, 7, 14, 16, 17, 20, 21, 23, 26, 28, 38, 44, 47, 69, 71, 72)
	// Orbits11 selects the non-redundant 2-to-4 node graphlet orbits.
	Orbits11 = orbitRange(15, 3, 12, 13, 14)
)

func orbitRange(n int, exclude ...int) OrbitSet {
	skip := make(map[int]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}
	set := make(OrbitSet, 0, n-len(exclude))
	for i := 0; i < n; i++ {
		if _, ok := skip[i]; !ok {
			set = append(set, i)
		}
	}
	return set
}
