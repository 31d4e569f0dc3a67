package network

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
	"gonum.org/v1/gonum/mat"
)

// nodeIDs returns the node IDs in ascending order.
func (nw *Network) nodeIDs() []int64 {
	nodes := graph.NodesOf(nw.g.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	slices.Sort(ids)
	return ids
}

// degree counts a self loop twice.
func (nw *Network) degree(id int64) int {
	d := nw.g.From(id).Len()
	if _, ok := nw.loops[id]; ok {
		d += 2
	}
	return d
}

// DegreeHistogram returns h where h[d] is the number of nodes of degree d,
// up to the maximum degree.
func (nw *Network) DegreeHistogram() []float64 {
	var h []float64
	for _, id := range nw.nodeIDs() {
		d := nw.degree(id)
		for len(h) <= d {
			h = append(h, 0)
		}
		h[d]++
	}
	return h
}

// AverageDegree returns the mean node degree, 0 for an empty network.
func (nw *Network) AverageDegree() float64 {
	ids := nw.nodeIDs()
	if len(ids) == 0 {
		return 0
	}
	var sum float64
	for _, id := range ids {
		sum += float64(nw.degree(id))
	}
	return sum / float64(len(ids))
}

// LocalClustering returns the fraction of neighbour pairs of id that are
// connected. Nodes with fewer than two neighbours have coefficient 0.
func (nw *Network) LocalClustering(id int64) float64 {
	neighbours := graph.NodesOf(nw.g.From(id))
	k := len(neighbours)
	if k < 2 {
		return 0
	}
	var links int
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if nw.g.HasEdgeBetween(neighbours[i].ID(), neighbours[j].ID()) {
				links++
			}
		}
	}
	return 2 * float64(links) / float64(k*(k-1))
}

// AverageClustering returns the mean local clustering coefficient over all
// nodes, 0 for an empty network.
func (nw *Network) AverageClustering() float64 {
	ids := nw.nodeIDs()
	if len(ids) == 0 {
		return 0
	}
	var sum float64
	for _, id := range ids {
		sum += nw.LocalClustering(id)
	}
	return sum / float64(len(ids))
}

// LargestComponent returns the node IDs of the largest connected component,
// ascending. Ties go to the component holding the smallest node ID.
func (nw *Network) LargestComponent() []int64 {
	var best []int64
	for _, comp := range topo.ConnectedComponents(nw.g) {
		ids := make([]int64, len(comp))
		for i, n := range comp {
			ids[i] = n.ID()
		}
		slices.Sort(ids)
		if len(ids) > len(best) || (len(ids) == len(best) && len(ids) > 0 && ids[0] < best[0]) {
			best = ids
		}
	}
	return best
}

// Diameter returns the longest shortest-path length within the largest
// connected component, 0 for networks without edges.
func (nw *Network) Diameter() int {
	var diameter int
	for _, id := range nw.LargestComponent() {
		var bf traverse.BreadthFirst
		bf.Walk(nw.g, nw.g.Node(id), func(_ graph.Node, depth int) bool {
			if depth > diameter {
				diameter = depth
			}
			return false
		})
	}
	return diameter
}

// Laplacian returns L = D - A over the nodes in ascending ID order, or nil
// for an empty network.
func (nw *Network) Laplacian() *mat.SymDense {
	ids := nw.nodeIDs()
	if len(ids) == 0 {
		return nil
	}
	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	l := mat.NewSymDense(len(ids), nil)
	for i, id := range ids {
		l.SetSym(i, i, float64(nw.g.From(id).Len()))
		to := nw.g.From(id)
		for to.Next() {
			if j := index[to.Node().ID()]; j > i {
				l.SetSym(i, j, -1)
			}
		}
	}
	return l
}

// LaplacianSpectrum returns the Laplacian eigenvalues sorted descending.
// The result has one value per node.
func (nw *Network) LaplacianSpectrum() ([]float64, error) {
	if nw.Order() == 0 {
		return []float64{}, nil
	}

	var es mat.EigenSym
	if ok := es.Factorize(nw.Laplacian(), false); !ok {
		return nil, ErrEigenFailed
	}
	values := es.Values(nil)
	slices.Sort(values)
	slices.Reverse(values)
	return values, nil
}
