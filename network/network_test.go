package network

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leda(nodes int, edges ...[2]int) string {
	var b strings.Builder
	b.WriteString("LEDA.GRAPH\nstring\nshort\n-2\n")
	b.WriteString(itoa(nodes) + "\n")
	for i := 0; i < nodes; i++ {
		b.WriteString("|{n" + itoa(i) + "}|\n")
	}
	b.WriteString(itoa(len(edges)) + "\n")
	for _, e := range edges {
		b.WriteString(itoa(e[0]) + " " + itoa(e[1]) + " 0 |{}|\n")
	}
	return b.String()
}

func itoa(i int) string { return strconv.Itoa(i) }

func mustRead(t *testing.T, text string) *Network {
	t.Helper()
	nw, err := ReadLEDA(strings.NewReader(text))
	require.NoError(t, err)
	return nw
}

func triangle(t *testing.T) *Network {
	return mustRead(t, leda(3, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}))
}

func path4(t *testing.T) *Network {
	return mustRead(t, leda(4, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4}))
}

func star(t *testing.T) *Network {
	return mustRead(t, leda(4, [2]int{1, 2}, [2]int{1, 3}, [2]int{1, 4}))
}

func TestReadLEDA(t *testing.T) {
	nw := triangle(t)
	assert.Equal(t, []string{"n0", "n1", "n2"}, nw.Names())
	assert.Equal(t, 3, nw.Order())
	assert.Equal(t, 3, nw.Size())
}

func TestReadLEDA_NodesWithoutEdgesAreDropped(t *testing.T) {
	nw := mustRead(t, leda(4, [2]int{1, 2}))
	assert.Equal(t, []string{"n0", "n1", "n2", "n3"}, nw.Names())
	assert.Equal(t, 2, nw.Order())
	assert.Equal(t, 1, nw.Size())
	assert.InDelta(t, 1.0, nw.AverageDegree(), 1e-12)
	assert.Equal(t, []float64{0, 2}, nw.DegreeHistogram())
	assert.Equal(t, 0.0, nw.AverageClustering())
	assert.Equal(t, 1, nw.Diameter())

	spectrum, err := nw.LaplacianSpectrum()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 0}, spectrum, 1e-9)

	empty := mustRead(t, leda(3))
	assert.Equal(t, 0, empty.Order())
	assert.Equal(t, 0.0, empty.AverageDegree())
}

func TestReadLEDA_SelfLoopsAndDuplicates(t *testing.T) {
	nw := mustRead(t, leda(3, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{1, 2}, [2]int{1, 1}))
	assert.Equal(t, 2, nw.Order())
	assert.Equal(t, 2, nw.Size(), "one edge plus one self loop")

	// The self loop adds 2 to the degree of n0.
	assert.Equal(t, []float64{0, 1, 0, 1}, nw.DegreeHistogram())
	assert.InDelta(t, 2.0, nw.AverageDegree(), 1e-12)

	// A node with only a self loop still belongs to the graph.
	lone := mustRead(t, leda(2, [2]int{2, 2}))
	assert.Equal(t, 1, lone.Order())
	assert.Equal(t, []float64{0, 0, 1}, lone.DegreeHistogram())
}

func TestSelfLoopsIgnoredByNeighbourhoodProperties(t *testing.T) {
	nw := mustRead(t, leda(3, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}, [2]int{1, 1}))
	assert.InDelta(t, 1.0, nw.AverageClustering(), 1e-12)
	assert.Equal(t, 1, nw.Diameter())
	assert.InDelta(t, 8.0/3, nw.AverageDegree(), 1e-12)

	spectrum, err := nw.LaplacianSpectrum()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 3, 0}, spectrum, 1e-9)
}

func TestReadLEDA_UndeclaredEndpoint(t *testing.T) {
	nw := mustRead(t, leda(2, [2]int{1, 5}))
	assert.Equal(t, 2, nw.Order())
	assert.Equal(t, 1, nw.Size())
	assert.Equal(t, []int64{0, 4}, nw.LargestComponent())
}

func TestReadLEDA_Errors(t *testing.T) {
	tests := map[string]string{
		"single field": "|{a}|\n1\n1\n",
		"non numeric":  "|{a}|\n1\nx 1\n",
		"zero index":   "|{a}|\n1\n0 1\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadLEDA(strings.NewReader(text))
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Equal(t, 3, pe.Line)
		})
	}
}

func TestDegreeHistogram(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 3}, triangle(t).DegreeHistogram())
	assert.Equal(t, []float64{0, 2, 2}, path4(t).DegreeHistogram())
	assert.Equal(t, []float64{0, 3, 0, 1}, star(t).DegreeHistogram())
	assert.Nil(t, New(nil).DegreeHistogram())
}

func TestAverageDegree(t *testing.T) {
	assert.InDelta(t, 2.0, triangle(t).AverageDegree(), 1e-12)
	assert.InDelta(t, 1.5, path4(t).AverageDegree(), 1e-12)
	assert.InDelta(t, 1.5, star(t).AverageDegree(), 1e-12)
	assert.Equal(t, 0.0, New(nil).AverageDegree())
}

func TestAverageClustering(t *testing.T) {
	assert.InDelta(t, 1.0, triangle(t).AverageClustering(), 1e-12)
	assert.InDelta(t, 0.0, path4(t).AverageClustering(), 1e-12)
	assert.InDelta(t, 0.0, star(t).AverageClustering(), 1e-12)

	// Triangle 1-2-3 with a pendant 4 on node 3: c = [1, 1, 1/3, 0].
	paw := mustRead(t, leda(4, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}, [2]int{3, 4}))
	assert.InDelta(t, (1+1+1.0/3)/4, paw.AverageClustering(), 1e-12)
}

func TestDiameter(t *testing.T) {
	assert.Equal(t, 1, triangle(t).Diameter())
	assert.Equal(t, 3, path4(t).Diameter())
	assert.Equal(t, 2, star(t).Diameter())
	assert.Equal(t, 0, New([]string{"a", "b"}).Diameter())

	// Largest component is the path 1-2-3-4, not the edge 5-6.
	split := mustRead(t, leda(6, [2]int{5, 6}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4}))
	assert.Equal(t, []int64{0, 1, 2, 3}, split.LargestComponent())
	assert.Equal(t, 3, split.Diameter())
}

func TestLaplacianSpectrum(t *testing.T) {
	tests := []struct {
		name string
		nw   *Network
		want []float64
	}{
		{"triangle", triangle(t), []float64{3, 3, 0}},
		{"star", star(t), []float64{4, 1, 1, 0}},
		{"path", path4(t), []float64{2 + 1.4142135623730951, 2, 2 - 1.4142135623730951, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.nw.LaplacianSpectrum()
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}

	empty, err := New(nil).LaplacianSpectrum()
	require.NoError(t, err)
	assert.Empty(t, empty)
}
