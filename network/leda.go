package network

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// ParseError describes a malformed LEDA line.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("network: line %d: %s", e.Line, e.Reason)
}

// Network is an undirected, unweighted graph with named nodes.
//
// Only nodes that are an endpoint of some edge belong to the graph. Declared
// names are kept for reference. A self loop contributes 2 to its node's
// degree but is not part of the neighbourhood, so clustering, distances and
// the Laplacian ignore it.
type Network struct {
	g     *simple.UndirectedGraph
	loops map[int64]struct{}
	names []string
}

// New returns an empty network with the given declared node names.
func New(names []string) *Network {
	return &Network{
		g:     simple.NewUndirectedGraph(),
		loops: make(map[int64]struct{}),
		names: names,
	}
}

// AddEdge connects u and v, adding missing endpoints. Duplicate edges are
// ignored.
func (nw *Network) AddEdge(u, v int64) {
	for _, id := range [2]int64{u, v} {
		if nw.g.Node(id) == nil {
			nw.g.AddNode(simple.Node(id))
		}
	}
	if u == v {
		nw.loops[u] = struct{}{}
		return
	}
	if nw.g.HasEdgeBetween(u, v) {
		return
	}
	nw.g.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
}

// Graph returns the underlying gonum graph, without self loops.
func (nw *Network) Graph() graph.Undirected { return nw.g }

// Names returns the declared node names.
func (nw *Network) Names() []string { return nw.names }

// Order returns the number of nodes.
func (nw *Network) Order() int { return nw.g.Nodes().Len() }

// Size returns the number of edges, self loops included.
func (nw *Network) Size() int { return nw.g.Edges().Len() + len(nw.loops) }

// ReadLEDA parses a LEDA .gw graph.
//
// Lines before the first line starting with '|' are the header. Each
// "|{name}|" line declares a node. The line following the node block holds
// the edge count and is skipped. Every further non-blank line is an edge
// "a b ..." with 1-based endpoints; trailing fields are ignored. Declared
// nodes without edges are not added to the graph.
func ReadLEDA(r io.Reader) (*Network, error) {
	const (
		header = iota
		nodes
		edges
	)

	var (
		names []string
		pairs [][2]int64
		mode  = header
		lines int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines++
		line := strings.TrimSpace(sc.Text())

		if mode == header {
			if !strings.HasPrefix(line, "|") {
				continue
			}
			mode = nodes
		}

		if mode == nodes {
			if strings.HasPrefix(line, "|") {
				name := strings.Trim(line, "|")
				name = strings.TrimSuffix(strings.TrimPrefix(name, "{"), "}")
				names = append(names, name)
				continue
			}
			mode = edges
			continue
		}

		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &ParseError{Line: lines, Reason: fmt.Sprintf("edge needs two endpoints: %q", line)}
		}
		var ends [2]int64
		for k := 0; k < 2; k++ {
			n, err := strconv.ParseInt(fields[k], 10, 64)
			if err != nil || n < 1 {
				return nil, &ParseError{Line: lines, Reason: fmt.Sprintf("invalid endpoint %q", fields[k])}
			}
			ends[k] = n - 1
		}
		pairs = append(pairs, ends)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	nw := New(names)
	for _, p := range pairs {
		nw.AddEdge(p[0], p[1])
	}
	return nw, nil
}
