// Package network loads LEDA graph files and computes the whole-graph
// properties compared by the property and spectral metrics.
//
// Graphs are held as gonum simple.UndirectedGraph values. Node IDs are the
// zero-based positions of the node declarations in the file.
package network
