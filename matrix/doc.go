// Package matrix holds symmetric, zero-diagonal distance matrices and their
// tab-delimited text representation.
//
// The text format has a header row of a tab followed by the tab separated
// entity names, then one row per entity: the name followed by the row values.
// Trailing whitespace is trimmed from every row.
package matrix
