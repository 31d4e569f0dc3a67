package distance

import "sort"

// Rank returns the 1-based ranks of values. Tied values receive the average
// of the ranks they span.
func Rank(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && values[idx[end]] == values[idx[start]] {
			end++
		}
		// positions start..end-1 hold ranks start+1..end
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg
		}
		start = end
	}
	return ranks
}
