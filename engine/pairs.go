package engine

// Pair is an unordered pair of entity indices with I < J.
type Pair struct {
	I, J int
}

// PairCount returns n*(n-1)/2.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Pairs enumerates every unordered pair of n entities in row-major order.
func Pairs(n int) []Pair {
	pairs := make([]Pair, 0, PairCount(n))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}
