package rdom

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of seq. Standard patience construction: tails of candidate
// subsequences plus parent links, O(n log n).
//
// The backtrack keeps the smallest-tails subsequence, making the member
// set deterministic. The placement walk only needs members in increasing
// order, which any maximal subsequence satisfies; determinism just keeps
// emitted ops stable for a given input.
func longestIncreasing(seq []int) []bool {
	member := make([]bool, len(seq))
	if len(seq) == 0 {
		return member
	}

	// tails[l] is the index in seq of the smallest tail among increasing
	// subsequences of length l+1.
	tails := make([]int, 0, len(seq))
	parent := make([]int, len(seq))

	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			parent[i] = tails[lo-1]
		} else {
			parent[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	for i := tails[len(tails)-1]; i >= 0; i = parent[i] {
		member[i] = true
	}
	return member
}
