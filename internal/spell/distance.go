package spell

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-rune insertions, deletions or substitutions
// needed to turn one into the other.
func Distance(a, b string) int {
	return levenshtein([]rune(a), []rune(b), -1)
}

// BoundedDistance behaves like Distance but gives up early once the
// result is known to exceed limit, returning limit+1 in that case.
// Results at or below limit are exact.
func BoundedDistance(a, b string, limit int) int {
	if limit < 0 {
		return Distance(a, b)
	}
	return levenshtein([]rune(a), []rune(b), limit)
}

// levenshtein runs the two-row recurrence with the shorter word as the
// column dimension. A negative bound disables the early exits.
func levenshtein(a, b []rune, bound int) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if bound >= 0 && len(a)-len(b) > bound {
		return bound + 1
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		// every later cell is at least the smallest cell of this row
		if bound >= 0 && rowMin > bound {
			return bound + 1
		}
		prev, curr = curr, prev
	}

	if bound >= 0 && prev[len(b)] > bound {
		return bound + 1
	}
	return prev[len(b)]
}
