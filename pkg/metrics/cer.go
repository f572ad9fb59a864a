package metrics

// LevenshteinDistance counts rune-level edits between s1 and s2.
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
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
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// CharacterErrorRate is the rune edit distance divided by the reference
// length. It is nil for an empty reference.
func CharacterErrorRate(reference, hypothesis string) *float64 {
	n := len([]rune(reference))
	if n == 0 {
		return nil
	}
	cer := float64(LevenshteinDistance(reference, hypothesis)) / float64(n)
	return &cer
}
