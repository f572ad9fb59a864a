package metrics

import "strings"

type Alignment struct {
	Substitutions   int      `json:"substitutions"`
	Deletions       int      `json:"deletions"`
	Insertions      int      `json:"insertions"`
	ReferenceLength int      `json:"reference_length"`
	WER             *float64 `json:"wer"`
}

func (a Alignment) Edits() int {
	return a.Substitutions + a.Deletions + a.Insertions
}

// Align computes a minimum edit alignment between the whitespace tokens of
// reference and hypothesis. When several minimum-cost paths exist the
// backtrace prefers match, then insertion, then deletion, then substitution.
// WER is nil for an empty reference.
func Align(reference, hypothesis string) Alignment {
	ref := strings.Fields(reference)
	hyp := strings.Fields(hypothesis)
	dp := editTable(ref, hyp)

	var a Alignment
	i, j := len(ref), len(hyp)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1]:
			i--
			j--
		case j > 0 && dp[i][j] == dp[i][j-1]+1:
			a.Insertions++
			j--
		case i > 0 && dp[i][j] == dp[i-1][j]+1:
			a.Deletions++
			i--
		default:
			a.Substitutions++
			i--
			j--
		}
	}

	a.ReferenceLength = len(ref)
	if a.ReferenceLength > 0 {
		wer := float64(a.Edits()) / float64(a.ReferenceLength)
		a.WER = &wer
	}
	return a
}

// EditDistance is the token-level Levenshtein distance between ref and hyp.
func EditDistance(ref, hyp []string) int {
	return editTable(ref, hyp)[len(ref)][len(hyp)]
}

func editTable(ref, hyp []string) [][]int {
	n, m := len(ref), len(hyp)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		dp[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ref[i-1] == hyp[j-1] {
				dp[i][j] = dp[i-1][j-1]
			} else {
				dp[i][j] = 1 + min(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
			}
		}
	}
	return dp
}
