package metrics_test

import (
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/ocr-bench/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		hyp     string
		s, d, i int
		n       int
		wer     float64
	}{
		{name: "identical", ref: "a b c", hyp: "a b c", n: 3, wer: 0},
		{name: "substitution", ref: "a b c", hyp: "a x c", s: 1, n: 3, wer: 1.0 / 3},
		{name: "insertion", ref: "a b", hyp: "a b c", i: 1, n: 2, wer: 0.5},
		{name: "deletion", ref: "a b c", hyp: "a c", d: 1, n: 3, wer: 1.0 / 3},
		{name: "empty hypothesis", ref: "a b c", hyp: "", d: 3, n: 3, wer: 1},
		{name: "all substituted", ref: "a b", hyp: "x y", s: 2, n: 2, wer: 1},
		{name: "wer above one", ref: "a", hyp: "x y z", s: 1, i: 2, n: 1, wer: 3},
		{name: "extra whitespace", ref: " a  b ", hyp: "a\tb\n", n: 2, wer: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.Align(tt.ref, tt.hyp)
			assert.Equal(t, tt.n, got.ReferenceLength)
			require.NotNil(t, got.WER)
			assert.InDelta(t, tt.wer, *got.WER, 1e-9)
			assert.Equal(t, tt.s, got.Substitutions)
			assert.Equal(t, tt.d, got.Deletions)
			assert.Equal(t, tt.i, got.Insertions)
		})
	}
}

// "a" vs "x y z" has several minimum paths. Walking back from (1,3) the
// insertion branch is taken twice before the final cell is a substitution.
func TestAlignTieBreak(t *testing.T) {
	got := metrics.Align("a", "x y z")
	assert.Equal(t, 1, got.Substitutions)
	assert.Equal(t, 2, got.Insertions)
	assert.Equal(t, 0, got.Deletions)

	// Insertion is preferred over deletion when both reach the same cost.
	got = metrics.Align("a b", "b a")
	assert.Equal(t, 2, got.Edits())
	assert.Equal(t, 1, got.Insertions)
	assert.Equal(t, 1, got.Deletions)
	assert.Equal(t, 0, got.Substitutions)
}

func TestAlignEmptyReference(t *testing.T) {
	got := metrics.Align("", "")
	assert.Equal(t, 0, got.ReferenceLength)
	assert.Nil(t, got.WER)
	assert.Equal(t, 0, got.Edits())

	got = metrics.Align("   ", "a b")
	assert.Equal(t, 0, got.ReferenceLength)
	assert.Nil(t, got.WER)
	assert.Equal(t, 2, got.Insertions)
}

func TestAlignMatchesEditDistance(t *testing.T) {
	words := []string{"a", "b", "c"}
	// Every sequence over {a,b,c} up to length 4 against every other.
	var seqs [][]string
	var gen func(prefix []string)
	gen = func(prefix []string) {
		seqs = append(seqs, append([]string(nil), prefix...))
		if len(prefix) == 4 {
			return
		}
		for _, w := range words {
			gen(append(prefix, w))
		}
	}
	gen(nil)

	for _, r := range seqs {
		for _, h := range seqs {
			got := metrics.Align(strings.Join(r, " "), strings.Join(h, " "))
			want := naiveDistance(r, h)
			require.Equal(t, want, got.Edits(), "ref=%v hyp=%v", r, h)
			require.Equal(t, want, metrics.EditDistance(r, h))
		}
	}
}

// naiveDistance is an independent recursive Levenshtein used as an oracle.
func naiveDistance(a, b []string) int {
	memo := map[[2]int]int{}
	var rec func(i, j int) int
	rec = func(i, j int) int {
		if i == len(a) {
			return len(b) - j
		}
		if j == len(b) {
			return len(a) - i
		}
		key := [2]int{i, j}
		if v, ok := memo[key]; ok {
			return v
		}
		var v int
		if a[i] == b[j] {
			v = rec(i+1, j+1)
		} else {
			v = 1 + min(rec(i+1, j), rec(i, j+1), rec(i+1, j+1))
		}
		memo[key] = v
		return v
	}
	return rec(0, 0)
}
