package metrics_test

import (
	"testing"

	"github.com/lehigh-university-libraries/ocr-bench/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, metrics.LevenshteinDistance("", ""))
	assert.Equal(t, 3, metrics.LevenshteinDistance("", "abc"))
	assert.Equal(t, 3, metrics.LevenshteinDistance("kitten", "sitting"))
	// Runes, not bytes.
	assert.Equal(t, 1, metrics.LevenshteinDistance("한글", "한국"))
}

func TestCharacterErrorRate(t *testing.T) {
	assert.Nil(t, metrics.CharacterErrorRate("", "anything"))

	cer := metrics.CharacterErrorRate("abcd", "abxd")
	require.NotNil(t, cer)
	assert.InDelta(t, 0.25, *cer, 1e-9)
}
