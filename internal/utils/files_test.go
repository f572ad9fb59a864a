package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroundTruthPath(t *testing.T) {
	assert.Equal(t, "data/scan01.txt", utils.GroundTruthPath("data/scan01.png"))
	assert.Equal(t, "data/report.v2.txt", utils.GroundTruthPath("data/report.v2.pdf"))
	assert.Equal(t, "data/noext.txt", utils.GroundTruthPath("data/noext"))
	assert.Equal(t, "a.txt", utils.GroundTruthPath("a.txt"))
}

func TestReadItemList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	content := "first.png\n\n  second.pdf  \n# skipped\n\t\nthird.jpg"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	items, err := utils.ReadItemList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first.png", "second.pdf", "third.jpg"}, items)
}

func TestReadItemListMissing(t *testing.T) {
	_, err := utils.ReadItemList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")
	require.NoError(t, utils.WriteJSON(path, []map[string]string{{"text": "안녕 <b>&"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"text\": \"안녕 <b>&\"\n  }\n]\n", string(data))
}

func TestPageImagesPassesThroughImages(t *testing.T) {
	pages, cleanup, err := utils.PageImages(t.Context(), "scans/page.png", 300)
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, []string{"scans/page.png"}, pages)

	assert.True(t, utils.IsPDF("doc.PDF"))
	assert.False(t, utils.IsPDF("doc.pdf.png"))
}
