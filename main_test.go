package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/ocr-bench/internal/config"
	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

func TestLoadItems(t *testing.T) {
	dir := t.TempDir()
	ocrList := filepath.Join(dir, "ocr_list.txt")
	require.NoError(t, os.WriteFile(ocrList, []byte("# scans\na.png\n\nb.pdf\n"), 0o644))

	cfg := config.ItemsConfig{OCRList: ocrList, LLMList: filepath.Join(dir, "missing.txt")}
	ocrOnly := []engine.Registration{{Name: "t", Kind: models.KindOCR}}

	items, err := loadItems(cfg, ocrOnly)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.pdf"}, items.OCR)
	assert.Empty(t, items.LLM)

	withLLM := append(ocrOnly, engine.Registration{Name: "o4", Kind: models.KindLLM})
	_, err = loadItems(cfg, withLLM)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm items")
}
