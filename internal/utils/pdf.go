package utils

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// PageImages returns the images to recognize for item. Image files are
// returned as-is; PDFs are rasterized with pdftoppm into a temporary
// directory that cleanup removes.
func PageImages(ctx context.Context, item string, dpi int) (pages []string, cleanup func(), err error) {
	if !IsPDF(item) {
		return []string{item}, func() {}, nil
	}
	if dpi <= 0 {
		dpi = 300
	}

	dir, err := os.MkdirTemp("", "ocr-bench-pages-")
	if err != nil {
		return nil, nil, fmt.Errorf("create page dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", strconv.Itoa(dpi), "-png", item, prefix)
	if output, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm %s: %w: %s", item, err, strings.TrimSpace(string(output)))
	}

	pages, err = filepath.Glob(prefix + "-*.png")
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if len(pages) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm produced no pages for %s", item)
	}
	// pdftoppm zero-pads page numbers to a common width.
	sort.Strings(pages)
	return pages, cleanup, nil
}
