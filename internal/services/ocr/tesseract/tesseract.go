package tesseract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
	"github.com/lehigh-university-libraries/ocr-bench/pkg/hocr/parser"
)

// Engine recognizes images with libtesseract through gosseract. PDFs are
// rasterized page by page first.
type Engine struct {
	languages     []string
	psm           gosseract.PageSegMode
	dpi           int
	clientFactory func() *gosseract.Client
}

// New accepts tesseract-style language codes ("eng", "eng+fra") and a page
// segmentation mode; an empty psm leaves tesseract's default.
func New(langs, psm string, dpi int) (*Engine, error) {
	e := &Engine{
		dpi:           dpi,
		psm:           gosseract.PSM_AUTO,
		clientFactory: gosseract.NewClient,
	}
	if langs == "" {
		langs = "eng"
	}
	e.languages = strings.Split(langs, "+")
	if psm != "" {
		mode, err := strconv.Atoi(psm)
		if err != nil {
			return nil, fmt.Errorf("invalid psm %q: %w", psm, err)
		}
		e.psm = gosseract.PageSegMode(mode)
	}
	return e, nil
}

func (e *Engine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	pages, cleanup, err := utils.PageImages(ctx, item, e.dpi)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var texts []string
	var words []parser.Word
	for _, page := range pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		text, pageWords, err := e.recognize(page)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", page, err)
		}
		texts = append(texts, text)
		words = append(words, pageWords...)
	}

	slog.Debug("Tesseract recognized item", "item", item, "pages", len(pages), "words", len(words))
	return engine.OCRResult{
		Text:           strings.Join(texts, "\n"),
		Pages:          len(pages),
		MeanConfidence: parser.MeanConfidence(words),
	}, nil
}

func (e *Engine) recognize(imagePath string) (string, []parser.Word, error) {
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(e.languages...); err != nil {
		return "", nil, fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetPageSegMode(e.psm); err != nil {
		return "", nil, fmt.Errorf("set psm: %w", err)
	}
	if err := c.SetImage(imagePath); err != nil {
		return "", nil, fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", nil, fmt.Errorf("recognize text: %w", err)
	}

	hocr, err := c.HOCRText()
	if err != nil {
		slog.Warn("Failed to get hOCR from tesseract", "image", imagePath, "err", err)
		return text, nil, nil
	}
	words, err := parser.ParseHOCRWords(hocr)
	if err != nil {
		slog.Warn("Unable to parse hocr", "image", imagePath, "err", err)
		return text, nil, nil
	}
	return text, words, nil
}
