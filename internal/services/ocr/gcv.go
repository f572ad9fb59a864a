package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
)

// GCVEngine runs Google Cloud Vision document text detection. Credentials
// come from the environment (GOOGLE_APPLICATION_CREDENTIALS).
type GCVEngine struct {
	languageHints []string
	dpi           int
}

func NewGCV(languages string, dpi int) *GCVEngine {
	var hints []string
	for _, l := range strings.Split(languages, "+") {
		if l = strings.TrimSpace(l); l != "" {
			hints = append(hints, l)
		}
	}
	return &GCVEngine{languageHints: hints, dpi: dpi}
}

func (e *GCVEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	pages, cleanup, err := utils.PageImages(ctx, item, e.dpi)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var imageContext *visionpb.ImageContext
	if len(e.languageHints) > 0 {
		imageContext = &visionpb.ImageContext{LanguageHints: e.languageHints}
	}

	var texts []string
	var confidences []float64
	for _, page := range pages {
		annotation, err := detectPage(ctx, client, page, imageContext)
		if err != nil {
			return nil, fmt.Errorf("detect %s: %w", page, err)
		}
		texts = append(texts, annotation.GetText())
		confidences = append(confidences, wordConfidences(annotation)...)
	}

	return engine.OCRResult{
		Text:           strings.Join(texts, "\n"),
		Pages:          len(pages),
		MeanConfidence: meanConfidence(confidences),
	}, nil
}

func detectPage(ctx context.Context, client *vision.ImageAnnotatorClient, path string, imageContext *visionpb.ImageContext) (*visionpb.TextAnnotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	image, err := vision.NewImageFromReader(f)
	if err != nil {
		return nil, err
	}

	// A nil annotation means no text was found; its getters return zero values.
	return client.DetectDocumentText(ctx, image, imageContext)
}

// wordConfidences returns the word confidences of annotation on a 0-100
// scale, matching Tesseract's x_wconf.
func wordConfidences(annotation *visionpb.TextAnnotation) []float64 {
	var out []float64
	for _, page := range annotation.GetPages() {
		for _, block := range page.GetBlocks() {
			for _, paragraph := range block.GetParagraphs() {
				for _, word := range paragraph.GetWords() {
					out = append(out, float64(word.GetConfidence())*100)
				}
			}
		}
	}
	return out
}

func meanConfidence(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return &mean
}
