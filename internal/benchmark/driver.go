package benchmark

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
	"github.com/lehigh-university-libraries/ocr-bench/pkg/metrics"
)

// Driver times single engine invocations and turns their output into
// records.
type Driver struct {
	// now is replaceable in tests. Latency is measured as now() deltas, so the
	// monotonic reading of time.Now is used in production.
	now func() time.Time
}

func NewDriver() *Driver {
	return &Driver{now: time.Now}
}

// Bench runs reg.Engine once on item. Engine failures are returned, never
// folded into the record.
func (d *Driver) Bench(ctx context.Context, reg engine.Registration, item string) (models.Record, error) {
	if reg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, reg.Timeout)
		defer cancel()
	}

	start := d.now()
	out, err := reg.Engine.Run(ctx, item, reg.Kind)
	latency := d.now().Sub(start).Seconds()
	if err != nil {
		return models.Record{}, fmt.Errorf("bench %s %s: %w", reg.Name, item, err)
	}

	rec := models.Record{
		Engine:  reg.Name,
		Item:    item,
		Kind:    reg.Kind,
		Latency: latency,
	}

	switch reg.Kind {
	case models.KindOCR:
		m, err := ocrMetrics(out, item, latency)
		if err != nil {
			return models.Record{}, fmt.Errorf("bench %s %s: %w", reg.Name, item, err)
		}
		rec.OCRMetrics = m
	default:
		rec.LLMMetrics = llmMetrics(out, latency)
	}

	slog.Debug("benchmarked item", "engine", reg.Name, "item", item, "kind", reg.Kind, "latency", latency)
	return rec, nil
}

func ocrMetrics(out engine.Output, item string, latency float64) (*models.OCRMetrics, error) {
	text := engine.ExtractText(out)
	m := &models.OCRMetrics{Text: text}
	if latency > 0 {
		m.ImagesPerSec = ptr(1.0 / latency)
		m.CharsPerSec = ptr(float64(utf8.RuneCountInString(text)) / latency)
	}
	switch o := out.(type) {
	case engine.OCRResult:
		m.MeanConfidence = o.MeanConfidence
	case *engine.OCRResult:
		if o != nil {
			m.MeanConfidence = o.MeanConfidence
		}
	}

	acc, err := scoreAgainstGroundTruth(item, text)
	if err != nil {
		return nil, err
	}
	m.Accuracy = acc
	return m, nil
}

// scoreAgainstGroundTruth returns nil when item has no reference
// transcription.
func scoreAgainstGroundTruth(item, text string) (*models.Accuracy, error) {
	path := utils.GroundTruthPath(item)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ground truth %s: %w", path, err)
	}

	ref := metrics.Normalize(strings.TrimSpace(string(data)))
	hyp := metrics.Normalize(text)
	a := metrics.Align(ref, hyp)
	return &models.Accuracy{
		WER:                a.WER,
		Substitutions:      a.Substitutions,
		Deletions:          a.Deletions,
		Insertions:         a.Insertions,
		ReferenceWords:     a.ReferenceLength,
		CharacterErrorRate: metrics.CharacterErrorRate(ref, hyp),
	}, nil
}

func llmMetrics(out engine.Output, latency float64) *models.LLMMetrics {
	response, tokensIn, tokensOut := engine.ExtractLLM(out)
	m := &models.LLMMetrics{
		TokensIn:  tokensIn,
		TokensOut: tokensOut,
		Response:  response,
	}
	if latency > 0 && tokensOut != nil && *tokensOut != 0 {
		m.TokensPerSec = ptr(float64(*tokensOut) / latency)
	}
	return m
}

func ptr[T any](v T) *T {
	return &v
}
