package benchmark

import (
	"fmt"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
)

// Report is the in-memory result of one run.
type Report struct {
	RunID     string                 `json:"run_id"`
	StartedAt time.Time              `json:"started_at"`
	Records   []models.Record        `json:"-"`
	OCRTexts  []models.OCRText       `json:"-"`
	Summaries []models.EngineSummary `json:"engines"`
}

// Paths names the artifact files. An empty Summary skips the summary
// artifact.
type Paths struct {
	Results string
	Texts   string
	Summary string
}

// Write serializes the performance records, the OCR texts and, when
// configured, the per-engine summary.
func (r *Report) Write(paths Paths) error {
	if err := utils.WriteJSON(paths.Results, r.Records); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if err := utils.WriteJSON(paths.Texts, r.OCRTexts); err != nil {
		return fmt.Errorf("write ocr texts: %w", err)
	}
	if paths.Summary != "" {
		if err := utils.WriteJSON(paths.Summary, r); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

// RenderMarkdown produces a Markdown table per kind summarizing the run.
func RenderMarkdown(summaries []models.EngineSummary) string {
	if len(summaries) == 0 {
		return "_No results._\n"
	}

	var sb strings.Builder
	sb.WriteString("## Benchmark Results\n\n")

	var ocr, llm []models.EngineSummary
	for _, s := range summaries {
		if s.Kind == models.KindOCR {
			ocr = append(ocr, s)
		} else {
			llm = append(llm, s)
		}
	}

	if len(ocr) > 0 {
		sb.WriteString("| Engine | Items | Mean Latency | P50 | Max | Scored | Mean WER | Corpus WER | Mean CER |\n")
		sb.WriteString("|--------|-------|--------------|-----|-----|--------|----------|------------|----------|\n")
		for _, s := range ocr {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2fs | %.2fs | %.2fs | %d | %s | %s | %s |\n",
				s.Engine, s.Items, s.MeanLatency, s.P50Latency, s.MaxLatency,
				s.ScoredItems, percent(s.MeanWER), percent(s.CorpusWER), percent(s.MeanCER),
			))
		}
		sb.WriteString("\n")
	}

	if len(llm) > 0 {
		sb.WriteString("| Engine | Items | Mean Latency | P50 | Max | Tokens In | Tokens Out | Tok/s |\n")
		sb.WriteString("|--------|-------|--------------|-----|-----|-----------|------------|-------|\n")
		for _, s := range llm {
			tokSec := "-"
			if s.MeanToksPerSec != nil {
				tokSec = fmt.Sprintf("%.1f", *s.MeanToksPerSec)
			}
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2fs | %.2fs | %.2fs | %d | %d | %s |\n",
				s.Engine, s.Items, s.MeanLatency, s.P50Latency, s.MaxLatency,
				s.TotalTokensIn, s.TotalTokensOut, tokSec,
			))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func percent(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
