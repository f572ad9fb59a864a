package benchmark

import (
	"slices"

	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

// Summarize aggregates records per engine, in order of first appearance.
func Summarize(records []models.Record) []models.EngineSummary {
	var order []string
	byEngine := make(map[string][]models.Record)
	for _, r := range records {
		if _, ok := byEngine[r.Engine]; !ok {
			order = append(order, r.Engine)
		}
		byEngine[r.Engine] = append(byEngine[r.Engine], r)
	}

	summaries := make([]models.EngineSummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, summarizeEngine(name, byEngine[name]))
	}
	return summaries
}

func summarizeEngine(name string, recs []models.Record) models.EngineSummary {
	s := models.EngineSummary{
		Engine: name,
		Kind:   recs[0].Kind,
		Items:  len(recs),
	}

	latencies := make([]float64, len(recs))
	for i, r := range recs {
		latencies[i] = r.Latency
	}
	s.MeanLatency = mean(latencies)
	s.P50Latency = median(latencies)
	s.MaxLatency = slices.Max(latencies)

	var wers, cers, toks []float64
	refWords := 0
	for _, r := range recs {
		if r.OCRMetrics != nil && r.Accuracy != nil {
			acc := r.Accuracy
			s.Substitutions += acc.Substitutions
			s.Deletions += acc.Deletions
			s.Insertions += acc.Insertions
			refWords += acc.ReferenceWords
			if acc.WER != nil {
				wers = append(wers, *acc.WER)
			}
			if acc.CharacterErrorRate != nil {
				cers = append(cers, *acc.CharacterErrorRate)
			}
		}
		if r.LLMMetrics != nil {
			if r.TokensIn != nil {
				s.TotalTokensIn += *r.TokensIn
			}
			if r.TokensOut != nil {
				s.TotalTokensOut += *r.TokensOut
			}
			if r.TokensPerSec != nil {
				toks = append(toks, *r.TokensPerSec)
			}
		}
	}

	s.ScoredItems = len(wers)
	if len(wers) > 0 {
		s.MeanWER = ptr(mean(wers))
	}
	if len(cers) > 0 {
		s.MeanCER = ptr(mean(cers))
	}
	if refWords > 0 {
		s.CorpusWER = ptr(float64(s.Substitutions+s.Deletions+s.Insertions) / float64(refWords))
	}
	if len(toks) > 0 {
		s.MeanToksPerSec = ptr(mean(toks))
	}
	return s
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
