package models

import "fmt"

type Kind string

const (
	KindOCR Kind = "ocr"
	KindLLM Kind = "llm"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindOCR, KindLLM:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Record is one benchmark measurement for an (engine, item) pair.
// Exactly one of the embedded metric blocks is set, matching Kind.
type Record struct {
	Engine  string  `json:"engine"`
	Item    string  `json:"item"`
	Kind    Kind    `json:"kind"`
	Latency float64 `json:"latency"`
	*OCRMetrics
	*LLMMetrics
}

type OCRMetrics struct {
	ImagesPerSec   *float64 `json:"throughput_imgs_per_s"`
	CharsPerSec    *float64 `json:"throughput_chars_per_s"`
	MeanConfidence *float64 `json:"mean_word_confidence,omitempty"`
	Text           string   `json:"text,omitempty"`
	*Accuracy
}

// Accuracy is only attached when a ground-truth transcription exists.
type Accuracy struct {
	WER                *float64 `json:"wer"`
	Substitutions      int      `json:"WER_substitutions"`
	Deletions          int      `json:"WER_deletions"`
	Insertions         int      `json:"WER_insertions"`
	ReferenceWords     int      `json:"WER_ref_words"`
	CharacterErrorRate *float64 `json:"cer"`
}

type LLMMetrics struct {
	TokensIn     *int     `json:"tokens_in"`
	TokensOut    *int     `json:"tokens_out"`
	TokensPerSec *float64 `json:"throughput_toks_per_s"`
	Response     *string  `json:"response"`
}

// PopText returns a copy of r without its transcription, along with the
// transcription itself. Records of other kinds are returned unchanged.
func (r Record) PopText() (Record, OCRText, bool) {
	if r.OCRMetrics == nil {
		return r, OCRText{}, false
	}
	m := *r.OCRMetrics
	text := m.Text
	m.Text = ""
	r.OCRMetrics = &m
	return r, OCRText{Engine: r.Engine, Item: r.Item, Text: text}, true
}

type OCRText struct {
	Engine string `json:"engine"`
	Item   string `json:"item"`
	Text   string `json:"text"`
}

type EngineSummary struct {
	Engine      string   `json:"engine"`
	Kind        Kind     `json:"kind"`
	Items       int      `json:"items"`
	MeanLatency float64  `json:"mean_latency"`
	P50Latency  float64  `json:"p50_latency"`
	MaxLatency  float64  `json:"max_latency"`
	ScoredItems int      `json:"scored_items,omitempty"`
	MeanWER     *float64 `json:"mean_wer,omitempty"`
	CorpusWER   *float64 `json:"corpus_wer,omitempty"`
	MeanCER     *float64 `json:"mean_cer,omitempty"`

	Substitutions int `json:"substitutions,omitempty"`
	Deletions     int `json:"deletions,omitempty"`
	Insertions    int `json:"insertions,omitempty"`

	TotalTokensIn  int      `json:"total_tokens_in,omitempty"`
	TotalTokensOut int      `json:"total_tokens_out,omitempty"`
	MeanToksPerSec *float64 `json:"mean_toks_per_s,omitempty"`
}
