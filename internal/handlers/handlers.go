package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/ocr-bench/pkg/hocr/parser"
	"github.com/lehigh-university-libraries/ocr-bench/pkg/metrics"
)

// Handler serves ad-hoc scoring requests using the same normalization and
// alignment as benchmark runs.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/metrics", h.HandleMetrics)
	mux.HandleFunc("/api/hocr/parse", h.HandleHOCRParse)
	mux.HandleFunc("/healthcheck", h.HandleHealthcheck)
}

type metricsResponse struct {
	metrics.Alignment
	CharacterErrorRate *float64 `json:"cer"`
	Reference          string   `json:"normalized_reference"`
	Hypothesis         string   `json:"normalized_hypothesis"`
}

func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Reference  string `json:"reference"`
		Hypothesis string `json:"hypothesis"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		slog.Error("Unable to decode metrics data", "err", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	ref := metrics.Normalize(request.Reference)
	hyp := metrics.Normalize(request.Hypothesis)
	response := metricsResponse{
		Alignment:          metrics.Align(ref, hyp),
		CharacterErrorRate: metrics.CharacterErrorRate(ref, hyp),
		Reference:          ref,
		Hypothesis:         hyp,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Unable to encode metrics data", "err", err)
		http.Error(w, "Invalid JSON", http.StatusInternalServerError)
	}
}

// HandleHOCRParse returns the words of an hOCR document with their mean
// confidence.
func (h *Handler) HandleHOCRParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		HOCR string `json:"hocr"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	words, err := parser.ParseHOCRWords(request.HOCR)
	if err != nil {
		slog.Error("Unable to parse hocr", "err", err)
		http.Error(w, "Failed to parse hOCR", http.StatusBadRequest)
		return
	}

	response := struct {
		Words          []parser.Word `json:"words"`
		MeanConfidence *float64      `json:"mean_confidence"`
	}{
		Words:          words,
		MeanConfidence: parser.MeanConfidence(words),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Unable to encode response data", "err", err)
		http.Error(w, "Invalid JSON", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleHealthcheck(w http.ResponseWriter, _ *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Unable to write healthcheck", "err", err)
	}
}
