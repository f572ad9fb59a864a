package storage

import (
	"sync"

	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

// ResultStore collects records per engine slot so that engines may finish in
// any order while Collate still returns canonical (engine, item) order.
type ResultStore struct {
	slots []slot
	mu    sync.RWMutex
}

type slot struct {
	records []models.Record
	texts   []models.OCRText
}

func New(engines int) *ResultStore {
	return &ResultStore{
		slots: make([]slot, engines),
	}
}

// Append adds rec to the slot of the engine at index engineIdx. OCR records
// have their transcription split off into the parallel text sequence.
func (s *ResultStore) Append(engineIdx int, rec models.Record) {
	rec, text, isOCR := rec.PopText()

	s.mu.Lock()
	defer s.mu.Unlock()
	sl := &s.slots[engineIdx]
	sl.records = append(sl.records, rec)
	if isOCR {
		sl.texts = append(sl.texts, text)
	}
}

func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sl := range s.slots {
		n += len(sl.records)
	}
	return n
}

// Collate flattens all slots in engine order.
func (s *ResultStore) Collate() ([]models.Record, []models.OCRText) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.Record, 0)
	texts := make([]models.OCRText, 0)
	for _, sl := range s.slots {
		records = append(records, sl.records...)
		texts = append(texts, sl.texts...)
	}
	return records, texts
}
