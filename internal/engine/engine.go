package engine

import (
	"context"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

// Engine is implemented by every OCR and LLM adapter. Run may block for as
// long as the underlying service or subprocess takes.
type Engine interface {
	Run(ctx context.Context, item string, kind models.Kind) (Output, error)
}

// Registration binds an engine to the name it is reported under and the kind
// of items it is fed. A zero Timeout means the call is never cut short.
type Registration struct {
	Name    string
	Kind    models.Kind
	Engine  Engine
	Timeout time.Duration
}

// Output is the value returned by Engine.Run: OCRResult, LLMResult or
// *RawOutput.
type Output interface {
	isOutput()
}

type OCRResult struct {
	Text           string
	Pages          int
	MeanConfidence *float64
}

type LLMResult struct {
	Response  *string
	TokensIn  *int
	TokensOut *int
}

func (OCRResult) isOutput()  {}
func (LLMResult) isOutput()  {}
func (*RawOutput) isOutput() {}
