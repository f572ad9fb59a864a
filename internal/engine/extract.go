package engine

import (
	"encoding/json"
	"math"
	"strings"
)

// textKeys are probed in order before falling back to any string value.
var textKeys = []string{"text", "ocr_text", "result", "raw_text"}

// ExtractText selects the transcription to score from an engine output.
// It never fails; an output without usable text yields "".
func ExtractText(out Output) string {
	switch o := out.(type) {
	case OCRResult:
		return nonBlank(o.Text)
	case *OCRResult:
		if o != nil {
			return nonBlank(o.Text)
		}
	case LLMResult:
		if o.Response != nil {
			return nonBlank(*o.Response)
		}
	case *RawOutput:
		return probeText(o)
	}
	return ""
}

func probeText(r *RawOutput) string {
	if r == nil {
		return ""
	}
	for _, k := range textKeys {
		v, _ := r.Get(k)
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	for _, k := range r.keys {
		if s, ok := r.values[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func nonBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// ExtractLLM reads the response and token counts from an engine output.
// Missing or ill-typed fields come back nil.
func ExtractLLM(out Output) (response *string, tokensIn, tokensOut *int) {
	switch o := out.(type) {
	case LLMResult:
		return o.Response, o.TokensIn, o.TokensOut
	case *LLMResult:
		if o != nil {
			return o.Response, o.TokensIn, o.TokensOut
		}
	case *RawOutput:
		if v, ok := o.Get("response"); ok {
			if s, ok := v.(string); ok {
				response = &s
			}
		}
		tokensIn = intField(o, "tokens_in")
		tokensOut = intField(o, "tokens_out")
	}
	return response, tokensIn, tokensOut
}

func intField(r *RawOutput, key string) *int {
	v, ok := r.Get(key)
	if !ok {
		return nil
	}
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		if x != math.Trunc(x) {
			return nil
		}
		n = int(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return nil
		}
		n = int(i)
	default:
		return nil
	}
	return &n
}
