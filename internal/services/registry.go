package services

import (
	"context"
	"fmt"

	"github.com/lehigh-university-libraries/ocr-bench/internal/config"
	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/services/llm"
	"github.com/lehigh-university-libraries/ocr-bench/internal/services/ocr"
	"github.com/lehigh-university-libraries/ocr-bench/internal/services/ocr/tesseract"
)

// Build constructs one registration per configured engine, in declaration
// order. cfgs are expected to have passed config.Validate.
func Build(ctx context.Context, cfgs []config.EngineConfig) ([]engine.Registration, error) {
	regs := make([]engine.Registration, 0, len(cfgs))
	for _, c := range cfgs {
		kind, err := kindOf(c)
		if err != nil {
			return nil, fmt.Errorf("engine %s: %w", c.Name, err)
		}
		e, err := newEngine(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("engine %s: %w", c.Name, err)
		}
		regs = append(regs, engine.Registration{
			Name:    c.Name,
			Kind:    kind,
			Engine:  e,
			Timeout: c.Timeout,
		})
	}
	return regs, nil
}

func kindOf(c config.EngineConfig) (models.Kind, error) {
	if c.Kind != "" {
		return models.ParseKind(c.Kind)
	}
	kind, ok := config.EngineKinds[c.Type]
	if !ok {
		return "", fmt.Errorf("unknown type %q", c.Type)
	}
	return kind, nil
}

func newEngine(ctx context.Context, c config.EngineConfig) (engine.Engine, error) {
	switch c.Type {
	case "azure":
		return ocr.NewAzure(c.Endpoint, c.APIKey), nil
	case "textract":
		return ocr.NewTextract(ctx, c.Region, c.AccessKey, c.SecretKey, c.DPI)
	case "tesseract":
		return tesseract.New(c.Languages, c.PSM, c.DPI)
	case "gcv":
		return ocr.NewGCV(c.Languages, c.DPI), nil
	case "abbyy":
		return ocr.NewABBYY(c.Endpoint, c.ApplicationID, c.Password, c.Profile), nil
	case "openai_vision":
		return ocr.NewOpenAIVision(c.Endpoint, c.APIKey, c.Model, c.DPI), nil
	case "command":
		return ocr.NewCommand(c.Command, c.Args), nil
	case "openai":
		return llm.NewOpenAI(c.Endpoint, c.APIKey, c.Model, c.System, c.MaxTokens, c.Temperature), nil
	case "ollama":
		return llm.NewOllama(c.Endpoint, c.Model, c.System, c.MaxTokens, c.Temperature), nil
	case "anthropic":
		return llm.NewAnthropic(c.Endpoint, c.APIKey, c.Model, c.System, c.MaxTokens, c.Temperature), nil
	}
	return nil, fmt.Errorf("unknown type %q", c.Type)
}
