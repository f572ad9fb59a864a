package config

import (
	"errors"
	"fmt"

	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

// EngineKinds maps every supported engine type to the kind of items it is
// fed unless an entry overrides it.
var EngineKinds = map[string]models.Kind{
	"azure":         models.KindOCR,
	"textract":      models.KindOCR,
	"tesseract":     models.KindOCR,
	"gcv":           models.KindOCR,
	"abbyy":         models.KindOCR,
	"openai_vision": models.KindOCR,
	"command":       models.KindOCR,
	"openai":        models.KindLLM,
	"ollama":        models.KindLLM,
	"anthropic":     models.KindLLM,
}

// required lists fields that must be non-empty per engine type.
var required = map[string][]string{
	"azure":         {"endpoint", "api_key"},
	"textract":      {"region"},
	"abbyy":         {"endpoint", "application_id", "password"},
	"command":       {"command"},
	"openai_vision": {"api_key"},
	"openai":        {"api_key"},
	"ollama":        {"model"},
}

func (c *Config) Validate() error {
	var errs []error

	if len(c.Engines) == 0 {
		errs = append(errs, errors.New("no engines configured"))
	}

	seen := make(map[string]bool, len(c.Engines))
	for i := range c.Engines {
		e := &c.Engines[i]
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("engines[%d]: name is required", i))
			continue
		}
		if seen[e.Name] {
			errs = append(errs, fmt.Errorf("engine %s: duplicate name", e.Name))
		}
		seen[e.Name] = true

		defaultKind, ok := EngineKinds[e.Type]
		if !ok {
			errs = append(errs, fmt.Errorf("engine %s: unknown type %q", e.Name, e.Type))
			continue
		}
		if e.Kind == "" {
			e.Kind = string(defaultKind)
		} else if _, err := models.ParseKind(e.Kind); err != nil {
			errs = append(errs, fmt.Errorf("engine %s: %w", e.Name, err))
		}
		if e.Timeout < 0 {
			errs = append(errs, fmt.Errorf("engine %s: timeout must not be negative", e.Name))
		}
		for _, field := range required[e.Type] {
			if e.field(field) == "" {
				errs = append(errs, fmt.Errorf("engine %s: %s is required for type %s", e.Name, field, e.Type))
			}
		}
	}

	return errors.Join(errs...)
}

func (e *EngineConfig) field(name string) string {
	switch name {
	case "endpoint":
		return e.Endpoint
	case "api_key":
		return e.APIKey
	case "model":
		return e.Model
	case "region":
		return e.Region
	case "application_id":
		return e.ApplicationID
	case "password":
		return e.Password
	case "command":
		return e.Command
	}
	return ""
}
