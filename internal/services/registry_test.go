package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/ocr-bench/internal/config"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/services/llm"
	"github.com/lehigh-university-libraries/ocr-bench/internal/services/ocr"
)

func TestBuild(t *testing.T) {
	cfgs := []config.EngineConfig{
		{Name: "AzureOCR", Type: "azure", Endpoint: "https://example.cognitiveservices.azure.com", APIKey: "k"},
		{Name: "Script", Type: "command", Command: "./ocr.sh", Kind: "llm", Timeout: time.Minute},
		{Name: "o4", Type: "openai", APIKey: "k", Model: "o4-mini"},
		{Name: "Local", Type: "ollama", Model: "llama3.2"},
		{Name: "Claude", Type: "anthropic", APIKey: "k"},
	}

	regs, err := Build(t.Context(), cfgs)
	require.NoError(t, err)
	require.Len(t, regs, len(cfgs))

	names := make([]string, len(regs))
	for i, r := range regs {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"AzureOCR", "Script", "o4", "Local", "Claude"}, names)

	assert.Equal(t, models.KindOCR, regs[0].Kind)
	assert.IsType(t, &ocr.AzureEngine{}, regs[0].Engine)

	assert.Equal(t, models.KindLLM, regs[1].Kind)
	assert.Equal(t, time.Minute, regs[1].Timeout)
	assert.IsType(t, &ocr.CommandEngine{}, regs[1].Engine)

	assert.IsType(t, &llm.OpenAIEngine{}, regs[2].Engine)
	assert.IsType(t, &llm.OllamaEngine{}, regs[3].Engine)
	assert.IsType(t, &llm.AnthropicEngine{}, regs[4].Engine)
	for _, r := range regs[2:] {
		assert.Equal(t, models.KindLLM, r.Kind)
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(t.Context(), []config.EngineConfig{{Name: "x", Type: "paddle"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `engine x: unknown type "paddle"`)

	_, err = Build(t.Context(), []config.EngineConfig{{Name: "y", Type: "azure", Kind: "audio"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine y")
}
