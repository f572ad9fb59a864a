package llm

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

const (
	defaultAnthropicModel = "claude-sonnet-4-5"
	defaultMaxTokens      = 2048
)

// AnthropicEngine sends each prompt to the Messages API.
type AnthropicEngine struct {
	client      anthropic.Client
	model       string
	system      string
	maxTokens   int64
	temperature float64
}

// NewAnthropic builds a client. An empty apiKey falls back to the
// ANTHROPIC_API_KEY environment variable read by the SDK.
func NewAnthropic(endpoint, apiKey, model, system string, maxTokens int, temperature float64) *AnthropicEngine {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if endpoint != "" {
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	if model == "" {
		model = defaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &AnthropicEngine{
		client:      anthropic.NewClient(opts...),
		model:       model,
		system:      system,
		maxTokens:   int64(maxTokens),
		temperature: temperature,
	}
}

func (e *AnthropicEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	prompt, err := loadPrompt(item)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if e.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: e.system}}
	}
	if e.temperature != 0 {
		params.Temperature = anthropic.Float(e.temperature)
	}

	msg, err := e.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api call: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	response := strings.Join(parts, "")
	return engine.LLMResult{
		Response:  &response,
		TokensIn:  intPtr(msg.Usage.InputTokens),
		TokensOut: intPtr(msg.Usage.OutputTokens),
	}, nil
}
