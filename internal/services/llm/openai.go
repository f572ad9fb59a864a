package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

const (
	defaultOpenAIURL   = "https://api.openai.com/v1"
	defaultOpenAIModel = "gpt-4o-mini"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_completion_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// OpenAIEngine sends each prompt to an OpenAI-compatible chat completions
// endpoint.
type OpenAIEngine struct {
	baseURL     string
	apiKey      string
	model       string
	system      string
	maxTokens   int
	temperature *float64
	client      *http.Client
}

func NewOpenAI(endpoint, apiKey, model, system string, maxTokens int, temperature float64) *OpenAIEngine {
	if endpoint == "" {
		endpoint = defaultOpenAIURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	e := &OpenAIEngine{
		baseURL:   strings.TrimRight(endpoint, "/"),
		apiKey:    apiKey,
		model:     model,
		system:    system,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: 600 * time.Second},
	}
	// Reasoning models reject any temperature but the default.
	if temperature != 0 {
		e.temperature = &temperature
	}
	return e
}

func (e *OpenAIEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	prompt, err := loadPrompt(item)
	if err != nil {
		return nil, err
	}

	var msgs []chatMessage
	if e.system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: e.system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(openAIRequest{
		Model:       e.model,
		Messages:    msgs,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := parsed.Choices[0].Message.Content
	out := engine.LLMResult{Response: &content}
	if parsed.Usage != nil {
		out.TokensIn = intPtr(parsed.Usage.PromptTokens)
		out.TokensOut = intPtr(parsed.Usage.CompletionTokens)
	}
	slog.Debug("OpenAI response received", "model", e.model, "length", len(content))
	return out, nil
}
