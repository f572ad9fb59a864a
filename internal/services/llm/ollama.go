package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

const defaultOllamaURL = "http://localhost:11434"

type ollamaRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

// ollamaResponse is the body returned by /api/chat when streaming is off.
type ollamaResponse struct {
	Model           string      `json:"model"`
	Message         chatMessage `json:"message"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
	EvalDuration    int64       `json:"eval_duration"` // nanoseconds
}

// OllamaEngine talks to a local Ollama instance via its REST API.
type OllamaEngine struct {
	baseURL string
	model   string
	system  string
	options map[string]any
	client  *http.Client
}

func NewOllama(endpoint, model, system string, maxTokens int, temperature float64) *OllamaEngine {
	if endpoint == "" {
		endpoint = defaultOllamaURL
	}
	options := map[string]any{}
	if maxTokens > 0 {
		options["num_predict"] = maxTokens
	}
	if temperature != 0 {
		options["temperature"] = temperature
	}
	return &OllamaEngine{
		baseURL: strings.TrimRight(endpoint, "/"),
		model:   model,
		system:  system,
		options: options,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (e *OllamaEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	prompt, err := loadPrompt(item)
	if err != nil {
		return nil, err
	}

	msgs := []chatMessage{}
	if e.system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: e.system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

	req := ollamaRequest{Model: e.model, Messages: msgs, Stream: false}
	if len(e.options) > 0 {
		req.Options = e.options
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp ollamaResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	content := chatResp.Message.Content
	return engine.LLMResult{
		Response:  &content,
		TokensIn:  intPtr(chatResp.PromptEvalCount),
		TokensOut: intPtr(chatResp.EvalCount),
	}, nil
}
