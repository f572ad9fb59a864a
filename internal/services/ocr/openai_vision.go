package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
)

const (
	defaultOpenAIURL    = "https://api.openai.com/v1"
	defaultVisionModel  = "gpt-4o"
	visionTranscribeMsg = "Transcribe all of the text in this image exactly as written. " +
		"Preserve line breaks. Respond with the transcription only."
)

type OpenAIRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Messages    []Message `json:"messages"`
}

type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAIVisionEngine transcribes page images with a vision-capable chat model.
type OpenAIVisionEngine struct {
	baseURL string
	apiKey  string
	model   string
	dpi     int
	client  *http.Client
}

func NewOpenAIVision(endpoint, apiKey, model string, dpi int) *OpenAIVisionEngine {
	if endpoint == "" {
		endpoint = defaultOpenAIURL
	}
	if model == "" {
		model = defaultVisionModel
	}
	return &OpenAIVisionEngine{
		baseURL: strings.TrimRight(endpoint, "/"),
		apiKey:  apiKey,
		model:   model,
		dpi:     dpi,
		client:  &http.Client{Timeout: 600 * time.Second},
	}
}

func (e *OpenAIVisionEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	pages, cleanup, err := utils.PageImages(ctx, item, e.dpi)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		text, err := e.transcribe(ctx, page)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return engine.OCRResult{
		Text:  strings.Join(texts, "\n"),
		Pages: len(pages),
	}, nil
}

func (e *OpenAIVisionEngine) transcribe(ctx context.Context, page string) (string, error) {
	data, err := os.ReadFile(page)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", page, err)
	}

	request := OpenAIRequest{
		Model:       e.model,
		Temperature: 0.0,
		Messages: []Message{
			{
				Role: "user",
				Content: []Content{
					{Type: "text", Text: visionTranscribeMsg},
					{Type: "image_url", ImageURL: &ImageURL{URL: dataURL(page, data)}},
				},
			},
		},
	}

	response, err := e.callOpenAI(ctx, request)
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

func (e *OpenAIVisionEngine) callOpenAI(ctx context.Context, request OpenAIRequest) (string, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, string(body))
	}

	var openAIResponse OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResponse); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(openAIResponse.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	slog.Debug("OpenAI response received", "length", len(openAIResponse.Choices[0].Message.Content))
	return openAIResponse.Choices[0].Message.Content, nil
}

func dataURL(path string, data []byte) string {
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".webp":
		mime = "image/webp"
	case ".tif", ".tiff":
		mime = "image/tiff"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
