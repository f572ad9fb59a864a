package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

// AzureEngine runs the Azure Computer Vision Read v3.2 API.
type AzureEngine struct {
	url          string
	key          string
	client       *http.Client
	pollInterval time.Duration
}

func NewAzure(endpoint, key string) *AzureEngine {
	return &AzureEngine{
		url:          strings.TrimRight(endpoint, "/") + "/vision/v3.2/read/analyze",
		key:          key,
		client:       &http.Client{Timeout: 60 * time.Second},
		pollInterval: 500 * time.Millisecond,
	}
}

type azureReadResult struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		ReadResults []struct {
			Lines []struct {
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"readResults"`
	} `json:"analyzeResult"`
}

func (e *AzureEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	data, err := os.ReadFile(item)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", item, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", e.key)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("azure ocr post: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("azure ocr post failed: %d %s", resp.StatusCode, string(body))
	}

	// Header lookup is case-insensitive.
	opLocation := resp.Header.Get("Operation-Location")
	if opLocation == "" {
		return nil, fmt.Errorf("azure ocr missing Operation-Location header: %v", resp.Header)
	}

	slog.Debug("Azure read operation accepted", "item", item, "operation", opLocation)
	return e.poll(ctx, opLocation)
}

func (e *AzureEngine) poll(ctx context.Context, opLocation string) (engine.Output, error) {
	for {
		result, err := e.fetch(ctx, opLocation)
		if err != nil {
			return nil, err
		}

		switch result.Status {
		case "succeeded":
			var lines []string
			for _, page := range result.AnalyzeResult.ReadResults {
				for _, line := range page.Lines {
					lines = append(lines, line.Text)
				}
			}
			return engine.OCRResult{
				Text:  strings.Join(lines, "\n"),
				Pages: len(result.AnalyzeResult.ReadResults),
			}, nil
		case "failed":
			return nil, fmt.Errorf("azure ocr failed: %+v", result)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}

func (e *AzureEngine) fetch(ctx context.Context, opLocation string) (azureReadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opLocation, nil)
	if err != nil {
		return azureReadResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", e.key)

	resp, err := e.client.Do(req)
	if err != nil {
		return azureReadResult{}, fmt.Errorf("azure ocr poll: %w", err)
	}
	defer resp.Body.Close()

	var result azureReadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return azureReadResult{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}
