package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

const defaultABBYYProfile = "documentArchiving"

// ABBYYEngine uploads files to the ABBYY Cloud OCR SDK recognize endpoint.
type ABBYYEngine struct {
	url           string
	applicationID string
	password      string
	profile       string
	client        *http.Client
}

func NewABBYY(endpoint, applicationID, password, profile string) *ABBYYEngine {
	if profile == "" {
		profile = defaultABBYYProfile
	}
	return &ABBYYEngine{
		url:           strings.TrimRight(endpoint, "/") + "/v2/recognize",
		applicationID: applicationID,
		password:      password,
		profile:       profile,
		client:        &http.Client{Timeout: 10 * time.Minute},
	}
}

type abbyyResponse struct {
	RecognitionResults []struct {
		Lines []struct {
			Text string `json:"text"`
		} `json:"lines"`
	} `json:"recognitionResults"`
}

func (e *ABBYYEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	body, contentType, err := e.multipartBody(item)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(e.applicationID, e.password)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ABBYY API returned status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed abbyyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var lines []string
	for _, page := range parsed.RecognitionResults {
		for _, line := range page.Lines {
			lines = append(lines, line.Text)
		}
	}
	return engine.OCRResult{
		Text:  strings.Join(lines, "\n"),
		Pages: len(parsed.RecognitionResults),
	}, nil
}

func (e *ABBYYEngine) multipartBody(item string) (io.Reader, string, error) {
	f, err := os.Open(item)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", item, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(item))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy %s: %w", item, err)
	}
	if err := w.WriteField("profile", e.profile); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
