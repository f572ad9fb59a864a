package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
)

// CommandEngine runs an external program with the item path appended to its
// arguments. A JSON object on stdout becomes a RawOutput; anything else is
// taken as the transcription (or the response, for llm items).
type CommandEngine struct {
	command string
	args    []string
}

func NewCommand(command string, args []string) *CommandEngine {
	return &CommandEngine{command: command, args: args}
}

func (e *CommandEngine) Run(ctx context.Context, item string, kind models.Kind) (engine.Output, error) {
	args := append(append([]string(nil), e.args...), item)
	cmd := exec.CommandContext(ctx, e.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", e.command, err, strings.TrimSpace(stderr.String()))
	}

	out := stdout.Bytes()
	if trimmed := bytes.TrimSpace(out); len(trimmed) > 0 && trimmed[0] == '{' {
		raw := &engine.RawOutput{}
		if err := json.Unmarshal(trimmed, raw); err == nil {
			return raw, nil
		}
	}

	text := string(out)
	if kind == models.KindLLM {
		return engine.LLMResult{Response: &text}, nil
	}
	return engine.OCRResult{Text: text}, nil
}
