package llm

import (
	"fmt"
	"os"
)

// loadPrompt resolves an llm item. An item naming a regular file is replaced
// by the file contents; any other item is the prompt itself.
func loadPrompt(item string) (string, error) {
	// Stat errors, including names too long for the filesystem, mean the
	// item is a literal prompt.
	info, err := os.Stat(item)
	if err != nil || !info.Mode().IsRegular() {
		return item, nil
	}
	data, err := os.ReadFile(item)
	if err != nil {
		return "", fmt.Errorf("read prompt %s: %w", item, err)
	}
	return string(data), nil
}

func intPtr[T ~int | ~int64](v T) *int {
	n := int(v)
	return &n
}
