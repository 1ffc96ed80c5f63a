package util

import (
	"errors"
	"strings"
)

// SanitizeFileName normalizes an uploaded blueprint sheet name before it is
// echoed into prompts and logs: path separators become underscores and
// traversal patterns are rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	cleaned := strings.TrimSpace(name)
	cleaned = strings.ReplaceAll(cleaned, "/", "_")
	cleaned = strings.ReplaceAll(cleaned, "\\", "_")
	if cleaned == "" {
		return "", errors.New("invalid file name")
	}
	return cleaned, nil
}
