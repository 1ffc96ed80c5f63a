package llm

import (
	"context"
	"errors"
)

// Client abstracts vision-capable reasoning providers for blueprint analysis.
// The returned string is raw model output; it usually contains JSON but is
// not guaranteed to. Callers own all parsing and repair.
type Client interface {
	AnalyzeBlueprint(ctx context.Context, input AnalyzeInput) (string, error)
}

// ImagePart is one preprocessed blueprint image sent to the provider.
type ImagePart struct {
	Name        string
	ContentType string
	Data        []byte
}

// AnalyzeInput captures the inputs for one blueprint analysis call.
type AnalyzeInput struct {
	Images      []ImagePart
	Trade       string
	Level       string
	ProjectType string
	// SheetText is embedded text extracted from PDF sheets (panel schedules,
	// legends). Empty when the upload had no PDFs or extraction failed.
	SheetText string
	// Schema is the rendered output schema the model must match.
	Schema string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// AnalyzeBlueprint returns ErrNotImplemented.
func (PlaceholderClient) AnalyzeBlueprint(ctx context.Context, input AnalyzeInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}
