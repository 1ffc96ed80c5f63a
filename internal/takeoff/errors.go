package takeoff

import (
	"context"
	"errors"
)

var (
	ErrNoImages          = errors.New("at least one blueprint image is required")
	ErrUpstreamExhausted = errors.New("reasoning service unavailable")
)

// Error codes carried on failed results so callers can branch without
// string-matching messages.
const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeLLMTimeout = "LLM_TIMEOUT"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)

func errorCodeFor(err error) string {
	switch {
	case errors.Is(err, ErrNoImages):
		return ErrorCodeValidation
	case errors.Is(err, ErrUpstreamExhausted), errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeLLMTimeout
	default:
		return ErrorCodeInternal
	}
}
