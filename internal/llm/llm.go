package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers.
type Client interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}

// GenerateInput captures the inputs for a single completion call.
type GenerateInput struct {
	System     string
	Prompt     string
	JSONOutput bool
}

var (
	// ErrNotConfigured indicates the provider credentials or model are absent.
	// Callers map it to a distinguishable "service unavailable" response.
	ErrNotConfigured = errors.New("llm provider not configured")

	// ErrEmptyOutput indicates the provider returned no usable text.
	ErrEmptyOutput = errors.New("empty model output")
)

// NotConfiguredClient is wired when no provider credentials are present.
type NotConfiguredClient struct{}

// Generate always fails with ErrNotConfigured.
func (NotConfiguredClient) Generate(ctx context.Context, input GenerateInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}
