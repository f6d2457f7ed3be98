package ports

import "context"

// JustificationClient generates a natural-language justification for a
// scoring decision. Implementations must be optional: callers fall back to
// templated text when generation fails or no client is configured.
type JustificationClient interface {
	Justify(ctx context.Context, prompt string) (string, error)
}
