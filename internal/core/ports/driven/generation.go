package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// Generator is the downstream text-generation endpoint.
// It is opaque to the core: context and query in, raw text out.
// Failures are handled at the call site, never inside the allocator.
type Generator interface {
	// Generate produces raw model output for the request. The context
	// carries the request's single deadline; implementations must
	// return promptly once it is cancelled or expired.
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)

	// ModelName returns the configured model identifier.
	ModelName() string

	// Ping validates the endpoint is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
