package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// ComposerService assembles the bounded generation context from the
// four content tiers under one token budget.
type ComposerService interface {
	// Compose runs the budget allocation pass for one request.
	// When retrieval is unavailable it returns a degraded context
	// built from the remaining tiers rather than failing.
	Compose(ctx context.Context, req domain.ContextRequest) (*domain.ComposedContext, error)
}
