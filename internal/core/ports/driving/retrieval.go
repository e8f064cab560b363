package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// RetrieverService ranks stored chunks by similarity to a query.
type RetrieverService interface {
	// FindSimilar embeds the query and returns at most topK chunks
	// with similarity at or above the configured threshold, strictly
	// decreasing by score, ties broken by parent-entry recency.
	// An empty result is a valid outcome, not an error.
	FindSimilar(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)
}
