package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// AssistantService answers questions over the journal: compose context,
// call the generation endpoint, parse the typed reply.
type AssistantService interface {
	// Ask runs one end-to-end request. Generation failures surface as
	// a structured fallback inside the result, not as an error.
	Ask(ctx context.Context, sessionID, query string) (*domain.AskResult, error)

	// CheckGeneration verifies the generation endpoint is reachable.
	// Returns domain.ErrGenerationUnavailable when it is not.
	CheckGeneration(ctx context.Context) error

	// History returns up to limit recent messages of a session.
	History(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// ClearHistory removes a session's conversation history.
	ClearHistory(ctx context.Context, sessionID string) error
}
