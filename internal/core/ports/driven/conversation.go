package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// ConversationStore persists conversation history per session.
// The core reads history for the conversation tier and appends the
// turns it produces; it never rewrites existing messages.
type ConversationStore interface {
	// RecentMessages returns up to limit messages of a session,
	// oldest first among the most recent.
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// AppendMessage adds a message to a session.
	AppendMessage(ctx context.Context, msg domain.Message) error

	// ClearSession removes all messages of a session.
	ClearSession(ctx context.Context, sessionID string) error
}
