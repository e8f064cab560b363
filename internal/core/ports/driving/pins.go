package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// PinService manages always-include pins.
type PinService interface {
	// Pin marks an entry or folder as always-include.
	Pin(ctx context.Context, kind domain.PinKind, target string) error

	// Unpin removes a pin.
	Unpin(ctx context.Context, kind domain.PinKind, target string) error

	// List returns all pins, entry pins first.
	List(ctx context.Context) ([]domain.Pin, error)
}

// SelectionService manages per-session explicit selections.
type SelectionService interface {
	// Select appends an entry to a session's selection list.
	Select(ctx context.Context, sessionID, entryID string) error

	// Clear removes a session's selections.
	Clear(ctx context.Context, sessionID string) error

	// List returns a session's selections in user order.
	List(ctx context.Context, sessionID string) ([]domain.Selection, error)
}
