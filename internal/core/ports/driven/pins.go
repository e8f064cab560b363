package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// PinStore persists always-include pins.
type PinStore interface {
	// ListPins returns all pins, entry pins before folder pins, each
	// group ordered by creation time.
	ListPins(ctx context.Context) ([]domain.Pin, error)

	// AddPin stores a pin. Adding an existing target is a no-op.
	AddPin(ctx context.Context, pin domain.Pin) error

	// RemovePin deletes a pin by kind and target.
	RemovePin(ctx context.Context, kind domain.PinKind, target string) error
}

// SelectionStore persists per-session explicit selections.
type SelectionStore interface {
	// Selections returns a session's selections in user order.
	Selections(ctx context.Context, sessionID string) ([]domain.Selection, error)

	// AddSelection appends an entry to a session's selections.
	AddSelection(ctx context.Context, sessionID, entryID string) error

	// ClearSelections removes all selections of a session.
	ClearSelections(ctx context.Context, sessionID string) error
}
