package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// EntryStore persists indexed entries.
// Backed by SQLite for durable storage.
type EntryStore interface {
	// SaveEntry stores or updates an entry.
	SaveEntry(ctx context.Context, entry *domain.Entry) error

	// GetEntry retrieves an entry by ID.
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)

	// ListEntries returns all entries, most recently modified first.
	ListEntries(ctx context.Context) ([]domain.Entry, error)

	// DeleteEntry removes an entry and the chunks stored under it.
	DeleteEntry(ctx context.Context, id string) error

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)
}
