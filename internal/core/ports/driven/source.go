package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// EntrySource supplies journal entries from their storage layer.
// The filesystem connector is the only implementation today.
type EntrySource interface {
	// Validate checks the source is readable before indexing starts.
	Validate(ctx context.Context) error

	// FullScan streams every entry in the source.
	// Both channels close when the scan finishes; a terminal failure
	// is delivered on the error channel first.
	FullScan(ctx context.Context) (<-chan domain.RawEntry, <-chan error)

	// Watch listens for create/update/delete events until ctx is
	// cancelled. Events carry the changed entry's new content, except
	// deletions which carry only the ID.
	Watch(ctx context.Context) (<-chan domain.RawEntryChange, error)

	// Close releases resources. Further calls fail with
	// domain.ErrSourceClosed.
	Close() error
}
