package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// IndexerService drives the ingest pipeline: raw entries in, chunks
// and vocabulary statistics out.
type IndexerService interface {
	// IndexAll scans the entry source and (re)indexes every entry.
	// Individual entry failures are counted, not fatal.
	IndexAll(ctx context.Context) (*domain.IndexReport, error)

	// IndexEntry chunks, observes and embeds a single raw entry,
	// replacing any chunks it had before.
	IndexEntry(ctx context.Context, raw domain.RawEntry) error

	// RemoveEntry invalidates and deletes an entry and its chunks.
	RemoveEntry(ctx context.Context, entryID string) error

	// Watch consumes source change events until ctx is cancelled,
	// re-indexing or invalidating affected entries as they change.
	Watch(ctx context.Context) error

	// RebuildVocabulary resets all vocabulary state and re-indexes
	// every stored entry from its persisted text. Used to recover
	// from vocabulary corruption.
	RebuildVocabulary(ctx context.Context) error

	// Status reports corpus statistics.
	Status(ctx context.Context) (*domain.IndexStatus, error)
}
