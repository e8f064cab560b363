package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// ChunkStore persists chunks and their embedding vectors.
//
// Chunk lifecycle is owned exclusively by the indexing pipeline:
// chunks are replaced wholesale when their entry's content changes and
// removed when the entry is deleted. Readers never mutate.
type ChunkStore interface {
	// ReplaceChunks atomically swaps all chunks of an entry for the
	// given set. Passing an empty slice invalidates the entry's chunks.
	ReplaceChunks(ctx context.Context, entryID string, chunks []domain.Chunk) error

	// GetChunks retrieves an entry's chunks ordered by ordinal.
	GetChunks(ctx context.Context, entryID string) ([]domain.Chunk, error)

	// ScanChunks streams every stored chunk to fn, in no particular
	// order, until exhaustion or fn returns an error. This is the
	// full-scan capability the retriever's linear scan is built on.
	ScanChunks(ctx context.Context, fn func(chunk domain.Chunk) error) error

	// DeleteChunks removes all chunks of an entry.
	DeleteChunks(ctx context.Context, entryID string) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)
}
