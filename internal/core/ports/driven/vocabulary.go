package driven

import "context"

// VocabularyStore persists corpus-wide term statistics: the document
// frequency of each term and the set of entry IDs already observed.
//
// It is a plain persistence port. The at-most-once counting rule and
// all weighting live in the Embedder, which owns a store instance and
// writes through it; nothing else mutates vocabulary state.
type VocabularyStore interface {
	// TermFrequencies returns the full term -> document frequency table.
	TermFrequencies(ctx context.Context) (map[string]int, error)

	// ProcessedEntries returns the set of observed entry IDs.
	ProcessedEntries(ctx context.Context) (map[string]bool, error)

	// RecordObservation persists one observation atomically: each term's
	// document frequency is incremented by one and entryID is added to
	// the processed set. Terms are distinct within one call. Observing
	// an entry already in the processed set is a no-op.
	RecordObservation(ctx context.Context, entryID string, terms []string) error

	// Reset removes all term statistics and the processed-entry set.
	Reset(ctx context.Context) error

	// TermCount returns the number of distinct terms.
	TermCount(ctx context.Context) (int, error)

	// ProcessedCount returns the size of the processed-entry set.
	ProcessedCount(ctx context.Context) (int, error)
}
