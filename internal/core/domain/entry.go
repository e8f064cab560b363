package domain

import "time"

// Entry represents an indexed journal entry.
// It is the canonical representation after normalisation.
type Entry struct {
	// ID is the unique identifier for the entry, stable across re-indexing.
	ID string

	// Title is the human-readable title, usually derived from the filename.
	Title string

	// Path is the original location on disk.
	Path string

	// Text is the full text content after normalisation.
	// This is the complete entry text before chunking.
	Text string

	// WordCount is the number of words in Text at index time.
	WordCount int

	// LastModified is the source file's modification time.
	// Used as the recency tiebreak when ranking retrieval results.
	LastModified time.Time

	// IndexedAt is when the entry was last (re)indexed.
	IndexedAt time.Time
}

// Chunk represents a retrievable unit within an entry.
// Entries are split into paragraph-aligned chunks so retrieval can
// return fragments finer-grained than whole entries.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// EntryID links to the parent Entry. All chunks of an entry are
	// replaced together when the entry's content changes.
	EntryID string

	// Ordinal is the position within the entry, starting at zero.
	Ordinal int

	// Text is the content of this chunk.
	Text string

	// Embedding is the L2-normalised vector representation.
	Embedding []float32
}

// ScoredChunk pairs a chunk with its similarity to a query.
type ScoredChunk struct {
	Chunk Chunk

	// Score is the cosine similarity in [0, 1] for non-degenerate vectors.
	Score float64

	// EntryModified is the parent entry's modification time,
	// carried along for recency tiebreaks.
	EntryModified time.Time
}

// IndexReport summarises one indexing run.
type IndexReport struct {
	// Indexed is the number of entries chunked, observed and embedded.
	Indexed int

	// Skipped is the number of entries left untouched because their
	// stored copy is already current.
	Skipped int

	// Removed is the number of entries invalidated and deleted.
	Removed int

	// Failed is the number of entries that errored; the run continues
	// past individual failures.
	Failed int
}

// IndexStatus summarises the state of the corpus.
type IndexStatus struct {
	// Entries is the number of indexed entries.
	Entries int

	// Chunks is the number of stored chunks.
	Chunks int

	// Terms is the vocabulary size (distinct observed terms).
	Terms int

	// ObservedEntries is the size of the processed-entry set.
	ObservedEntries int

	// LastIndexedAt is the most recent IndexedAt across entries.
	LastIndexedAt time.Time
}
