package driven

import "context"

// Embedder is the vocabulary and embedding generator: it maintains
// corpus-wide term statistics and converts text into fixed-length
// vectors using only those statistics. No trained model is involved.
//
// Concurrency contract: Observe calls are serialised by the
// implementation (single writer); Embed reads a consistent vocabulary
// snapshot and never sees a table mid-mutation.
type Embedder interface {
	// Observe folds a text's terms into the vocabulary, at most once
	// per entryID. Re-observing an already-processed entry changes
	// nothing. Texts below the minimum length threshold are skipped.
	Observe(ctx context.Context, entryID, text string) error

	// Embed converts text into an L2-normalised vector. A pure
	// function of (text, current vocabulary state): identical inputs
	// produce bit-identical vectors. Empty or whitespace-only text
	// yields a zero vector, never an error.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the fixed vector length.
	Dimensions() int

	// Reset wipes all vocabulary state, in memory and persisted.
	// Used for corruption recovery; callers re-observe afterwards.
	Reset(ctx context.Context) error
}
