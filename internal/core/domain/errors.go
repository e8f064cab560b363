package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the persistence layer cannot be
	// reached. Reads degrade to empty results; writes surface this.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrVocabularyCorrupt indicates a negative or non-finite weight
	// was detected in the vocabulary. The vocabulary must be reset and
	// rebuilt before scores can be trusted again.
	ErrVocabularyCorrupt = errors.New("vocabulary corrupt")

	// ErrGenerationUnavailable indicates the generation endpoint is
	// not reachable. Ask requests fall back to a structured no-answer
	// reply.
	ErrGenerationUnavailable = errors.New("generation endpoint unavailable")

	// ErrGenerationTimeout indicates the generation call exceeded its
	// deadline.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrRequestCancelled indicates the caller cancelled the request
	// before it completed.
	ErrRequestCancelled = errors.New("request cancelled")

	// ErrIndexInProgress indicates an indexing run is already active.
	ErrIndexInProgress = errors.New("indexing in progress")

	// ErrSourceClosed indicates the entry source has been closed.
	ErrSourceClosed = errors.New("entry source closed")
)
