package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// Normaliser transforms raw entry text into indexed form.
// Each normaliser handles specific file extensions (e.g., Markdown).
type Normaliser interface {
	// SupportedExtensions returns the lowercase extensions this
	// normaliser handles, including the leading dot.
	SupportedExtensions() []string

	// Normalise cleans a raw entry's text and derives its title.
	// Chunking is handled separately by the post-processor pipeline.
	Normalise(ctx context.Context, raw *domain.RawEntry) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Title is the derived human-readable title.
	Title string

	// Text is the cleaned plain text ready for chunking.
	Text string
}

// NormaliserRegistry manages normalisers and routes entries to the
// appropriate one.
type NormaliserRegistry interface {
	// Normalise routes the raw entry to a normaliser based on its
	// file extension. Unrecognised extensions fall back to plain
	// text handling.
	Normalise(ctx context.Context, raw *domain.RawEntry) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions that have
	// registered normalisers.
	SupportedExtensions() []string
}
