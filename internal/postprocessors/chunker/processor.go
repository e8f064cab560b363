// Package chunker provides a paragraph-aligned text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// DefaultMaxWords is the default word-count ceiling per chunk.
const DefaultMaxWords = 500

// Processor splits entry text into bounded-size, paragraph-aligned
// chunks. Consecutive paragraphs accumulate into one chunk until the
// word ceiling would be exceeded, then a new chunk starts. A single
// paragraph over the ceiling is kept whole rather than split
// mid-paragraph.
// It implements the PostProcessor interface.
type Processor struct {
	maxWords int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxWords sets the word-count ceiling per chunk.
func WithMaxWords(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxWords = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxWords: DefaultMaxWords,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the entry text into chunks, replacing any chunks an
// earlier processor produced. There are no failure modes: empty or
// whitespace-only text yields an empty sequence, and any non-blank
// text yields at least one chunk.
func (p *Processor) Process(_ context.Context, entry *domain.Entry, _ []domain.Chunk) ([]domain.Chunk, error) {
	spans := p.Split(entry.Text)

	chunks := make([]domain.Chunk, 0, len(spans))
	for i, span := range spans {
		chunks = append(chunks, domain.Chunk{
			ID:      uuid.New().String(),
			EntryID: entry.ID,
			Ordinal: i,
			Text:    span,
		})
	}
	return chunks, nil
}

// Split returns the chunk text spans for the given text, in order.
// Concatenating the spans reproduces the paragraph sequence: no
// paragraph is ever divided across two spans.
func (p *Processor) Split(text string) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var spans []string
	var current []string
	currentWords := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		spans = append(spans, strings.Join(current, "\n\n"))
		current = nil
		currentWords = 0
	}

	for _, para := range paragraphs {
		words := countWords(para)
		if currentWords > 0 && currentWords+words > p.maxWords {
			flush()
		}
		current = append(current, para)
		currentWords += words
	}
	flush()

	return spans
}

// splitParagraphs splits on blank-line boundaries and drops empty
// paragraphs.
func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// countWords counts whitespace-separated words.
func countWords(s string) int {
	return len(strings.Fields(s))
}
