package memory

import (
	"context"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure VocabularyStore implements the interface.
var _ driven.VocabularyStore = (*VocabularyStore)(nil)

// VocabularyStore is an in-memory implementation of driven.VocabularyStore.
type VocabularyStore struct {
	mu        sync.RWMutex
	terms     map[string]int
	processed map[string]bool
}

// NewVocabularyStore creates a new in-memory vocabulary store.
func NewVocabularyStore() *VocabularyStore {
	return &VocabularyStore{
		terms:     make(map[string]int),
		processed: make(map[string]bool),
	}
}

// TermFrequencies returns a copy of the term -> document frequency table.
func (s *VocabularyStore) TermFrequencies(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]int, len(s.terms))
	for term, df := range s.terms {
		result[term] = df
	}
	return result, nil
}

// ProcessedEntries returns a copy of the observed entry ID set.
func (s *VocabularyStore) ProcessedEntries(_ context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]bool, len(s.processed))
	for id := range s.processed {
		result[id] = true
	}
	return result, nil
}

// RecordObservation increments document frequencies and marks the entry
// observed. Re-observing an entry is a no-op.
func (s *VocabularyStore) RecordObservation(_ context.Context, entryID string, terms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processed[entryID] {
		return nil
	}
	for _, term := range terms {
		s.terms[term]++
	}
	s.processed[entryID] = true
	return nil
}

// Reset removes all term statistics and the processed-entry set.
func (s *VocabularyStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = make(map[string]int)
	s.processed = make(map[string]bool)
	return nil
}

// TermCount returns the number of distinct terms.
func (s *VocabularyStore) TermCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.terms), nil
}

// ProcessedCount returns the size of the processed-entry set.
func (s *VocabularyStore) ProcessedCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processed), nil
}
