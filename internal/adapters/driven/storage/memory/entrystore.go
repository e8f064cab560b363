package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure EntryStore implements both persistence interfaces.
var (
	_ driven.EntryStore = (*EntryStore)(nil)
	_ driven.ChunkStore = (*EntryStore)(nil)
)

// EntryStore is an in-memory implementation of driven.EntryStore and
// driven.ChunkStore. Entries and their chunks share one lock so the
// two views never disagree.
type EntryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.Entry
	chunks  map[string][]domain.Chunk
}

// NewEntryStore creates a new in-memory entry store.
func NewEntryStore() *EntryStore {
	return &EntryStore{
		entries: make(map[string]domain.Entry),
		chunks:  make(map[string][]domain.Chunk),
	}
}

// SaveEntry stores or updates an entry.
func (s *EntryStore) SaveEntry(_ context.Context, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.IndexedAt.IsZero() {
		entry.IndexedAt = time.Now().UTC()
	}
	s.entries[entry.ID] = *entry
	return nil
}

// GetEntry retrieves an entry by ID.
func (s *EntryStore) GetEntry(_ context.Context, id string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// ListEntries returns all entries, most recently modified first.
func (s *EntryStore) ListEntries(_ context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Entry, 0, len(s.entries))
	for id := range s.entries {
		result = append(result, s.entries[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastModified.After(result[j].LastModified)
	})
	return result, nil
}

// DeleteEntry removes an entry and the chunks stored under it.
func (s *EntryStore) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	delete(s.chunks, id)
	return nil
}

// CountEntries returns the number of stored entries.
func (s *EntryStore) CountEntries(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// ReplaceChunks atomically swaps all chunks of an entry for the given set.
func (s *EntryStore) ReplaceChunks(_ context.Context, entryID string, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(chunks) == 0 {
		delete(s.chunks, entryID)
		return nil
	}
	cp := make([]domain.Chunk, len(chunks))
	copy(cp, chunks)
	s.chunks[entryID] = cp
	return nil
}

// GetChunks retrieves an entry's chunks ordered by ordinal.
func (s *EntryStore) GetChunks(_ context.Context, entryID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.chunks[entryID]
	if !ok {
		return nil, nil
	}
	result := make([]domain.Chunk, len(stored))
	copy(result, stored)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Ordinal < result[j].Ordinal
	})
	return result, nil
}

// ScanChunks streams every stored chunk to fn. The scan runs over a
// snapshot, so fn may call back into the store without deadlocking.
func (s *EntryStore) ScanChunks(_ context.Context, fn func(chunk domain.Chunk) error) error {
	s.mu.RLock()
	snapshot := make([]domain.Chunk, 0, len(s.chunks))
	for _, chunks := range s.chunks {
		snapshot = append(snapshot, chunks...)
	}
	s.mu.RUnlock()

	for _, chunk := range snapshot {
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// DeleteChunks removes all chunks of an entry.
func (s *EntryStore) DeleteChunks(_ context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, entryID)
	return nil
}

// CountChunks returns the number of stored chunks.
func (s *EntryStore) CountChunks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, chunks := range s.chunks {
		count += len(chunks)
	}
	return count, nil
}
