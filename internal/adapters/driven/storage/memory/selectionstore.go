package memory

import (
	"context"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure SelectionStore implements the interface.
var _ driven.SelectionStore = (*SelectionStore)(nil)

// SelectionStore is an in-memory implementation of driven.SelectionStore.
type SelectionStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Selection
}

// NewSelectionStore creates a new in-memory selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		sessions: make(map[string][]domain.Selection),
	}
}

// Selections returns a session's selections in user order.
func (s *SelectionStore) Selections(_ context.Context, sessionID string) ([]domain.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.sessions[sessionID]
	result := make([]domain.Selection, len(stored))
	copy(result, stored)
	return result, nil
}

// AddSelection appends an entry to the end of a session's selections.
// Re-selecting an entry keeps its original position.
func (s *SelectionStore) AddSelection(_ context.Context, sessionID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sel := range s.sessions[sessionID] {
		if sel.EntryID == entryID {
			return nil
		}
	}
	s.sessions[sessionID] = append(s.sessions[sessionID], domain.Selection{
		SessionID: sessionID,
		EntryID:   entryID,
		Position:  len(s.sessions[sessionID]) + 1,
	})
	return nil
}

// ClearSelections removes all selections of a session.
func (s *SelectionStore) ClearSelections(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
