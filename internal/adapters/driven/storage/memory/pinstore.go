package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure PinStore implements the interface.
var _ driven.PinStore = (*PinStore)(nil)

// PinStore is an in-memory implementation of driven.PinStore.
type PinStore struct {
	mu   sync.RWMutex
	pins []domain.Pin
}

// NewPinStore creates a new in-memory pin store.
func NewPinStore() *PinStore {
	return &PinStore{}
}

// ListPins returns all pins, entry pins before folder pins, each group
// ordered by creation time.
func (s *PinStore) ListPins(_ context.Context) ([]domain.Pin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Pin, len(s.pins))
	copy(result, s.pins)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Kind != result[j].Kind {
			return result[i].Kind == domain.PinKindEntry
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// AddPin stores a pin. Adding an existing kind and target is a no-op.
func (s *PinStore) AddPin(_ context.Context, pin domain.Pin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.pins {
		if existing.Kind == pin.Kind && existing.Target == pin.Target {
			return nil
		}
	}
	if pin.CreatedAt.IsZero() {
		pin.CreatedAt = time.Now().UTC()
	}
	s.pins = append(s.pins, pin)
	return nil
}

// RemovePin deletes a pin by kind and target.
func (s *PinStore) RemovePin(_ context.Context, kind domain.PinKind, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.pins {
		if existing.Kind == kind && existing.Target == target {
			s.pins = append(s.pins[:i], s.pins[i+1:]...)
			return nil
		}
	}
	return nil
}
