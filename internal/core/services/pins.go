package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
)

// Ensure the services implement the interfaces.
var (
	_ driving.PinService       = (*PinService)(nil)
	_ driving.SelectionService = (*SelectionService)(nil)
)

// PinService manages always-include pins.
type PinService struct {
	pinStore   driven.PinStore
	entryStore driven.EntryStore
}

// NewPinService creates a new pin service.
func NewPinService(pinStore driven.PinStore, entryStore driven.EntryStore) *PinService {
	return &PinService{
		pinStore:   pinStore,
		entryStore: entryStore,
	}
}

// Pin marks an entry or folder as always-include. Entry pins must
// reference a stored entry; folder pins are normalised to a
// slash-separated path relative to the journal root.
func (s *PinService) Pin(ctx context.Context, kind domain.PinKind, target string) error {
	if !kind.IsValid() {
		return fmt.Errorf("invalid pin kind: %s", kind)
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("empty pin target: %w", domain.ErrInvalidInput)
	}

	switch kind {
	case domain.PinKindEntry:
		if _, err := s.entryStore.GetEntry(ctx, target); err != nil {
			return fmt.Errorf("pin target %s: %w", target, err)
		}
	case domain.PinKindFolder:
		target = strings.Trim(filepath.ToSlash(target), "/")
		if target == "" {
			return fmt.Errorf("empty folder pin target: %w", domain.ErrInvalidInput)
		}
	}

	pin := domain.Pin{
		ID:        uuid.New().String(),
		Kind:      kind,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.pinStore.AddPin(ctx, pin); err != nil {
		return fmt.Errorf("add pin: %w", err)
	}
	return nil
}

// Unpin removes a pin.
func (s *PinService) Unpin(ctx context.Context, kind domain.PinKind, target string) error {
	if !kind.IsValid() {
		return fmt.Errorf("invalid pin kind: %s", kind)
	}
	if kind == domain.PinKindFolder {
		target = strings.Trim(filepath.ToSlash(strings.TrimSpace(target)), "/")
	}
	if err := s.pinStore.RemovePin(ctx, kind, target); err != nil {
		return fmt.Errorf("remove pin: %w", err)
	}
	return nil
}

// List returns all pins, entry pins first.
func (s *PinService) List(ctx context.Context) ([]domain.Pin, error) {
	pins, err := s.pinStore.ListPins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pins: %w", err)
	}
	return pins, nil
}

// SelectionService manages per-session explicit selections.
type SelectionService struct {
	selectionStore driven.SelectionStore
	entryStore     driven.EntryStore
}

// NewSelectionService creates a new selection service.
func NewSelectionService(selectionStore driven.SelectionStore, entryStore driven.EntryStore) *SelectionService {
	return &SelectionService{
		selectionStore: selectionStore,
		entryStore:     entryStore,
	}
}

// Select appends a stored entry to a session's selection list.
func (s *SelectionService) Select(ctx context.Context, sessionID, entryID string) error {
	if sessionID == "" {
		return fmt.Errorf("empty session ID: %w", domain.ErrInvalidInput)
	}
	if _, err := s.entryStore.GetEntry(ctx, entryID); err != nil {
		return fmt.Errorf("selection target %s: %w", entryID, err)
	}
	if err := s.selectionStore.AddSelection(ctx, sessionID, entryID); err != nil {
		return fmt.Errorf("add selection: %w", err)
	}
	return nil
}

// Clear removes a session's selections.
func (s *SelectionService) Clear(ctx context.Context, sessionID string) error {
	if err := s.selectionStore.ClearSelections(ctx, sessionID); err != nil {
		return fmt.Errorf("clear selections: %w", err)
	}
	return nil
}

// List returns a session's selections in user order.
func (s *SelectionService) List(ctx context.Context, sessionID string) ([]domain.Selection, error) {
	selections, err := s.selectionStore.Selections(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}
