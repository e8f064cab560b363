// Package tui provides the interactive chat interface for inkwell.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers questions and manages conversation history.
	Assistant driving.AssistantService

	// Indexer reports corpus statistics for the status line.
	Indexer driving.IndexerService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	// Indexer is optional; without it the status line stays empty.
	return nil
}
