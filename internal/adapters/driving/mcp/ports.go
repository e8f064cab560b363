package mcp

import (
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever provides similarity search over indexed chunks.
	Retriever driving.RetrieverService

	// Composer assembles the budget-bounded generation context.
	Composer driving.ComposerService

	// Assistant answers questions end to end.
	Assistant driving.AssistantService

	// Indexer reports corpus statistics.
	Indexer driving.IndexerService

	// Pins lists always-include pins.
	Pins driving.PinService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetrieverService
	}
	// The remaining ports are optional; their tools and resources
	// report unavailability instead.
	return nil
}
