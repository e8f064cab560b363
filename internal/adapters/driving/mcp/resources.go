package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Inkwell resources.
	uriScheme = "inkwell://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for corpus statistics.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Corpus statistics: entries, chunks, vocabulary size",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	// Static resource for the pin registry.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "pins",
		Name:        "pins",
		Description: "Entries and folders always included in the generation context",
		MIMEType:    "application/json",
	}, s.handlePinsResource)
}

// handleStatusResource returns corpus statistics.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Indexer == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	status, err := s.ports.Indexer.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePinsResource returns the pin registry.
func (s *Server) handlePinsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Pins == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	pins, err := s.ports.Pins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pins: %w", err)
	}

	// Build simplified pin list.
	type pinInfo struct {
		Kind   string `json:"kind"`
		Target string `json:"target"`
	}

	infos := make([]pinInfo, len(pins))
	for i := range pins {
		infos[i] = pinInfo{
			Kind:   pins[i].Kind.String(),
			Target: pins[i].Target,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pins: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
