// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Inkwell. It enables AI assistants to search a local journal, inspect the
// composed context and ask grounded questions without the text leaving the
// machine.
package mcp

import "errors"

// ErrMissingRetrieverService is returned when the retriever service is not provided.
var ErrMissingRetrieverService = errors.New("mcp: retriever service is required")
