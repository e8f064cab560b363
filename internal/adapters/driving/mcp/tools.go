package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_journal tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find journal entries"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search_journal tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	EntryID string  `json:"entry_id"`
	Ordinal int     `json:"ordinal"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

// ComposeInput is the input schema for the compose_context tool.
type ComposeInput struct {
	Query     string `json:"query" jsonschema:"the query to compose journal context for"`
	SessionID string `json:"session_id,omitempty" jsonschema:"conversation session ID (default mcp)"`
	TopK      int    `json:"top_k,omitempty" jsonschema:"retrieved chunks to consider (default from settings)"`
}

// ComposeOutput is the output schema for the compose_context tool.
type ComposeOutput struct {
	Context        string        `json:"context"`
	TokensUsed     int           `json:"tokens_used"`
	TotalTokens    int           `json:"total_tokens"`
	Degraded       bool          `json:"degraded,omitempty"`
	DegradedReason string        `json:"degraded_reason,omitempty"`
	Blocks         []BlockOutput `json:"blocks"`
}

// BlockOutput describes one included context block.
type BlockOutput struct {
	Tier   string  `json:"tier"`
	Source string  `json:"source"`
	Tokens int     `json:"tokens"`
	Score  float64 `json:"score,omitempty"`
}

// AskInput is the input schema for the ask_journal tool.
type AskInput struct {
	Question  string `json:"question" jsonschema:"the question to answer from the journal"`
	SessionID string `json:"session_id,omitempty" jsonschema:"conversation session ID (default mcp)"`
}

// AskOutput is the output schema for the ask_journal tool.
type AskOutput struct {
	Answer         string   `json:"answer"`
	Mood           string   `json:"mood,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Fallback       bool     `json:"fallback,omitempty"`
	FallbackReason string   `json:"fallback_reason,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_journal",
		Description: "Search journal entries by similarity to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compose_context",
		Description: "Assemble the budget-bounded journal context a question would be answered from",
	}, s.handleCompose)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_journal",
		Description: "Answer a question from the journal using the local generation endpoint",
	}, s.handleAsk)
}

// handleSearch handles the search_journal tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Retriever.FindSimilar(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			EntryID: results[i].Chunk.EntryID,
			Ordinal: results[i].Chunk.Ordinal,
			Score:   results[i].Score,
			Text:    results[i].Chunk.Text,
		}
	}

	return nil, output, nil
}

// handleCompose handles the compose_context tool invocation.
func (s *Server) handleCompose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComposeInput,
) (*mcp.CallToolResult, ComposeOutput, error) {
	if s.ports.Composer == nil {
		return nil, ComposeOutput{}, errors.New("composer service not available")
	}

	session := input.SessionID
	if session == "" {
		session = DefaultSession
	}

	composed, err := s.ports.Composer.Compose(ctx, domain.ContextRequest{
		SessionID: session,
		Query:     input.Query,
		TopK:      input.TopK,
	})
	if err != nil {
		return nil, ComposeOutput{}, err
	}

	output := ComposeOutput{
		Context:        composed.Render(),
		TokensUsed:     composed.TokensUsed,
		TotalTokens:    composed.Budget.TotalTokens,
		Degraded:       composed.Degraded,
		DegradedReason: composed.DegradedReason,
		Blocks:         make([]BlockOutput, len(composed.Blocks)),
	}

	for i := range composed.Blocks {
		output.Blocks[i] = BlockOutput{
			Tier:   composed.Blocks[i].Tier.String(),
			Source: composed.Blocks[i].Source,
			Tokens: composed.Blocks[i].Tokens,
			Score:  composed.Blocks[i].Score,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask_journal tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Assistant == nil {
		return nil, AskOutput{}, errors.New("assistant service not available")
	}

	session := input.SessionID
	if session == "" {
		session = DefaultSession
	}

	result, err := s.ports.Assistant.Ask(ctx, session, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:         result.Reply.Answer,
		Mood:           result.Reply.Mood,
		Tags:           result.Reply.Tags,
		Fallback:       result.Fallback,
		FallbackReason: result.FallbackReason,
	}, nil
}
