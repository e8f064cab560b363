package domain

// ContextTier identifies which content source a context block came from.
// Blocks are always assembled in ascending tier order.
type ContextTier int

const (
	// TierInstructions is the leading system instruction block.
	TierInstructions ContextTier = iota

	// TierConversation holds recent conversation turns.
	TierConversation

	// TierPinned holds always-include entries pinned by the user.
	TierPinned

	// TierCustom holds entries explicitly selected for this session.
	TierCustom

	// TierRetrieved holds similarity-retrieved chunks.
	TierRetrieved
)

// String returns the tier name used in logs and block listings.
func (t ContextTier) String() string {
	switch t {
	case TierInstructions:
		return "instructions"
	case TierConversation:
		return "conversation"
	case TierPinned:
		return "pinned"
	case TierCustom:
		return "custom"
	case TierRetrieved:
		return "retrieved"
	default:
		return "unknown"
	}
}

// ContextBudget bounds one context composition. Constructed fresh per
// request from settings; never persisted.
type ContextBudget struct {
	// TotalTokens is the global ceiling for the assembled context.
	TotalTokens int

	// ConversationTokens is the fixed cap reserved for the
	// conversation tier.
	ConversationTokens int

	// ConversationWindow is the sliding window of most recent
	// messages considered for the conversation tier.
	ConversationWindow int

	// PinnedFraction is the share of TotalTokens available to the
	// pinned tier.
	PinnedFraction float64

	// CustomFraction is the safety ceiling for the custom-selection
	// tier, as a share of whatever budget remains after the earlier
	// tiers' actual usage.
	CustomFraction float64
}

// ContextBlock is one discrete unit of assembled context.
// A block is included whole or omitted, never truncated mid-content.
type ContextBlock struct {
	// Tier is the content source.
	Tier ContextTier

	// Source names where the text came from: an entry title, a chunk
	// reference, or "conversation".
	Source string

	// Text is the block content.
	Text string

	// Tokens is the estimated token cost charged against the budget.
	Tokens int

	// Score is the retrieval similarity for TierRetrieved blocks,
	// zero otherwise.
	Score float64
}

// ContextRequest is the input to one context composition.
type ContextRequest struct {
	// SessionID selects the conversation history and custom selections.
	SessionID string

	// Query is the raw user query driving retrieval.
	Query string

	// Instructions is the leading instruction block. Empty means the
	// composer's default instructions.
	Instructions string

	// TopK bounds how many retrieved chunks are considered.
	// Zero means the configured default.
	TopK int
}

// ComposedContext is the result of one budget allocation pass.
type ComposedContext struct {
	// Blocks in final assembly order.
	Blocks []ContextBlock

	// TokensUsed is the summed estimated cost of all included blocks.
	// Invariant: TokensUsed <= Budget.TotalTokens.
	TokensUsed int

	// Budget is the budget this context was composed under.
	Budget ContextBudget

	// Degraded is set when retrieval was unavailable and the context
	// was assembled from the non-retrieval tiers only.
	Degraded bool

	// DegradedReason explains why retrieval content is missing.
	DegradedReason string
}

// Render concatenates the blocks, in order, into the final context
// string handed to the generation endpoint.
func (c ComposedContext) Render() string {
	var out []byte
	for i, b := range c.Blocks {
		if i > 0 {
			out = append(out, '\n', '\n')
		}
		out = append(out, b.Text...)
	}
	return string(out)
}
