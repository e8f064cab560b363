package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure ComposerService implements the interface.
var _ driving.ComposerService = (*ComposerService)(nil)

// defaultInstructions leads the context when the request carries none.
const defaultInstructions = "Answer using the journal excerpts below. " +
	"If they do not contain the answer, say so instead of inventing one."

// composition accumulates one allocation pass. All fields are
// request-local; the service itself holds no mutable state.
type composition struct {
	blocks    []domain.ContextBlock
	remaining int
	included  map[string]bool // entry IDs already included whole
}

// ComposerService assembles the bounded generation context from the
// four content tiers. Stages run in strict order because later tiers
// consume whatever budget earlier tiers actually left, not their
// nominal caps.
type ComposerService struct {
	retriever     driving.RetrieverService
	conversations driven.ConversationStore
	pinStore      driven.PinStore
	selections    driven.SelectionStore
	entryStore    driven.EntryStore
	budget        domain.BudgetSettings
}

// NewComposerService creates a new composer service.
// The retriever is optional; without one every context is degraded.
func NewComposerService(
	retriever driving.RetrieverService,
	conversations driven.ConversationStore,
	pinStore driven.PinStore,
	selections driven.SelectionStore,
	entryStore driven.EntryStore,
	budget domain.BudgetSettings,
) *ComposerService {
	return &ComposerService{
		retriever:     retriever,
		conversations: conversations,
		pinStore:      pinStore,
		selections:    selections,
		entryStore:    entryStore,
		budget:        budget,
	}
}

// Compose runs the budget allocation pass for one request.
func (c *ComposerService) Compose(ctx context.Context, req domain.ContextRequest) (*domain.ComposedContext, error) {
	budget := c.budget.Budget()
	result := &domain.ComposedContext{Budget: budget}

	state := &composition{
		remaining: budget.TotalTokens,
		included:  make(map[string]bool),
	}

	c.instructionsBlock(state, req.Instructions)
	c.conversationTier(ctx, state, req.SessionID)
	c.pinnedTier(ctx, state)
	c.customTier(ctx, state, req.SessionID)

	if degradedReason := c.retrievalTier(ctx, state, req); degradedReason != "" {
		result.Degraded = true
		result.DegradedReason = degradedReason
	}

	result.Blocks = state.blocks
	for _, b := range state.blocks {
		result.TokensUsed += b.Tokens
	}

	logger.Debug("Composed context: %d blocks, %d/%d tokens, degraded=%t",
		len(result.Blocks), result.TokensUsed, budget.TotalTokens, result.Degraded)
	return result, nil
}

// instructionsBlock charges the leading instruction block against the
// budget. Oversized custom instructions are shortened rather than
// allowed to starve every later tier.
func (c *ComposerService) instructionsBlock(state *composition, instructions string) {
	text := strings.TrimSpace(instructions)
	if text == "" {
		text = defaultInstructions
	}

	cost := c.estimateTokens(text)
	if cost > state.remaining {
		text = c.truncateToTokens(text, state.remaining)
		if text == "" {
			return
		}
		cost = c.estimateTokens(text)
	}

	state.blocks = append(state.blocks, domain.ContextBlock{
		Tier:   domain.TierInstructions,
		Source: "instructions",
		Text:   text,
		Tokens: cost,
	})
	state.remaining -= cost
}

// conversationTier reserves a fixed cap for the most recent turns
// within the sliding window, dropping oldest turns first. If any
// history exists the tier is included, shortening the newest turn when
// even it alone exceeds the cap.
func (c *ComposerService) conversationTier(ctx context.Context, state *composition, sessionID string) {
	if sessionID == "" {
		return
	}

	msgs, err := c.conversations.RecentMessages(ctx, sessionID, c.budget.ConversationWindow)
	if err != nil {
		logger.Warn("Conversation history unavailable, skipping tier: %v", err)
		return
	}
	if len(msgs) == 0 {
		return
	}

	capTokens := c.budget.ConversationTokens
	if capTokens > state.remaining {
		capTokens = state.remaining
	}
	if capTokens <= 0 {
		return
	}

	// Grow the window newest-first; stop before the turn that would
	// overflow the cap.
	var text string
	for i := len(msgs) - 1; i >= 0; i-- {
		candidate := joinMessages(msgs[i:])
		if c.estimateTokens(candidate) > capTokens {
			break
		}
		text = candidate
	}
	if text == "" {
		text = c.truncateToTokens(formatMessage(msgs[len(msgs)-1]), capTokens)
		if text == "" {
			return
		}
	}

	cost := c.estimateTokens(text)
	state.blocks = append(state.blocks, domain.ContextBlock{
		Tier:   domain.TierConversation,
		Source: "conversation",
		Text:   text,
		Tokens: cost,
	})
	state.remaining -= cost
}

// pinnedTier spends a bounded allowance on always-include entries:
// direct entry pins first, then entries inside pinned folders. Each
// candidate is included atomically; one that would overflow the
// allowance is skipped whole, never truncated.
func (c *ComposerService) pinnedTier(ctx context.Context, state *composition) {
	pins, err := c.pinStore.ListPins(ctx)
	if err != nil {
		logger.Warn("Pins unavailable, skipping tier: %v", err)
		return
	}
	if len(pins) == 0 {
		return
	}

	allowance := int(float64(c.budget.TotalTokens) * c.budget.PinnedFraction)
	if allowance > state.remaining {
		allowance = state.remaining
	}

	spent := 0
	for _, pin := range pins {
		switch pin.Kind {
		case domain.PinKindEntry:
			entry, err := c.entryStore.GetEntry(ctx, pin.Target)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					logger.Warn("Pinned entry %s unavailable: %v", pin.Target, err)
				}
				continue
			}
			spent += c.includePinned(state, entry, allowance-spent)

		case domain.PinKindFolder:
			entries, err := c.entriesUnder(ctx, pin.Target)
			if err != nil {
				logger.Warn("Pinned folder %s unavailable: %v", pin.Target, err)
				continue
			}
			for i := range entries {
				spent += c.includePinned(state, &entries[i], allowance-spent)
			}
		}
	}
	state.remaining -= spent
}

// includePinned adds one pinned entry if it fits the remaining
// allowance whole. Returns the tokens spent.
func (c *ComposerService) includePinned(state *composition, entry *domain.Entry, allowance int) int {
	if state.included[entry.ID] {
		return 0
	}
	cost := c.estimateTokens(entry.Text)
	if cost == 0 {
		return 0
	}
	if cost > allowance {
		logger.Debug("Pinned %q skipped: %d tokens exceed remaining allowance %d", entry.Title, cost, allowance)
		return 0
	}

	state.blocks = append(state.blocks, domain.ContextBlock{
		Tier:   domain.TierPinned,
		Source: entry.Title,
		Text:   entry.Text,
		Tokens: cost,
	})
	state.included[entry.ID] = true
	return cost
}

// customTier spends actual need from the budget the earlier tiers
// left, capped at a safety ceiling so explicit selections cannot alone
// exhaust the request. Items are consumed in user order; the first
// that does not fit whole is shortened at a sentence boundary, then
// the tier closes.
func (c *ComposerService) customTier(ctx context.Context, state *composition, sessionID string) {
	if sessionID == "" {
		return
	}

	selections, err := c.selections.Selections(ctx, sessionID)
	if err != nil {
		logger.Warn("Selections unavailable, skipping tier: %v", err)
		return
	}
	if len(selections) == 0 {
		return
	}

	ceiling := int(float64(state.remaining) * c.budget.CustomFraction)
	spent := 0
	for _, sel := range selections {
		if state.included[sel.EntryID] {
			continue
		}
		entry, err := c.entryStore.GetEntry(ctx, sel.EntryID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Selected entry %s unavailable: %v", sel.EntryID, err)
			}
			continue
		}

		text := entry.Text
		cost := c.estimateTokens(text)
		if cost == 0 {
			continue
		}

		truncated := false
		if spent+cost > ceiling {
			text = c.truncateToTokens(text, ceiling-spent)
			if text == "" {
				break
			}
			cost = c.estimateTokens(text)
			truncated = true
		}

		state.blocks = append(state.blocks, domain.ContextBlock{
			Tier:   domain.TierCustom,
			Source: entry.Title,
			Text:   text,
			Tokens: cost,
		})
		state.included[entry.ID] = true
		spent += cost
		if truncated {
			// Ceiling hit; later selections would only be cut harder.
			break
		}
	}
	state.remaining -= spent
}

// retrievalTier spends everything the earlier tiers left on
// similarity-ranked chunks, greedily including whole chunks in rank
// order. Returns a non-empty reason when retrieval was unavailable and
// the context is degraded.
func (c *ComposerService) retrievalTier(ctx context.Context, state *composition, req domain.ContextRequest) string {
	if strings.TrimSpace(req.Query) == "" {
		return ""
	}
	if c.retriever == nil {
		logger.Warn("Retriever not configured, composing degraded context")
		return "retriever not configured"
	}

	scored, err := c.retriever.FindSimilar(ctx, req.Query, req.TopK)
	if err != nil {
		logger.Warn("Retrieval unavailable, composing degraded context: %v", err)
		return err.Error()
	}

	for _, sc := range scored {
		if state.included[sc.Chunk.EntryID] {
			continue
		}
		cost := c.estimateTokens(sc.Chunk.Text)
		if cost == 0 || cost > state.remaining {
			continue
		}
		state.blocks = append(state.blocks, domain.ContextBlock{
			Tier:   domain.TierRetrieved,
			Source: c.chunkSource(ctx, sc.Chunk),
			Text:   sc.Chunk.Text,
			Tokens: cost,
			Score:  sc.Score,
		})
		state.remaining -= cost
	}
	return ""
}

// chunkSource names a retrieved chunk by its parent entry's title.
func (c *ComposerService) chunkSource(ctx context.Context, chunk domain.Chunk) string {
	entry, err := c.entryStore.GetEntry(ctx, chunk.EntryID)
	if err != nil {
		return chunk.EntryID
	}
	return entry.Title
}

// entriesUnder lists stored entries whose ID sits under the folder
// path, most recently modified first. Entry IDs are slash-separated
// paths relative to the journal root, so folder pins match by prefix.
func (c *ComposerService) entriesUnder(ctx context.Context, folder string) ([]domain.Entry, error) {
	prefix := strings.Trim(filepath.ToSlash(folder), "/")
	if prefix == "" {
		return nil, fmt.Errorf("empty folder pin")
	}

	entries, err := c.entryStore.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	var matched []domain.Entry
	for i := range entries {
		if strings.HasPrefix(entries[i].ID, prefix+"/") {
			matched = append(matched, entries[i])
		}
	}
	return matched, nil
}

// estimateTokens approximates the token cost of text: word count times
// a per-word constant plus a length-based overhead. Deliberately not a
// tokenizer; the budget only needs a stable, monotone estimate.
func (c *ComposerService) estimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	overhead := 0
	if c.budget.SizeOverheadDivisor > 0 {
		overhead = len(text) / c.budget.SizeOverheadDivisor
	}
	return int(math.Ceil(float64(words)*c.budget.TokensPerWord)) + overhead
}

// truncateToTokens shortens text until its estimated cost fits
// maxTokens, cutting only at sentence boundaries. Returns "" when
// nothing meaningful fits.
func (c *ComposerService) truncateToTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	for {
		est := c.estimateTokens(text)
		if est <= maxTokens {
			return text
		}
		// Proportional cut toward the target; the estimate is close to
		// linear in length so this converges in a few passes.
		limit := len(text) * maxTokens / est
		if limit >= len(text) {
			limit = len(text) - 1
		}
		next := domain.TruncateAtSentence(text, limit)
		if next == text {
			return ""
		}
		text = next
	}
}

// formatMessage renders one conversation turn as a context line.
func formatMessage(m domain.Message) string {
	switch m.Role {
	case domain.RoleUser:
		return "User: " + m.Content
	case domain.RoleAssistant:
		return "Assistant: " + m.Content
	default:
		return m.Content
	}
}

// joinMessages renders turns oldest-first, one per line.
func joinMessages(msgs []domain.Message) string {
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = formatMessage(m)
	}
	return strings.Join(lines, "\n")
}
