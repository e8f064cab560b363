package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure AssistantService implements the interfaces.
var (
	_ driving.AssistantService = (*AssistantService)(nil)
	_ driven.PromptStoreAware  = (*AssistantService)(nil)
)

// defaultGenerationTimeout bounds one generation call when settings
// carry no timeout.
const defaultGenerationTimeout = 60 * time.Second

// defaultHistoryLimit is how many messages History returns when the
// caller passes no limit.
const defaultHistoryLimit = 50

// defaultAnswerSystemPrompt is the fallback prompt when no PromptStore is configured.
const defaultAnswerSystemPrompt = `You are Inkwell, a private assistant for a personal journal. You answer questions grounded in the journal excerpts provided as context.

When answering:
1. Use only information from the provided context
2. If the context does not contain the answer, say so plainly
3. Quote or paraphrase entries rather than inventing details
4. Refer to entries by their titles when citing them`

// defaultAnswerFormatPrompt is the fallback prompt when no PromptStore is configured.
const defaultAnswerFormatPrompt = `Answer as a single JSON object with this shape:
{"answer": "<your answer>", "mood": "<one word, optional>", "tags": ["<topic>", "..."]}
Return ONLY the JSON object, nothing else.`

// AssistantService answers questions over the journal: compose the
// context, call the generation endpoint under a single deadline, parse
// the typed reply. Generation failures surface as a structured
// fallback inside the result, never as a request error.
type AssistantService struct {
	composer      driving.ComposerService
	generator     driven.Generator
	conversations driven.ConversationStore
	settings      domain.GenerationSettings
	promptStore   driven.PromptStore
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(
	composer driving.ComposerService,
	generator driven.Generator,
	conversations driven.ConversationStore,
	settings domain.GenerationSettings,
) *AssistantService {
	return &AssistantService{
		composer:      composer,
		generator:     generator,
		conversations: conversations,
		settings:      settings,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *AssistantService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask runs one end-to-end request.
func (s *AssistantService) Ask(ctx context.Context, sessionID, query string) (*domain.AskResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}

	logger.Section("Ask")
	logger.Debug("Session: %q, query: %q", sessionID, query)

	composed, err := s.composer.Compose(ctx, domain.ContextRequest{
		SessionID: sessionID,
		Query:     query,
	})
	if err != nil {
		return nil, fmt.Errorf("compose context: %w", err)
	}

	system := s.loadPrompt(driven.PromptAnswerSystem, defaultAnswerSystemPrompt) +
		"\n\n" + s.loadPrompt(driven.PromptAnswerFormat, defaultAnswerFormatPrompt)

	raw, state, genErr := s.generate(ctx, domain.GenerationRequest{
		System:  system,
		Context: composed.Render(),
		Query:   query,
	})

	result := &domain.AskResult{
		Context:    *composed,
		Completion: state,
	}

	switch state {
	case domain.CompletionCancelled:
		return nil, fmt.Errorf("ask: %w", domain.ErrRequestCancelled)

	case domain.CompletionTimedOut:
		logger.Warn("Generation timed out after %s", s.timeout())
		result.Fallback = true
		result.FallbackReason = domain.ErrGenerationTimeout.Error()
		result.Reply = domain.NoAnswerFallback("the generation endpoint timed out")

	case domain.CompletionCompleted:
		result.Reply = s.interpret(raw, genErr, result)

	default:
		return nil, fmt.Errorf("ask reached non-terminal state %s", state)
	}

	s.recordTurn(ctx, sessionID, domain.RoleUser, query)
	if !result.Fallback {
		s.recordTurn(ctx, sessionID, domain.RoleAssistant, result.Reply.Answer)
	}

	return result, nil
}

// interpret turns a finished generation call into the reply, marking
// the result as a fallback when the call failed or produced nothing
// usable. Output that is not the JSON schema but non-empty is still an
// answer: the whole text is used as-is.
func (s *AssistantService) interpret(raw string, genErr error, result *domain.AskResult) domain.AssistantReply {
	if genErr != nil {
		logger.Warn("Generation failed: %v", genErr)
		result.Fallback = true
		result.FallbackReason = genErr.Error()
		return domain.NoAnswerFallback("the generation endpoint reported an error")
	}

	reply, err := domain.ParseAssistantReply(raw)
	if err == nil {
		return reply
	}

	var parseFailure *domain.ParseFailure
	if errors.As(err, &parseFailure) && strings.TrimSpace(raw) != "" {
		logger.Debug("Reply not in result schema (%s), using raw text", parseFailure.Reason)
		return domain.AssistantReply{Answer: strings.TrimSpace(raw)}
	}

	logger.Warn("Generation produced no usable output: %v", err)
	result.Fallback = true
	result.FallbackReason = err.Error()
	return domain.NoAnswerFallback("the generation endpoint produced no usable output")
}

// generate runs one generation call with exactly one completion path:
// the call returning, the deadline firing and the caller cancelling
// race, and the completion arbiter lets the first transition win. A
// late result after a timeout is dropped, never double-completed.
func (s *AssistantService) generate(ctx context.Context, req domain.GenerationRequest) (string, domain.CompletionState, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	completion := domain.NewCompletion()

	type outcome struct {
		text string
		err  error
	}
	// Buffered so a losing call can deliver and exit.
	resultCh := make(chan outcome, 1)
	go func() {
		text, err := s.generator.Generate(genCtx, req)
		resultCh <- outcome{text: text, err: err}
	}()

	select {
	case res := <-resultCh:
		// A result racing the caller's cancellation still counts as
		// cancelled; nobody is waiting for the text.
		if ctx.Err() == nil && completion.Complete() {
			return res.text, domain.CompletionCompleted, res.err
		}
		completion.Cancel()

	case <-genCtx.Done():
		if ctx.Err() != nil {
			completion.Cancel()
		} else {
			completion.Timeout()
		}
	}

	return "", completion.State(), nil
}

// CheckGeneration verifies the generation endpoint is reachable.
func (s *AssistantService) CheckGeneration(ctx context.Context) error {
	if s.generator == nil {
		return domain.ErrGenerationUnavailable
	}
	if err := s.generator.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}
	return nil
}

// History returns up to limit recent messages of a session.
func (s *AssistantService) History(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	msgs, err := s.conversations.RecentMessages(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return msgs, nil
}

// ClearHistory removes a session's conversation history.
func (s *AssistantService) ClearHistory(ctx context.Context, sessionID string) error {
	if err := s.conversations.ClearSession(ctx, sessionID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// recordTurn appends one conversation turn. Sessions are optional;
// one-shot asks with no session ID leave no history.
func (s *AssistantService) recordTurn(ctx context.Context, sessionID string, role domain.Role, content string) {
	if sessionID == "" {
		return
	}
	msg := domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.conversations.AppendMessage(ctx, msg); err != nil {
		logger.Warn("Failed to record %s turn: %v", role, err)
	}
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *AssistantService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

func (s *AssistantService) timeout() time.Duration {
	if s.settings.TimeoutSeconds > 0 {
		return time.Duration(s.settings.TimeoutSeconds) * time.Second
	}
	return defaultGenerationTimeout
}
