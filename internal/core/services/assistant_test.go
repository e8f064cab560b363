package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// --- Mock implementations for assistant testing ---
// Note: These are prefixed with "assistant" to avoid conflicts with other service test mocks.

// assistantMockGenerator implements driven.Generator with canned output.
// With block set it never returns until the request context ends.
type assistantMockGenerator struct {
	output  string
	err     error
	pingErr error
	block   bool
	calls   int
	lastReq domain.GenerationRequest
}

var _ driven.Generator = (*assistantMockGenerator)(nil)

func (g *assistantMockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	g.calls++
	g.lastReq = req
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.output, g.err
}

func (g *assistantMockGenerator) ModelName() string { return "mock" }

func (g *assistantMockGenerator) Ping(_ context.Context) error { return g.pingErr }

func (g *assistantMockGenerator) Close() error { return nil }

// assistantMockPromptStore implements driven.PromptStore from a map.
type assistantMockPromptStore struct {
	prompts map[string]string
}

func (p *assistantMockPromptStore) Load(name string) (string, error) {
	prompt, ok := p.prompts[name]
	if !ok {
		return "", errors.New("prompt not found")
	}
	return prompt, nil
}

func (p *assistantMockPromptStore) Reload() {}

// --- Helpers ---

func newTestAssistant(generator driven.Generator) (*AssistantService, *memory.ConversationStore) {
	conversations := memory.NewConversationStore()
	composer := NewComposerService(
		&composerStubRetriever{},
		conversations,
		memory.NewPinStore(),
		memory.NewSelectionStore(),
		memory.NewEntryStore(),
		domain.DefaultAppSettings().Budget,
	)
	svc := NewAssistantService(composer, generator, conversations, domain.GenerationSettings{
		BaseURL:        "http://localhost:11434",
		Model:          "llama3.2",
		TimeoutSeconds: 5,
	})
	return svc, conversations
}

// --- Tests ---

func TestNewAssistantService(t *testing.T) {
	svc, _ := newTestAssistant(&assistantMockGenerator{})

	require.NotNil(t, svc)
	assert.NotNil(t, svc.composer)
	assert.NotNil(t, svc.generator)
	assert.NotNil(t, svc.conversations)
	assert.Nil(t, svc.promptStore)
}

func TestAssistantService_Ask_EmptyQuery(t *testing.T) {
	svc, _ := newTestAssistant(&assistantMockGenerator{})

	_, err := svc.Ask(context.Background(), "s1", "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssistantService_Ask_ParsesStructuredReply(t *testing.T) {
	generator := &assistantMockGenerator{
		output: `{"answer": "You hiked the alps in May.", "mood": "calm", "tags": ["hiking"]}`,
	}
	svc, _ := newTestAssistant(generator)

	result, err := svc.Ask(context.Background(), "s1", "when did I go hiking?")

	require.NoError(t, err)
	assert.Equal(t, "You hiked the alps in May.", result.Reply.Answer)
	assert.Equal(t, "calm", result.Reply.Mood)
	assert.Equal(t, []string{"hiking"}, result.Reply.Tags)
	assert.False(t, result.Fallback)
	assert.Equal(t, domain.CompletionCompleted, result.Completion)
	assert.False(t, result.Context.Degraded)

	// The generator saw the composed request, not raw fragments.
	assert.Equal(t, 1, generator.calls)
	assert.Equal(t, "when did I go hiking?", generator.lastReq.Query)
	assert.Contains(t, generator.lastReq.System, "JSON")
	assert.NotEmpty(t, generator.lastReq.Context)
}

func TestAssistantService_Ask_RawTextReply(t *testing.T) {
	generator := &assistantMockGenerator{
		output: "You wrote about hiking in May and loved it.",
	}
	svc, _ := newTestAssistant(generator)

	result, err := svc.Ask(context.Background(), "s1", "when did I go hiking?")

	require.NoError(t, err)
	assert.Equal(t, "You wrote about hiking in May and loved it.", result.Reply.Answer)
	assert.Empty(t, result.Reply.Mood)
	assert.False(t, result.Fallback)
}

func TestAssistantService_Ask_RecordsTurns(t *testing.T) {
	generator := &assistantMockGenerator{output: `{"answer": "In May."}`}
	svc, _ := newTestAssistant(generator)

	ctx := context.Background()
	_, err := svc.Ask(ctx, "s1", "when did I go hiking?")
	require.NoError(t, err)

	history, err := svc.History(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "when did I go hiking?", history[0].Content)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, "In May.", history[1].Content)
}

func TestAssistantService_Ask_NoSessionLeavesNoHistory(t *testing.T) {
	generator := &assistantMockGenerator{output: `{"answer": "In May."}`}
	svc, _ := newTestAssistant(generator)

	ctx := context.Background()
	_, err := svc.Ask(ctx, "", "when did I go hiking?")
	require.NoError(t, err)

	history, err := svc.History(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAssistantService_Ask_GenerationErrorFallsBack(t *testing.T) {
	generator := &assistantMockGenerator{err: errors.New("connection refused")}
	svc, _ := newTestAssistant(generator)

	ctx := context.Background()
	result, err := svc.Ask(ctx, "s1", "when did I go hiking?")

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, "connection refused", result.FallbackReason)
	assert.Equal(t, domain.CompletionCompleted, result.Completion)
	assert.Contains(t, result.Reply.Answer, "No answer is available")

	// The failed turn is not recorded as an assistant message.
	history, err := svc.History(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleUser, history[0].Role)
}

func TestAssistantService_Ask_Timeout(t *testing.T) {
	generator := &assistantMockGenerator{block: true}
	conversations := memory.NewConversationStore()
	composer := NewComposerService(&composerStubRetriever{}, conversations,
		memory.NewPinStore(), memory.NewSelectionStore(), memory.NewEntryStore(),
		domain.DefaultAppSettings().Budget)
	svc := NewAssistantService(composer, generator, conversations, domain.GenerationSettings{
		BaseURL:        "http://localhost:11434",
		Model:          "llama3.2",
		TimeoutSeconds: 1,
	})

	start := time.Now()
	result, err := svc.Ask(context.Background(), "s1", "when did I go hiking?")

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, domain.ErrGenerationTimeout.Error(), result.FallbackReason)
	assert.Equal(t, domain.CompletionTimedOut, result.Completion)
	assert.Contains(t, result.Reply.Answer, "timed out")
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestAssistantService_Ask_Cancelled(t *testing.T) {
	generator := &assistantMockGenerator{block: true}
	svc, _ := newTestAssistant(generator)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ask(ctx, "s1", "when did I go hiking?")

	assert.ErrorIs(t, err, domain.ErrRequestCancelled)
}

func TestAssistantService_Ask_PromptStoreOverrides(t *testing.T) {
	generator := &assistantMockGenerator{output: `{"answer": "In May."}`}
	svc, _ := newTestAssistant(generator)
	svc.SetPromptStore(&assistantMockPromptStore{prompts: map[string]string{
		driven.PromptAnswerSystem: "Custom system prompt.",
		driven.PromptAnswerFormat: "Custom format prompt.",
	}})

	_, err := svc.Ask(context.Background(), "s1", "when did I go hiking?")

	require.NoError(t, err)
	assert.Equal(t, "Custom system prompt.\n\nCustom format prompt.", generator.lastReq.System)
}

func TestAssistantService_Ask_PromptStoreFallsBackToDefaults(t *testing.T) {
	generator := &assistantMockGenerator{output: `{"answer": "In May."}`}
	svc, _ := newTestAssistant(generator)
	svc.SetPromptStore(&assistantMockPromptStore{prompts: map[string]string{}})

	_, err := svc.Ask(context.Background(), "s1", "when did I go hiking?")

	require.NoError(t, err)
	assert.Contains(t, generator.lastReq.System, "Inkwell")
	assert.Contains(t, generator.lastReq.System, "JSON object")
}

func TestAssistantService_ClearHistory(t *testing.T) {
	generator := &assistantMockGenerator{output: `{"answer": "In May."}`}
	svc, _ := newTestAssistant(generator)

	ctx := context.Background()
	_, err := svc.Ask(ctx, "s1", "when did I go hiking?")
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory(ctx, "s1"))

	history, err := svc.History(ctx, "s1", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAssistantService_CheckGeneration_Reachable(t *testing.T) {
	svc, _ := newTestAssistant(&assistantMockGenerator{})

	assert.NoError(t, svc.CheckGeneration(context.Background()))
}

func TestAssistantService_CheckGeneration_Unreachable(t *testing.T) {
	generator := &assistantMockGenerator{pingErr: errors.New("connection refused")}
	svc, _ := newTestAssistant(generator)

	err := svc.CheckGeneration(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAssistantService_CheckGeneration_NoGenerator(t *testing.T) {
	svc, _ := newTestAssistant(nil)

	err := svc.CheckGeneration(context.Background())

	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}
