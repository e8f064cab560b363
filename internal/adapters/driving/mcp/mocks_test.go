package mcp

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// mockRetrieverService is a mock implementation of driving.RetrieverService.
type mockRetrieverService struct {
	results []domain.ScoredChunk
	err     error
}

func (m *mockRetrieverService) FindSimilar(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.ScoredChunk, error) {
	return m.results, m.err
}

// mockComposerService is a mock implementation of driving.ComposerService.
type mockComposerService struct {
	composed *domain.ComposedContext
	err      error
	lastReq  domain.ContextRequest
}

func (m *mockComposerService) Compose(
	_ context.Context,
	req domain.ContextRequest,
) (*domain.ComposedContext, error) {
	m.lastReq = req
	return m.composed, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	result      *domain.AskResult
	history     []domain.Message
	err         error
	lastSession string
}

func (m *mockAssistantService) Ask(
	_ context.Context,
	sessionID, _ string,
) (*domain.AskResult, error) {
	m.lastSession = sessionID
	return m.result, m.err
}

func (m *mockAssistantService) CheckGeneration(_ context.Context) error {
	return m.err
}

func (m *mockAssistantService) History(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.Message, error) {
	return m.history, m.err
}

func (m *mockAssistantService) ClearHistory(_ context.Context, _ string) error {
	return m.err
}

// mockIndexerService is a mock implementation of driving.IndexerService.
type mockIndexerService struct {
	status *domain.IndexStatus
	report *domain.IndexReport
	err    error
}

func (m *mockIndexerService) IndexAll(_ context.Context) (*domain.IndexReport, error) {
	return m.report, m.err
}

func (m *mockIndexerService) IndexEntry(_ context.Context, _ domain.RawEntry) error {
	return m.err
}

func (m *mockIndexerService) RemoveEntry(_ context.Context, _ string) error {
	return m.err
}

func (m *mockIndexerService) Watch(_ context.Context) error {
	return m.err
}

func (m *mockIndexerService) RebuildVocabulary(_ context.Context) error {
	return m.err
}

func (m *mockIndexerService) Status(_ context.Context) (*domain.IndexStatus, error) {
	return m.status, m.err
}

// mockPinService is a mock implementation of driving.PinService.
type mockPinService struct {
	pins []domain.Pin
	err  error
}

func (m *mockPinService) Pin(_ context.Context, _ domain.PinKind, _ string) error {
	return m.err
}

func (m *mockPinService) Unpin(_ context.Context, _ domain.PinKind, _ string) error {
	return m.err
}

func (m *mockPinService) List(_ context.Context) ([]domain.Pin, error) {
	return m.pins, m.err
}
