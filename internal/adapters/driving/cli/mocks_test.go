package cli

import (
	"context"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// setupTestServices installs mock services with benign defaults and
// returns a cleanup that restores whatever was installed before.
func setupTestServices() func() {
	oldIndexer := indexerService
	oldRetriever := retrieverService
	oldComposer := composerService
	oldAssistant := assistantService
	oldPins := pinService
	oldSelections := selectionService
	oldSettings := settingsService

	SetServices(&Services{
		Indexer: &mockIndexerService{
			status: &domain.IndexStatus{Entries: 2, Chunks: 4, Terms: 40, ObservedEntries: 2},
			report: &domain.IndexReport{Indexed: 2},
		},
		Retriever: &mockRetrieverService{
			results: []domain.ScoredChunk{
				{
					Chunk: domain.Chunk{
						ID:      "2024-03-01.md#0",
						EntryID: "2024-03-01.md",
						Ordinal: 0,
						Text:    "Hiked up the ridge before sunrise. Quiet all the way.",
					},
					Score:         0.82,
					EntryModified: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
				},
				{
					Chunk: domain.Chunk{
						ID:      "2024-02-10.md#1",
						EntryID: "2024-02-10.md",
						Ordinal: 1,
						Text:    "Slept in, read by the window, felt properly rested.",
					},
					Score:         0.54,
					EntryModified: time.Date(2024, 2, 10, 21, 0, 0, 0, time.UTC),
				},
			},
		},
		Composer: &mockComposerService{
			composed: &domain.ComposedContext{},
		},
		Assistant: &mockAssistantService{
			result: &domain.AskResult{
				Reply:      domain.AssistantReply{Answer: "You last felt rested on February 10th."},
				Completion: domain.CompletionCompleted,
			},
		},
		Pins: &mockPinService{
			pins: []domain.Pin{
				{ID: "pin-1", Kind: domain.PinKindEntry, Target: "2024-03-01.md"},
			},
		},
		Selections: &mockSelectionService{},
		Settings:   &mockSettingsService{settings: domain.DefaultAppSettings()},
	})

	return func() {
		indexerService = oldIndexer
		retrieverService = oldRetriever
		composerService = oldComposer
		assistantService = oldAssistant
		pinService = oldPins
		selectionService = oldSelections
		settingsService = oldSettings
	}
}

// mockRetrieverService is a mock implementation of driving.RetrieverService.
type mockRetrieverService struct {
	results  []domain.ScoredChunk
	err      error
	lastTopK int
}

func (m *mockRetrieverService) FindSimilar(
	_ context.Context,
	_ string,
	topK int,
) ([]domain.ScoredChunk, error) {
	m.lastTopK = topK
	return m.results, m.err
}

// mockComposerService is a mock implementation of driving.ComposerService.
type mockComposerService struct {
	composed *domain.ComposedContext
	err      error
}

func (m *mockComposerService) Compose(
	_ context.Context,
	_ domain.ContextRequest,
) (*domain.ComposedContext, error) {
	return m.composed, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	result  *domain.AskResult
	history []domain.Message
	err     error
}

func (m *mockAssistantService) Ask(
	_ context.Context,
	_, _ string,
) (*domain.AskResult, error) {
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

// mockSelectionService is a mock implementation of driving.SelectionService.
type mockSelectionService struct {
	selections []domain.Selection
	err        error
}

func (m *mockSelectionService) Select(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockSelectionService) Clear(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSelectionService) List(_ context.Context, _ string) ([]domain.Selection, error) {
	return m.selections, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
	lastKey  string
	lastVal  any
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetJournalDir(dir string) error {
	if m.err != nil {
		return m.err
	}
	m.settings.Journal.Dir = dir
	return nil
}

func (m *mockSettingsService) SetGeneration(baseURL, model string) error {
	if m.err != nil {
		return m.err
	}
	if baseURL != "" {
		m.settings.Generation.BaseURL = baseURL
	}
	if model != "" {
		m.settings.Generation.Model = model
	}
	return nil
}

func (m *mockSettingsService) Set(key string, value any) error {
	if m.err != nil {
		return m.err
	}
	m.lastKey = key
	m.lastVal = value
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Validate() error {
	return nil
}
