package services

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyJournalDir          = "journal.dir"
	keyChunkMaxWords       = "indexing.chunk_max_words"
	keyMinObserveWords     = "indexing.min_observe_words"
	keyDimensions          = "indexing.dimensions"
	keyTopK                = "retrieval.top_k"
	keyMinSimilarity       = "retrieval.min_similarity"
	keyUnseenTermWeight    = "retrieval.unseen_term_weight"
	keyTotalTokens         = "budget.total_tokens"
	keyConversationTokens  = "budget.conversation_tokens"
	keyConversationWindow  = "budget.conversation_window"
	keyPinnedFraction      = "budget.pinned_fraction"
	keyCustomFraction      = "budget.custom_fraction"
	keyTokensPerWord       = "budget.tokens_per_word"
	keySizeOverheadDivisor = "budget.size_overhead_divisor"
	keyGenerationBaseURL   = "generation.base_url"
	keyGenerationModel     = "generation.model"
	keyGenerationTimeout   = "generation.timeout_seconds"
)

// settableKeys are the dotted keys Set accepts.
var settableKeys = map[string]bool{
	keyJournalDir:          true,
	keyChunkMaxWords:       true,
	keyMinObserveWords:     true,
	keyDimensions:          true,
	keyTopK:                true,
	keyMinSimilarity:       true,
	keyUnseenTermWeight:    true,
	keyTotalTokens:         true,
	keyConversationTokens:  true,
	keyConversationWindow:  true,
	keyPinnedFraction:      true,
	keyCustomFraction:      true,
	keyTokensPerWord:       true,
	keySizeOverheadDivisor: true,
	keyGenerationBaseURL:   true,
	keyGenerationModel:     true,
	keyGenerationTimeout:   true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Journal: domain.JournalSettings{
			Dir: s.configStore.GetString(keyJournalDir), // No default - must be pointed somewhere
		},
		Indexing: domain.IndexingSettings{
			ChunkMaxWords:   s.getInt(keyChunkMaxWords, defaults.Indexing.ChunkMaxWords),
			MinObserveWords: s.getInt(keyMinObserveWords, defaults.Indexing.MinObserveWords),
			Dimensions:      s.getInt(keyDimensions, defaults.Indexing.Dimensions),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:             s.getInt(keyTopK, defaults.Retrieval.TopK),
			MinSimilarity:    s.getFloat(keyMinSimilarity, defaults.Retrieval.MinSimilarity),
			UnseenTermWeight: s.getFloat(keyUnseenTermWeight, defaults.Retrieval.UnseenTermWeight),
		},
		Budget: domain.BudgetSettings{
			TotalTokens:         s.getInt(keyTotalTokens, defaults.Budget.TotalTokens),
			ConversationTokens:  s.getInt(keyConversationTokens, defaults.Budget.ConversationTokens),
			ConversationWindow:  s.getInt(keyConversationWindow, defaults.Budget.ConversationWindow),
			PinnedFraction:      s.getFloat(keyPinnedFraction, defaults.Budget.PinnedFraction),
			CustomFraction:      s.getFloat(keyCustomFraction, defaults.Budget.CustomFraction),
			TokensPerWord:       s.getFloat(keyTokensPerWord, defaults.Budget.TokensPerWord),
			SizeOverheadDivisor: s.getInt(keySizeOverheadDivisor, defaults.Budget.SizeOverheadDivisor),
		},
		Generation: domain.GenerationSettings{
			BaseURL:        s.getString(keyGenerationBaseURL, defaults.Generation.BaseURL),
			Model:          s.getString(keyGenerationModel, defaults.Generation.Model),
			TimeoutSeconds: s.getInt(keyGenerationTimeout, defaults.Generation.TimeoutSeconds),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save journal settings
	if err := s.configStore.Set(keyJournalDir, settings.Journal.Dir); err != nil {
		return fmt.Errorf("save journal dir: %w", err)
	}

	// Save indexing settings
	if err := s.configStore.Set(keyChunkMaxWords, settings.Indexing.ChunkMaxWords); err != nil {
		return fmt.Errorf("save chunk max words: %w", err)
	}
	if err := s.configStore.Set(keyMinObserveWords, settings.Indexing.MinObserveWords); err != nil {
		return fmt.Errorf("save min observe words: %w", err)
	}
	if err := s.configStore.Set(keyDimensions, settings.Indexing.Dimensions); err != nil {
		return fmt.Errorf("save dimensions: %w", err)
	}

	// Save retrieval settings
	if err := s.configStore.Set(keyTopK, settings.Retrieval.TopK); err != nil {
		return fmt.Errorf("save top_k: %w", err)
	}
	if err := s.configStore.Set(keyMinSimilarity, settings.Retrieval.MinSimilarity); err != nil {
		return fmt.Errorf("save min similarity: %w", err)
	}
	if err := s.configStore.Set(keyUnseenTermWeight, settings.Retrieval.UnseenTermWeight); err != nil {
		return fmt.Errorf("save unseen term weight: %w", err)
	}

	// Save budget settings
	if err := s.configStore.Set(keyTotalTokens, settings.Budget.TotalTokens); err != nil {
		return fmt.Errorf("save total tokens: %w", err)
	}
	if err := s.configStore.Set(keyConversationTokens, settings.Budget.ConversationTokens); err != nil {
		return fmt.Errorf("save conversation tokens: %w", err)
	}
	if err := s.configStore.Set(keyConversationWindow, settings.Budget.ConversationWindow); err != nil {
		return fmt.Errorf("save conversation window: %w", err)
	}
	if err := s.configStore.Set(keyPinnedFraction, settings.Budget.PinnedFraction); err != nil {
		return fmt.Errorf("save pinned fraction: %w", err)
	}
	if err := s.configStore.Set(keyCustomFraction, settings.Budget.CustomFraction); err != nil {
		return fmt.Errorf("save custom fraction: %w", err)
	}
	if err := s.configStore.Set(keyTokensPerWord, settings.Budget.TokensPerWord); err != nil {
		return fmt.Errorf("save tokens per word: %w", err)
	}
	if err := s.configStore.Set(keySizeOverheadDivisor, settings.Budget.SizeOverheadDivisor); err != nil {
		return fmt.Errorf("save size overhead divisor: %w", err)
	}

	// Save generation settings
	if err := s.configStore.Set(keyGenerationBaseURL, settings.Generation.BaseURL); err != nil {
		return fmt.Errorf("save generation base_url: %w", err)
	}
	if err := s.configStore.Set(keyGenerationModel, settings.Generation.Model); err != nil {
		return fmt.Errorf("save generation model: %w", err)
	}
	if err := s.configStore.Set(keyGenerationTimeout, settings.Generation.TimeoutSeconds); err != nil {
		return fmt.Errorf("save generation timeout: %w", err)
	}

	return nil
}

// SetJournalDir updates the journal directory.
func (s *SettingsService) SetJournalDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("empty journal directory: %w", domain.ErrInvalidInput)
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("journal directory does not exist: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("journal directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("journal path is not a directory: %s", dir)
	}

	if err := s.configStore.Set(keyJournalDir, dir); err != nil {
		return fmt.Errorf("save journal dir: %w", err)
	}
	return nil
}

// SetGeneration configures the generation endpoint.
func (s *SettingsService) SetGeneration(baseURL, model string) error {
	if baseURL != "" {
		if err := s.configStore.Set(keyGenerationBaseURL, baseURL); err != nil {
			return fmt.Errorf("save generation base_url: %w", err)
		}
	}
	if model != "" {
		if err := s.configStore.Set(keyGenerationModel, model); err != nil {
			return fmt.Errorf("save generation model: %w", err)
		}
	}
	return nil
}

// Set updates a single dotted key.
func (s *SettingsService) Set(key string, value any) error {
	if !settableKeys[key] {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(knownKeys(), ", "))
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Journal.Dir == "" {
		return fmt.Errorf("journal directory is not set (run: inkwell settings journal <dir>)")
	}
	if info, err := os.Stat(settings.Journal.Dir); err != nil || !info.IsDir() {
		return fmt.Errorf("journal directory is not readable: %s", settings.Journal.Dir)
	}

	if settings.Indexing.ChunkMaxWords <= 0 {
		return fmt.Errorf("indexing.chunk_max_words must be positive, got %d", settings.Indexing.ChunkMaxWords)
	}
	if settings.Indexing.Dimensions <= 0 {
		return fmt.Errorf("indexing.dimensions must be positive, got %d", settings.Indexing.Dimensions)
	}

	if settings.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", settings.Retrieval.TopK)
	}
	if settings.Retrieval.MinSimilarity < 0 || settings.Retrieval.MinSimilarity >= 1 {
		return fmt.Errorf("retrieval.min_similarity must be in [0, 1), got %g", settings.Retrieval.MinSimilarity)
	}

	if settings.Budget.TotalTokens <= 0 {
		return fmt.Errorf("budget.total_tokens must be positive, got %d", settings.Budget.TotalTokens)
	}
	if settings.Budget.PinnedFraction <= 0 || settings.Budget.PinnedFraction > 1 {
		return fmt.Errorf("budget.pinned_fraction must be in (0, 1], got %g", settings.Budget.PinnedFraction)
	}
	if settings.Budget.CustomFraction <= 0 || settings.Budget.CustomFraction > 1 {
		return fmt.Errorf("budget.custom_fraction must be in (0, 1], got %g", settings.Budget.CustomFraction)
	}
	if settings.Budget.TokensPerWord <= 0 {
		return fmt.Errorf("budget.tokens_per_word must be positive, got %g", settings.Budget.TokensPerWord)
	}

	if !settings.Generation.IsConfigured() {
		return fmt.Errorf("generation endpoint is not configured (run: inkwell settings generation)")
	}

	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

// knownKeys returns the settable keys in stable order for messages.
func knownKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
