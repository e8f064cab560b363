package domain

// JournalSettings locates the corpus on disk.
type JournalSettings struct {
	// Dir is the directory holding journal entries (.txt/.md files).
	Dir string
}

// IndexingSettings holds chunking and vocabulary configuration.
//
// The chunk ceiling is an empirically chosen constant with no derivation
// behind it; it is a setting precisely so nobody has to assume it is
// optimal.
type IndexingSettings struct {
	// ChunkMaxWords is the word-count ceiling per chunk. A single
	// paragraph longer than this still becomes one oversized chunk.
	ChunkMaxWords int

	// MinObserveWords is the minimum word count for an entry to be
	// observed into the vocabulary. Shorter fragments are indexed but
	// do not contribute statistics.
	MinObserveWords int

	// Dimensions is the embedding vector length. Fixed for the
	// lifetime of the embedding space: changing it invalidates every
	// stored vector.
	Dimensions int
}

// RetrievalSettings holds similarity search configuration.
type RetrievalSettings struct {
	// TopK is the default maximum number of retrieved chunks.
	TopK int

	// MinSimilarity excludes results scoring below it, even when
	// fewer than TopK remain. Like the chunk ceiling, an empirical
	// constant kept configurable.
	MinSimilarity float64

	// UnseenTermWeight is the minimal IDF substitute for query terms
	// the vocabulary has never seen, keeping novel queries
	// non-degenerate.
	UnseenTermWeight float64
}

// BudgetSettings holds context budget configuration.
// Token counts are approximations throughout, never tokenizer-exact.
type BudgetSettings struct {
	// TotalTokens is the global context ceiling.
	TotalTokens int

	// ConversationTokens is the fixed cap for the conversation tier.
	ConversationTokens int

	// ConversationWindow is how many recent messages are considered.
	ConversationWindow int

	// PinnedFraction is the share of TotalTokens the pinned tier may
	// consume.
	PinnedFraction float64

	// CustomFraction caps the custom-selection tier at this share of
	// the budget remaining after earlier tiers' actual usage.
	CustomFraction float64

	// TokensPerWord is the per-word constant of the token estimate.
	TokensPerWord float64

	// SizeOverheadDivisor adds len(text)/divisor tokens of size-based
	// overhead to the estimate.
	SizeOverheadDivisor int
}

// Budget materialises the per-request ContextBudget.
func (b BudgetSettings) Budget() ContextBudget {
	return ContextBudget{
		TotalTokens:        b.TotalTokens,
		ConversationTokens: b.ConversationTokens,
		ConversationWindow: b.ConversationWindow,
		PinnedFraction:     b.PinnedFraction,
		CustomFraction:     b.CustomFraction,
	}
}

// GenerationSettings holds downstream generation endpoint configuration.
type GenerationSettings struct {
	// BaseURL is the local endpoint (Ollama by default).
	BaseURL string

	// Model is the model name passed to the endpoint.
	Model string

	// TimeoutSeconds bounds one generation call. The timeout is the
	// request's single deadline; there is no secondary timer.
	TimeoutSeconds int
}

// IsConfigured returns true if the generation endpoint is set up.
func (g GenerationSettings) IsConfigured() bool {
	return g.BaseURL != "" && g.Model != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Journal locates the corpus.
	Journal JournalSettings

	// Indexing holds chunking and vocabulary settings.
	Indexing IndexingSettings

	// Retrieval holds similarity search settings.
	Retrieval RetrievalSettings

	// Budget holds context budget settings.
	Budget BudgetSettings

	// Generation holds generation endpoint settings.
	Generation GenerationSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Everything works offline out of the box; only the journal directory
// must be pointed somewhere.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Journal: JournalSettings{
			Dir: "",
		},
		Indexing: IndexingSettings{
			ChunkMaxWords:   500,
			MinObserveWords: 3,
			Dimensions:      256,
		},
		Retrieval: RetrievalSettings{
			TopK:             5,
			MinSimilarity:    0.15,
			UnseenTermWeight: 0.1,
		},
		Budget: BudgetSettings{
			TotalTokens:         2048,
			ConversationTokens:  300,
			ConversationWindow:  6,
			PinnedFraction:      1.0 / 3.0,
			CustomFraction:      0.6,
			TokensPerWord:       1.3,
			SizeOverheadDivisor: 100,
		},
		Generation: GenerationSettings{
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.2",
			TimeoutSeconds: 60,
		},
	}
}
