package driving

import "github.com/inkwell-labs/inkwell-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetJournalDir updates the journal directory.
	SetJournalDir(dir string) error

	// SetGeneration configures the generation endpoint.
	SetGeneration(baseURL, model string) error

	// Set updates a single dotted key (e.g. "retrieval.min_similarity").
	Set(key string, value any) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks that current settings are usable.
	Validate() error
}
