package driving

import "github.com/materials-advisor/advisor/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, defaults filled in and API keys resolved.
	Get() (*domain.Settings, error)

	// Save persists settings. API keys are never written.
	Save(settings *domain.Settings) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Path returns the backing configuration file.
	Path() string
}
