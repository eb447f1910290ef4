package driving

import "github.com/surmado/surmado-go/internal/core/domain"

// SettingsService manages persisted client settings.
type SettingsService interface {
	// Get returns the stored settings with defaults applied.
	Get() (*domain.ClientSettings, error)

	// Save persists settings.
	Save(settings *domain.ClientSettings) error

	// Set parses value for key and persists it.
	Set(key domain.SettingKey, value string) error

	// SetAPIKey stores the API key.
	SetAPIKey(apiKey string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.ClientSettings

	// Validate checks the stored settings.
	Validate() error

	// Path returns where settings are stored.
	Path() string
}
