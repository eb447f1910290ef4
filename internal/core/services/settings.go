package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages client settings in a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings with defaults applied.
func (s *SettingsService) Get() (*domain.ClientSettings, error) {
	defaults := domain.DefaultClientSettings()

	settings := &domain.ClientSettings{
		APIKey:            s.configStore.GetString(domain.SettingAPIKey.String()),
		BaseURL:           s.getString(domain.SettingBaseURL, defaults.BaseURL),
		Timeout:           s.getDuration(domain.SettingTimeoutSeconds, time.Second, defaults.Timeout),
		RequestsPerSecond: s.configStore.GetFloat(domain.SettingRequestsPerSecond.String()),
		PollInterval:      s.getDuration(domain.SettingPollInterval, time.Second, defaults.PollInterval),
		WaitTimeout:       s.getDuration(domain.SettingWaitTimeout, time.Minute, defaults.WaitTimeout),
	}

	return settings, nil
}

// Save persists settings. An empty API key leaves the stored key untouched.
func (s *SettingsService) Save(settings *domain.ClientSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if settings.APIKey != "" {
		if err := s.configStore.Set(domain.SettingAPIKey.String(), settings.APIKey); err != nil {
			return fmt.Errorf("save api_key: %w", err)
		}
	}
	if err := s.configStore.Set(domain.SettingBaseURL.String(), settings.BaseURL); err != nil {
		return fmt.Errorf("save base_url: %w", err)
	}
	if err := s.configStore.Set(domain.SettingTimeoutSeconds.String(), int64(settings.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save timeout: %w", err)
	}
	if err := s.configStore.Set(domain.SettingRequestsPerSecond.String(), settings.RequestsPerSecond); err != nil {
		return fmt.Errorf("save requests_per_second: %w", err)
	}
	if err := s.configStore.Set(domain.SettingPollInterval.String(), int64(settings.PollInterval/time.Second)); err != nil {
		return fmt.Errorf("save poll interval: %w", err)
	}
	if err := s.configStore.Set(domain.SettingWaitTimeout.String(), int64(settings.WaitTimeout/time.Minute)); err != nil {
		return fmt.Errorf("save wait timeout: %w", err)
	}

	return nil
}

// Set parses value for key and persists it. An empty value resets the key
// to its default.
func (s *SettingsService) Set(key domain.SettingKey, value string) error {
	if !key.IsValid() {
		return fmt.Errorf("unknown setting: %s", key)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		if err := s.configStore.Unset(key.String()); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
		return nil
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case domain.SettingAPIKey:
		return s.SetAPIKey(value)
	case domain.SettingBaseURL:
		settings.BaseURL = strings.TrimRight(value, "/")
	case domain.SettingTimeoutSeconds:
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		settings.Timeout = time.Duration(n) * time.Second
	case domain.SettingRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.NewValidationError(key.String(), fmt.Sprintf("%s must be a number", key))
		}
		settings.RequestsPerSecond = f
	case domain.SettingPollInterval:
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		settings.PollInterval = time.Duration(n) * time.Second
	case domain.SettingWaitTimeout:
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		settings.WaitTimeout = time.Duration(n) * time.Minute
	}

	return s.Save(settings)
}

// SetAPIKey stores the API key.
func (s *SettingsService) SetAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return domain.MissingAPIKey()
	}
	if err := s.configStore.Set(domain.SettingAPIKey.String(), apiKey); err != nil {
		return fmt.Errorf("save api_key: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ClientSettings {
	return domain.DefaultClientSettings()
}

// Validate checks the stored settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key domain.SettingKey, defaultVal string) string {
	val := s.configStore.GetString(key.String())
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key domain.SettingKey, unit, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key.String())
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * unit
}

func parsePositiveInt(key domain.SettingKey, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError(key.String(), fmt.Sprintf("%s must be a positive integer", key))
	}
	return n, nil
}
