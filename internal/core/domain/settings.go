package domain

import (
	"fmt"
	"time"
)

// Client defaults.
const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.surmado.com/v1"

	// DefaultRequestTimeout bounds a single HTTP call.
	DefaultRequestTimeout = 30 * time.Second
)

// SettingKey names a persisted client setting.
type SettingKey string

// Setting keys as they appear in config.toml.
//
//nolint:gosec // G101: key names, not credentials.
const (
	SettingAPIKey            SettingKey = "api_key"
	SettingBaseURL           SettingKey = "base_url"
	SettingTimeoutSeconds    SettingKey = "timeout_seconds"
	SettingRequestsPerSecond SettingKey = "requests_per_second"
	SettingPollInterval      SettingKey = "poll_interval_seconds"
	SettingWaitTimeout       SettingKey = "wait_timeout_minutes"
)

// AllSettingKeys returns every setting key in display order.
func AllSettingKeys() []SettingKey {
	return []SettingKey{
		SettingAPIKey,
		SettingBaseURL,
		SettingTimeoutSeconds,
		SettingRequestsPerSecond,
		SettingPollInterval,
		SettingWaitTimeout,
	}
}

// IsValid returns true if the key is known.
func (k SettingKey) IsValid() bool {
	for _, known := range AllSettingKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the key name.
func (k SettingKey) String() string {
	return string(k)
}

// ClientSettings is the resolved client configuration.
type ClientSettings struct {
	APIKey  string
	BaseURL string

	// Timeout is the default per-request timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls. Zero disables throttling.
	RequestsPerSecond float64

	PollInterval time.Duration
	WaitTimeout  time.Duration
}

// DefaultClientSettings returns settings with every default applied and no API key.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultRequestTimeout,
		PollInterval: DefaultPollInterval,
		WaitTimeout:  DefaultWaitTimeout,
	}
}

// HasAPIKey returns true if an API key is set.
func (s ClientSettings) HasAPIKey() bool {
	return !isBlank(s.APIKey)
}

// Validate checks the non-credential settings.
func (s ClientSettings) Validate() error {
	if err := validateWebURL(string(SettingBaseURL), s.BaseURL); err != nil {
		return err
	}
	if s.Timeout <= 0 {
		return NewValidationError(string(SettingTimeoutSeconds), "timeout must be positive")
	}
	if s.RequestsPerSecond < 0 {
		return NewValidationError(string(SettingRequestsPerSecond), "requests_per_second cannot be negative")
	}
	if s.PollInterval <= 0 {
		return NewValidationError(string(SettingPollInterval), "poll interval must be positive")
	}
	if s.WaitTimeout < s.PollInterval {
		return NewValidationError(string(SettingWaitTimeout),
			fmt.Sprintf("wait timeout %s is shorter than poll interval %s", s.WaitTimeout, s.PollInterval))
	}
	return nil
}

// WaitOptions returns poller options from the configured budget and interval.
func (s ClientSettings) WaitOptions() WaitOptions {
	return WaitOptions{Timeout: s.WaitTimeout, Interval: s.PollInterval}
}
