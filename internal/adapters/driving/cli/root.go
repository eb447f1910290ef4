// Package cli provides the surmado command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
	"github.com/surmado/surmado-go/internal/logger"
)

// EnvAPIKey is the environment variable holding the API key.
const EnvAPIKey = "SURMADO_API_KEY"

// Wiring builds services on first use, after global flags are parsed.
type Wiring struct {
	// NewSettings opens the settings store in configDir ("" for the default).
	NewSettings func(configDir string) (driving.SettingsService, error)

	// NewReports builds the report service. ledger is false with --no-ledger.
	NewReports func(settings *domain.ClientSettings, ledger bool) (driving.ReportService, error)

	// WatchConfig calls onChange whenever the settings file changes.
	WatchConfig func(ctx context.Context, onChange func()) error
}

var (
	version = "dev"
	wiring  Wiring

	// Services are resolved lazily. Tests set them directly.
	reportService   driving.ReportService
	settingsService driving.SettingsService
	servicesMu      sync.Mutex

	lookupEnv = os.LookupEnv
)

// Global flags.
var (
	verbose     bool
	jsonOutput  bool
	noLedger    bool
	configDir   string
	apiKeyFlag  string
	baseURLFlag string
	callTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "surmado",
	Short: "Order and track Surmado marketing intelligence reports",
	Long: `surmado submits Signal (AI visibility), Scan (SEO audit) and Solutions
(strategy) reports to the Surmado API and tracks them to completion.

The API key is read from --api-key, then $SURMADO_API_KEY, then the config
file written by 'surmado config set-key'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&noLedger, "no-ledger", false, "do not record submissions in the local history")
	flags.StringVar(&configDir, "config-dir", "", "config directory (default ~/.surmado)")
	flags.StringVar(&apiKeyFlag, "api-key", "", "API key (overrides $SURMADO_API_KEY and config)")
	flags.StringVar(&baseURLFlag, "base-url", "", "API base URL")
	flags.DurationVar(&callTimeout, "request-timeout", 0, "per-request timeout (default from config)")
}

// SetVersion sets the version reported by 'surmado version'.
func SetVersion(v string) {
	version = v
}

// Version returns the CLI version.
func Version() string {
	return version
}

// Configure installs the service constructors.
func Configure(w Wiring) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	wiring = w
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func getSettings() (driving.SettingsService, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	if settingsService != nil {
		return settingsService, nil
	}
	if wiring.NewSettings == nil {
		return nil, errors.New("settings service not configured")
	}

	s, err := wiring.NewSettings(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService = s
	return s, nil
}

// clientSettings returns stored settings with flag and environment overrides.
// Without a settings store the defaults are used.
func clientSettings() (*domain.ClientSettings, error) {
	settings := domain.DefaultClientSettings()

	if hasSettings() {
		s, err := getSettings()
		if err != nil {
			return nil, err
		}
		stored, err := s.Get()
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		settings = *stored
	}

	if key, ok := lookupEnv(EnvAPIKey); ok && strings.TrimSpace(key) != "" {
		settings.APIKey = strings.TrimSpace(key)
	}
	if apiKeyFlag != "" {
		settings.APIKey = strings.TrimSpace(apiKeyFlag)
	}
	if baseURLFlag != "" {
		settings.BaseURL = strings.TrimRight(baseURLFlag, "/")
	}
	return &settings, nil
}

func hasSettings() bool {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	return settingsService != nil || wiring.NewSettings != nil
}

func getReports() (driving.ReportService, error) {
	servicesMu.Lock()
	svc := reportService
	servicesMu.Unlock()
	if svc != nil {
		return svc, nil
	}

	svc, err := buildReports()
	if err != nil {
		return nil, err
	}

	servicesMu.Lock()
	defer servicesMu.Unlock()
	if reportService == nil {
		reportService = svc
	}
	return reportService, nil
}

// buildReports constructs a fresh report service from current settings.
func buildReports() (driving.ReportService, error) {
	if wiring.NewReports == nil {
		return nil, errors.New("report service not configured")
	}

	settings, err := clientSettings()
	if err != nil {
		return nil, err
	}
	if !settings.HasAPIKey() {
		return nil, domain.MissingAPIKey()
	}

	logger.Debug("API key: %s", logger.Redact(settings.APIKey))
	return wiring.NewReports(settings, !noLedger)
}

// callOptions returns per-call options from global flags.
func callOptions() []domain.CallOption {
	if callTimeout > 0 {
		return []domain.CallOption{domain.WithTimeout(callTimeout)}
	}
	return nil
}
