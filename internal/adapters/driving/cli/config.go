package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client settings",
	Long: `View and change the settings stored in ~/.surmado/config.toml.

Keys:
  api_key                 API key (prefer 'config set-key')
  base_url                API base URL
  timeout_seconds         per-request timeout
  requests_per_second     client-side throttle, 0 to disable
  poll_interval_seconds   time between status checks when waiting
  wait_timeout_minutes    how long to wait before giving up`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting (empty value resets it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [api-key]",
	Short: "Store the API key",
	Long: `Store the API key in the config file. Without an argument the key is
read from a hidden prompt, or from stdin when it is not a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSetKey,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

// readSecret reads a key from stdin. Replaced in tests.
var readSecret = func(cmd *cobra.Command) (string, error) {
	if isTerminal(os.Stdin) {
		cmd.Print("API key: ")
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return string(data), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read key: %w", err)
	}
	return line, nil
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configSetKeyCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

type configView struct {
	APIKey            string  `json:"api_key"`
	APIKeySource      string  `json:"api_key_source"`
	BaseURL           string  `json:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	PollSeconds       int     `json:"poll_interval_seconds"`
	WaitMinutes       int     `json:"wait_timeout_minutes"`
	Path              string  `json:"path"`
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := clientSettings()
	if err != nil {
		return err
	}
	s, err := getSettings()
	if err != nil {
		return err
	}

	view := configView{
		APIKey:            logger.Redact(settings.APIKey),
		APIKeySource:      apiKeySource(),
		BaseURL:           settings.BaseURL,
		TimeoutSeconds:    int(settings.Timeout.Seconds()),
		RequestsPerSecond: settings.RequestsPerSecond,
		PollSeconds:       int(settings.PollInterval.Seconds()),
		WaitMinutes:       int(settings.WaitTimeout.Minutes()),
		Path:              s.Path(),
	}
	if !settings.HasAPIKey() {
		view.APIKey = ""
	}

	if jsonOutput {
		return printJSON(cmd, view)
	}

	key := view.APIKey
	if key == "" {
		key = "(not set)"
	} else {
		key += " (" + view.APIKeySource + ")"
	}
	cmd.Printf("%-24s %s\n", domain.SettingAPIKey, key)
	cmd.Printf("%-24s %s\n", domain.SettingBaseURL, view.BaseURL)
	cmd.Printf("%-24s %d\n", domain.SettingTimeoutSeconds, view.TimeoutSeconds)
	cmd.Printf("%-24s %g\n", domain.SettingRequestsPerSecond, view.RequestsPerSecond)
	cmd.Printf("%-24s %d\n", domain.SettingPollInterval, view.PollSeconds)
	cmd.Printf("%-24s %d\n", domain.SettingWaitTimeout, view.WaitMinutes)
	cmd.Println()
	cmd.Printf("Config file: %s\n", view.Path)
	return nil
}

// apiKeySource names where the effective key comes from.
func apiKeySource() string {
	if apiKeyFlag != "" {
		return "flag"
	}
	if key, ok := lookupEnv(EnvAPIKey); ok && strings.TrimSpace(key) != "" {
		return "env"
	}
	return "config"
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := domain.SettingKey(strings.TrimSpace(args[0]))
	if !key.IsValid() {
		return domain.NewValidationError("key", fmt.Sprintf("unknown setting %q", args[0]))
	}

	s, err := getSettings()
	if err != nil {
		return err
	}
	if err := s.Set(key, args[1]); err != nil {
		return err
	}

	if key == domain.SettingAPIKey {
		cmd.Printf("Set %s to %s\n", key, logger.Redact(strings.TrimSpace(args[1])))
	} else {
		cmd.Printf("Set %s to %s\n", key, strings.TrimSpace(args[1]))
	}
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		read, err := readSecret(cmd)
		if err != nil {
			return err
		}
		key = read
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("no API key given")
	}

	s, err := getSettings()
	if err != nil {
		return err
	}
	if err := s.SetAPIKey(key); err != nil {
		return err
	}

	cmd.Printf("API key %s saved to %s\n", logger.Redact(key), s.Path())
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	s, err := getSettings()
	if err != nil {
		return err
	}
	cmd.Println(s.Path())
	return nil
}
