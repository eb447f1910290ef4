// Command surmado orders and tracks Surmado reports from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/surmado/surmado-go/internal/adapters/driven/api"
	"github.com/surmado/surmado-go/internal/adapters/driven/config/file"
	"github.com/surmado/surmado-go/internal/adapters/driven/storage/sqlite"
	"github.com/surmado/surmado-go/internal/adapters/driving/cli"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
	"github.com/surmado/surmado-go/internal/core/services"
	"github.com/surmado/surmado-go/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{}
	defer app.close()

	cli.SetVersion(version)
	cli.Configure(cli.Wiring{
		NewSettings: app.settings,
		NewReports:  app.reports,
		WatchConfig: app.watch,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

// app owns the long-lived resources behind the CLI services.
type app struct {
	mu     sync.Mutex
	config *file.ConfigStore

	ledgerOnce sync.Once
	store      *sqlite.Store
	ledger     driven.ReportLedger
	ledgerErr  error
}

func (a *app) settings(configDir string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.config = store
	a.mu.Unlock()

	return services.NewSettingsService(store), nil
}

func (a *app) reports(settings *domain.ClientSettings, withLedger bool) (driving.ReportService, error) {
	client, err := api.NewClient(api.Config{
		APIKey:            settings.APIKey,
		BaseURL:           settings.BaseURL,
		Timeout:           settings.Timeout,
		RequestsPerSecond: settings.RequestsPerSecond,
		UserAgent:         api.DefaultUserAgent + "/" + version,
	})
	if err != nil {
		return nil, err
	}

	var ledger driven.ReportLedger
	if withLedger {
		ledger, err = a.openLedger()
		if err != nil {
			logger.Warn("local history unavailable: %v", err)
			ledger = nil
		}
	}

	return services.NewReportService(client, ledger), nil
}

// openLedger opens the history database next to the config file, once.
func (a *app) openLedger() (driven.ReportLedger, error) {
	a.ledgerOnce.Do(func() {
		dataDir := ""
		a.mu.Lock()
		if a.config != nil {
			dataDir = filepath.Join(filepath.Dir(a.config.Path()), "data")
		}
		a.mu.Unlock()

		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			a.ledgerErr = err
			return
		}
		logger.Debug("history database: %s", store.Path())
		a.store = store
		a.ledger = store.Ledger()
	})
	return a.ledger, a.ledgerErr
}

func (a *app) watch(ctx context.Context, onChange func()) error {
	a.mu.Lock()
	store := a.config
	a.mu.Unlock()

	if store == nil {
		return errors.New("config store not open")
	}
	return store.Watch(ctx, onChange)
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Warn("closing history database: %v", err)
		}
	}
}
