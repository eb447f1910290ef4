package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// waitFlags are shared by every command that can wait for a report.
type waitFlags struct {
	timeout  time.Duration
	interval time.Duration
}

func (f *waitFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "maximum time to wait (default from config, 20m)")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "time between status checks (default from config, 30s)")
}

func (f *waitFlags) options() domain.WaitOptions {
	opts := domain.WaitOptions{}
	if settings, err := clientSettings(); err == nil {
		opts = settings.WaitOptions()
	}
	if f.timeout > 0 {
		opts.Timeout = f.timeout
	}
	if f.interval > 0 {
		opts.Interval = f.interval
	}
	return opts.WithDefaults()
}

// waitAndPrint waits for reportID and prints the outcome. Terminals get a
// spinner; other outputs get one line per status change on stderr.
func waitAndPrint(cmd *cobra.Command, reports driving.ReportService, reportID string, flags *waitFlags) error {
	opts := flags.options()

	var (
		report *domain.Report
		err    error
	)
	if !jsonOutput && isTerminal(cmd.OutOrStdout()) && isTerminal(os.Stdin) {
		report, err = tui.RunWait(cmd.Context(), reports, reportID, opts, os.Stdin, cmd.OutOrStdout())
	} else {
		if !jsonOutput {
			opts.OnProgress = statusPrinter(cmd.ErrOrStderr(), reportID)
		}
		report, err = reports.WaitForReport(cmd.Context(), reportID, opts)
	}
	if err != nil {
		return err
	}

	return printReport(cmd, report)
}

// statusPrinter reports each status change once.
func statusPrinter(w io.Writer, reportID string) func(*domain.Report) {
	var last domain.Status
	return func(r *domain.Report) {
		if r.Status == last {
			return
		}
		last = r.Status
		_, _ = io.WriteString(w, reportID+": "+string(r.Status)+"\n")
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
