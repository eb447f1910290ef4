// Package wait provides the view that polls a report until it finishes.
package wait

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui/messages"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/styles"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// progressBuffer bounds queued progress updates. Extra updates are dropped.
const progressBuffer = 8

// View shows a spinner and the latest status while a report is polled.
type View struct {
	styles  *styles.Styles
	reports driving.ReportService
	spinner spinner.Model

	// standalone views quit the program when the wait ends.
	standalone bool

	reportID string
	started  time.Time
	polls    int
	last     *domain.Report
	result   *domain.Report
	err      error
	done     bool

	progress chan *domain.Report
	cancel   context.CancelFunc

	now    func() time.Time
	width  int
	height int
}

// NewView creates a wait view.
func NewView(s *styles.Styles, reports driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &View{
		styles:  s,
		reports: reports,
		spinner: sp,
		now:     time.Now,
		width:   80,
		height:  24,
	}
}

// SetStandalone makes the view quit the program when the wait ends.
func (v *View) SetStandalone(standalone bool) {
	v.standalone = standalone
}

// Start begins polling reportID and returns the commands that drive the view.
// Any wait already in progress is cancelled.
func (v *View) Start(ctx context.Context, reportID string, opts domain.WaitOptions) tea.Cmd {
	v.Stop()

	ctx, cancel := context.WithCancel(ctx)
	progress := make(chan *domain.Report, progressBuffer)

	v.reportID = reportID
	v.started = v.now()
	v.polls = 0
	v.last = nil
	v.result = nil
	v.err = nil
	v.done = false
	v.progress = progress
	v.cancel = cancel

	onProgress := opts.OnProgress
	opts.OnProgress = func(r *domain.Report) {
		if onProgress != nil {
			onProgress(r)
		}
		select {
		case progress <- r:
		default:
		}
	}

	reports := v.reports
	waitCmd := func() tea.Msg {
		report, err := reports.WaitForReport(ctx, reportID, opts)
		close(progress)
		return messages.WaitFinished{Report: report, Err: err}
	}

	return tea.Batch(v.spinner.Tick, waitCmd, listen(progress))
}

// Stop cancels the wait in progress, if any.
func (v *View) Stop() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func listen(progress <-chan *domain.Report) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-progress
		if !ok {
			return nil
		}
		return messages.WaitProgress{Report: r}
	}
}

// Update handles wait messages.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			v.Stop()
			if v.standalone {
				return v, tea.Quit
			}
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHistory} }
		}
		return v, nil

	case messages.WaitProgress:
		if v.done {
			return v, nil
		}
		v.polls++
		v.last = msg.Report
		return v, listen(v.progress)

	case messages.WaitFinished:
		v.done = true
		v.result = msg.Report
		v.err = msg.Err
		v.cancel = nil
		if msg.Report != nil {
			v.last = msg.Report
		}
		if v.standalone {
			return v, tea.Quit
		}
		return v, nil

	case spinner.TickMsg:
		if v.done {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

// View renders the wait view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Report " + v.reportID))
	b.WriteString("\n\n")

	switch {
	case v.done && v.err == nil:
		b.WriteString(v.styles.Success.Render("✓ Completed"))
		b.WriteString("\n\n")
		b.WriteString(renderDownloads(v.styles, v.result))
	case v.done && domain.IsReportFailed(v.err):
		b.WriteString(v.styles.Error.Render("✗ " + failureReason(v.err)))
	case v.done:
		b.WriteString(v.styles.Error.Render("✗ " + v.err.Error()))
	default:
		status := "submitted"
		if v.last != nil {
			status = string(v.last.Status)
		}
		fmt.Fprintf(&b, "%s %s  %s",
			v.spinner.View(),
			v.styles.Normal.Render(status),
			v.styles.Muted.Render(fmt.Sprintf("%s elapsed, %d polls", v.Elapsed().Round(time.Second), v.polls)))
	}

	b.WriteString("\n")
	return b.String()
}

func failureReason(err error) string {
	if e, ok := domain.AsError(err); ok && e.Reason != "" {
		return "Failed: " + e.Reason
	}
	return err.Error()
}

func renderDownloads(s *styles.Styles, r *domain.Report) string {
	if r == nil {
		return ""
	}

	var lines []string
	add := func(label, url string) {
		if url != "" {
			lines = append(lines, s.Label.Render(label)+s.Normal.Render(url))
		}
	}
	add("PDF", r.DownloadURL)
	add("PowerPoint", r.PPTXDownloadURL)
	add("Data", r.IntelligenceDownloadURL)

	if len(lines) == 0 {
		return s.Muted.Render("No downloads attached")
	}
	if !r.FetchedAt.IsZero() {
		lines = append(lines, s.Muted.Render("Links expire at "+r.DownloadsExpireAt().Local().Format("15:04:05")))
	}
	return strings.Join(lines, "\n")
}

// Elapsed returns how long the wait has been running.
func (v *View) Elapsed() time.Duration {
	if v.started.IsZero() {
		return 0
	}
	return v.now().Sub(v.started)
}

// Done reports whether the wait has ended.
func (v *View) Done() bool {
	return v.done
}

// Result returns the final report and error once the wait has ended.
func (v *View) Result() (*domain.Report, error) {
	return v.result, v.err
}

// Last returns the most recently observed report.
func (v *View) Last() *domain.Report {
	return v.last
}

// ReportID returns the report being waited on.
func (v *View) ReportID() string {
	return v.reportID
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
