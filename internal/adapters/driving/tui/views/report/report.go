// Package report provides the single report detail view.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui/messages"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/styles"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// View shows the live status of one report.
type View struct {
	styles  *styles.Styles
	reports driving.ReportService
	ctx     context.Context

	reportID string
	report   *domain.Report
	err      error
	loading  bool

	width  int
	height int
}

// NewView creates a report view.
func NewView(s *styles.Styles, reports driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		reports: reports,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// Load fetches reportID and returns the command that delivers it.
func (v *View) Load(ctx context.Context, reportID string) tea.Cmd {
	v.ctx = ctx
	v.reportID = reportID
	v.report = nil
	v.err = nil
	return v.fetch()
}

func (v *View) fetch() tea.Cmd {
	v.loading = true
	ctx, reports, id := v.ctx, v.reports, v.reportID
	return func() tea.Msg {
		report, err := reports.GetReport(ctx, id)
		return messages.ReportLoaded{ReportID: id, Report: report, Err: err}
	}
}

// Update handles report view messages.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ReportLoaded:
		if msg.ReportID != v.reportID {
			return v, nil
		}
		v.loading = false
		v.report = msg.Report
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHistory} }
		case "r":
			if !v.loading {
				return v, v.fetch()
			}
		case "w":
			if v.report != nil && v.report.IsTerminal() {
				return v, nil
			}
			id := v.reportID
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewWait, ReportID: id} }
		}
	}
	return v, nil
}

// View renders the report view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Report " + v.reportID))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		return b.String()
	case v.report == nil:
		return b.String()
	}

	r := v.report
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(v.styles.Label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Product", string(r.Product))
	row("Tier", string(r.Tier))
	row("Status", v.styles.RenderStatus(r.Status))
	row("Brand", r.BrandSlug)
	row("Token", r.Token)
	row("Created", r.CreatedAt)
	row("Completed", r.CompletedAt)

	if r.Status == domain.StatusFailed || r.Status == domain.StatusCancelled {
		row("Reason", v.styles.Error.Render(r.Reason()))
	}

	if r.DownloadURL != "" {
		b.WriteString("\n")
		row("PDF", r.DownloadURL)
		row("PowerPoint", r.PPTXDownloadURL)
		row("Data", r.IntelligenceDownloadURL)
		if !r.FetchedAt.IsZero() {
			row("Expires", r.DownloadsExpireAt().Local().Format("15:04:05")+" (press r to refresh)")
		}
	}

	if len(r.Summary) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Summary"))
		b.WriteString("\n")
		keys := make([]string, 0, len(r.Summary))
		for k := range r.Summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			row(k, fmt.Sprint(r.Summary[k]))
		}
	}

	return b.String()
}

// Report returns the loaded report.
func (v *View) Report() *domain.Report {
	return v.report
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Loading reports whether a fetch is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
