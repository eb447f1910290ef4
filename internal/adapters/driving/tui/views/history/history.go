// Package history provides the view listing locally recorded submissions.
package history

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui/components/list"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/messages"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/styles"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// Limit is how many ledger entries the view loads.
const Limit = 200

// View lists recorded submissions.
type View struct {
	styles  *styles.Styles
	reports driving.ReportService
	list    *list.ReportList

	err     error
	loading bool
}

// NewView creates a history view.
func NewView(s *styles.Styles, reports driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		reports: reports,
		list:    list.NewReportList(s),
	}
}

// Load fetches the ledger.
func (v *View) Load(ctx context.Context) tea.Cmd {
	v.loading = true
	reports := v.reports
	return func() tea.Msg {
		entries, err := reports.History(ctx, Limit)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

// Update handles history messages.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.list.SetEntries(msg.Entries)
		}
		return v, nil

	case messages.WaitProgress:
		if msg.Report != nil {
			v.list.UpdateStatus(msg.Report.ReportID, msg.Report.Status)
		}
		return v, nil

	case messages.ReportLoaded:
		if msg.Report != nil {
			v.list.UpdateStatus(msg.ReportID, msg.Report.Status)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return v, func() tea.Msg { return messages.Quit{} }
		case "enter":
			return v, v.navigate(messages.ViewReport)
		case "w":
			if e := v.list.SelectedEntry(); e != nil && e.LastStatus.IsTerminal() {
				return v, v.navigate(messages.ViewReport)
			}
			return v, v.navigate(messages.ViewWait)
		}
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) navigate(view messages.ViewType) tea.Cmd {
	e := v.list.SelectedEntry()
	if e == nil {
		return nil
	}
	id := e.ReportID
	return func() tea.Msg { return messages.ViewChanged{View: view, ReportID: id} }
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Surmado reports"))
	b.WriteString("\n\n")

	switch {
	case v.loading && v.list.Count() == 0:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	default:
		b.WriteString(v.list.View())
	}
	return b.String()
}

// Entries returns the listed entries.
func (v *View) Entries() []domain.LedgerEntry {
	return v.list.Entries()
}

// Selected returns the selected entry, or nil.
func (v *View) Selected() *domain.LedgerEntry {
	return v.list.SelectedEntry()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height-4)
}
