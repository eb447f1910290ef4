package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui/views/wait"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// waitModel runs the wait view on its own, without the dashboard.
type waitModel struct {
	ctx      context.Context
	view     *wait.View
	reportID string
	opts     domain.WaitOptions
}

func (m *waitModel) Init() tea.Cmd {
	return m.view.Start(m.ctx, m.reportID, m.opts)
}

func (m *waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.view.Stop()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *waitModel) View() string {
	return m.view.View()
}

// RunWait polls reportID with a spinner until it finishes, rendering to out.
// Leaving early with q, esc or ctrl+c returns context.Canceled.
func RunWait(
	ctx context.Context,
	reports driving.ReportService,
	reportID string,
	opts domain.WaitOptions,
	in io.Reader,
	out io.Writer,
) (*domain.Report, error) {
	if reports == nil {
		return nil, ErrMissingReportService
	}

	view := wait.NewView(nil, reports)
	view.SetStandalone(true)

	m := &waitModel{ctx: ctx, view: view, reportID: reportID, opts: opts}
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, err
	}
	view.Stop()

	if !view.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, context.Canceled
	}
	return view.Result()
}
