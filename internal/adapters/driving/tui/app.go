package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui/components/status"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/keymap"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/messages"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/styles"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/views/history"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/views/report"
	"github.com/surmado/surmado-go/internal/adapters/driving/tui/views/wait"
)

// App is the report dashboard following the Elm architecture.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	historyView *history.View
	reportView  *report.View
	waitView    *wait.View
	statusBar   *status.Bar

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		historyView: history.NewView(s, ports.Reports),
		reportView:  report.NewView(s, ports.Reports),
		waitView:    wait.NewView(s, ports.Reports),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewHistory,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.SetWindowTitle("surmado"),
		a.historyView.Load(a.ctx),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.waitView.Stop()
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg)

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		a.setError(msg.Err)
		if msg.Err == nil {
			a.statusBar.SetCount(len(msg.Entries))
		}
		return a, cmd

	case messages.ReportLoaded:
		a.historyView, _ = a.historyView.Update(msg)
		a.reportView, cmd = a.reportView.Update(msg)
		a.setError(msg.Err)
		return a, cmd

	case messages.WaitProgress:
		if a.waitView.Done() {
			return a, nil
		}
		a.historyView, _ = a.historyView.Update(msg)
		a.waitView, cmd = a.waitView.Update(msg)
		if msg.Report != nil {
			a.statusBar.SetMessage(string(msg.Report.Status))
		}
		return a, cmd

	case messages.WaitFinished:
		a.waitView, cmd = a.waitView.Update(msg)
		if msg.Report != nil {
			a.historyView, _ = a.historyView.Update(messages.WaitProgress{Report: msg.Report})
		}
		a.setError(msg.Err)
		return a, cmd

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		a.waitView.Stop()
		return a, tea.Quit
	}

	if a.currentView == messages.ViewWait {
		a.waitView, cmd = a.waitView.Update(msg)
	}
	return a, cmd
}

func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewHistory:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "r" {
			a.statusBar.SetState(status.StateLoading)
			return a.historyView.Load(a.ctx)
		}
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewWait:
		a.waitView, cmd = a.waitView.Update(msg)
	}
	return cmd
}

func (a *App) switchTo(msg messages.ViewChanged) tea.Cmd {
	if a.currentView == messages.ViewWait && msg.View != messages.ViewWait {
		a.waitView.Stop()
	}

	a.currentView = msg.View
	a.statusBar.Clear()

	switch msg.View {
	case messages.ViewHistory:
		a.statusBar.SetHints(a.keymap.HistoryHelp())
		return nil
	case messages.ViewReport:
		a.statusBar.SetHints(a.keymap.ReportHelp())
		return a.reportView.Load(a.ctx, msg.ReportID)
	case messages.ViewWait:
		a.statusBar.SetHints(a.keymap.WaitHelp())
		a.statusBar.SetState(status.StateWaiting)
		return a.waitView.Start(a.ctx, msg.ReportID, a.ports.Wait)
	}
	return nil
}

func (a *App) setError(err error) {
	a.err = err
	if err != nil {
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(err.Error())
		return
	}
	if a.currentView != messages.ViewWait || a.waitView.Done() {
		a.statusBar.SetState(status.StateReady)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewReport:
		body = a.reportView.View()
	case messages.ViewWait:
		body = a.waitView.View()
	default:
		body = a.historyView.View()
	}

	return body + "\n\n" + a.statusBar.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	a.waitView.Stop()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.historyView.SetDimensions(width, height-2)
	a.reportView.SetDimensions(width, height-2)
	a.waitView.SetDimensions(width, height-2)
	a.statusBar.SetWidth(width)
}
