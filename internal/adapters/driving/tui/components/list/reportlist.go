// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui/styles"
	"github.com/surmado/surmado-go/internal/core/domain"
)

// ReportList displays ledger entries in a navigable list.
type ReportList struct {
	entries  []domain.LedgerEntry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewReportList creates a new report list component.
func NewReportList(s *styles.Styles) *ReportList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ReportList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (r *ReportList) Update(msg tea.Msg) (*ReportList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the report list.
func (r *ReportList) View() string {
	if len(r.entries) == 0 {
		return r.styles.Muted.Render("No reports submitted from this machine yet")
	}

	lines := make([]string, 0, len(r.entries)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Reports (%d)", len(r.entries))), "")

	visible := r.height - 4
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.entries) {
		end = len(r.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderEntry(i, &r.entries[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *ReportList) renderEntry(index int, e *domain.LedgerEntry) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	brand := e.BrandName
	if brand == "" {
		brand = e.BrandSlug
	}
	if brand == "" {
		brand = "-"
	}

	maxBrand := r.width - 60
	if maxBrand < 10 {
		maxBrand = 10
	}
	if len(brand) > maxBrand {
		brand = brand[:maxBrand-3] + "..."
	}

	product := string(e.Product)
	if e.Rerun {
		product += "*"
	}

	line := fmt.Sprintf("%s%-10s %-8s %-*s %s  ",
		indicator, product, e.Tier, maxBrand, brand, e.CreatedAt.Local().Format("2006-01-02 15:04"))

	if index == r.selected {
		return r.styles.Selected.Render(line) + " " + r.styles.RenderStatus(e.LastStatus)
	}
	return r.styles.Normal.Render(line) + " " + r.styles.RenderStatus(e.LastStatus)
}

// SetEntries replaces the listed entries.
func (r *ReportList) SetEntries(entries []domain.LedgerEntry) {
	r.entries = entries
	r.selected = 0
}

// Entries returns the listed entries.
func (r *ReportList) Entries() []domain.LedgerEntry {
	return r.entries
}

// Selected returns the index of the selected entry.
func (r *ReportList) Selected() int {
	return r.selected
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (r *ReportList) SelectedEntry() *domain.LedgerEntry {
	if r.selected < 0 || r.selected >= len(r.entries) {
		return nil
	}
	return &r.entries[r.selected]
}

// UpdateStatus sets the status of a listed report, if present.
func (r *ReportList) UpdateStatus(reportID string, status domain.Status) {
	for i := range r.entries {
		if r.entries[i].ReportID == reportID {
			r.entries[i].LastStatus = status
			return
		}
	}
}

// MoveUp moves selection up.
func (r *ReportList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ReportList) MoveDown() {
	if r.selected < len(r.entries)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ReportList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of entries.
func (r *ReportList) Count() int {
	return len(r.entries)
}
