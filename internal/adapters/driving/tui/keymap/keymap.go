// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to the previous view.
	Back key.Binding

	Up   key.Binding
	Down key.Binding

	// Open shows the live status of the selected report.
	Open key.Binding

	// Wait polls the selected report until it finishes.
	Wait key.Binding

	// Refresh reloads the current view.
	Refresh key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Wait: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wait"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// HistoryHelp returns keybindings shown on the history view.
func (k *KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Open, k.Wait, k.Refresh, k.Quit}
}

// ReportHelp returns keybindings shown on the report view.
func (k *KeyMap) ReportHelp() []key.Binding {
	return []key.Binding{k.Wait, k.Refresh, k.Back}
}

// WaitHelp returns keybindings shown while waiting.
func (k *KeyMap) WaitHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
