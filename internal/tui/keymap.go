package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/selector"
)

// KeyMap holds the root model's key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Focus   key.Binding
	Follow  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
	}
}

// selectorKey translates a key press for the selector. ok is false when the
// key is not a selector key.
func (km KeyMap) selectorKey(msg tea.KeyMsg) (k selector.Key, ok bool) {
	switch {
	case key.Matches(msg, km.Up):
		return selector.KeyUp, true
	case key.Matches(msg, km.Down):
		return selector.KeyDown, true
	case key.Matches(msg, km.Confirm):
		return selector.KeyConfirm, true
	case key.Matches(msg, km.Cancel):
		return selector.KeyCancel, true
	}
	return selector.KeyOther, false
}

// HelpLine renders the bindings as "key:desc" pairs for the footer.
func HelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return strings.Join(parts, "  ")
}
