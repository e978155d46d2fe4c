package panels

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuEntry is one row of the menu.
type MenuEntry struct {
	Label string
	Kind  string // "static", "bounce", "spinner" or ""
}

// menuItem implements list.Item for a menu entry.
type menuItem struct {
	entry MenuEntry
	live  bool // a task is painting this item's preview
}

func (i menuItem) Title() string { return i.entry.Label }

func (i menuItem) Description() string { return i.entry.Kind }

func (i menuItem) FilterValue() string { return i.entry.Label }

// menuDelegate renders compact single-line items with a "> " cursor.
type menuDelegate struct {
	highlight lipgloss.Style
}

func (d menuDelegate) Height() int                             { return 1 }
func (d menuDelegate) Spacing() int                            { return 0 }
func (d menuDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d menuDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(menuItem)
	if !ok {
		return
	}
	s := item.Title()
	if item.live {
		s += " ●"
	}
	if index == m.Index() {
		s = d.highlight.Render("> " + s)
	} else {
		s = "  " + s
	}
	_, _ = fmt.Fprint(w, s)
}

// MenuPanel shows the selectable items. The highlight follows the selector;
// the panel never moves it on its own.
type MenuPanel struct {
	list    list.Model
	entries []MenuEntry
	live    int // index with a running task, -1 if none
	title   string
	width   int
	height  int
}

// NewMenuPanel creates a menu over entries with the first row highlighted.
// title is shown above the list when non-empty.
func NewMenuPanel(entries []MenuEntry, title string, highlight lipgloss.Style, w, h int) MenuPanel {
	p := MenuPanel{entries: entries, live: -1, title: title, width: w, height: h}
	l := list.New(nil, menuDelegate{highlight: highlight}, w, p.listHeight())
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetItems(p.buildItems())
	p.list = l
	return p
}

func (p MenuPanel) listHeight() int {
	h := p.height
	if p.title != "" {
		h -= 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (p MenuPanel) buildItems() []list.Item {
	items := make([]list.Item, len(p.entries))
	for i, e := range p.entries {
		items[i] = menuItem{entry: e, live: i == p.live}
	}
	return items
}

// Select highlights the entry at index. Out-of-range indexes are ignored.
func (p MenuPanel) Select(index int) MenuPanel {
	if index >= 0 && index < len(p.entries) {
		p.list.Select(index)
	}
	return p
}

// SetLive marks index as having a running task. Pass -1 to clear.
func (p MenuPanel) SetLive(index int) MenuPanel {
	p.live = index
	cur := p.list.Index()
	p.list.SetItems(p.buildItems())
	p.list.Select(cur)
	return p
}

// Index returns the highlighted row.
func (p MenuPanel) Index() int { return p.list.Index() }

// Live returns the row with a running task, or -1.
func (p MenuPanel) Live() int { return p.live }

// SelectedLabel returns the highlighted label, or "" for an empty menu.
func (p MenuPanel) SelectedLabel() string {
	if item, ok := p.list.SelectedItem().(menuItem); ok {
		return item.entry.Label
	}
	return ""
}

// SetSize resizes the panel.
func (p MenuPanel) SetSize(w, h int) MenuPanel {
	p.width = w
	p.height = h
	p.list.SetSize(w, p.listHeight())
	return p
}

// View renders the menu.
func (p MenuPanel) View() string {
	if len(p.entries) == 0 {
		return lipgloss.NewStyle().
			Width(p.width).Height(p.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("#888888")).
			Render("No items")
	}
	if p.title == "" {
		return p.list.View()
	}
	title := lipgloss.NewStyle().Bold(true).Width(p.width).Render(p.title)
	return lipgloss.JoinVertical(lipgloss.Left, title, "", p.list.View())
}
