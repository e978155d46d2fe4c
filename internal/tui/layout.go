package tui

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Minimum terminal size for the two-pane preview layout.
const (
	minWidth  = 60
	minHeight = 16
)

// Layout holds the computed panel geometry for a given terminal size.
type Layout struct {
	Header, Footer Rect
	Menu, Preview  Rect
	Events         Rect // zero height when the event pane is hidden
	TooSmall       bool // true when terminal is below the minimum 60×16
}

// Calculate computes the preview-style layout for a terminal of the given
// dimensions. Returns a Layout with TooSmall=true if width < 60 or height < 16.
//
// Algorithm:
//   - Header: full width, 1 row at top
//   - Footer: full width, 1 row at bottom
//   - Menu: one third of width, clamped to [18, 40], full body height
//   - Preview: remaining width × 65% of body height (all of it without events)
//   - Events: remaining width × remaining body height
func Calculate(width, height int, showEvents bool) Layout {
	if width < minWidth || height < minHeight {
		return Layout{TooSmall: true}
	}

	bodyH := height - 2

	menuW := width / 3
	if menuW < 18 {
		menuW = 18
	}
	if menuW > 40 {
		menuW = 40
	}
	rightW := width - menuW

	previewH := bodyH
	eventsH := 0
	if showEvents {
		previewH = bodyH * 65 / 100
		eventsH = bodyH - previewH
	}

	return Layout{
		Header:  Rect{X: 0, Y: 0, Width: width, Height: 1},
		Footer:  Rect{X: 0, Y: height - 1, Width: width, Height: 1},
		Menu:    Rect{X: 0, Y: 1, Width: menuW, Height: bodyH},
		Preview: Rect{X: menuW, Y: 1, Width: rightW, Height: previewH},
		Events:  Rect{X: menuW, Y: 1 + previewH, Width: rightW, Height: eventsH},
	}
}

// CalculateList computes the list-style layout: a single bordered menu box
// sized to its content and centered in the body. rows is the number of menu
// items, cols the widest label.
func CalculateList(width, height, rows, cols int) Layout {
	boxW := cols + 8 // border, padding and the "> " cursor
	boxH := rows + 4 // border and title row
	if width < boxW || height < boxH+2 {
		return Layout{TooSmall: true}
	}
	return Layout{
		Header: Rect{X: 0, Y: 0, Width: width, Height: 1},
		Footer: Rect{X: 0, Y: height - 1, Width: width, Height: 1},
		Menu:   Rect{X: (width - boxW) / 2, Y: 1, Width: boxW, Height: boxH},
	}
}

// innerDims returns the content dimensions for a panel rect accounting for
// the 1-character border on each side (2 total per dimension).
func innerDims(r Rect) (w, h int) {
	w = r.Width - 2
	if w < 1 {
		w = 1
	}
	h = r.Height - 2
	if h < 1 {
		h = 1
	}
	return
}
