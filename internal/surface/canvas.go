package surface

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Marker is the rune drawn by DrawMarker.
const Marker = '●'

// blank fills empty cells. wideTail marks the second cell of a double-width
// rune so Snapshot does not emit it.
const (
	blank    = ' '
	wideTail = 0
)

// Canvas is an in-memory cell grid implementing Surface and Snapshotter.
//
// The mutex guards the grid against the TUI reading a snapshot while a worker
// paints. It is not what keeps two tasks apart; the lifecycle manager's
// stop-before-start ordering does that.
type Canvas struct {
	mu      sync.Mutex
	rows    int
	cols    int
	cells   [][]rune
	version uint64
}

// NewCanvas creates a blank canvas. Dimensions below 1 are raised to 1.
func NewCanvas(rows, cols int) *Canvas {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	c := &Canvas{rows: rows, cols: cols, cells: make([][]rune, rows)}
	for r := range c.cells {
		c.cells[r] = make([]rune, cols)
	}
	c.clearLocked()
	return c
}

// Clear blanks the canvas.
func (c *Canvas) Clear() {
	c.mu.Lock()
	c.clearLocked()
	c.version++
	c.mu.Unlock()
}

func (c *Canvas) clearLocked() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = blank
		}
	}
}

// DrawText writes s at (row, col), honouring East Asian wide runes. Newlines
// are not interpreted; callers split multi-line text themselves.
func (c *Canvas) DrawText(row, col int, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row < 0 || row >= c.rows {
		return
	}
	line := c.cells[row]
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.cols {
			break
		}
		if col >= 0 {
			c.splitWide(line, col, w)
			line[col] = r
			if w == 2 {
				line[col+1] = wideTail
			}
		}
		col += w
	}
	c.version++
}

// splitWide blanks the halves of any wide rune that a write of width w at col
// would partially overwrite.
func (c *Canvas) splitWide(line []rune, col, w int) {
	if line[col] == wideTail && col > 0 {
		line[col-1] = blank
	}
	end := col + w
	if end < c.cols && line[end] == wideTail {
		line[end] = blank
	}
}

// DrawMarker draws Marker at (row, col). Out-of-range positions are ignored.
func (c *Canvas) DrawMarker(row, col int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.splitWide(c.cells[row], col, 1)
	c.cells[row][col] = Marker
	c.version++
}

// Dimensions returns the canvas size.
func (c *Canvas) Dimensions() (rows, cols int) {
	return c.rows, c.cols
}

// Snapshot returns the current contents, one string per row, trailing
// blanks preserved so the rendered block keeps its width.
func (c *Canvas) Snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, c.rows)
	var b strings.Builder
	for r, row := range c.cells {
		b.Reset()
		for _, cell := range row {
			if cell == wideTail {
				continue
			}
			b.WriteRune(cell)
		}
		out[r] = b.String()
	}
	return out
}

// Version reports the write counter.
func (c *Canvas) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// IsBlank reports whether every cell is empty.
func (c *Canvas) IsBlank() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, row := range c.cells {
		for _, cell := range row {
			if cell != blank {
				return false
			}
		}
	}
	return true
}
