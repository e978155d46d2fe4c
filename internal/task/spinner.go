package task

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-runewidth"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
)

// DefaultSpinner is used when an item does not name a preset.
const DefaultSpinner = "dot"

var spinnerPresets = map[string]spinner.Spinner{
	"line":      spinner.Line,
	"dot":       spinner.Dot,
	"minidot":   spinner.MiniDot,
	"jump":      spinner.Jump,
	"pulse":     spinner.Pulse,
	"points":    spinner.Points,
	"globe":     spinner.Globe,
	"moon":      spinner.Moon,
	"monkey":    spinner.Monkey,
	"meter":     spinner.Meter,
	"hamburger": spinner.Hamburger,
	"ellipsis":  spinner.Ellipsis,
}

// SpinnerNames lists the accepted spinner presets.
func SpinnerNames() []string {
	names := make([]string, 0, len(spinnerPresets))
	for name := range spinnerPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// spin cycles through the frames of a bubbles spinner preset.
type spin struct {
	caption string
	frames  []string
	frame   int
	row     int
	cols    int
}

func (p *spin) Paint(s surface.Surface) {
	s.Clear()
	if p.caption != "" {
		s.DrawText(0, 1, p.caption)
	}
	f := p.frames[p.frame%len(p.frames)]
	col := (p.cols - runewidth.StringWidth(f)) / 2
	if col < 0 {
		col = 0
	}
	s.DrawText(p.row, col, f)
	p.frame++
}

// Spinner returns a factory for a spinner animation using the named preset.
// An empty name selects DefaultSpinner.
func Spinner(caption, preset string, opts Options) Factory {
	if preset == "" {
		preset = DefaultSpinner
	}
	return func(s surface.Surface, id Identity) (*Handle, error) {
		sp, ok := spinnerPresets[preset]
		if !ok || len(sp.Frames) == 0 {
			return nil, fmt.Errorf("task: unknown spinner %q", preset)
		}
		rows, cols := s.Dimensions()
		if rows < 1 || cols < 1 {
			return nil, ErrSurfaceTooSmall
		}
		frames := make([]string, len(sp.Frames))
		copy(frames, sp.Frames)
		p := &spin{caption: caption, frames: frames, row: rows / 2, cols: cols}
		return Spawn(s, id, p, opts), nil
	}
}
