package task

import "github.com/LISSConsulting/LISSTech.Marquee/internal/surface"

// bounce moves a marker back and forth across one row.
type bounce struct {
	caption string
	row     int
	width   int // fixed when the worker starts
	x       int
	dir     int
}

func newBounce(caption string, rows, cols int) *bounce {
	return &bounce{
		caption: caption,
		row:     rows / 2,
		width:   cols,
		x:       0,
		dir:     1,
	}
}

// Paint draws the marker at x, then advances it.
func (b *bounce) Paint(s surface.Surface) {
	s.Clear()
	if b.caption != "" {
		s.DrawText(0, 1, b.caption)
	}
	s.DrawMarker(b.row, b.x)
	b.step()
}

// step advances x by dir and reverses at either edge.
func (b *bounce) step() {
	if b.width <= 1 {
		b.x = 0
		return
	}
	b.x += b.dir
	if b.x <= 0 || b.x >= b.width-1 {
		b.dir = -b.dir
	}
}

// Bounce returns a factory for the bouncing-marker animation.
func Bounce(caption string, opts Options) Factory {
	return func(s surface.Surface, id Identity) (*Handle, error) {
		rows, cols := s.Dimensions()
		if rows < 1 || cols < 1 {
			return nil, ErrSurfaceTooSmall
		}
		return Spawn(s, id, newBounce(caption, rows, cols), opts), nil
	}
}
