// Package surface defines the drawable preview region shared between the
// selector session and whichever background task is currently active.
package surface

// Surface is an opaque drawable region. The session owns it; the active task
// borrows it. Implementations are not required to be safe for concurrent
// writers: the lifecycle manager guarantees at most one task writes at a time.
type Surface interface {
	// Clear blanks every cell.
	Clear()
	// DrawText writes s starting at (row, col). Text past the right edge is
	// dropped; rows outside the surface are ignored.
	DrawText(row, col int, s string)
	// DrawMarker draws the animation marker at (row, col).
	DrawMarker(row, col int)
	// Dimensions returns the surface size in cells.
	Dimensions() (rows, cols int)
}

// Snapshotter is implemented by surfaces that can be rendered by a reader
// running on another goroutine (the TUI).
type Snapshotter interface {
	// Snapshot returns one string per row.
	Snapshot() []string
	// Version increases on every write; readers use it to skip redraws.
	Version() uint64
}
