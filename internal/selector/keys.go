package selector

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// Key is a translated key press.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyConfirm
	KeyCancel
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyConfirm:
		return "confirm"
	case KeyCancel:
		return "cancel"
	default:
		return "other"
	}
}

// KeySource delivers key presses to the selector. NextKey blocks until a key
// is available or ctx is done.
type KeySource interface {
	NextKey(ctx context.Context) (Key, error)
}

// KeyChan is a KeySource fed by another goroutine, typically the TUI. A
// closed channel reads as io.EOF.
type KeyChan chan Key

// NextKey implements KeySource.
func (c KeyChan) NextKey(ctx context.Context) (Key, error) {
	select {
	case <-ctx.Done():
		return KeyOther, ctx.Err()
	case k, ok := <-c:
		if !ok {
			return KeyOther, io.EOF
		}
		return k, nil
	}
}

// Send delivers k without blocking and reports whether it was accepted.
func (c KeyChan) Send(k Key) bool {
	select {
	case c <- k:
		return true
	default:
		return false
	}
}

// ParseKey maps a typed word to a key: up/k/w, down/j/s, an empty line or
// enter to confirm, q/quit/esc/exit to cancel. Anything else is KeyOther.
func ParseKey(word string) Key {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "up", "k", "w":
		return KeyUp
	case "down", "j", "s":
		return KeyDown
	case "", "enter", "ok":
		return KeyConfirm
	case "q", "quit", "esc", "exit":
		return KeyCancel
	default:
		return KeyOther
	}
}

// LineKeySource reads one key per input line. Reading happens on a
// background goroutine so NextKey can honour ctx.
type LineKeySource struct {
	lines chan string
	err   error // set before lines is closed

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLineKeySource starts reading r. The reader goroutine exits at EOF, on
// the first read error, or once Close is called and it next tries to hand
// over a line.
func NewLineKeySource(r io.Reader) *LineKeySource {
	src := &LineKeySource{lines: make(chan string), stop: make(chan struct{})}
	go func() {
		defer close(src.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case <-src.stop:
				src.err = io.EOF
				return
			default:
			}
			select {
			case src.lines <- sc.Text():
			case <-src.stop:
				src.err = io.EOF
				return
			}
		}
		src.err = sc.Err()
		if src.err == nil {
			src.err = io.EOF
		}
	}()
	return src
}

// Close stops handing out lines. NextLine returns io.EOF once the reader
// goroutine has seen the stop. A goroutine blocked inside r.Read stays there
// until that read returns.
func (l *LineKeySource) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	return nil
}

// NextKey implements KeySource.
func (l *LineKeySource) NextKey(ctx context.Context) (Key, error) {
	line, err := l.NextLine(ctx)
	if err != nil {
		return KeyOther, err
	}
	return ParseKey(line), nil
}

// NextLine returns the next raw input line. Callers that mix prompts with
// key input share one LineKeySource so no line is lost to a second reader.
func (l *LineKeySource) NextLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-l.lines:
		if !ok {
			return "", l.err
		}
		return line, nil
	}
}
