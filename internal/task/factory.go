package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/config"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
)

// ErrSurfaceTooSmall is returned by factories that cannot animate on a
// surface with no cells.
var ErrSurfaceTooSmall = errors.New("task: surface too small")

// Identity tells a factory which item it is starting a task for.
type Identity struct {
	Index  int
	Label  string
	TaskID uint64
}

// Factory produces the preview for an item. Static items draw once and
// return a nil handle; live items spawn a worker and return its handle.
// Every call must produce an independent task instance.
type Factory func(s surface.Surface, id Identity) (*Handle, error)

// Item is one selectable menu entry. A nil Factory means the item has no
// preview at all.
type Item struct {
	Label   string
	Kind    string
	Factory Factory
}

// Kinds accepted in item configuration.
const (
	KindNone    = "none"
	KindStatic  = "static"
	KindBounce  = "bounce"
	KindSpinner = "spinner"
)

// FromConfig builds an Item from its configuration entry.
func FromConfig(ic config.ItemConfig, opts Options) (Item, error) {
	item := Item{Label: ic.Label, Kind: ic.Kind}
	switch ic.Kind {
	case KindNone, "":
		item.Kind = KindNone
	case KindStatic:
		item.Factory = Static(ic.Details)
	case KindBounce:
		item.Factory = Bounce(ic.Caption, opts)
	case KindSpinner:
		if _, ok := spinnerPresets[ic.Spinner]; !ok && ic.Spinner != "" {
			return Item{}, fmt.Errorf("task: item %q: unknown spinner %q", ic.Label, ic.Spinner)
		}
		item.Factory = Spinner(ic.Caption, ic.Spinner, opts)
	default:
		return Item{}, fmt.Errorf("task: item %q: unknown kind %q", ic.Label, ic.Kind)
	}
	return item, nil
}

// ItemsFromConfig builds the item registry in configuration order.
func ItemsFromConfig(items []config.ItemConfig, opts Options) ([]Item, error) {
	out := make([]Item, 0, len(items))
	for _, ic := range items {
		item, err := FromConfig(ic, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Static returns a factory that renders text once, one line per row, and
// starts no worker.
func Static(text string) Factory {
	lines := strings.Split(text, "\n")
	return func(s surface.Surface, _ Identity) (*Handle, error) {
		for i, line := range lines {
			s.DrawText(i, 1, line)
		}
		return nil, nil
	}
}
