// Package config parses marquee.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Load.
const FileName = "marquee.toml"

// DefaultAccentColor is the default TUI accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// Menu styles.
const (
	StylePreview = "preview"
	StyleList    = "list"
)

// ErrNotFound is returned by Load when no marquee.toml exists in the working
// directory or any of its parents.
var ErrNotFound = errors.New("config: " + FileName + " not found")

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// itemKinds are the values accepted for items.kind. An empty kind means none.
var itemKinds = map[string]bool{"": true, "none": true, "static": true, "bounce": true, "spinner": true}

// Config is the top-level marquee.toml configuration.
type Config struct {
	Project       ProjectConfig       `toml:"project"`
	Selector      SelectorConfig      `toml:"selector"`
	Lifecycle     LifecycleConfig     `toml:"lifecycle"`
	Preview       PreviewConfig       `toml:"preview"`
	TUI           TUIConfig           `toml:"tui"`
	Session       SessionConfig       `toml:"session"`
	Notifications NotificationsConfig `toml:"notifications"`
	Items         []ItemConfig        `toml:"items"`
}

// ProjectConfig identifies the project.
type ProjectConfig struct {
	Name string `toml:"name"`
}

// SelectorConfig picks the menu style.
type SelectorConfig struct {
	Style string `toml:"style"` // "preview" or "list"
}

// LifecycleConfig tunes the background task protocol.
type LifecycleConfig struct {
	FrameIntervalMS int `toml:"frame_interval_ms"`
	JoinTimeoutMS   int `toml:"join_timeout_ms"` // 0 = wait forever
}

// FrameInterval returns the worker sleep between frames.
func (l LifecycleConfig) FrameInterval() time.Duration {
	return time.Duration(l.FrameIntervalMS) * time.Millisecond
}

// JoinTimeout returns how long a cancel waits for the worker to exit. A
// negative duration means no limit.
func (l LifecycleConfig) JoinTimeout() time.Duration {
	if l.JoinTimeoutMS == 0 {
		return -1
	}
	return time.Duration(l.JoinTimeoutMS) * time.Millisecond
}

// PreviewConfig sizes the preview canvas in cells.
type PreviewConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
	ShowEvents  bool   `toml:"show_events"`
}

// SessionConfig controls the per-session event log.
type SessionConfig struct {
	LogDir       string `toml:"log_dir"`
	LogRetention int    `toml:"log_retention"` // number of session logs to keep; 0 = unlimited
}

// NotificationsConfig controls webhook/ntfy.sh notifications.
type NotificationsConfig struct {
	URL       string `toml:"url"`
	OnConfirm bool   `toml:"on_confirm"`
	OnFatal   bool   `toml:"on_fatal"`
}

// ItemConfig is one [[items]] entry.
type ItemConfig struct {
	Label   string `toml:"label"`
	Kind    string `toml:"kind"`    // static, bounce, spinner or none
	Details string `toml:"details"` // static text
	Caption string `toml:"caption"` // title line for live items
	Spinner string `toml:"spinner"` // spinner preset name
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Selector.Style != StylePreview && c.Selector.Style != StyleList {
		errs = append(errs, fmt.Errorf("selector.style must be %q or %q", StylePreview, StyleList))
	}

	if c.Lifecycle.FrameIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("lifecycle.frame_interval_ms must be > 0"))
	}
	if c.Lifecycle.JoinTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("lifecycle.join_timeout_ms must be >= 0 (0 = wait forever)"))
	}
	if c.Lifecycle.JoinTimeoutMS > 0 && c.Lifecycle.JoinTimeoutMS < c.Lifecycle.FrameIntervalMS {
		errs = append(errs, fmt.Errorf("lifecycle.join_timeout_ms must be at least one frame interval"))
	}

	if c.Preview.Rows < 1 || c.Preview.Cols < 1 {
		errs = append(errs, fmt.Errorf("preview.rows and preview.cols must be >= 1"))
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}
	if c.Session.LogRetention < 0 {
		errs = append(errs, fmt.Errorf("session.log_retention must be >= 0 (0 = unlimited)"))
	}

	if c.Notifications.URL != "" {
		u, parseErr := url.ParseRequestURI(c.Notifications.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("notifications.url must be a valid http or https URL"))
		}
	}

	if len(c.Items) == 0 {
		errs = append(errs, fmt.Errorf("items must not be empty"))
	}
	seen := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		if strings.TrimSpace(it.Label) == "" {
			errs = append(errs, fmt.Errorf("items[%d].label must not be empty", i))
		} else if seen[it.Label] {
			errs = append(errs, fmt.Errorf("items[%d].label %q is duplicated", i, it.Label))
		}
		seen[it.Label] = true
		if !itemKinds[it.Kind] {
			errs = append(errs, fmt.Errorf("items[%d].kind %q must be one of static, bounce, spinner, none", i, it.Kind))
		}
	}

	return errors.Join(errs...)
}

// DefaultItems returns the built-in menu: the three informational options and
// Quit, plus two live previews.
func DefaultItems() []ItemConfig {
	return []ItemConfig{
		{Label: "Option 1", Kind: "static", Details: "Option 1 Details:\n- Feature A\n- Feature B\n- Value: 42"},
		{Label: "Option 2", Kind: "static", Details: "Option 2 Info:\n- Status: Active\n- Count: 17\n- Mode: Standard"},
		{Label: "Option 3", Kind: "static", Details: "Option 3 Data:\n- Temperature: 23C\n- Pressure: 1013hPa\n- Humidity: 45%"},
		{Label: "Animation", Kind: "bounce", Caption: "Animation"},
		{Label: "Spinner", Kind: "spinner", Caption: "Working", Spinner: "dot"},
		{Label: "Quit", Kind: "static", Details: "Exit the menu system"},
	}
}

// Defaults returns a Config with the built-in settings and items.
func Defaults() Config {
	return Config{
		Project:  ProjectConfig{Name: ""},
		Selector: SelectorConfig{Style: StylePreview},
		Lifecycle: LifecycleConfig{
			FrameIntervalMS: 100,
			JoinTimeoutMS:   2000,
		},
		Preview: PreviewConfig{
			Rows: 10,
			Cols: 40,
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
			ShowEvents:  true,
		},
		Session: SessionConfig{
			LogDir:       filepath.Join(".marquee", "logs"),
			LogRetention: 20,
		},
		Notifications: NotificationsConfig{
			URL:       "",
			OnConfirm: true,
			OnFatal:   true,
		},
		Items: DefaultItems(),
	}
}

// Load reads marquee.toml from the given path. If path is empty, it walks up
// from the current working directory looking for marquee.toml and returns
// ErrNotFound if there is none. Returns an error if the file contains unknown
// keys (likely typos). A file without [[items]] keeps the default items.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Defaults()
	// Decoding into a pre-filled slice would merge file items into the
	// defaults field by field.
	cfg.Items = nil
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	if len(cfg.Items) == 0 {
		cfg.Items = DefaultItems()
	}
	if cfg.Project.Name == "" {
		cfg.Project.Name = DetectProjectName(filepath.Dir(path))
	}

	return &cfg, nil
}

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// findConfig walks up from the current directory looking for marquee.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched up from %s)", ErrNotFound, dir)
		}
		dir = parent
	}
}

// InitFile writes a default marquee.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

const template = `# marquee.toml: menu items and preview settings.
# Place this file in the root of your project.

[project]
name = ""

[selector]
style = "preview"  # "preview" (menu + live preview pane) or "list" (menu only)

[lifecycle]
frame_interval_ms = 100  # worker sleep between animation frames
join_timeout_ms = 2000   # max wait for a stopped worker to exit; 0 = forever

[preview]
rows = 10
cols = 40

[tui]
accent_color = "#7D56F4"  # hex color for header/accent elements
show_events = true        # show the event log pane

[session]
log_dir = ".marquee/logs"
log_retention = 20  # number of session logs to keep; 0 = unlimited

[notifications]
url = ""           # ntfy.sh topic URL or any HTTP webhook (empty = disabled)
on_confirm = true  # notify when an item is selected
on_fatal = true    # notify when a worker fails to stop

[[items]]
label = "Option 1"
kind = "static"
details = "Option 1 Details:\n- Feature A\n- Feature B\n- Value: 42"

[[items]]
label = "Option 2"
kind = "static"
details = "Option 2 Info:\n- Status: Active\n- Count: 17\n- Mode: Standard"

[[items]]
label = "Option 3"
kind = "static"
details = "Option 3 Data:\n- Temperature: 23C\n- Pressure: 1013hPa\n- Humidity: 45%"

[[items]]
label = "Animation"
kind = "bounce"
caption = "Animation"

[[items]]
label = "Spinner"
kind = "spinner"
caption = "Working"
spinner = "dot"  # line, dot, minidot, jump, pulse, points, globe, moon, ...

[[items]]
label = "Quit"
kind = "static"
details = "Exit the menu system"
`
