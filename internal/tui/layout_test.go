package tui

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		showEvents bool
		tooSmall   bool
		menuW      int
		rightW     int
		previewH   int
		eventsH    int
	}{
		{
			name:  "80x24 with events",
			width: 80, height: 24, showEvents: true,
			menuW:    26, // 80/3
			rightW:   54,
			previewH: 14, // 22*65/100
			eventsH:  8,
		},
		{
			name:  "80x24 without events",
			width: 80, height: 24,
			menuW:    26,
			rightW:   54,
			previewH: 22,
		},
		{
			name:  "narrow clamps menu to 18",
			width: 60, height: 16, showEvents: true,
			menuW:    20,
			rightW:   40,
			previewH: 9, // 14*65/100
			eventsH:  5,
		},
		{
			name:  "wide clamps menu to 40",
			width: 200, height: 50, showEvents: true,
			menuW:    40,
			rightW:   160,
			previewH: 31, // 48*65/100
			eventsH:  17,
		},
		{name: "too narrow", width: 59, height: 24, tooSmall: true},
		{name: "too short", width: 80, height: 15, tooSmall: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.width, tt.height, tt.showEvents)
			if l.TooSmall != tt.tooSmall {
				t.Fatalf("TooSmall = %v, want %v", l.TooSmall, tt.tooSmall)
			}
			if tt.tooSmall {
				return
			}
			if l.Menu.Width != tt.menuW || l.Preview.Width != tt.rightW {
				t.Errorf("widths: menu %d preview %d, want %d %d", l.Menu.Width, l.Preview.Width, tt.menuW, tt.rightW)
			}
			if l.Preview.Height != tt.previewH || l.Events.Height != tt.eventsH {
				t.Errorf("heights: preview %d events %d, want %d %d", l.Preview.Height, l.Events.Height, tt.previewH, tt.eventsH)
			}
			if l.Menu.Height != tt.height-2 {
				t.Errorf("menu height = %d, want full body %d", l.Menu.Height, tt.height-2)
			}
			if l.Header.Height != 1 || l.Footer.Y != tt.height-1 {
				t.Errorf("header/footer misplaced: %+v %+v", l.Header, l.Footer)
			}
			if l.Events.Y != l.Preview.Y+l.Preview.Height {
				t.Errorf("events should sit under the preview: %+v %+v", l.Preview, l.Events)
			}
		})
	}
}

func TestCalculateList(t *testing.T) {
	l := CalculateList(80, 24, 4, 16)
	if l.TooSmall {
		t.Fatal("80x24 should fit a four-item menu")
	}
	if l.Menu.Width != 24 || l.Menu.Height != 8 {
		t.Errorf("menu = %dx%d, want 24x8", l.Menu.Width, l.Menu.Height)
	}
	if l.Menu.X != 28 {
		t.Errorf("menu X = %d, want centered at 28", l.Menu.X)
	}

	if !CalculateList(20, 24, 4, 16).TooSmall {
		t.Error("a 20-column terminal cannot fit a 24-column box")
	}
	if !CalculateList(80, 9, 4, 16).TooSmall {
		t.Error("a 9-row terminal cannot fit the box plus header and footer")
	}
}

func TestInnerDims(t *testing.T) {
	w, h := innerDims(Rect{Width: 10, Height: 5})
	if w != 8 || h != 3 {
		t.Errorf("innerDims = %dx%d, want 8x3", w, h)
	}
	w, h = innerDims(Rect{})
	if w != 1 || h != 1 {
		t.Errorf("innerDims(zero) = %dx%d, want 1x1", w, h)
	}
}
