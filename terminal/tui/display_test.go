package tui

import (
	"testing"

	"github.com/lixenwraith/termface/terminal"
)

// stubTarget is a 256-color terminal that cannot redefine its palette
type stubTarget struct{}

func (stubTarget) Colors() int                    { return 256 }
func (stubTarget) CanChangeColor() bool           { return false }
func (stubTarget) ChannelMax() int                { return 255 }
func (stubTarget) SetPaletteColor(_, _, _, _ int) {}
func (stubTarget) ResetPalette()                  {}

func newTestSurface(pos, size Coord) *Surface {
	s := NewSurface(terminal.NewPalette(stubTarget{}))
	s.Create(pos, size)
	return s
}

func TestLineLength(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want int
	}{
		{"Empty", nil, 0},
		{"ASCII", NewLine("hello", terminal.Face{}), 5},
		{"Runs", Line{{Content: "ab"}, {Content: "cde"}}, 5},
		{"Wide", NewLine("日本", terminal.Face{}), 4},
		{"Combining", NewLine("éx", terminal.Face{}), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Length(); got != tt.want {
				t.Errorf("Expected length %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLineTrim(t *testing.T) {
	red := terminal.Face{Fg: terminal.NamedColor(terminal.Red)}
	line := Line{{Content: "abc"}, {Content: "def", Face: red}}

	got := line.Trim(2, 3)
	if got.String() != "cde" {
		t.Fatalf("Expected \"cde\", got %q", got.String())
	}
	if len(got) != 2 || got[1].Face != red {
		t.Errorf("Expected faces preserved per run, got %+v", got)
	}

	if got := line.Trim(0, 100).String(); got != "abcdef" {
		t.Errorf("Expected untouched line, got %q", got)
	}
	if got := line.Trim(10, 3); len(got) != 0 {
		t.Errorf("Expected empty trim past the end, got %+v", got)
	}
}

func TestLineTrimWide(t *testing.T) {
	line := NewLine("a日b", terminal.Face{})

	// Wide glyph straddles the end of the window
	if got := line.Trim(0, 2).String(); got != "a" {
		t.Errorf("Expected \"a\", got %q", got)
	}
	// Wide glyph straddles the start of the window
	if got := line.Trim(2, 2).String(); got != "b" {
		t.Errorf("Expected \"b\", got %q", got)
	}
	if got := line.Trim(0, 3); got.Length() != 3 {
		t.Errorf("Expected 3 columns, got %d", got.Length())
	}
}

func TestLineInsert(t *testing.T) {
	line := Line{{Content: "b"}, {Content: "c"}}
	got := line.Insert(0, Atom{Content: "…"})
	if got.String() != "…bc" {
		t.Errorf("Expected \"…bc\", got %q", got.String())
	}
	if line.String() != "bc" {
		t.Errorf("Expected receiver untouched, got %q", line.String())
	}
	if got := line.Insert(9, Atom{Content: "d"}).String(); got != "bcd" {
		t.Errorf("Expected clamped append, got %q", got)
	}
}

func TestRect(t *testing.T) {
	a := Rect{Pos: Coord{0, 0}, Size: Coord{2, 4}}
	tests := []struct {
		name       string
		b          Rect
		intersects bool
		contains   bool
	}{
		{"Inside", Rect{Coord{0, 1}, Coord{1, 2}}, true, true},
		{"Overlap", Rect{Coord{1, 3}, Coord{2, 2}}, true, false},
		{"Touching below", Rect{Coord{2, 0}, Coord{1, 4}}, false, false},
		{"Touching right", Rect{Coord{0, 4}, Coord{2, 1}}, false, false},
		{"Empty", Rect{Coord{0, 0}, Coord{0, 0}}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.intersects {
				t.Errorf("Expected intersects %v, got %v", tt.intersects, got)
			}
			if got := a.Contains(tt.b); got != tt.contains {
				t.Errorf("Expected contains %v, got %v", tt.contains, got)
			}
		})
	}
}
