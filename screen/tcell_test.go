//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package screen

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termface/terminal"
	"github.com/lixenwraith/termface/terminal/tui"
)

func newSimScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	flags := terminal.NewSignalFlags()
	b, err := terminal.NewTcellBackend(sim, flags)
	if err != nil {
		t.Fatalf("NewTcellBackend failed: %v", err)
	}
	s, err := New(b, flags, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s, sim
}

func TestTcellScreenRender(t *testing.T) {
	s, sim := newSimScreen(t)
	w, h := sim.Size()

	ev, ok := s.NextKey()
	if !ok || ev.Type != terminal.EventResize || ev.Width != w || ev.Height != h-1 {
		t.Fatalf("Expected initial resize %dx%d, got %v %v", w, h-1, ev, ok)
	}

	s.Draw([]tui.Line{plain("hello")}, terminal.Face{}, terminal.Face{})
	s.DrawStatus(plain("status"), plain("normal"), terminal.Face{})
	s.Refresh(false)

	if r, _, _, _ := sim.GetContent(0, 0); r != 'h' {
		t.Errorf("Expected 'h' at origin, got %q", r)
	}
	if r, _, _, _ := sim.GetContent(0, 1); r != '~' {
		t.Errorf("Expected padding marker on row 1, got %q", r)
	}
	if r, _, _, _ := sim.GetContent(0, h-1); r != 's' {
		t.Errorf("Expected status on the last row, got %q", r)
	}
	if r, _, _, _ := sim.GetContent(w-1, h-1); r != 'l' {
		t.Errorf("Expected mode line right-aligned, got %q", r)
	}
}

// nextInput skips the size reports tcell may queue on its own
func nextInput(s *Screen) (terminal.Event, bool) {
	for range 4 {
		ev, ok := s.NextKey()
		if !ok || ev.Type != terminal.EventResize {
			return ev, ok
		}
	}
	return terminal.Event{}, false
}

func TestTcellScreenKeys(t *testing.T) {
	s, sim := newSimScreen(t)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyUp, 0, tcell.ModCtrl)

	ev, ok := nextInput(s)
	if !ok || ev.Type != terminal.EventKey || ev.Key != terminal.KeyRune || ev.Rune != 'x' {
		t.Errorf("Expected 'x', got %v %v", ev, ok)
	}
	ev, ok = nextInput(s)
	if !ok || ev.Key != terminal.KeyUp || ev.Modifiers != terminal.ModCtrl {
		t.Errorf("Expected ctrl+up, got %v %v", ev, ok)
	}
}

func TestTcellScreenResize(t *testing.T) {
	s, sim := newSimScreen(t)
	s.NextKey()

	sim.SetSize(100, 30)
	sim.PostEvent(tcell.NewEventResize(100, 30))

	ev, ok := s.NextKey()
	if !ok || ev.Type != terminal.EventResize || ev.Width != 100 || ev.Height != 29 {
		t.Fatalf("Expected resize 100x29, got %v %v", ev, ok)
	}
	if s.Dimensions() != (tui.Coord{Line: 29, Column: 100}) {
		t.Errorf("Expected new dimensions, got %v", s.Dimensions())
	}
}
