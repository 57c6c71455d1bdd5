package terminal

import "testing"

// fakeSource replays a fixed unit stream; it never blocks
type fakeSource struct {
	units    []int
	blocking bool
	mouse    MouseReport
}

func newFakeSource(s string, extra ...int) *fakeSource {
	f := &fakeSource{}
	for i := 0; i < len(s); i++ {
		f.units = append(f.units, int(s[i]))
	}
	f.units = append(f.units, extra...)
	return f
}

func (f *fakeSource) ReadUnit() (int, bool) {
	if len(f.units) == 0 {
		return 0, false
	}
	u := f.units[0]
	f.units = f.units[1:]
	return u, true
}

func (f *fakeSource) UnreadUnit(u int)    { f.units = append([]int{u}, f.units...) }
func (f *fakeSource) SetBlocking(b bool)  { f.blocking = b }
func (f *fakeSource) Mouse() MouseReport  { return f.mouse }
func (f *fakeSource) feed(s string)       { f.units = append(f.units, newFakeSource(s).units...) }
func (f *fakeSource) feedUnits(us ...int) { f.units = append(f.units, us...) }

func decodeAll(t *testing.T, d *Decoder) []Event {
	t.Helper()
	var events []Event
	for i := 0; i < 64; i++ {
		ev, ok := d.Next()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
	t.Fatal("decoder did not drain its input")
	return nil
}

func TestDecodeKeySequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   Key
		mod   Modifier
	}{
		{"Up", "\x1b[A", KeyUp, ModNone},
		{"Ctrl up", "\x1b[1;5A", KeyUp, ModCtrl},
		{"Shift right", "\x1b[1;2C", KeyRight, ModShift},
		{"Alt ctrl left", "\x1b[1;7D", KeyLeft, ModAlt | ModCtrl},
		{"Home E", "\x1b[E", KeyHome, ModNone},
		{"Home H", "\x1b[H", KeyHome, ModNone},
		{"End", "\x1b[F", KeyEnd, ModNone},
		{"Insert", "\x1b[2~", KeyInsert, ModNone},
		{"Delete", "\x1b[3~", KeyDelete, ModNone},
		{"Shift delete", "\x1b[3;2~", KeyDelete, ModShift},
		{"End tilde", "\x1b[4~", KeyEnd, ModNone},
		{"Page up", "\x1b[5~", KeyPageUp, ModNone},
		{"Ctrl page down", "\x1b[6;5~", KeyPageDown, ModCtrl},
		{"Home tilde", "\x1b[7~", KeyHome, ModNone},
		{"End tilde 8", "\x1b[8~", KeyEnd, ModNone},
		{"F1", "\x1b[11~", KeyF1, ModNone},
		{"F5", "\x1b[15~", KeyF5, ModNone},
		{"Shift F5", "\x1b[15;2~", KeyF5, ModShift},
		{"F6", "\x1b[17~", KeyF6, ModNone},
		{"F10", "\x1b[21~", KeyF10, ModNone},
		{"F12", "\x1b[24~", KeyF12, ModNone},
		{"Backtab", "\x1b[Z", KeyTab, ModShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(newFakeSource(tt.input), DefaultDecoderConfig())
			events := decodeAll(t, d)
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d: %v", len(events), events)
			}
			ev := events[0]
			if ev.Type != EventKey || ev.Key != tt.key || ev.Modifiers != tt.mod {
				t.Errorf("Expected key %v mod %v, got %v", tt.key, tt.mod, ev)
			}
		})
	}
}

func TestDecodeUnmappedTildeSlots(t *testing.T) {
	for _, seq := range []string{"\x1b[9~", "\x1b[10~", "\x1b[16~", "\x1b[22~", "\x1b[1~"} {
		d := NewDecoder(newFakeSource(seq), DefaultDecoderConfig())
		if events := decodeAll(t, d); len(events) != 0 {
			t.Errorf("Sequence %q: expected no event, got %v", seq, events)
		}
	}
}

func TestDecodeFocus(t *testing.T) {
	d := NewDecoder(newFakeSource("\x1b[I\x1b[O"), DefaultDecoderConfig())
	events := decodeAll(t, d)
	if len(events) != 2 || events[0].Type != EventFocusIn || events[1].Type != EventFocusOut {
		t.Errorf("Expected focus in then out, got %v", events)
	}
}

func TestDecodeControlBytes(t *testing.T) {
	tests := []struct {
		name string
		unit int
		want Event
	}{
		{"Ctrl a", 1, Event{Type: EventKey, Key: KeyRune, Rune: 'a', Modifiers: ModCtrl}},
		{"Ctrl w", 23, Event{Type: EventKey, Key: KeyRune, Rune: 'w', Modifiers: ModCtrl}},
		{"Tab", 9, Event{Type: EventKey, Key: KeyTab}},
		{"Line feed", 10, Event{Type: EventKey, Key: KeyEnter}},
		{"Return", 13, Event{Type: EventKey, Key: KeyEnter}},
		{"Ctrl h", 8, Event{Type: EventKey, Key: KeyBackspace}},
		{"Delete byte", 127, Event{Type: EventKey, Key: KeyBackspace}},
		{"Ctrl space", 0, Event{Type: EventKey, Key: KeyRune, Rune: ' ', Modifiers: ModCtrl}},
		{"Ctrl backslash", 0x1c, Event{Type: EventKey, Key: KeyRune, Rune: '\\', Modifiers: ModCtrl}},
		{"Ctrl underscore", 0x1f, Event{Type: EventKey, Key: KeyRune, Rune: '_', Modifiers: ModCtrl}},
		{"Ctrl z", 26, Event{Type: EventSuspend}},
		{"Plain", 'q', Event{Type: EventKey, Key: KeyRune, Rune: 'q'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(newFakeSource("", tt.unit), DefaultDecoderConfig())
			ev, ok := d.Next()
			if !ok {
				t.Fatal("Expected an event")
			}
			if ev != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, ev)
			}
		})
	}
}

func TestDecodeEscapeAndAlt(t *testing.T) {
	d := NewDecoder(newFakeSource("\x1b"), DefaultDecoderConfig())
	ev, ok := d.Next()
	if !ok || ev.Type != EventKey || ev.Key != KeyEscape {
		t.Errorf("Expected lone escape, got %v %v", ev, ok)
	}

	d = NewDecoder(newFakeSource("\x1bx"), DefaultDecoderConfig())
	ev, ok = d.Next()
	if !ok || ev.Key != KeyRune || ev.Rune != 'x' || ev.Modifiers != ModAlt {
		t.Errorf("Expected alt-x, got %v", ev)
	}

	d = NewDecoder(newFakeSource("\x1b\x01"), DefaultDecoderConfig())
	ev, ok = d.Next()
	if !ok || ev.Rune != 'a' || ev.Modifiers != ModCtrl|ModAlt {
		t.Errorf("Expected alt-ctrl-a, got %v", ev)
	}
}

func TestDecodeUTF8(t *testing.T) {
	src := newFakeSource("é€")
	d := NewDecoder(src, DefaultDecoderConfig())
	events := decodeAll(t, d)
	if len(events) != 2 || events[0].Rune != 'é' || events[1].Rune != '€' {
		t.Fatalf("Expected é and €, got %v", events)
	}

	// Broken continuation: the offending byte is decoded on its own
	src = newFakeSource("", 0xc3, 'a')
	d = NewDecoder(src, DefaultDecoderConfig())
	events = decodeAll(t, d)
	if len(events) != 2 || events[0].Rune != 0xFFFD || events[1].Rune != 'a' {
		t.Errorf("Expected replacement then 'a', got %v", events)
	}
}

func TestDecodeMalformedCSI(t *testing.T) {
	// Unterminated sequence yields nothing
	d := NewDecoder(newFakeSource("\x1b[1;2"), DefaultDecoderConfig())
	if events := decodeAll(t, d); len(events) != 0 {
		t.Errorf("Expected no events, got %v", events)
	}

	// An escape inside the parameters starts the next sequence
	d = NewDecoder(newFakeSource("\x1b[1;2\x1b[A"), DefaultDecoderConfig())
	if _, ok := d.Next(); ok {
		t.Error("Expected the broken sequence to yield nothing")
	}
	ev, ok := d.Next()
	if !ok || ev.Key != KeyUp {
		t.Errorf("Expected the following sequence to decode as up, got %v %v", ev, ok)
	}

	// Invalid parameter byte
	d = NewDecoder(newFakeSource("\x1b[1:2A"), DefaultDecoderConfig())
	if ev, ok := d.Next(); ok {
		t.Errorf("Expected nothing for invalid parameter, got %v", ev)
	}
}

func TestDecodeSGRMouse(t *testing.T) {
	src := newFakeSource("\x1b[<0;10;5M\x1b[<0;12;5M\x1b[<0;12;6m")
	d := NewDecoder(src, DefaultDecoderConfig())
	events := decodeAll(t, d)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %v", events)
	}

	want := []struct {
		action MouseAction
		x, y   int
	}{
		{MouseActionPress, 9, 4},
		{MouseActionDrag, 11, 4},
		{MouseActionRelease, 11, 5},
	}
	for i, w := range want {
		ev := events[i]
		if ev.Type != EventMouse || ev.MouseBtn != MouseBtnLeft || ev.MouseAction != w.action || ev.MouseX != w.x || ev.MouseY != w.y {
			t.Errorf("Event %d: expected %v at %d,%d, got %v", i, w.action, w.x, w.y, ev)
		}
	}
}

func TestDecodeSGRMouseVariants(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		typ    EventType
		scroll int
		btn    MouseButton
		action MouseAction
		mod    Modifier
	}{
		{"Wheel up", "\x1b[<64;1;1M", EventScroll, -3, MouseBtnNone, MouseActionNone, ModNone},
		{"Wheel down", "\x1b[<65;1;1M", EventScroll, 3, MouseBtnNone, MouseActionNone, ModNone},
		{"Right press", "\x1b[<2;1;1M", EventMouse, 0, MouseBtnRight, MouseActionPress, ModNone},
		{"Ctrl left", "\x1b[<16;1;1M", EventMouse, 0, MouseBtnLeft, MouseActionPress, ModCtrl},
		{"Middle reports move", "\x1b[<1;1;1M", EventMouse, 0, MouseBtnNone, MouseActionMove, ModNone},
		{"Motion", "\x1b[<35;4;4M", EventMouse, 0, MouseBtnNone, MouseActionMove, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(newFakeSource(tt.input), DefaultDecoderConfig())
			ev, ok := d.Next()
			if !ok {
				t.Fatal("Expected an event")
			}
			if ev.Type != tt.typ || ev.Scroll != tt.scroll || ev.MouseBtn != tt.btn || ev.MouseAction != tt.action || ev.Modifiers != tt.mod {
				t.Errorf("Unexpected event %+v", ev)
			}
		})
	}
}

func TestDecodeLegacyMouse(t *testing.T) {
	src := newFakeSource("\x1b[M", 32+0, 32+5, 32+3)
	d := NewDecoder(src, DefaultDecoderConfig())

	ev, ok := d.Next()
	if !ok || ev.MouseAction != MouseActionPress || ev.MouseBtn != MouseBtnLeft || ev.MouseX != 4 || ev.MouseY != 2 {
		t.Fatalf("Expected left press at 4,2, got %v", ev)
	}

	// Legacy release carries no button, it is attributed to the one held
	src.feed("\x1b[M")
	src.feedUnits(32+3, 32+5, 32+3)
	ev, ok = d.Next()
	if !ok || ev.MouseAction != MouseActionRelease || ev.MouseBtn != MouseBtnLeft {
		t.Errorf("Expected left release, got %v", ev)
	}

	// A release with nothing held only reports position
	src.feed("\x1b[M")
	src.feedUnits(32+3, 32+1, 32+1)
	ev, ok = d.Next()
	if !ok || ev.MouseAction != MouseActionMove {
		t.Errorf("Expected move, got %v", ev)
	}

	// Truncated report
	src.feed("\x1b[M")
	src.feedUnits(32)
	if ev, ok := d.Next(); ok {
		t.Errorf("Expected nothing for truncated report, got %v", ev)
	}
}

func TestDecodeMouseLineOffset(t *testing.T) {
	d := NewDecoder(newFakeSource("\x1b[<0;1;3M"), DefaultDecoderConfig())
	d.SetLineOffset(1)
	ev, ok := d.Next()
	if !ok || ev.MouseY != 1 {
		t.Errorf("Expected row shifted to 1, got %v", ev)
	}
}

func TestDecodeLibraryCodes(t *testing.T) {
	tests := []struct {
		name string
		unit int
		key  Key
		mod  Modifier
	}{
		{"Up", CodeUp, KeyUp, ModNone},
		{"Shift up", CodeShiftUp, KeyUp, ModShift},
		{"Shift page down", CodeShiftPageDown, KeyPageDown, ModShift},
		{"Backtab", CodeBacktab, KeyTab, ModShift},
		{"Backspace", CodeBackspace, KeyBackspace, ModNone},
		{"F1", CodeF(1), KeyF1, ModNone},
		{"F12", CodeF(12), KeyF12, ModNone},
		{"Shift F1", CodeF(13), KeyF1, ModShift},
		{"Shift F12", CodeF(24), KeyF12, ModShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(newFakeSource("", tt.unit), DefaultDecoderConfig())
			ev, ok := d.Next()
			if !ok || ev.Type != EventKey || ev.Key != tt.key || ev.Modifiers != tt.mod {
				t.Errorf("Expected %v/%v, got %v", tt.key, tt.mod, ev)
			}
		})
	}
}

func TestDecodeShiftFunctionKeyOffset(t *testing.T) {
	cfg := DefaultDecoderConfig()
	cfg.ShiftFunctionKey = 10
	d := NewDecoder(newFakeSource("", CodeF(11)), cfg)
	ev, ok := d.Next()
	if !ok || ev.Key != KeyF1 || ev.Modifiers != ModShift {
		t.Errorf("Expected shift-F1 with offset 10, got %v", ev)
	}
}

func TestDecodeLibraryMouse(t *testing.T) {
	src := newFakeSource("", CodeMouse)
	src.mouse = MouseReport{X: 3, Y: 4, Pressed: ButtonBit(1), Ctrl: true}
	d := NewDecoder(src, DefaultDecoderConfig())
	d.SetLineOffset(1)

	ev, ok := d.Next()
	if !ok || ev.Type != EventMouse || ev.MouseAction != MouseActionPress || ev.MouseBtn != MouseBtnLeft {
		t.Fatalf("Expected left press, got %v", ev)
	}
	if ev.MouseX != 3 || ev.MouseY != 3 || ev.Modifiers != ModCtrl {
		t.Errorf("Expected ctrl at 3,3, got %v", ev)
	}

	src.feedUnits(CodeMouse)
	src.mouse = MouseReport{Pressed: ButtonBit(5)}
	ev, _ = d.Next()
	if ev.Type != EventScroll || ev.Scroll != 3 {
		t.Errorf("Expected scroll down, got %v", ev)
	}

	src.feedUnits(CodeMouse)
	src.mouse = MouseReport{Released: ButtonBit(3)}
	ev, _ = d.Next()
	if ev.MouseBtn != MouseBtnRight || ev.MouseAction != MouseActionRelease {
		t.Errorf("Expected right release, got %v", ev)
	}
}

func TestDecodeResizeCode(t *testing.T) {
	d := NewDecoder(newFakeSource("", CodeResize), DefaultDecoderConfig())
	d.SetDimensions(func() (int, int) { return 23, 80 })
	ev, ok := d.Next()
	if !ok || ev.Type != EventResize || ev.Height != 23 || ev.Width != 80 {
		t.Errorf("Expected resize 23x80, got %v", ev)
	}
}

func TestDecoderRestoresBlocking(t *testing.T) {
	src := newFakeSource("\x1b[1;5A")
	d := NewDecoder(src, DefaultDecoderConfig())
	d.Next()
	if !src.blocking {
		t.Error("Expected decoder to leave the source blocking")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Type: EventKey, Key: KeyRune, Rune: 'a'}, "a"},
		{Event{Type: EventKey, Key: KeyRune, Rune: 'a', Modifiers: ModCtrl}, "<c-a>"},
		{Event{Type: EventKey, Key: KeyTab, Modifiers: ModShift}, "<s-tab>"},
		{Event{Type: EventKey, Key: KeyRune, Rune: ' '}, "<space>"},
		{Event{Type: EventScroll, Scroll: -3}, "<scroll:-3>"},
		{Event{Type: EventResize, Height: 23, Width: 80}, "<resize:23.80>"},
		{Event{Type: EventMouse, MouseAction: MouseActionPress, MouseBtn: MouseBtnLeft, MouseX: 2, MouseY: 1}, "<mouse:press:left:1.2>"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
