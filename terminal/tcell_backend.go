//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

// @focus: #sys { io } #terminal { tcell }
package terminal

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"
)

// TcellBackend adapts a tcell.Screen to the Backend contract. Events are
// re-encoded as units so the same decoder serves both backends: named keys
// become library codes, modified navigation keys become CSI bytes.
type TcellBackend struct {
	screen tcell.Screen
	flags  *SignalFlags

	queue    []int // pending units, front first
	blocking bool
	mouse    MouseReport
	buttons  tcell.ButtonMask

	width, height int
	invalid       bool
	initialized   bool
	finalized     bool
}

// NewTcellBackend wraps screen; resize events raise flags.
// A nil screen allocates the default tcell screen.
func NewTcellBackend(screen tcell.Screen, flags *SignalFlags) (*TcellBackend, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create tcell screen: %w", err)
		}
		screen = s
	}
	if flags == nil {
		flags = ProcessSignals
	}
	return &TcellBackend{screen: screen, flags: flags, blocking: true}, nil
}

// Screen exposes the wrapped tcell screen
func (b *TcellBackend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the tcell screen
func (b *TcellBackend) Init() error {
	if b.initialized {
		return nil
	}
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	b.screen.HideCursor()
	b.width, b.height = b.screen.Size()
	b.initialized = true
	return nil
}

// Fini restores terminal state
func (b *TcellBackend) Fini() {
	if !b.initialized || b.finalized {
		return
	}
	b.finalized = true
	b.screen.Fini()
}

// Size returns the tcell screen size
func (b *TcellBackend) Size() (int, int, error) {
	w, h := b.screen.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("query terminal size: got %dx%d", w, h)
	}
	return h, w, nil
}

// Write recognizes title sequences; other raw sequences have no tcell equivalent and are dropped
func (b *TcellBackend) Write(p []byte) error {
	if title, ok := bytes.CutPrefix(p, oscTitle); ok {
		b.screen.SetTitle(string(bytes.TrimSuffix(title, oscEnd)))
	}
	return nil
}

// Flush copies the frame into tcell's buffer and shows it
func (b *TcellBackend) Flush(cells []Cell, width, height int) {
	if b.finalized || len(cells) < width*height {
		return
	}
	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x, c := range row {
			if c.Width == 0 {
				continue
			}
			primary, combining := ' ', []rune(nil)
			if c.Text != "" {
				rs := []rune(c.Text)
				primary, combining = rs[0], rs[1:]
			}
			b.screen.SetContent(x, y, primary, combining, tcellStyle(c))
		}
	}
	if b.invalid {
		b.invalid = false
		b.screen.Sync()
		return
	}
	b.screen.Show()
}

// tcellStyle converts a cell's palette indices and attributes
func tcellStyle(c Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcellColor(c.Fg)).
		Background(tcellColor(c.Bg))
	if c.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	if c.Attrs&AttrItalic != 0 {
		st = st.Italic(true)
	}
	if c.Attrs&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if c.Attrs&AttrBlink != 0 {
		st = st.Blink(true)
	}
	if c.Attrs&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	return st
}

func tcellColor(idx int16) tcell.Color {
	if idx < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(idx))
}

// ShowCursor keeps the cursor hidden; tcell has no notion of an invisible positioned cursor
func (b *TcellBackend) ShowCursor(int, int) {
	if b.finalized {
		return
	}
	b.screen.HideCursor()
}

// Invalidate makes the next Flush a full repaint
func (b *TcellBackend) Invalidate() {
	b.invalid = true
}

// SetKeypad is a no-op, tcell always translates keys
func (b *TcellBackend) SetKeypad(bool) {}

// EnableMouse toggles tcell mouse and focus reporting; tcell picks the encoding itself
func (b *TcellBackend) EnableMouse(enabled, _ bool) {
	if enabled {
		b.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
		b.screen.EnableFocus()
		return
	}
	b.screen.DisableMouse()
	b.screen.DisableFocus()
	b.buttons = tcell.ButtonNone
}

// Suspend releases the terminal, stops the process group and reclaims it on resume
func (b *TcellBackend) Suspend() error {
	if err := b.screen.Suspend(); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	if err := unix.Kill(0, unix.SIGTSTP); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	if err := b.screen.Resume(); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	b.invalid = true
	return nil
}

// Colors implements PaletteTarget
func (b *TcellBackend) Colors() int { return b.screen.Colors() }

// CanChangeColor implements PaletteTarget; tcell exposes no palette programming
func (b *TcellBackend) CanChangeColor() bool { return false }

// ChannelMax implements PaletteTarget
func (b *TcellBackend) ChannelMax() int { return 255 }

// SetPaletteColor implements PaletteTarget, never called while CanChangeColor is false
func (b *TcellBackend) SetPaletteColor(int, int, int, int) {}

// ResetPalette implements PaletteTarget
func (b *TcellBackend) ResetPalette() {}

// SetBlocking implements UnitSource
func (b *TcellBackend) SetBlocking(blocking bool) {
	b.blocking = blocking
}

// UnreadUnit implements UnitSource
func (b *TcellBackend) UnreadUnit(u int) {
	b.queue = append([]int{u}, b.queue...)
}

// Mouse implements UnitSource
func (b *TcellBackend) Mouse() MouseReport {
	return b.mouse
}

// ReadUnit implements UnitSource
func (b *TcellBackend) ReadUnit() (int, bool) {
	for len(b.queue) == 0 {
		if b.finalized {
			return 0, false
		}
		if !b.blocking && !b.screen.HasPendingEvent() {
			return 0, false
		}
		ev := b.screen.PollEvent()
		if ev == nil {
			return 0, false
		}
		b.translate(ev)
		// A resize leaves nothing queued, let the caller see the flag first
		if len(b.queue) == 0 && !b.blocking {
			return 0, false
		}
	}
	u := b.queue[0]
	b.queue = b.queue[1:]
	return u, true
}

// Wait polls for pending events in short slices so wake is honoured promptly
func (b *TcellBackend) Wait(wake <-chan struct{}, timeout time.Duration) bool {
	const slice = 10 * time.Millisecond
	deadline := time.Now().Add(timeout)
	for {
		if len(b.queue) > 0 || b.screen.HasPendingEvent() {
			return true
		}
		if timeout > 0 && !time.Now().Before(deadline) {
			return false
		}
		select {
		case <-wake:
			return false
		case <-time.After(slice):
		}
	}
}

func (b *TcellBackend) push(units ...int) {
	b.queue = append(b.queue, units...)
}

func (b *TcellBackend) pushString(s string) {
	for i := 0; i < len(s); i++ {
		b.queue = append(b.queue, int(s[i]))
	}
}

// translate queues the units equivalent to one tcell event
func (b *TcellBackend) translate(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b.translateKey(ev)
	case *tcell.EventMouse:
		b.translateMouse(ev)
	case *tcell.EventResize:
		b.width, b.height = ev.Size()
		b.flags.RaiseResize()
	case *tcell.EventFocus:
		if ev.Focused {
			b.pushString("\x1b[I")
		} else {
			b.pushString("\x1b[O")
		}
	}
}

// tcellNavigation carries, per navigation key, the plain and shifted library
// codes and the CSI form used when ctrl or alt is held
var tcellNavigation = map[tcell.Key]struct {
	plain, shifted int
	csi            string // "1;%dX" or "N;%d~"
}{
	tcell.KeyUp:     {CodeUp, CodeShiftUp, "\x1b[1;%dA"},
	tcell.KeyDown:   {CodeDown, CodeShiftDown, "\x1b[1;%dB"},
	tcell.KeyRight:  {CodeRight, CodeShiftRight, "\x1b[1;%dC"},
	tcell.KeyLeft:   {CodeLeft, CodeShiftLeft, "\x1b[1;%dD"},
	tcell.KeyHome:   {CodeHome, CodeShiftHome, "\x1b[1;%dH"},
	tcell.KeyEnd:    {CodeEnd, CodeShiftEnd, "\x1b[1;%dF"},
	tcell.KeyPgUp:   {CodePageUp, CodeShiftPageUp, "\x1b[5;%d~"},
	tcell.KeyPgDn:   {CodePageDown, CodeShiftPageDown, "\x1b[6;%d~"},
	tcell.KeyInsert: {CodeInsert, CodeShiftInsert, "\x1b[2;%d~"},
	tcell.KeyDelete: {CodeDelete, CodeShiftDelete, "\x1b[3;%d~"},
}

func (b *TcellBackend) translateKey(ev *tcell.EventKey) {
	key, mod := ev.Key(), ev.Modifiers()

	if nav, ok := tcellNavigation[key]; ok {
		switch {
		case mod&(tcell.ModCtrl|tcell.ModAlt) != 0:
			b.pushString(fmt.Sprintf(nav.csi, 1+xtermMask(mod)))
		case mod&tcell.ModShift != 0:
			b.push(nav.shifted)
		default:
			b.push(nav.plain)
		}
		return
	}

	if key >= tcell.KeyF1 && key <= tcell.KeyF64 {
		n := int(key-tcell.KeyF1) + 1
		if n <= 12 {
			n += functionKeyShifts[1+xtermMask(mod)]
		}
		b.push(CodeF(n))
		return
	}

	switch key {
	case tcell.KeyBacktab:
		b.push(CodeBacktab)
		return
	case tcell.KeyRune:
		r := ev.Rune()
		if mod&tcell.ModAlt != 0 {
			b.push(0x1b)
		}
		if mod&tcell.ModCtrl != 0 && r >= '@' && r < 0x7f {
			b.push(int(r) & 0x1f)
			return
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		b.pushString(string(buf[:n]))
		return
	}

	// Remaining keys are control characters carrying their ASCII value
	if key < tcell.KeyRune {
		if mod&tcell.ModAlt != 0 {
			b.push(0x1b)
		}
		b.push(int(key))
	}
}

// xtermMask folds tcell modifiers into the xterm bitmask (shift 1, alt 2, ctrl 4)
func xtermMask(mod tcell.ModMask) int {
	m := 0
	if mod&tcell.ModShift != 0 {
		m |= 1
	}
	if mod&tcell.ModAlt != 0 {
		m |= 2
	}
	if mod&tcell.ModCtrl != 0 {
		m |= 4
	}
	return m
}

// tcellButtons pairs tcell button bits with their curses numbers
var tcellButtons = [...]struct {
	mask   tcell.ButtonMask
	curses int
}{
	{tcell.Button1, 1}, // left
	{tcell.Button3, 2}, // middle
	{tcell.Button2, 3}, // right
}

// translateMouse turns tcell's button state into press/release edges
func (b *TcellBackend) translateMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	cur := ev.Buttons()
	mod := ev.Modifiers()

	r := MouseReport{
		X:     x,
		Y:     y,
		Ctrl:  mod&tcell.ModCtrl != 0,
		Alt:   mod&tcell.ModAlt != 0,
		Shift: mod&tcell.ModShift != 0,
	}
	for _, btn := range tcellButtons {
		switch {
		case cur&btn.mask != 0 && b.buttons&btn.mask == 0:
			r.Pressed |= ButtonBit(btn.curses)
		case cur&btn.mask == 0 && b.buttons&btn.mask != 0:
			r.Released |= ButtonBit(btn.curses)
		}
	}
	if cur&tcell.WheelUp != 0 {
		r.Pressed |= ButtonBit(4)
	}
	if cur&tcell.WheelDown != 0 {
		r.Pressed |= ButtonBit(5)
	}
	b.buttons = cur & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	b.mouse = r
	b.push(CodeMouse)
}
