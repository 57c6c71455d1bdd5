// @focus: #sys { io } #input { decode }
package terminal

// UnitSource is the raw input side of a terminal: bytes (< 0x100) and
// library key codes (>= 0x100)
type UnitSource interface {
	// ReadUnit returns the next unit, false when nothing is available in
	// non-blocking mode or the source is closed
	ReadUnit() (int, bool)
	// UnreadUnit pushes u back so the next ReadUnit returns it
	UnreadUnit(u int)
	// SetBlocking selects whether ReadUnit waits for input
	SetBlocking(blocking bool)
	// Mouse returns the report that accompanied the last CodeMouse unit
	Mouse() MouseReport
}

// DecoderConfig holds the user-tunable parts of key decoding
type DecoderConfig struct {
	ShiftFunctionKey  int // F(n + ShiftFunctionKey) is reported for shift+F(n)
	WheelUpButton     int
	WheelDownButton   int
	WheelScrollAmount int
}

// DefaultDecoderConfig matches xterm's conventions
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		ShiftFunctionKey:  12,
		WheelUpButton:     4,
		WheelDownButton:   5,
		WheelScrollAmount: 3,
	}
}

// decodeState enumerates the pending-sequence states of the decoder
type decodeState uint8

const (
	stateIdle decodeState = iota
	stateEscape
	stateCSIParams
	stateLegacyMouse
)

const maxCSIParams = 16

// csiSequence accumulates one control sequence
type csiSequence struct {
	private byte
	params  [maxCSIParams]int
	final   byte
}

// Legacy button-down bits, shared by SGR and X10 decoding
const (
	mouseStateLeft  uint8 = 0x1
	mouseStateRight uint8 = 0x2
)

// Decoder turns raw units into discrete events
type Decoder struct {
	src        UnitSource
	cfg        DecoderConfig
	lineOffset int
	mouseState uint8
	dimensions func() (lines, cols int)
}

// NewDecoder creates a decoder reading from src
func NewDecoder(src UnitSource, cfg DecoderConfig) *Decoder {
	return &Decoder{
		src:        src,
		cfg:        cfg,
		dimensions: func() (int, int) { return 0, 0 },
	}
}

// SetConfig replaces the tunables
func (d *Decoder) SetConfig(cfg DecoderConfig) {
	d.cfg = cfg
}

// SetLineOffset sets the rows reserved above the content area; mouse lines are reported relative to it
func (d *Decoder) SetLineOffset(offset int) {
	d.lineOffset = offset
}

// SetDimensions installs the query used for library resize codes
func (d *Decoder) SetDimensions(fn func() (lines, cols int)) {
	d.dimensions = fn
}

// Next probes the source without blocking and decodes one event
func (d *Decoder) Next() (Event, bool) {
	d.src.SetBlocking(false)
	c, ok := d.src.ReadUnit()
	d.src.SetBlocking(true)
	if !ok {
		return Event{}, false
	}
	return d.Decode(c)
}

// Decode decodes the event starting with unit c, reading further units as needed.
// Malformed sequences are swallowed and yield no event.
func (d *Decoder) Decode(c int) (Event, bool) {
	state := stateIdle
	var seq csiSequence

	for {
		switch state {
		case stateIdle:
			if c == CodeMouse {
				return d.libraryMouse(d.src.Mouse()), true
			}
			if c == 0x1b {
				state = stateEscape
				continue
			}
			return d.parseKey(c)

		case stateEscape:
			d.src.SetBlocking(false)
			next, ok := d.src.ReadUnit()
			if !ok {
				d.src.SetBlocking(true)
				return Event{Type: EventKey, Key: KeyEscape}, true
			}
			if next == '[' {
				state = stateCSIParams
				continue
			}
			d.src.SetBlocking(true)
			ev, ok := d.parseKey(next)
			if !ok {
				return Event{Type: EventKey, Key: KeyEscape}, true
			}
			if ev.Type == EventKey {
				ev.Modifiers |= ModAlt
			}
			return ev, true

		case stateCSIParams:
			// Still non-blocking from stateEscape
			ok := d.readCSI(&seq)
			if !ok {
				d.src.SetBlocking(true)
				return Event{}, false
			}
			if seq.final == 'M' && seq.private == 0 {
				state = stateLegacyMouse
				continue
			}
			d.src.SetBlocking(true)
			return d.dispatchCSI(&seq)

		case stateLegacyMouse:
			ev, ok := d.legacyMouse()
			d.src.SetBlocking(true)
			return ev, ok
		}
	}
}

// readCSI consumes the body of a control sequence after ESC [.
// Returns false on malformed or unterminated input.
func (d *Decoder) readCSI(seq *csiSequence) bool {
	c, ok := d.src.ReadUnit()
	if !ok {
		return false
	}
	if c == '?' || c == '<' || c == '=' || c == '>' {
		seq.private = byte(c)
		if c, ok = d.src.ReadUnit(); !ok {
			return false
		}
	}

	for count := 0; c >= 0x30 && c <= 0x3f; {
		if count >= maxCSIParams {
			return false
		}
		switch {
		case c >= '0' && c <= '9':
			seq.params[count] = seq.params[count]*10 + c - '0'
		case c == ';':
			count++
		default:
			return false
		}
		if c, ok = d.src.ReadUnit(); !ok {
			return false
		}
	}

	if c < 0x40 || c > 0x7e {
		// An escape here starts the next sequence, leave it for the next poll
		if c == 0x1b {
			d.src.UnreadUnit(c)
		}
		return false
	}
	seq.final = byte(c)
	return true
}

var csiDirections = [...]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'E': KeyHome, 'F': KeyEnd, 'H': KeyHome,
}

// csiSpecial is indexed by the first parameter of a '~' sequence, from 2 to 24
var csiSpecial = [...]Key{
	2: KeyInsert, 3: KeyDelete, 4: KeyEnd, 5: KeyPageUp, 6: KeyPageDown,
	7: KeyHome, 8: KeyEnd,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5,
	17: KeyF6, 18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10,
	23: KeyF11, 24: KeyF12,
}

func (d *Decoder) dispatchCSI(seq *csiSequence) (Event, bool) {
	p := &seq.params
	switch c := seq.final; {
	case int(c) < len(csiDirections) && csiDirections[c] != KeyNone:
		return Event{Type: EventKey, Key: csiDirections[c], Modifiers: parseMask(p[1])}, true

	case c == '~' && p[0] >= 2 && p[0] <= 24:
		key := csiSpecial[p[0]]
		if key == KeyNone {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: key, Modifiers: parseMask(p[1])}, true

	case c == 'Z':
		return Event{Type: EventKey, Key: KeyTab, Modifiers: ModShift}, true
	case c == 'I':
		return Event{Type: EventFocusIn}, true
	case c == 'O':
		return Event{Type: EventFocusOut}, true

	case (c == 'M' || c == 'm') && seq.private == '<':
		return d.sgrMouse(p[0], p[1]-1, p[2]-d.lineOffset-1, c == 'm'), true
	}
	return Event{}, false
}

// sgrMouse decodes ESC [ < b ; x ; y M/m
func (d *Decoder) sgrMouse(b, x, y int, release bool) Event {
	mod := parseMask(1 + ((b >> 2) & 0x7))
	switch b & 0x43 {
	case 0:
		return d.mouseButton(mod, x, y, MouseBtnLeft, release)
	case 2:
		return d.mouseButton(mod, x, y, MouseBtnRight, release)
	case 64:
		return Event{Type: EventScroll, Modifiers: mod, Scroll: -d.cfg.WheelScrollAmount}
	case 65:
		return Event{Type: EventScroll, Modifiers: mod, Scroll: d.cfg.WheelScrollAmount}
	}
	// Middle button and buttonless motion only report position
	return Event{Type: EventMouse, Modifiers: mod, MouseX: x, MouseY: y, MouseAction: MouseActionMove}
}

// legacyMouse decodes the three raw bytes following ESC [ M
func (d *Decoder) legacyMouse() (Event, bool) {
	var raw [3]int
	for i := range raw {
		u, ok := d.src.ReadUnit()
		if !ok {
			return Event{}, false
		}
		raw[i] = u - 32
	}
	b := raw[0]
	x := raw[1] - 1
	y := raw[2] - 1 - d.lineOffset
	mod := parseMask(1 + ((b >> 2) & 0x7))

	switch b & 0x43 {
	case 0:
		return d.mouseButton(mod, x, y, MouseBtnLeft, false), true
	case 2:
		return d.mouseButton(mod, x, y, MouseBtnRight, false), true
	case 3:
		// Release does not say which button, use the one recorded as down
		if d.mouseState&mouseStateLeft != 0 {
			return d.mouseButton(mod, x, y, MouseBtnLeft, true), true
		}
		if d.mouseState&mouseStateRight != 0 {
			return d.mouseButton(mod, x, y, MouseBtnRight, true), true
		}
	case 64:
		return Event{Type: EventScroll, Modifiers: mod, Scroll: -d.cfg.WheelScrollAmount}, true
	case 65:
		return Event{Type: EventScroll, Modifiers: mod, Scroll: d.cfg.WheelScrollAmount}, true
	}
	return Event{Type: EventMouse, MouseX: x, MouseY: y, MouseAction: MouseActionMove}, true
}

// mouseButton tracks button-down state; a press while already down is a drag
func (d *Decoder) mouseButton(mod Modifier, x, y int, btn MouseButton, release bool) Event {
	mask := mouseStateLeft
	if btn == MouseBtnRight {
		mask = mouseStateRight
	}
	ev := Event{Type: EventMouse, Modifiers: mod, MouseX: x, MouseY: y, MouseBtn: btn}
	switch {
	case release:
		ev.MouseAction = MouseActionRelease
		d.mouseState &^= mask
	case d.mouseState&mask != 0:
		ev.MouseAction = MouseActionDrag
	default:
		ev.MouseAction = MouseActionPress
		d.mouseState |= mask
	}
	return ev
}

// libraryMouse translates a report decoded by the terminal library
func (d *Decoder) libraryMouse(r MouseReport) Event {
	var mod Modifier
	if r.Ctrl {
		mod |= ModCtrl
	}
	if r.Alt {
		mod |= ModAlt
	}
	x, y := r.X, r.Y-d.lineOffset
	ev := Event{Type: EventMouse, Modifiers: mod, MouseX: x, MouseY: y}

	switch {
	case r.Pressed&ButtonBit(1) != 0:
		ev.MouseBtn, ev.MouseAction = MouseBtnLeft, MouseActionPress
	case r.Pressed&ButtonBit(3) != 0:
		ev.MouseBtn, ev.MouseAction = MouseBtnRight, MouseActionPress
	case r.Released&ButtonBit(1) != 0:
		ev.MouseBtn, ev.MouseAction = MouseBtnLeft, MouseActionRelease
	case r.Released&ButtonBit(3) != 0:
		ev.MouseBtn, ev.MouseAction = MouseBtnRight, MouseActionRelease
	case r.Pressed&ButtonBit(d.cfg.WheelDownButton) != 0:
		return Event{Type: EventScroll, Modifiers: mod, Scroll: d.cfg.WheelScrollAmount}
	case r.Pressed&ButtonBit(d.cfg.WheelUpButton) != 0:
		return Event{Type: EventScroll, Modifiers: mod, Scroll: -d.cfg.WheelScrollAmount}
	default:
		ev.MouseAction = MouseActionMove
	}
	return ev
}

// parseKey decodes a unit outside any escape sequence
func (d *Decoder) parseKey(c int) (Event, bool) {
	if c == 127 {
		return Event{Type: EventKey, Key: KeyBackspace}, true
	}
	if k, ok := libraryKeys[c]; ok {
		return Event{Type: EventKey, Key: k.key, Modifiers: k.mod}, true
	}
	if c == CodeResize {
		lines, cols := d.dimensions()
		return Event{Type: EventResize, Height: lines, Width: cols}, true
	}

	if c > 0 && c < 27 {
		switch c {
		case 'm' & 0x1f, 'j' & 0x1f:
			return Event{Type: EventKey, Key: KeyEnter}, true
		case 'i' & 0x1f:
			return Event{Type: EventKey, Key: KeyTab}, true
		case 'h' & 0x1f:
			return Event{Type: EventKey, Key: KeyBackspace}, true
		case 'z' & 0x1f:
			return Event{Type: EventSuspend}, true
		}
		return Event{Type: EventKey, Key: KeyRune, Rune: rune(c - 1 + 'a'), Modifiers: ModCtrl}, true
	}
	switch c {
	case 0:
		return Event{Type: EventKey, Key: KeyRune, Rune: ' ', Modifiers: ModCtrl}, true
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}, true
	case 0x1c, 0x1d, 0x1e, 0x1f:
		return Event{Type: EventKey, Key: KeyRune, Rune: rune("\\]^_"[c-0x1c]), Modifiers: ModCtrl}, true
	}

	for i := 1; i <= 12; i++ {
		if c == CodeF(i) {
			return Event{Type: EventKey, Key: FunctionKey(i)}, true
		}
		if c == CodeF(d.cfg.ShiftFunctionKey+i) {
			return Event{Type: EventKey, Key: FunctionKey(i), Modifiers: ModShift}, true
		}
	}

	if c >= 0 && c < 0x100 {
		return Event{Type: EventKey, Key: KeyRune, Rune: d.readRune(byte(c))}, true
	}
	return Event{}, false
}

// readRune assembles a UTF-8 codepoint whose lead byte is b.
// A missing or invalid continuation is left unread and yields U+FFFD.
func (d *Decoder) readRune(b byte) rune {
	size := utf8SeqLen(b)
	if size == 1 {
		return rune(b)
	}
	if size == 0 {
		return 0xFFFD
	}

	buf := [4]byte{b}
	for i := 1; i < size; i++ {
		u, ok := d.src.ReadUnit()
		if !ok {
			return 0xFFFD
		}
		if u >= 0x100 || u&0xc0 != 0x80 {
			d.src.UnreadUnit(u)
			return 0xFFFD
		}
		buf[i] = byte(u)
	}
	r, _ := decodeRune(buf[:size])
	return r
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	if b < 0x80 {
		return 1
	}
	if b&0xe0 == 0xc0 {
		return 2
	}
	if b&0xf0 == 0xe0 {
		return 3
	}
	if b&0xf8 == 0xf0 {
		return 4
	}
	return 0 // Invalid
}

// decodeRune decodes the first UTF-8 rune from data
func decodeRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, 0
	}

	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var minRune rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size = 2
		minRune = 0x80
		r = rune(b & 0x1f)
	case b&0xf0 == 0xe0:
		size = 3
		minRune = 0x800
		r = rune(b & 0x0f)
	case b&0xf8 == 0xf0:
		size = 4
		minRune = 0x10000
		r = rune(b & 0x07)
	default:
		return 0xFFFD, 1 // Invalid, return replacement char
	}

	if len(data) < size {
		return 0xFFFD, 1
	}

	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}

	if r < minRune {
		return 0xFFFD, 1 // Overlong encoding
	}

	return r, size
}
