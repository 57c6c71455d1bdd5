//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Init when the input is not a tty
var ErrNotTerminal = errors.New("input is not a terminal")

// escapeDelay bounds the wait for the rest of a key sequence after ESC in keypad mode
const escapeDelay = 25 * time.Millisecond

// maxSequenceLen caps how many bytes keypad translation collects after ESC
const maxSequenceLen = 32

// ANSIBackend drives an xterm-compatible terminal directly over a unix tty
type ANSIBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	output *outputBuffer

	buf      [256]byte
	raw      []byte // bytes read from the tty, not yet handed out
	pending  []int  // pushed-back units, last in first out
	blocking bool
	keypad   bool
	mouse    MouseReport

	colors         int
	canChangeColor bool
	mouseEnabled   bool

	initialized bool
	finalized   bool
}

// NewANSIBackend creates a backend over the given tty files, capabilities from the environment
func NewANSIBackend(in, out *os.File) *ANSIBackend {
	colors, canChange := DetectCapabilities()
	return &ANSIBackend{
		in:             in,
		out:            out,
		inFd:           int(in.Fd()),
		outFd:          int(out.Fd()),
		output:         newOutputBuffer(out),
		blocking:       true,
		colors:         colors,
		canChangeColor: canChange,
	}
}

// SetCapabilities overrides the detected palette capabilities
func (b *ANSIBackend) SetCapabilities(colors int, canChangeColor bool) {
	b.colors = colors
	b.canChangeColor = canChangeColor
}

// Init enters raw mode, alternate screen buffer, hides cursor
func (b *ANSIBackend) Init() error {
	if b.initialized {
		return nil
	}
	if !term.IsTerminal(b.inFd) {
		return ErrNotTerminal
	}
	if err := b.enter(); err != nil {
		return err
	}
	if rows, cols, err := b.Size(); err == nil {
		b.output.resize(cols, rows)
	}
	b.output.clear()
	b.initialized = true
	return nil
}

func (b *ANSIBackend) enter() error {
	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.oldTerm = old

	b.output.writeRaw(csiAltScreenEnter)
	b.output.writeRaw(csiCursorHide)
	// Prevents terminal scroll/wrap on bottom-right corner write
	b.output.writeRaw(csiAutoWrapOff)
	return nil
}

func (b *ANSIBackend) leave() {
	b.output.writeRaw(csiSGR0)
	b.output.writeRaw(csiCursorShow)
	b.output.writeRaw(csiAltScreenExit)
	// Re-enable Auto-Wrap AFTER exiting alt screen to ensure the main buffer has wrap enabled
	b.output.writeRaw(csiAutoWrapOn)
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
	}
}

// Fini restores terminal state
func (b *ANSIBackend) Fini() {
	if !b.initialized || b.finalized {
		return
	}
	if b.mouseEnabled {
		b.output.writeRaw(MouseOffSequence())
		b.mouseEnabled = false
	}
	b.leave()
	b.finalized = true
}

// Size queries the tty, falling back to the controlling terminal
func (b *ANSIBackend) Size() (int, int, error) {
	rows, cols, err := queryWinsize(b.outFd)
	if err == nil && rows > 0 && cols > 0 {
		return rows, cols, nil
	}
	rows, cols, err = controllingTTYSize()
	if err != nil {
		return 0, 0, fmt.Errorf("query terminal size: %w", err)
	}
	return rows, cols, nil
}

// Write sends bytes through the output stream, bypassing cell diffing
func (b *ANSIBackend) Write(p []byte) error {
	return b.output.writeRaw(p)
}

// Flush writes cell buffer to terminal
func (b *ANSIBackend) Flush(cells []Cell, width, height int) {
	if b.finalized {
		return
	}
	b.output.flush(cells, width, height)
}

// ShowCursor positions the (hidden) hardware cursor
func (b *ANSIBackend) ShowCursor(x, y int) {
	if b.finalized {
		return
	}
	b.output.moveCursor(max(x, 0), max(y, 0))
}

// Invalidate clears the physical screen before the next diff
func (b *ANSIBackend) Invalidate() {
	b.output.clear()
}

// EnableMouse toggles mouse button, drag and focus reporting. With keypad
// translation on, the SGR encoding is always requested since the translator
// decodes those reports into library mouse codes itself.
func (b *ANSIBackend) EnableMouse(enabled, sgr bool) {
	if enabled {
		sgr = sgr || b.keypad
		b.output.writeRaw(MouseOnSequence(sgr))
	} else {
		b.output.writeRaw(MouseOffSequence())
	}
	b.mouseEnabled = enabled
}

// SetKeypad toggles translation of known sequences into library codes
func (b *ANSIBackend) SetKeypad(enabled bool) {
	b.keypad = enabled
}

// Suspend restores cooked mode, stops the process group and re-enters raw mode on resume
func (b *ANSIBackend) Suspend() error {
	b.leave()
	if err := unix.Kill(0, unix.SIGTSTP); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	// Execution continues here after SIGCONT
	if err := b.enter(); err != nil {
		return err
	}
	b.output.clear()
	return nil
}

// Colors implements PaletteTarget
func (b *ANSIBackend) Colors() int { return b.colors }

// CanChangeColor implements PaletteTarget
func (b *ANSIBackend) CanChangeColor() bool { return b.canChangeColor }

// ChannelMax implements PaletteTarget, OSC 4 takes 16 bits per channel
func (b *ANSIBackend) ChannelMax() int { return 0xffff }

// SetPaletteColor implements PaletteTarget via OSC 4
func (b *ANSIBackend) SetPaletteColor(slot, r, g, bl int) {
	b.output.writeRaw(setColorSequence(slot, uint16(r), uint16(g), uint16(bl)))
}

// ResetPalette implements PaletteTarget via OSC 104
func (b *ANSIBackend) ResetPalette() {
	b.output.writeRaw(oscPaletteReset)
}

// SetBlocking implements UnitSource
func (b *ANSIBackend) SetBlocking(blocking bool) {
	b.blocking = blocking
}

// UnreadUnit implements UnitSource
func (b *ANSIBackend) UnreadUnit(u int) {
	b.pending = append(b.pending, u)
}

// Mouse implements UnitSource
func (b *ANSIBackend) Mouse() MouseReport {
	return b.mouse
}

// ReadUnit implements UnitSource
func (b *ANSIBackend) ReadUnit() (int, bool) {
	if n := len(b.pending); n > 0 {
		u := b.pending[n-1]
		b.pending = b.pending[:n-1]
		return u, true
	}

	timeout := 0
	if b.blocking {
		timeout = -1
	}
	c, ok := b.readByte(timeout)
	if !ok {
		return 0, false
	}
	if c == 0x1b && b.keypad {
		return b.translate(), true
	}
	return int(c), true
}

// translate collects the sequence following ESC and maps it to a library code.
// Unknown sequences are pushed back untouched and ESC is returned.
func (b *ANSIBackend) translate() int {
	var seq []byte
	first, ok := b.readByte(int(escapeDelay / time.Millisecond))
	if !ok {
		return 0x1b
	}
	seq = append(seq, first)

	switch first {
	case 'O':
		if c, ok := b.readByte(0); ok {
			seq = append(seq, c)
		}
	case '[':
		for len(seq) < maxSequenceLen {
			c, ok := b.readByte(0)
			if !ok {
				break
			}
			seq = append(seq, c)
			// "[[A" style function keys carry a second '['
			if len(seq) == 2 && c == '[' {
				continue
			}
			if c >= 0x40 && c <= 0x7e {
				break
			}
		}
	}

	if code, ok := lookupKeypad(seq); ok {
		return code
	}
	if n := len(seq); n > 3 && seq[1] == '<' && (seq[n-1] == 'M' || seq[n-1] == 'm') {
		if report, ok := parseSGRReport(seq[2:n-1], seq[n-1]); ok {
			b.mouse = report
			return CodeMouse
		}
	}

	for i := len(seq) - 1; i >= 0; i-- {
		b.pending = append(b.pending, int(seq[i]))
	}
	return 0x1b
}

// readByte returns the next tty byte, polling up to timeoutMs (-1 waits forever)
func (b *ANSIBackend) readByte(timeoutMs int) (byte, bool) {
	if len(b.raw) == 0 && !b.fill(timeoutMs) {
		return 0, false
	}
	c := b.raw[0]
	b.raw = b.raw[1:]
	return c, true
}

// fill reads whatever the tty has, waiting up to timeoutMs
func (b *ANSIBackend) fill(timeoutMs int) bool {
	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if errors.Is(err, unix.EINTR) && timeoutMs < 0 {
				continue
			}
			return false
		}
		if n == 0 {
			return false // Timeout
		}

		rn, err := unix.Read(b.inFd, b.buf[:])
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return false
		}
		if rn == 0 {
			return false // EOF
		}
		b.raw = b.buf[:rn]
		return true
	}
}

// Wait polls the tty in short slices so wake is honoured promptly
func (b *ANSIBackend) Wait(wake <-chan struct{}, timeout time.Duration) bool {
	if len(b.pending) > 0 || len(b.raw) > 0 {
		return true
	}
	deadline := time.Now().Add(timeout)
	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
	for {
		select {
		case <-wake:
			return false
		default:
		}

		slice := 100
		if timeout > 0 {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return false
			}
			slice = min(slice, int(remaining/time.Millisecond)+1)
		}

		n, err := unix.Poll(fds, slice)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return false
		}
		if n > 0 {
			return true
		}
	}
}
