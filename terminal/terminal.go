package terminal

import (
	"io"
	"os"
	"time"
)

// Cell represents a single terminal cell
type Cell struct {
	Text  string // grapheme cluster, empty renders as a blank
	Width uint8  // display columns; 0 marks the trailing half of a wide glyph
	Fg    int16  // palette index, IndexDefault for the terminal default
	Bg    int16
	Attrs Attr
}

// BlankCell is an empty cell in default colors
var BlankCell = Cell{Width: 1, Fg: IndexDefault, Bg: IndexDefault}

// Backend is a physical terminal: raw unit input, palette programming and
// diffed cell output
type Backend interface {
	UnitSource
	PaletteTarget

	// Init enters raw mode and the alternate screen
	Init() error
	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size queries the real terminal size
	Size() (lines, cols int, err error)

	// Write sends out-of-band sequences (title, scroll region) straight to the terminal
	Write(p []byte) error

	// Flush writes a row-major cell frame, diffing against what is displayed
	Flush(cells []Cell, width, height int)
	// ShowCursor positions the hardware cursor (0-indexed)
	ShowCursor(x, y int)
	// Invalidate forgets the displayed frame so the next Flush repaints everything
	Invalidate()

	// SetKeypad enables translation of known key sequences into library codes
	SetKeypad(enabled bool)
	// EnableMouse toggles mouse and focus reporting; sgr requests the extended encoding
	EnableMouse(enabled, sgr bool)

	// Suspend hands the terminal back and stops the process group until resumed
	Suspend() error

	// Wait blocks until input may be available, wake fires, or timeout elapses
	Wait(wake <-chan struct{}, timeout time.Duration) bool
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(MouseOffSequence())
	w.Write(PaletteResetSequence())

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset via /dev/tty - escape sequences alone don't restore termios
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
