// @focus: #terminal { ansi }
package terminal

import (
	"bufio"
	"strconv"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiCursorPos  = []byte("\x1b[") // followed by row;colH

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: Auto-Wrap Mode
	// ?7l disables wrapping (cursor sticks at right edge), preventing scroll when writing to bottom-right corner
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Mouse reporting, enabled in this order and disabled in reverse
	csiMouseSGROn    = []byte("\x1b[?1006h")
	csiFocusOn       = []byte("\x1b[?1004h")
	csiMouseClickOn  = []byte("\x1b[?1000h")
	csiMouseDragOn   = []byte("\x1b[?1002h")
	csiMouseDragOff  = []byte("\x1b[?1002l")
	csiMouseClickOff = []byte("\x1b[?1000l")
	csiFocusOff      = []byte("\x1b[?1004l")
	csiMouseSGROff   = []byte("\x1b[?1006l")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N;m
	csiBg256 = []byte("\x1b[48;5;") // followed by N;m

	// OSC
	oscPaletteReset = []byte("\x1b]104\x07")
	oscTitle        = []byte("\x1b]2;")
	oscSetColor     = []byte("\x1b]4;")
	oscEnd          = []byte("\x07")
)

// MouseOnSequence returns the sequence enabling mouse and focus reporting.
// sgr selects the extended SGR encoding in front of the button reports.
func MouseOnSequence(sgr bool) []byte {
	var seq []byte
	if sgr {
		seq = append(seq, csiMouseSGROn...)
	}
	seq = append(seq, csiFocusOn...)
	seq = append(seq, csiMouseClickOn...)
	seq = append(seq, csiMouseDragOn...)
	return seq
}

// MouseOffSequence returns the sequence disabling everything MouseOnSequence enabled
func MouseOffSequence() []byte {
	var seq []byte
	seq = append(seq, csiMouseDragOff...)
	seq = append(seq, csiMouseClickOff...)
	seq = append(seq, csiFocusOff...)
	seq = append(seq, csiMouseSGROff...)
	return seq
}

// PaletteResetSequence returns OSC 104, restoring the terminal's default palette
func PaletteResetSequence() []byte {
	return append([]byte(nil), oscPaletteReset...)
}

// TitleSequence wraps an already sanitized title into OSC 2
func TitleSequence(title string) []byte {
	seq := make([]byte, 0, len(oscTitle)+len(title)+len(oscEnd))
	seq = append(seq, oscTitle...)
	seq = append(seq, title...)
	seq = append(seq, oscEnd...)
	return seq
}

// ScrollRegionSequence returns DECSTBM covering rows [top, bottom] (0-indexed, inclusive)
func ScrollRegionSequence(top, bottom int) []byte {
	seq := append([]byte(nil), csi...)
	seq = strconv.AppendInt(seq, int64(top+1), 10)
	seq = append(seq, ';')
	seq = strconv.AppendInt(seq, int64(bottom+1), 10)
	seq = append(seq, 'r')
	return seq
}

// setColorSequence returns OSC 4 programming palette slot to a 16-bit per channel colour
func setColorSequence(slot int, r, g, b uint16) []byte {
	seq := append([]byte(nil), oscSetColor...)
	seq = strconv.AppendInt(seq, int64(slot), 10)
	seq = append(seq, ";rgb:"...)
	seq = appendHex16(seq, r)
	seq = append(seq, '/')
	seq = appendHex16(seq, g)
	seq = append(seq, '/')
	seq = appendHex16(seq, b)
	seq = append(seq, oscEnd...)
	return seq
}

func appendHex16(dst []byte, v uint16) []byte {
	const digits = "0123456789abcdef"
	return append(dst, digits[v>>12&0xf], digits[v>>8&0xf], digits[v>>4&0xf], digits[v&0xf])
}

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	w.Write(strconv.AppendInt(buf[:0], int64(n), 10))
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorForward writes cursor forward N positions
func writeCursorForward(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	if n == 1 {
		w.Write([]byte("\x1b[C"))
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('C')
}
