// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"bufio"
	"io"
)

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front  []Cell
	width  int
	height int
	writer *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    int16
	lastBg    int16
	lastAttr  Attr
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer) *outputBuffer {
	return &outputBuffer{
		writer: bufio.NewWriterSize(w, 65536),
	}
}

// resize updates buffer dimensions
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height
	o.forceFullRedraw()
}

// unknownCell never equals a real cell, marking the front buffer as garbage
var unknownCell = Cell{Text: "\x00"}

// flush writes the back buffer to terminal, diffing against front buffer
func (o *outputBuffer) flush(cells []Cell, width, height int) {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}
	if len(cells) < width*height {
		return
	}

	w := o.writer

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cells[idx] == o.front[idx] {
				x++
				continue
			}

			// Position cursor once for this dirty region
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			// Write all contiguous dirty cells, emitting style only when changed
			for x < width {
				cidx := rowStart + x
				c := cells[cidx]
				if c == o.front[cidx] {
					break
				}
				o.front[cidx] = c
				x++

				// Trailing half of a wide glyph was drawn with its head
				if c.Width == 0 {
					continue
				}

				o.writeStyleCoalesced(w, c.Fg, c.Bg, c.Attrs)
				if c.Text == "" {
					w.WriteByte(' ')
				} else {
					w.WriteString(c.Text)
				}
				o.cursorX += int(c.Width)
			}
			if o.cursorX != x {
				o.cursorValid = false
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false

	w.Flush()
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyleCoalesced(w *bufio.Writer, fg, bg int16, attr Attr) {
	if o.lastValid && fg == o.lastFg && bg == o.lastBg && attr == o.lastAttr {
		return
	}

	// Attributes can only be turned off by a reset, so always start from 0
	w.Write(csi)
	w.WriteByte('0')
	for _, a := range [...]struct {
		bit  Attr
		code byte
	}{
		{AttrBold, '1'}, {AttrDim, '2'}, {AttrItalic, '3'},
		{AttrUnderline, '4'}, {AttrBlink, '5'}, {AttrReverse, '7'},
	} {
		if attr&a.bit != 0 {
			w.WriteByte(';')
			w.WriteByte(a.code)
		}
	}
	writeColorParam(w, fg, 30, 90, "38;5;")
	writeColorParam(w, bg, 40, 100, "48;5;")
	w.WriteByte('m')

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// writeColorParam writes ";N" for a palette index: base 8 and bright 8 use the
// short forms, the rest the 256-color form
func writeColorParam(w *bufio.Writer, idx int16, base, bright int, long string) {
	if idx < 0 {
		return // SGR 0 already selected the default
	}
	w.WriteByte(';')
	switch {
	case idx < 8:
		writeInt(w, base+int(idx))
	case idx < 16:
		writeInt(w, bright+int(idx)-8)
	default:
		w.WriteString(long)
		writeInt(w, int(idx))
	}
}

// forceFullRedraw clears front buffer to force complete redraw
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = unknownCell
	}
	o.lastValid = false
	o.cursorValid = false
}

// clear erases the physical screen; the front buffer then holds blanks
func (o *outputBuffer) clear() {
	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiClear)
	w.Flush()

	for i := range o.front {
		o.front[i] = BlankCell
	}
	o.lastValid = false
	o.cursorValid = false
}

// moveCursor positions the hardware cursor
func (o *outputBuffer) moveCursor(x, y int) {
	writeCursorPos(o.writer, x, y)
	o.cursorX, o.cursorY = x, y
	o.cursorValid = true
	o.writer.Flush()
}

// writeRaw sends out-of-band bytes through the same stream
func (o *outputBuffer) writeRaw(p []byte) error {
	if _, err := o.writer.Write(p); err != nil {
		return err
	}
	return o.writer.Flush()
}
