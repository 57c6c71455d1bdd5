package tui

import "github.com/lixenwraith/termface/terminal"

// Stage is the compositor's staged frame: surfaces copy their lines in, the
// backend diffs the whole frame out. Lines re-staged in the current cycle are
// tracked so upper layers know to copy themselves over them again.
type Stage struct {
	cells   []terminal.Cell
	touched []bool // per line, reset by BeginCycle
	width   int
	height  int
}

// NewStage creates a blank stage with the specified dimensions
func NewStage(width, height int) *Stage {
	s := &Stage{}
	s.Resize(width, height)
	return s
}

// Resize adjusts dimensions, reallocates only if capacity insufficient, and blanks everything
func (s *Stage) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(s.cells) < size {
		s.cells = make([]terminal.Cell, size)
	} else {
		s.cells = s.cells[:size]
	}
	if cap(s.touched) < height {
		s.touched = make([]bool, height)
	} else {
		s.touched = s.touched[:height]
	}
	s.width = width
	s.height = height
	s.Clear()
}

// Clear resets all cells to blanks using exponential copy
func (s *Stage) Clear() {
	if len(s.cells) == 0 {
		return
	}
	s.cells[0] = terminal.BlankCell
	for filled := 1; filled < len(s.cells); filled *= 2 {
		copy(s.cells[filled:], s.cells[:filled])
	}
	for i := range s.touched {
		s.touched[i] = false
	}
}

// BeginCycle forgets which lines were staged by the previous refresh
func (s *Stage) BeginCycle() {
	for i := range s.touched {
		s.touched[i] = false
	}
}

// Width returns the stage width
func (s *Stage) Width() int { return s.width }

// Height returns the stage height
func (s *Stage) Height() int { return s.height }

// Cells exposes the row-major frame for flushing
func (s *Stage) Cells() []terminal.Cell { return s.cells }

// LineTouched reports whether line y was re-staged this cycle
func (s *Stage) LineTouched(y int) bool {
	return y >= 0 && y < s.height && s.touched[y]
}

// Touch marks line y as re-staged
func (s *Stage) Touch(y int) {
	if y >= 0 && y < s.height {
		s.touched[y] = true
	}
}

// Cell returns the staged cell at x, y; out of bounds yields a blank
func (s *Stage) Cell(x, y int) terminal.Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return terminal.BlankCell
	}
	return s.cells[y*s.width+x]
}

// Set stages a cell, repairing wide glyphs it cuts in half
func (s *Stage) Set(x, y int, c terminal.Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	row := s.cells[y*s.width : (y+1)*s.width]

	// A head in the last column has nowhere to put its tail
	if c.Width == 2 && x == s.width-1 {
		c = blankLike(c)
	}
	// A tail without its head renders as nothing, stage a blank instead
	if c.Width == 0 && (x == 0 || row[x-1].Width != 2) {
		c = blankLike(c)
	}

	old := row[x]
	if old.Width == 0 && c.Width != 0 && x > 0 && row[x-1].Width == 2 {
		row[x-1] = blankLike(row[x-1])
	}
	if old.Width == 2 && c.Width != 2 && x+1 < s.width && row[x+1].Width == 0 {
		row[x+1] = blankLike(row[x+1])
	}
	row[x] = c
}

// blankLike keeps the colors of c but drops its glyph
func blankLike(c terminal.Cell) terminal.Cell {
	return terminal.Cell{Width: 1, Fg: c.Fg, Bg: c.Bg, Attrs: c.Attrs}
}
