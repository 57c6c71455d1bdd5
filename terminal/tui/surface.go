package tui

import (
	"github.com/lixenwraith/termface/terminal"
	"github.com/rivo/uniseg"
)

// Surface is an off-screen buffer of cells placed at a position of the
// screen. A surface without buffer is invalid and every operation on it is
// a no-op; resizes destroy and recreate surfaces rather than reshaping them.
type Surface struct {
	palette *terminal.Palette
	input   terminal.UnitSource

	pos, size Coord
	cells     []terminal.Cell // nil when invalid
	dirty     []bool          // lines written since the last refresh
	cursor    Coord

	// Pen: resolved colors and attributes for subsequent writes
	activePair int
	fg, bg     int16
	attrs      terminal.Attr

	// Background fill, applied to cleared cells and to writes without a pair
	bgFg, bgBg int16
}

// NewSurface creates an invalid surface resolving faces through palette
func NewSurface(palette *terminal.Palette) *Surface {
	return &Surface{
		palette:    palette,
		activePair: -1,
		fg:         terminal.IndexDefault,
		bg:         terminal.IndexDefault,
		bgFg:       terminal.IndexDefault,
		bgBg:       terminal.IndexDefault,
	}
}

// AttachInput makes the surface the reader of raw input units
func (s *Surface) AttachInput(src terminal.UnitSource) {
	s.input = src
}

// Create allocates a blank buffer of size placed at pos with a reset pen.
// Non-positive sizes leave the surface invalid.
func (s *Surface) Create(pos, size Coord) {
	s.Destroy()
	if size.Line <= 0 || size.Column <= 0 {
		return
	}
	s.pos, s.size = pos, size
	s.activePair, s.attrs = -1, terminal.AttrNone
	s.fg, s.bg = terminal.IndexDefault, terminal.IndexDefault
	s.bgFg, s.bgBg = terminal.IndexDefault, terminal.IndexDefault
	s.cells = make([]terminal.Cell, size.Line*size.Column)
	s.dirty = make([]bool, size.Line)
	blank := s.blank()
	for i := range s.cells {
		s.cells[i] = blank
	}
	for i := range s.dirty {
		s.dirty[i] = true
	}
	s.cursor = Coord{}
}

// Destroy releases the buffer and marks the surface invalid
func (s *Surface) Destroy() {
	s.cells = nil
	s.dirty = nil
	s.pos, s.size, s.cursor = Coord{}, Coord{}, Coord{}
}

// Valid reports whether the surface holds a buffer
func (s *Surface) Valid() bool {
	return s.cells != nil
}

// Pos returns the placement of the surface
func (s *Surface) Pos() Coord { return s.pos }

// Size returns the buffer dimensions
func (s *Surface) Size() Coord { return s.size }

// Rect returns the placed rectangle, empty when invalid
func (s *Surface) Rect() Rect { return Rect{Pos: s.pos, Size: s.size} }

// Cursor returns the write position
func (s *Surface) Cursor() Coord { return s.cursor }

// Refresh copies lines into stage at the surface position. Lines written since
// the last refresh are copied, all lines when force, and any line a lower layer
// re-staged in this cycle so the surface stays on top of it.
func (s *Surface) Refresh(stage *Stage, force bool) {
	if !s.Valid() {
		return
	}
	for y := 0; y < s.size.Line; y++ {
		row := s.pos.Line + y
		if row < 0 || row >= stage.Height() {
			s.dirty[y] = false
			continue
		}
		if !force && !s.dirty[y] && !stage.LineTouched(row) {
			continue
		}
		line := s.cells[y*s.size.Column : (y+1)*s.size.Column]
		for x, c := range line {
			stage.Set(s.pos.Column+x, row, c)
		}
		stage.Touch(row)
		s.dirty[y] = false
	}
}

// MoveCursor sets the write position; positions outside the buffer are ignored
func (s *Surface) MoveCursor(c Coord) {
	if !s.Valid() || c.Line < 0 || c.Line >= s.size.Line || c.Column < 0 || c.Column >= s.size.Column {
		return
	}
	s.cursor = c
}

// AddStr writes text at the cursor up to the right edge and returns the columns written
func (s *Surface) AddStr(text string) int {
	return s.AddStrN(text, -1)
}

// AddStrN writes at most budget columns of text (negative means up to the edge).
// Grapheme clusters are never split; a cluster that does not fit stops the write.
func (s *Surface) AddStrN(text string, budget int) int {
	if !s.Valid() {
		return 0
	}
	limit := s.size.Column - s.cursor.Column
	if budget >= 0 {
		limit = min(limit, budget)
	}

	written := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := clusterWidth(cluster)
		if w == 0 {
			continue
		}
		if written+w > limit {
			break
		}
		s.put(s.cursor.Column, cluster, w)
		s.cursor.Column += w
		written += w
	}
	return written
}

// put writes one cluster at column x of the cursor line
func (s *Surface) put(x int, cluster string, w int) {
	row := s.row(s.cursor.Line)
	fg, bg := s.fg, s.bg
	if s.activePair < 0 {
		fg, bg = s.bgFg, s.bgBg
	}
	s.unsplit(row, x)
	row[x] = terminal.Cell{Text: cluster, Width: uint8(w), Fg: fg, Bg: bg, Attrs: s.attrs}
	if w == 2 {
		s.unsplit(row, x+1)
		row[x+1] = terminal.Cell{Width: 0, Fg: fg, Bg: bg, Attrs: s.attrs}
	}
	s.dirty[s.cursor.Line] = true
}

// unsplit blanks the other half of a wide glyph about to lose one half at x
func (s *Surface) unsplit(row []terminal.Cell, x int) {
	switch {
	case row[x].Width == 0 && x > 0:
		row[x-1] = s.blank()
	case row[x].Width == 2 && x+1 < len(row):
		row[x+1] = s.blank()
	}
}

// ClearToEOL blanks the cursor line from the cursor to the right edge
func (s *Surface) ClearToEOL() {
	if !s.Valid() {
		return
	}
	row := s.row(s.cursor.Line)
	if s.cursor.Column < len(row) {
		s.unsplit(row, s.cursor.Column)
	}
	blank := s.blank()
	for x := s.cursor.Column; x < len(row); x++ {
		row[x] = blank
	}
	s.dirty[s.cursor.Line] = true
}

// SetFace merges face over defaultFace and makes it the pen. Faces with only
// default colors draw with the background colors.
func (s *Surface) SetFace(face, defaultFace terminal.Face) {
	face = terminal.MergeFaces(defaultFace, face)
	s.activePair = -1
	if !face.Fg.IsDefault() || !face.Bg.IsDefault() {
		s.activePair = s.palette.ResolvePair(face.Fg, face.Bg)
		fg, bg := s.palette.PairColors(s.activePair)
		s.fg, s.bg = int16(fg), int16(bg)
	}
	s.attrs = face.Attrs
}

// SetBackground sets the colors of cleared cells and of writes made without a pair
func (s *Surface) SetBackground(face terminal.Face) {
	fg, bg := s.palette.PairColors(s.palette.ResolvePair(face.Fg, face.Bg))
	s.bgFg, s.bgBg = int16(fg), int16(bg)
}

// InvalidatePair forgets the active pair after the palette was reset
func (s *Surface) InvalidatePair() {
	s.activePair = -1
}

// MarkDirty forces count lines from first to be copied on the next refresh
func (s *Surface) MarkDirty(first, count int) {
	if !s.Valid() {
		return
	}
	for y := max(first, 0); y < min(first+count, s.size.Line); y++ {
		s.dirty[y] = true
	}
}

// CellAt returns the buffered cell at c, blank when outside or invalid
func (s *Surface) CellAt(c Coord) terminal.Cell {
	if !s.Valid() || c.Line < 0 || c.Line >= s.size.Line || c.Column < 0 || c.Column >= s.size.Column {
		return terminal.BlankCell
	}
	return s.cells[c.Line*s.size.Column+c.Column]
}

// LineText returns the glyphs of line y, blanks as spaces
func (s *Surface) LineText(y int) string {
	if !s.Valid() || y < 0 || y >= s.size.Line {
		return ""
	}
	buf := make([]byte, 0, s.size.Column)
	for _, c := range s.row(y) {
		switch {
		case c.Width == 0:
		case c.Text == "":
			buf = append(buf, ' ')
		default:
			buf = append(buf, c.Text...)
		}
	}
	return string(buf)
}

func (s *Surface) row(y int) []terminal.Cell {
	return s.cells[y*s.size.Column : (y+1)*s.size.Column]
}

func (s *Surface) blank() terminal.Cell {
	return terminal.Cell{Width: 1, Fg: s.bgFg, Bg: s.bgBg}
}

// ReadUnit implements terminal.UnitSource; only the primary surface reads input
func (s *Surface) ReadUnit() (int, bool) {
	if !s.Valid() || s.input == nil {
		return 0, false
	}
	return s.input.ReadUnit()
}

// UnreadUnit implements terminal.UnitSource
func (s *Surface) UnreadUnit(u int) {
	if s.input != nil {
		s.input.UnreadUnit(u)
	}
}

// SetBlocking implements terminal.UnitSource
func (s *Surface) SetBlocking(blocking bool) {
	if s.input != nil {
		s.input.SetBlocking(blocking)
	}
}

// Mouse implements terminal.UnitSource
func (s *Surface) Mouse() terminal.MouseReport {
	if s.input == nil {
		return terminal.MouseReport{}
	}
	return s.input.Mouse()
}
