// @focus: #render { menu } #layout { grid, scroll }
package tui

import (
	"strings"

	"github.com/lixenwraith/termface/terminal"
)

// MenuStyle selects where a menu is placed and how it is laid out
type MenuStyle uint8

const (
	MenuInline MenuStyle = iota // single column under the anchor
	MenuPrompt                  // grid above the status line
	MenuSearch                  // single row in the right half of the status line
)

func (s MenuStyle) String() string {
	switch s {
	case MenuInline:
		return "inline"
	case MenuPrompt:
		return "prompt"
	case MenuSearch:
		return "search"
	}
	return "unknown"
}

// heightLimit caps the number of menu rows per style
func (s MenuStyle) heightLimit() int {
	if s == MenuSearch {
		return 3
	}
	return 10
}

// Geometry is the screen shape layouts are computed against
type Geometry struct {
	Dimensions  Coord // content area, status line excluded
	StatusOnTop bool
}

// LineOffset is the number of rows above the content area
func (g Geometry) LineOffset() int {
	if g.StatusOnTop {
		return 1
	}
	return 0
}

// StatusLine is the row of the status line
func (g Geometry) StatusLine() int {
	if g.StatusOnTop {
		return 0
	}
	return g.Dimensions.Line
}

// MenuLayout is the placement computed for a set of items
type MenuLayout struct {
	Pos, Size Coord
	Columns   int // 0 for the single-row layout
	MaxLen    int // item width cap
}

// LayoutMenu places items for style around anchor. It reports false when the
// screen is too narrow for any menu.
func LayoutMenu(items []Line, anchor Coord, style MenuStyle, geo Geometry) (MenuLayout, bool) {
	dims := geo.Dimensions
	if dims.Column <= 2 {
		return MenuLayout{}, false
	}

	longest := 1
	for _, item := range items {
		longest = max(longest, item.Length())
	}

	maxWidth := dims.Column - 1
	var l MenuLayout
	switch style {
	case MenuSearch:
		l.Columns = 0
	case MenuInline:
		l.Columns = 1
	default:
		l.Columns = max(maxWidth/(longest+1), 1)
	}

	maxHeight := min(style.heightLimit(), max(anchor.Line, dims.Line-anchor.Line-1))
	height := 1
	if style != MenuSearch {
		height = min(maxHeight, ceilDiv(len(items), l.Columns))
	}

	l.MaxLen = maxWidth
	if l.Columns > 1 && len(items) > 1 {
		l.MaxLen = maxWidth/l.Columns - 1
	}

	if style == MenuInline {
		anchor.Line += geo.LineOffset()
	}
	line := anchor.Line + 1
	column := max(0, min(anchor.Column, dims.Column-longest-1))
	switch {
	case style == MenuSearch:
		line = geo.StatusLine()
		column = dims.Column / 2
	case style != MenuInline:
		line = dims.Line - height
		if geo.StatusOnTop {
			line = 1
		}
	case line+height > dims.Line:
		line = anchor.Line - height
	}

	width := dims.Column
	switch style {
	case MenuSearch:
		width = dims.Column - dims.Column/2
	case MenuInline:
		width = min(longest+1, dims.Column)
	}

	l.Pos = Coord{line, column}
	l.Size = Coord{height, width}
	return l, true
}

// Menu is the popup list state and the surface it draws into
type Menu struct {
	Items    []Line
	Fg, Bg   terminal.Face
	Style    MenuStyle
	Anchor   Coord
	Columns  int
	Selected int
	First    int

	surface *Surface
}

// NewMenu creates a hidden menu drawing through palette
func NewMenu(palette *terminal.Palette) *Menu {
	return &Menu{surface: NewSurface(palette), Selected: -1}
}

// Surface returns the menu surface, invalid while hidden
func (m *Menu) Surface() *Surface { return m.surface }

// Visible reports whether the menu surface exists
func (m *Menu) Visible() bool { return m.surface.Valid() }

// Show lays out items and draws them with nothing selected. Parameters are kept
// even when the menu does not fit so a later resize can retry.
func (m *Menu) Show(items []Line, anchor Coord, fg, bg terminal.Face, style MenuStyle, geo Geometry) {
	m.surface.Destroy()
	m.Fg, m.Bg = fg, bg
	m.Style = style
	m.Anchor = anchor
	m.Items = m.Items[:0]

	layout, ok := LayoutMenu(items, anchor, style, geo)
	if !ok {
		return
	}
	m.Columns = layout.Columns
	for _, item := range items {
		m.Items = append(m.Items, item.Trim(0, layout.MaxLen))
	}

	m.surface.Create(layout.Pos, layout.Size)
	m.Selected = len(m.Items)
	m.First = 0
	m.Draw()
}

// Hide drops the items and destroys the surface
func (m *Menu) Hide() {
	m.Items = m.Items[:0]
	m.surface.Destroy()
}

// Select highlights item i and scrolls it into view. Out of range clears the
// selection and returns to the first page.
func (m *Menu) Select(i int) {
	n := len(m.Items)
	switch {
	case i < 0 || i >= n:
		m.Selected = -1
		m.First = 0
	case m.Columns == 0:
		m.Selected = i
		width := m.surface.Size().Column - 3
		first, col := 0, 0
		for j := 0; j <= i; j++ {
			w := m.Items[j].Length() + 1
			if col+w > width {
				first = j
				col = w
			} else {
				col += w
			}
		}
		m.First = first
	default:
		m.Selected = i
		h := m.surface.Size().Line
		if h <= 0 {
			break
		}
		menuCols := ceilDiv(n, h)
		firstCol := m.First / h
		selCol := i / h
		if selCol < firstCol {
			m.First = selCol * h
		}
		if selCol >= firstCol+m.Columns {
			m.First = min(selCol, menuCols-m.Columns) * h
		}
	}
	m.Draw()
}

// Draw renders the visible page of items
func (m *Menu) Draw() {
	s := m.surface
	if !s.Valid() {
		return
	}
	s.SetFace(m.Bg, terminal.Face{})
	s.SetBackground(m.Bg)

	if m.Columns == 0 {
		m.drawRow()
		return
	}
	m.drawGrid()
}

// drawRow lays items left to right, bracketed by scroll markers
func (m *Menu) drawRow() {
	s := m.surface
	n := len(m.Items)
	winWidth := s.Size().Column - 4
	pos := 0

	s.MoveCursor(Coord{})
	if m.First > 0 {
		s.AddStr("< ")
	} else {
		s.AddStr("  ")
	}

	i := m.First
	for ; i < n && pos < winWidth; i++ {
		item := m.Items[i]
		w := item.Length()
		DrawLine(s, item, 0, winWidth-pos, m.itemFace(i))
		if w > winWidth-pos {
			s.AddStr("…")
		} else {
			s.SetFace(m.Bg, terminal.Face{})
			s.AddStr(" ")
		}
		pos += w + 1
	}

	s.SetFace(m.Bg, terminal.Face{})
	if pos <= winWidth {
		s.AddStr(strings.Repeat(" ", winWidth-pos+1))
	}
	if i == n {
		s.AddStr(" ")
	} else {
		s.AddStr(">")
	}
}

// drawGrid lays items column-major with a scrollbar in the last column
func (m *Menu) drawGrid() {
	s := m.surface
	n := len(m.Items)
	size := s.Size()
	h := size.Line

	menuLines := ceilDiv(n, m.Columns)
	colWidth := (size.Column - 1) / m.Columns
	menuCols := ceilDiv(n, h)
	firstCol := m.First / h
	thumbY, thumbH := ScrollThumb(h, menuLines, firstCol, menuCols-m.Columns)

	for line := 0; line < h; line++ {
		s.MoveCursor(Coord{line, 0})
		for col := 0; col < m.Columns; col++ {
			idx := (firstCol+col)*h + line
			if idx >= n {
				continue
			}
			item := m.Items[idx]
			DrawLine(s, item, 0, colWidth, m.itemFace(idx))
			if pad := colWidth - item.Length(); pad > 0 {
				s.AddStr(strings.Repeat(" ", pad))
			}
		}
		s.ClearToEOL()
		s.MoveCursor(Coord{line, size.Column - 1})
		s.SetFace(m.Bg, terminal.Face{})
		s.AddStr(ScrollGlyph(line, thumbY, thumbH))
	}
}

func (m *Menu) itemFace(i int) terminal.Face {
	if i == m.Selected {
		return m.Fg
	}
	return m.Bg
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
