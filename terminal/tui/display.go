package tui

import (
	"strings"

	"github.com/lixenwraith/termface/terminal"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Coord is a (line, column) position or size
type Coord struct {
	Line, Column int
}

// Add returns the component-wise sum
func (c Coord) Add(o Coord) Coord {
	return Coord{c.Line + o.Line, c.Column + o.Column}
}

// Sub returns the component-wise difference
func (c Coord) Sub(o Coord) Coord {
	return Coord{c.Line - o.Line, c.Column - o.Column}
}

// IsZero reports whether both components are zero
func (c Coord) IsZero() bool {
	return c.Line == 0 && c.Column == 0
}

// Rect is a placed rectangle, end exclusive
type Rect struct {
	Pos, Size Coord
}

// End returns the first coordinate past the rectangle
func (r Rect) End() Coord {
	return r.Pos.Add(r.Size)
}

// Empty reports a rectangle with no area
func (r Rect) Empty() bool {
	return r.Size.Line <= 0 || r.Size.Column <= 0
}

// Intersects reports whether the two rectangles share at least one cell
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	re, oe := r.End(), o.End()
	return r.Pos.Line < oe.Line && o.Pos.Line < re.Line &&
		r.Pos.Column < oe.Column && o.Pos.Column < re.Column
}

// Contains reports whether o lies entirely inside r
func (r Rect) Contains(o Rect) bool {
	re, oe := r.End(), o.End()
	return o.Pos.Line >= r.Pos.Line && o.Pos.Column >= r.Pos.Column &&
		oe.Line <= re.Line && oe.Column <= re.Column
}

// Atom is a run of text drawn with one face
type Atom struct {
	Content string
	Face    terminal.Face
}

// Line is a sequence of styled runs
type Line []Atom

// NewLine builds a single-run line
func NewLine(content string, face terminal.Face) Line {
	return Line{{Content: content, Face: face}}
}

// Length returns the display width of the line in columns
func (l Line) Length() int {
	n := 0
	for _, a := range l {
		n += StringWidth(a.Content)
	}
	return n
}

// String concatenates the run contents
func (l Line) String() string {
	var sb strings.Builder
	for _, a := range l {
		sb.WriteString(a.Content)
	}
	return sb.String()
}

// Trim drops the first `first` columns and keeps at most `count` columns after them.
// A wide glyph straddling either cut is dropped whole.
func (l Line) Trim(first, count int) Line {
	out := make(Line, 0, len(l))
	col := 0
	end := first + count
	for _, a := range l {
		var sb strings.Builder
		g := uniseg.NewGraphemes(a.Content)
		for g.Next() {
			cluster := g.Str()
			w := clusterWidth(cluster)
			start := col
			col += w
			if start < first || col > end {
				continue
			}
			sb.WriteString(cluster)
		}
		if sb.Len() > 0 {
			out = append(out, Atom{Content: sb.String(), Face: a.Face})
		}
	}
	return out
}

// Insert returns the line with a inserted before index i
func (l Line) Insert(i int, a Atom) Line {
	i = max(0, min(i, len(l)))
	out := make(Line, 0, len(l)+1)
	out = append(out, l[:i]...)
	out = append(out, a)
	return append(out, l[i:]...)
}

// clusterWidth is the display width of one grapheme cluster, at most two columns
func clusterWidth(cluster string) int {
	return min(runewidth.StringWidth(cluster), 2)
}

// StringWidth returns the display width of s in terminal columns
func StringWidth(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n += clusterWidth(g.Str())
	}
	return n
}
