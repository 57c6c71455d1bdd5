// @focus: #render { info } #layout { placement }
package tui

import "github.com/lixenwraith/termface/terminal"

// InfoStyle selects how an info box is framed and where it is placed
type InfoStyle uint8

const (
	InfoPrompt      InfoStyle = iota // framed, with assistant, above the status line
	InfoModal                        // framed, centered
	InfoMenuDoc                      // plain, beside the menu
	InfoInline                       // plain, below the anchor when it fits
	InfoInlineAbove                  // plain, above the anchor when it fits
	InfoInlineBelow                  // plain, below the anchor
)

func (s InfoStyle) String() string {
	switch s {
	case InfoPrompt:
		return "prompt"
	case InfoModal:
		return "modal"
	case InfoMenuDoc:
		return "menudoc"
	case InfoInline:
		return "inline"
	case InfoInlineAbove:
		return "inlineabove"
	case InfoInlineBelow:
		return "inlinebelow"
	}
	return "unknown"
}

// InfoBox is the text of a laid out box, one string per row
type InfoBox struct {
	Size     Coord
	Contents []string
}

// Empty reports a box with nothing to show
func (b InfoBox) Empty() bool {
	return b.Size.Line <= 0 || b.Size.Column <= 0
}

// MakeInfoBox frames message in a border bubble of at most maxWidth columns,
// titled when title is not empty, with the assistant art on its left.
// The box is empty when the bubble would be narrower than four columns.
// A title wider than the bubble allows is truncated.
func MakeInfoBox(title, message string, maxWidth int, assistant []string, border LineType) InfoBox {
	var art Coord
	if len(assistant) > 0 {
		art = Coord{len(assistant), StringWidth(assistant[0])}
	}

	maxBubble := maxWidth - art.Column - 6
	if maxBubble < 4 {
		return InfoBox{}
	}

	title = Truncate(title, maxBubble-2)
	lines := WrapLines(message, maxBubble)
	bubble := StringWidth(title) + 2
	for _, line := range lines {
		bubble = max(bubble, StringWidth(line))
	}

	lineCount := max(art.Line-1, len(lines)+2)
	box := InfoBox{
		Size:     Coord{lineCount, bubble + art.Column + 4},
		Contents: make([]string, 0, lineCount),
	}
	frame := Frame{Line: border, Inner: bubble}
	topMargin := (lineCount - art.Line + 1) / 2

	for i := 0; i < lineCount; i++ {
		var row string
		if len(assistant) > 0 {
			if i >= topMargin {
				row = assistant[min(i-topMargin, art.Line-1)]
			} else {
				row = assistant[art.Line-1]
			}
		}
		switch {
		case i == 0:
			row += frame.Top(title)
		case i < len(lines)+1:
			row += frame.Row(lines[i-1])
		case i == len(lines)+1:
			row += frame.Bottom()
		}
		box.Contents = append(box.Contents, row)
	}
	return box
}

// MakeSimpleInfoBox wraps contents to maxWidth without any frame
func MakeSimpleInfoBox(contents string, maxWidth int) InfoBox {
	var box InfoBox
	for _, line := range WrapLines(contents, maxWidth) {
		box.Size.Line++
		box.Size.Column = max(box.Size.Column, StringWidth(line))
		box.Contents = append(box.Contents, line)
	}
	return box
}

// ComputePos places a box of size next to anchor inside rect, below it unless
// preferAbove and there is room above. A placement overlapping avoid moves to
// above the obstacle, or below it when above would leave the screen.
func ComputePos(anchor, size Coord, rect, avoid Rect, preferAbove bool) Coord {
	var pos Coord
	if preferAbove {
		pos = anchor.Sub(Coord{Line: size.Line})
		if pos.Line < 0 {
			preferAbove = false
		}
	}
	rectEnd := rect.End()
	if !preferAbove {
		pos = anchor.Add(Coord{Line: 1})
		if pos.Line+size.Line > rectEnd.Line {
			pos.Line = max(rect.Pos.Line, anchor.Line-size.Line)
		}
	}
	if pos.Column+size.Column > rectEnd.Column {
		pos.Column = max(rect.Pos.Column, rectEnd.Column-size.Column)
	}

	if !avoid.Size.IsZero() && avoid.Intersects(Rect{Pos: pos, Size: size}) {
		pos.Line = min(avoid.Pos.Line, anchor.Line) - size.Line
		if pos.Line < 0 {
			pos.Line = max(avoid.End().Line, anchor.Line)
		}
	}
	return pos
}

// InfoRequest is everything an info placement depends on
type InfoRequest struct {
	Title, Content string
	Anchor         Coord
	Face           terminal.Face
	Style          InfoStyle
	Border         LineType // frame of the prompt and modal styles
}

// PlaceInfo lays out and positions req on the screen described by geo, keeping
// clear of menu. It reports false when the box does not fit.
func PlaceInfo(req InfoRequest, geo Geometry, menu Rect, assistant []string) (Coord, InfoBox, bool) {
	dims := geo.Dimensions
	rect := Rect{Pos: Coord{Line: geo.LineOffset()}, Size: dims}
	anchor := req.Anchor

	var box InfoBox
	switch req.Style {
	case InfoPrompt:
		box = MakeInfoBox(req.Title, req.Content, dims.Column, assistant, req.Border)
		anchor = ComputePos(Coord{geo.StatusLine(), dims.Column - 1}, box.Size, rect, menu, false)

	case InfoModal:
		box = MakeInfoBox(req.Title, req.Content, dims.Column, nil, req.Border)
		anchor = rect.Pos.Add(half(rect.Size)).Sub(half(box.Size))

	case InfoMenuDoc:
		if menu.Empty() {
			return Coord{}, InfoBox{}, false
		}
		menuEnd := menu.End().Column
		right := dims.Column - menuEnd
		left := menu.Pos.Column
		maxWidth := max(right, left)
		if maxWidth < 4 {
			return Coord{}, InfoBox{}, false
		}
		box = MakeSimpleInfoBox(req.Content, maxWidth)
		anchor.Line = menu.Pos.Line
		if box.Size.Column <= right || right >= left {
			anchor.Column = menuEnd
		} else {
			anchor.Column = menu.Pos.Column - box.Size.Column
		}

	default:
		maxWidth := dims.Column - anchor.Column
		if maxWidth < 4 {
			return Coord{}, InfoBox{}, false
		}
		box = MakeSimpleInfoBox(req.Content, maxWidth)
		anchor = ComputePos(anchor, box.Size, rect, menu, req.Style == InfoInlineAbove)
		anchor.Line += geo.LineOffset()
	}

	if box.Empty() || !rect.Contains(Rect{Pos: anchor, Size: box.Size}) {
		return Coord{}, InfoBox{}, false
	}
	return anchor, box, true
}

func half(c Coord) Coord {
	return Coord{c.Line / 2, c.Column / 2}
}

// Info is the popup text box state and the surface it draws into
type Info struct {
	InfoRequest

	surface *Surface
}

// NewInfo creates a hidden info box drawing through palette
func NewInfo(palette *terminal.Palette) *Info {
	return &Info{surface: NewSurface(palette)}
}

// Surface returns the info surface, invalid while hidden
func (i *Info) Surface() *Surface { return i.surface }

// Visible reports whether the info surface exists
func (i *Info) Visible() bool { return i.surface.Valid() }

// Show stores req and draws it if it fits
func (i *Info) Show(req InfoRequest, geo Geometry, menu Rect, assistant []string) {
	i.surface.Destroy()
	i.InfoRequest = req

	pos, box, ok := PlaceInfo(req, geo, menu, assistant)
	if !ok {
		return
	}

	s := i.surface
	s.Create(pos, box.Size)
	s.SetBackground(req.Face)
	for line, content := range box.Contents {
		s.MoveCursor(Coord{Line: line})
		s.ClearToEOL()
		s.AddStr(content)
	}
}

// Hide destroys the surface
func (i *Info) Hide() {
	i.surface.Destroy()
}
