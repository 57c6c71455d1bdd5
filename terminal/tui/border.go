package tui

// LineType specifies box drawing character style
type LineType uint8

const (
	LineRounded LineType = iota // ╭─╮│╰╯
	LineSingle                  // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineHeavy                   // ┏━┓┃┗┛
)

var lineTypeNames = [...]string{
	LineRounded: "rounded",
	LineSingle:  "single",
	LineDouble:  "double",
	LineHeavy:   "heavy",
}

func (l LineType) String() string {
	if int(l) < len(lineTypeNames) {
		return lineTypeNames[l]
	}
	return "unknown"
}

// ParseLineType resolves a border style name
func ParseLineType(name string) (LineType, bool) {
	for i, n := range lineTypeNames {
		if n == name {
			return LineType(i), true
		}
	}
	return LineRounded, false
}

// Box drawing character sets indexed by LineType
var boxChars = [...][6]rune{
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

// Title delimiters facing the horizontal edge, same order as boxChars
var titleChars = [...][2]rune{
	LineRounded: {'┤', '├'},
	LineSingle:  {'┤', '├'},
	LineDouble:  {'╡', '╞'},
	LineHeavy:   {'┫', '┣'},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Frame builds the rows of a bordered text box around content lines
type Frame struct {
	Line  LineType
	Inner int // columns between the border padding
}

func (f Frame) chars() [6]rune {
	if f.Line >= LineType(len(boxChars)) {
		return boxChars[LineRounded]
	}
	return boxChars[f.Line]
}

// Top returns the top edge, with title centered between delimiters when not empty
func (f Frame) Top(title string) string {
	c := f.chars()
	h := c[boxH]
	if title == "" {
		return string([]rune{c[boxTL], h}) + RepeatRune(h, f.Inner) + string([]rune{h, c[boxTR]})
	}
	t := titleChars[min(int(f.Line), len(titleChars)-1)]
	dashes := f.Inner - StringWidth(title) - 2
	left := dashes / 2
	return string([]rune{c[boxTL], h}) + RepeatRune(h, left) + string(t[0]) + title +
		string(t[1]) + RepeatRune(h, dashes-left) + string([]rune{h, c[boxTR]})
}

// Row returns a body row, content padded to the inner width
func (f Frame) Row(content string) string {
	v := string(f.chars()[boxV])
	return v + " " + PadRight(content, f.Inner) + " " + v
}

// Bottom returns the bottom edge
func (f Frame) Bottom() string {
	c := f.chars()
	h := c[boxH]
	return string([]rune{c[boxBL], h}) + RepeatRune(h, f.Inner) + string([]rune{h, c[boxBR]})
}
