package tui

import (
	"strings"

	"github.com/lixenwraith/termface/terminal"
)

// DrawLine writes line at the cursor of s, spending at most maxColumn-colIndex
// columns. A run ending in a newline that fits is drawn without it, followed by
// one blank cell; other runs are clipped to what is left of the budget.
func DrawLine(s *Surface, line Line, colIndex, maxColumn int, defaultFace terminal.Face) {
	for _, atom := range line {
		s.SetFace(atom.Face, defaultFace)

		content := atom.Content
		if content == "" {
			continue
		}

		remaining := max(maxColumn-colIndex, 0)
		if body, ok := strings.CutSuffix(content, "\n"); ok && StringWidth(body) < remaining {
			s.AddStrN(body, remaining)
			s.AddStrN(" ", 1)
			continue
		}

		content = ClipColumns(content, remaining)
		colIndex += s.AddStrN(content, remaining)
	}
}
