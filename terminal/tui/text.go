package tui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Truncate truncates s to maxWidth columns with … suffix when it does not fit
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	return ClipColumns(s, maxWidth-1) + "…"
}

// ClipColumns returns the longest prefix of s fitting in width columns, never splitting a cluster
func ClipColumns(s string, width int) string {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := clusterWidth(g.Str())
		if col+w > width {
			from, _ := g.Positions()
			return s[:from]
		}
		col += w
	}
	return s
}

// PadRight pads s with spaces to width columns
func PadRight(s string, width int) string {
	n := StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// RepeatRune returns a string of n repeated runes
func RepeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(r), n)
}

// WrapLines splits text on newlines and word-wraps each paragraph to width columns.
// Words wider than width are broken between clusters; spaces at breaks are dropped.
func WrapLines(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, width)...)
	}
	return lines
}

func wrapParagraph(para string, width int) []string {
	var lines []string
	var cur strings.Builder
	curW := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range strings.Fields(para) {
		w := StringWidth(word)

		// Fits on the current line after a separating space
		if curW > 0 && curW+1+w <= width {
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + w
			continue
		}
		if curW > 0 {
			flush()
		}
		if w <= width {
			cur.WriteString(word)
			curW = w
			continue
		}

		// Break an overlong word by cluster
		g := uniseg.NewGraphemes(word)
		for g.Next() {
			cluster := g.Str()
			cw := clusterWidth(cluster)
			if curW+cw > width {
				flush()
			}
			cur.WriteString(cluster)
			curW += cw
		}
	}
	if curW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
