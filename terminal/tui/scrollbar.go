package tui

// Scrollbar glyphs
const (
	scrollThumb = "█"
	scrollTrack = "░"
)

// ScrollThumb computes the thumb extent of a vertical scrollbar of trackH rows
// over content of totalLines rows, scrolled to offset out of maxOffset steps
func ScrollThumb(trackH, totalLines, offset, maxOffset int) (thumbY, thumbH int) {
	if trackH <= 0 {
		return 0, 0
	}
	if totalLines <= 0 {
		return 0, trackH
	}

	// Thumb covers the visible share of the track, rounded up
	thumbH = min((trackH*trackH+totalLines-1)/totalLines, trackH)

	thumbY = (trackH - thumbH) * offset / max(1, maxOffset)
	thumbY = max(0, min(thumbY, trackH-thumbH))
	return thumbY, thumbH
}

// ScrollGlyph returns the glyph drawn at row y of a track with the given thumb
func ScrollGlyph(y, thumbY, thumbH int) string {
	if y >= thumbY && y < thumbY+thumbH {
		return scrollThumb
	}
	return scrollTrack
}
