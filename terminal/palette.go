package terminal

// IndexDefault is the palette index of the terminal's default color
const IndexDefault = -1

// firstDynamicSlot is the first palette slot above the 16 base colors
const firstDynamicSlot = 16

// PaletteTarget is the terminal side a Palette queries and programs
type PaletteTarget interface {
	// Colors returns the number of palette slots
	Colors() int
	// CanChangeColor reports whether palette slots can be redefined
	CanChangeColor() bool
	// ChannelMax is the terminal's native per-channel resolution
	ChannelMax() int
	// SetPaletteColor programs slot with channels already scaled to ChannelMax
	SetPaletteColor(slot, r, g, b int)
	// ResetPalette restores the terminal's default palette
	ResetPalette()
}

type colorPair struct {
	fg, bg Color
}

// pairEntry is a programmed color pair, in palette indices
type pairEntry struct {
	fg, bg int
}

// Palette maps Colors to palette indices and (fg, bg) couples to pair indices.
// Mappings only grow until SetDynamicAllocation resets them.
type Palette struct {
	target PaletteTarget

	colors    map[Color]int
	pairs     map[colorPair]int
	pairTable []pairEntry // indexed by pair, entry 0 is the default pair

	nextColor int
	nextPair  int
	dynamic   bool
}

// NewPalette creates a palette with dynamic allocation enabled
func NewPalette(target PaletteTarget) *Palette {
	p := &Palette{target: target, dynamic: true}
	p.clear()
	return p
}

func (p *Palette) clear() {
	p.colors = make(map[Color]int, 32)
	p.colors[DefaultColor()] = IndexDefault
	for i := uint8(0); i <= BrightWhite; i++ {
		p.colors[NamedColor(i)] = int(i)
	}
	p.pairs = make(map[colorPair]int, 32)
	p.pairTable = []pairEntry{{IndexDefault, IndexDefault}}
	p.nextColor = firstDynamicSlot
	p.nextPair = 1
}

// DynamicAllocation reports the current allocation setting
func (p *Palette) DynamicAllocation() bool {
	return p.dynamic
}

// ResolveColor returns the palette index for c, allocating a dynamic slot when possible
func (p *Palette) ResolveColor(c Color) int {
	if idx, ok := p.colors[c]; ok {
		return idx
	}

	colors := p.target.Colors()
	if p.dynamic && p.target.CanChangeColor() && colors > firstDynamicSlot {
		if p.nextColor >= colors {
			p.nextColor = firstDynamicSlot
		}
		slot := p.nextColor
		p.nextColor++

		scale := p.target.ChannelMax()
		p.target.SetPaletteColor(slot,
			int(c.R)*scale/255,
			int(c.G)*scale/255,
			int(c.B)*scale/255)

		// A recycled slot keeps its earlier owner mapped, which now renders as c
		p.colors[c] = slot
		return slot
	}

	return nearestBuiltin(RGB{c.R, c.G, c.B}, colors)
}

// ResolvePair returns the color pair index for (fg, bg), programming a new pair on first request
func (p *Palette) ResolvePair(fg, bg Color) int {
	key := colorPair{fg, bg}
	if idx, ok := p.pairs[key]; ok {
		return idx
	}
	idx := p.nextPair
	p.nextPair++
	p.pairTable = append(p.pairTable, pairEntry{p.ResolveColor(fg), p.ResolveColor(bg)})
	p.pairs[key] = idx
	return idx
}

// PairColors returns the palette indices programmed into pair
func (p *Palette) PairColors(pair int) (fg, bg int) {
	if pair <= 0 || pair >= len(p.pairTable) {
		return IndexDefault, IndexDefault
	}
	e := p.pairTable[pair]
	return e.fg, e.bg
}

// SetDynamicAllocation switches RGB handling between dynamic slots and quantization.
// Returns true when mappings were reset; every cached pair index is stale after that.
func (p *Palette) SetDynamicAllocation(enabled bool) bool {
	reset := false
	if p.target.CanChangeColor() && p.dynamic != enabled {
		p.target.ResetPalette()
		p.clear()
		reset = true
	}
	p.dynamic = enabled
	return reset
}
