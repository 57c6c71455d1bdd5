package terminal

// Generic xterm 256-color palette without any dynamic redefinition
//
// Color cube: index = 16 + 36*r + 6*g + b where r,g,b ∈ [0,5]
// Grayscale ramp: indices 232-255, from the fixed table below

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// baseColors are the 16 standard colors in xterm's default rendition
var baseColors = [16]RGB{
	{0x00, 0x00, 0x00}, {0x80, 0x00, 0x00}, {0x00, 0x80, 0x00}, {0x80, 0x80, 0x00},
	{0x00, 0x00, 0x80}, {0x80, 0x00, 0x80}, {0x00, 0x80, 0x80}, {0xc0, 0xc0, 0xc0},
	{0x80, 0x80, 0x80}, {0xff, 0x00, 0x00}, {0x00, 0xff, 0x00}, {0xff, 0xff, 0x00},
	{0x00, 0x00, 0xff}, {0xff, 0x00, 0xff}, {0x00, 0xff, 0xff}, {0xff, 0xff, 0xff},
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

// grayLevels is the ramp at 232-255. It follows the common table rather than
// xterm's 8+10n formula around the middle (0x60, 0x66).
var grayLevels = [24]uint8{
	0x08, 0x12, 0x1c, 0x26, 0x30, 0x3a, 0x44, 0x4e,
	0x58, 0x60, 0x66, 0x76, 0x80, 0x8a, 0x94, 0x9e,
	0xa8, 0xb2, 0xbc, 0xc6, 0xd0, 0xda, 0xe4, 0xee,
}

// builtinColors is the full 256 entry table quantization scans, in index order
var builtinColors [256]RGB

func init() {
	copy(builtinColors[:16], baseColors[:])
	for i := 0; i < 216; i++ {
		builtinColors[16+i] = RGB{cubeValues[i/36], cubeValues[(i/6)%6], cubeValues[i%6]}
	}
	for i, level := range grayLevels {
		builtinColors[grayscaleStart+i] = RGB{level, level, level}
	}
}

// BuiltinColor returns the standard rendition of palette index i
func BuiltinColor(i int) RGB {
	if i < 0 || i >= len(builtinColors) {
		return RGB{}
	}
	return builtinColors[i]
}

// nearestBuiltin scans the first limit entries of the builtin table for the
// smallest squared distance. Ties keep the lowest index.
func nearestBuiltin(c RGB, limit int) int {
	limit = min(limit, len(builtinColors))
	best, bestDist := 0, -1
	for i := 0; i < limit; i++ {
		col := builtinColors[i]
		dr := int(c.R) - int(col.R)
		dg := int(c.G) - int(col.G)
		db := int(c.B) - int(col.B)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
