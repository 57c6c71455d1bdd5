package terminal

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorKind tags the variant held by a Color
type ColorKind uint8

const (
	ColorKindDefault ColorKind = iota
	ColorKindNamed
	ColorKindRGB
)

// Named base colors, values double as their fixed palette index
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

var colorNames = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

// Color is the tagged value: default, one of 16 named colors, or 24-bit RGB.
// Comparable, usable as a map key.
type Color struct {
	Kind    ColorKind
	Index   uint8 // ColorKindNamed
	R, G, B uint8 // ColorKindRGB
}

// DefaultColor is the terminal's own foreground/background
func DefaultColor() Color { return Color{} }

// NamedColor returns one of the 16 base colors. Out of range indices clamp to BrightWhite
func NamedColor(i uint8) Color {
	if i > BrightWhite {
		i = BrightWhite
	}
	return Color{Kind: ColorKindNamed, Index: i}
}

// RGBColor returns a 24-bit color
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorKindRGB, R: r, G: g, B: b}
}

// IsDefault reports whether c is the default color
func (c Color) IsDefault() bool { return c.Kind == ColorKindDefault }

func (c Color) String() string {
	switch c.Kind {
	case ColorKindNamed:
		return colorNames[c.Index]
	case ColorKindRGB:
		return fmt.Sprintf("rgb:%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// ParseColor accepts "default", a base color name, "rgb:RRGGBB" or "#RRGGBB"
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return DefaultColor(), nil
	}
	for i, name := range colorNames {
		if s == name {
			return NamedColor(uint8(i)), nil
		}
	}

	hex := s
	if rest, ok := strings.CutPrefix(s, "rgb:"); ok {
		hex = "#" + rest
	}
	if !strings.HasPrefix(hex, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	cf, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return RGBColor(r, g, b), nil
}

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Face is a (foreground, background, attributes) styling triple
type Face struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

var attrNames = map[string]Attr{
	"bold":      AttrBold,
	"dim":       AttrDim,
	"italic":    AttrItalic,
	"underline": AttrUnderline,
	"blink":     AttrBlink,
	"reverse":   AttrReverse,
}

// ParseFace accepts "fg[,bg][+attr...]", colors in any form ParseColor takes,
// e.g. "black,rgb:87afd7+bold+underline". Missing colors are default.
func ParseFace(s string) (Face, error) {
	var face Face
	colors, attrs, _ := strings.Cut(strings.TrimSpace(s), "+")
	if attrs != "" {
		for _, name := range strings.Split(attrs, "+") {
			a, ok := attrNames[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return Face{}, fmt.Errorf("parse face %q: unknown attribute %q", s, name)
			}
			face.Attrs |= a
		}
	}

	fg, bg, _ := strings.Cut(colors, ",")
	var err error
	if face.Fg, err = ParseColor(fg); err != nil {
		return Face{}, fmt.Errorf("parse face %q: %w", s, err)
	}
	if face.Bg, err = ParseColor(bg); err != nil {
		return Face{}, fmt.Errorf("parse face %q: %w", s, err)
	}
	return face, nil
}

// MergeFaces lays face over base: colors of face win where they are not default,
// attributes accumulate
func MergeFaces(base, face Face) Face {
	merged := base
	if !face.Fg.IsDefault() {
		merged.Fg = face.Fg
	}
	if !face.Bg.IsDefault() {
		merged.Bg = face.Bg
	}
	merged.Attrs |= face.Attrs
	return merged
}
