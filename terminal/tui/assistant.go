package tui

import "strings"

// Assistant art drawn beside prompt info boxes. Rows share one display width,
// the bubble attaches at the right edge.
var assistantClippy = []string{
	" ╭──╮   ",
	" │  │   ",
	" @  @  ╭",
	" ││ ││ │",
	" ││ ││ ╯",
	" │╰─╯│  ",
	" ╰───╯  ",
	"        ",
}

var assistantCat = []string{
	"  ___            ",
	" (__ \\           ",
	"   / /          ╭",
	"  .' '·.        │",
	" '      ”       │",
	" ╰       /\\_/|  │",
	"  | .         \\ │",
	"  ╰_J`    | | | ╯",
	"      ' \\__- _/  ",
	"      \\_\\   \\_\\  ",
	"                 ",
}

var assistantDilbert = []string{
	"  დოოოოოდ   ",
	"  |     |   ",
	"  |     |  ╭",
	"  |-ᱛ ᱛ-|  │",
	" Ͼ   ∪   Ͽ │",
	"  |     |  ╯",
	" ˏ`-.ŏ.-´ˎ  ",
	"     @      ",
	"      @     ",
	"            ",
}

// Assistant returns the art registered under name. "none" and "off" select no
// art; unknown names report false.
func Assistant(name string) ([]string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clippy":
		return assistantClippy, true
	case "cat":
		return assistantCat, true
	case "dilbert":
		return assistantDilbert, true
	case "none", "off":
		return nil, true
	}
	return nil, false
}
