package terminal

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"", DefaultColor(), false},
		{"default", DefaultColor(), false},
		{"red", NamedColor(Red), false},
		{"Bright-Cyan", NamedColor(BrightCyan), false},
		{"rgb:ff8000", RGBColor(255, 128, 0), false},
		{"#0a0b0c", RGBColor(10, 11, 12), false},
		{"mauve", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseFace(t *testing.T) {
	tests := []struct {
		in      string
		want    Face
		wantErr bool
	}{
		{"", Face{}, false},
		{"red", Face{Fg: NamedColor(Red)}, false},
		{",blue", Face{Bg: NamedColor(Blue)}, false},
		{"black,rgb:87afd7", Face{Fg: NamedColor(Black), Bg: RGBColor(0x87, 0xaf, 0xd7)}, false},
		{"#ff0000,default+bold+Underline", Face{Fg: RGBColor(255, 0, 0), Attrs: AttrBold | AttrUnderline}, false},
		{"+reverse", Face{Attrs: AttrReverse}, false},
		{"red+sparkle", Face{}, true},
		{"red,mauve", Face{}, true},
	}

	for _, tt := range tests {
		got, err := ParseFace(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFace(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFace(%q): expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func TestColorString(t *testing.T) {
	if s := RGBColor(1, 2, 255).String(); s != "rgb:0102ff" {
		t.Errorf("Expected rgb:0102ff, got %s", s)
	}
	if s := NamedColor(200).String(); s != "bright-white" {
		t.Errorf("Expected clamped bright-white, got %s", s)
	}
}

func TestMergeFaces(t *testing.T) {
	base := Face{Fg: NamedColor(White), Bg: NamedColor(Blue), Attrs: AttrBold}
	over := Face{Fg: NamedColor(Yellow), Attrs: AttrUnderline}

	got := MergeFaces(base, over)
	want := Face{Fg: NamedColor(Yellow), Bg: NamedColor(Blue), Attrs: AttrBold | AttrUnderline}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestBuiltinTable(t *testing.T) {
	tests := []struct {
		idx  int
		want RGB
	}{
		{16 + 36*5, RGB{0xff, 0, 0}},
		{16 + 36*1 + 6*2 + 3, RGB{0x5f, 0x87, 0xaf}},
		{232, RGB{0x08, 0x08, 0x08}},
		{241, RGB{0x60, 0x60, 0x60}},
		{242, RGB{0x66, 0x66, 0x66}},
		{243, RGB{0x76, 0x76, 0x76}},
		{255, RGB{0xee, 0xee, 0xee}},
	}
	for _, tt := range tests {
		if c := BuiltinColor(tt.idx); c != tt.want {
			t.Errorf("Index %d: expected %+v, got %+v", tt.idx, tt.want, c)
		}
	}
	if idx := nearestBuiltin(RGB{0xff, 0, 0}, 16); idx != int(BrightRed) {
		t.Errorf("Expected bright red in 16 colors, got %d", idx)
	}
}

func TestScrollRegionAndTitleSequences(t *testing.T) {
	if got := string(ScrollRegionSequence(0, 22)); got != "\x1b[1;23r" {
		t.Errorf("Expected \\x1b[1;23r, got %q", got)
	}
	if got := string(TitleSequence("hi")); got != "\x1b]2;hi\x07" {
		t.Errorf("Unexpected title sequence %q", got)
	}
	if got := string(setColorSequence(16, 0xffff, 0, 0x1234)); got != "\x1b]4;16;rgb:ffff/0000/1234\x07" {
		t.Errorf("Unexpected color sequence %q", got)
	}
}
