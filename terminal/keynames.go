package terminal

import (
	"strconv"
	"strings"
)

// keyToName maps Key constants to canonical names
var keyToName = map[Key]string{
	KeyEscape:    "esc",
	KeyEnter:     "ret",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "del",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "pageup",
	KeyPageDown: "pagedown",
	KeyInsert:   "ins",

	KeyF1:  "F1",
	KeyF2:  "F2",
	KeyF3:  "F3",
	KeyF4:  "F4",
	KeyF5:  "F5",
	KeyF6:  "F6",
	KeyF7:  "F7",
	KeyF8:  "F8",
	KeyF9:  "F9",
	KeyF10: "F10",
	KeyF11: "F11",
	KeyF12: "F12",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(keyToName))
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["escape"] = KeyEscape
	nameToKey["enter"] = KeyEnter
	nameToKey["delete"] = KeyDelete
	nameToKey["insert"] = KeyInsert
}

// KeyName returns the canonical string name for a Key constant
// Returns empty string for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a canonical name to a Key constant
// Returns KeyNone and false if name is unknown
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// String renders an event in angle-bracket notation, e.g. <c-a>, <s-tab>, <scroll:-3>
func (e Event) String() string {
	var body string
	switch e.Type {
	case EventKey:
		switch {
		case e.Key == KeyRune && e.Rune == ' ':
			body = "space"
		case e.Key == KeyRune:
			body = string(e.Rune)
		default:
			body = KeyName(e.Key)
		}
		if e.Modifiers == ModNone && e.Key == KeyRune && e.Rune != ' ' {
			return body
		}
	case EventMouse:
		body = "mouse:" + strings.ToLower(e.MouseAction.String())
		if e.MouseBtn != MouseBtnNone {
			body += ":" + strings.ToLower(e.MouseBtn.String())
		}
		body += ":" + strconv.Itoa(e.MouseY) + "." + strconv.Itoa(e.MouseX)
	case EventScroll:
		body = "scroll:" + strconv.Itoa(e.Scroll)
	case EventFocusIn:
		body = "focus_in"
	case EventFocusOut:
		body = "focus_out"
	case EventResize:
		body = "resize:" + strconv.Itoa(e.Height) + "." + strconv.Itoa(e.Width)
	default:
		return "<none>"
	}

	var sb strings.Builder
	sb.WriteByte('<')
	if e.Modifiers&ModShift != 0 {
		sb.WriteString("s-")
	}
	if e.Modifiers&ModAlt != 0 {
		sb.WriteString("a-")
	}
	if e.Modifiers&ModCtrl != 0 {
		sb.WriteString("c-")
	}
	sb.WriteString(body)
	sb.WriteByte('>')
	return sb.String()
}
