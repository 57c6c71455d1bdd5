// @focus: #sys { io } #input { keys }
package terminal

// Key represents a parsed input key
type Key uint16

// Key constants - designed for expansion
const (
	KeyNone Key = iota
	KeyRune     // Printable character or Ctrl/Alt+character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// FunctionKey returns KeyF1..KeyF12 for n in [1,12], KeyNone otherwise
func FunctionKey(n int) Key {
	if n < 1 || n > 12 {
		return KeyNone
	}
	return KeyF1 + Key(n-1)
}

// Modifier flags, bit values match the xterm modifier parameter minus one
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// parseMask decodes an xterm modifier parameter (1 + bitmask)
func parseMask(m int) Modifier {
	m = max(0, m-1)
	var mod Modifier
	if m&1 != 0 {
		mod |= ModShift
	}
	if m&2 != 0 {
		mod |= ModAlt
	}
	if m&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventScroll
	EventFocusIn
	EventFocusOut
	EventResize

	// EventSuspend is Control-Z; consumed by the screen, never delivered to hosts
	EventSuspend
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int // For EventResize: columns
	Height    int // For EventResize: content lines

	// Mouse event fields, MouseY already shifted by the content line offset
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction

	// Scroll amount for EventScroll, negative scrolls up
	Scroll int
}

// Library key codes: units above the byte range carry keys already translated
// by the terminal library (keypad translation or tcell)
const (
	CodeBase = 0x100 + iota
	CodeBackspace
	CodeDelete
	CodeShiftDelete
	CodeUp
	CodeShiftUp
	CodeDown
	CodeShiftDown
	CodeLeft
	CodeShiftLeft
	CodeRight
	CodeShiftRight
	CodePageUp
	CodeShiftPageUp
	CodePageDown
	CodeShiftPageDown
	CodeHome
	CodeShiftHome
	CodeEnd
	CodeShiftEnd
	CodeInsert
	CodeShiftInsert
	CodeBacktab
	CodeResize
	CodeMouse
	CodeF0 = 0x180
)

// CodeF returns the library code of function key n (n up to 63).
// Terminals report modified function keys as F(n + 12*k).
func CodeF(n int) int {
	return CodeF0 + n
}

// libraryKeys maps library codes to keys for the plain-key table
var libraryKeys = map[int]struct {
	key Key
	mod Modifier
}{
	CodeBackspace:     {KeyBackspace, ModNone},
	CodeDelete:        {KeyDelete, ModNone},
	CodeShiftDelete:   {KeyDelete, ModShift},
	CodeUp:            {KeyUp, ModNone},
	CodeShiftUp:       {KeyUp, ModShift},
	CodeDown:          {KeyDown, ModNone},
	CodeShiftDown:     {KeyDown, ModShift},
	CodeLeft:          {KeyLeft, ModNone},
	CodeShiftLeft:     {KeyLeft, ModShift},
	CodeRight:         {KeyRight, ModNone},
	CodeShiftRight:    {KeyRight, ModShift},
	CodePageUp:        {KeyPageUp, ModNone},
	CodeShiftPageUp:   {KeyPageUp, ModShift},
	CodePageDown:      {KeyPageDown, ModNone},
	CodeShiftPageDown: {KeyPageDown, ModShift},
	CodeHome:          {KeyHome, ModNone},
	CodeShiftHome:     {KeyHome, ModShift},
	CodeEnd:           {KeyEnd, ModNone},
	CodeShiftEnd:      {KeyEnd, ModShift},
	CodeInsert:        {KeyInsert, ModNone},
	CodeShiftInsert:   {KeyInsert, ModShift},
	CodeBacktab:       {KeyTab, ModShift},
}
