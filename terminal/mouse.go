package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	default:
		return "None"
	}
}

// String returns human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	default:
		return "None"
	}
}

// MouseReport is a library-decoded mouse event, answered after a CodeMouse unit.
// Buttons are numbered the curses way: 1 left, 2 middle, 3 right, 4/5 wheel.
type MouseReport struct {
	X, Y     int // 0-indexed terminal cell
	Pressed  uint8
	Released uint8
	Ctrl     bool
	Alt      bool
	Shift    bool
}

// ButtonBit returns the Pressed/Released bit for curses button n
func ButtonBit(n int) uint8 {
	if n < 1 || n > 8 {
		return 0
	}
	return 1 << (n - 1)
}
