// @focus: #sys { io } #input { keys }
package terminal

import "strconv"

// keypadSequences maps the bytes following ESC to library codes, the
// translation a curses keypad would apply. Sequences with ctrl/alt on
// navigation keys have no library code and pass through untranslated.
var keypadSequences = map[string]int{
	// Arrow keys, normal and application cursor mode
	"[A": CodeUp,
	"[B": CodeDown,
	"[C": CodeRight,
	"[D": CodeLeft,
	"OA": CodeUp,
	"OB": CodeDown,
	"OC": CodeRight,
	"OD": CodeLeft,

	"[1;2A": CodeShiftUp,
	"[1;2B": CodeShiftDown,
	"[1;2C": CodeShiftRight,
	"[1;2D": CodeShiftLeft,
	"[Z":    CodeBacktab,

	// Navigation
	"[H":    CodeHome,
	"[F":    CodeEnd,
	"OH":    CodeHome,
	"OF":    CodeEnd,
	"[1~":   CodeHome,
	"[4~":   CodeEnd,
	"[7~":   CodeHome,
	"[8~":   CodeEnd,
	"[1;2H": CodeShiftHome,
	"[1;2F": CodeShiftEnd,
	"[5~":   CodePageUp,
	"[6~":   CodePageDown,
	"[5;2~": CodeShiftPageUp,
	"[6;2~": CodeShiftPageDown,
	"[2~":   CodeInsert,
	"[2;2~": CodeShiftInsert,
	"[3~":   CodeDelete,
	"[3;2~": CodeShiftDelete,
	"OP":    CodeF(1),
	"OQ":    CodeF(2),
	"OR":    CodeF(3),
	"OS":    CodeF(4),
	"[[A":   CodeF(1),
	"[[B":   CodeF(2),
	"[[C":   CodeF(3),
	"[[D":   CodeF(4),
	"[[E":   CodeF(5),
}

// functionKeyParams are the '~' parameters of F1..F12 on xterm
var functionKeyParams = [12]int{11, 12, 13, 14, 15, 17, 18, 19, 20, 21, 23, 24}

// functionKeyShifts maps an xterm modifier parameter to the F(n) offset terminfo uses for it
var functionKeyShifts = map[int]int{2: 12, 5: 24, 6: 36, 3: 48}

func init() {
	for i, p := range functionKeyParams {
		n := i + 1
		keypadSequences["["+strconv.Itoa(p)+"~"] = CodeF(n)
		for mod, shift := range functionKeyShifts {
			keypadSequences["["+strconv.Itoa(p)+";"+strconv.Itoa(mod)+"~"] = CodeF(n + shift)
			if n <= 4 {
				keypadSequences["[1;"+strconv.Itoa(mod)+string(rune('P'+i))] = CodeF(n + shift)
			}
		}
	}
}

// lookupKeypad performs zero-alloc map lookup via compiler optimization
// The string([]byte) conversion inline in map access does not allocate
func lookupKeypad(seq []byte) (int, bool) {
	code, ok := keypadSequences[string(seq)]
	return code, ok
}

// parseSGRReport decodes the body of ESC [ < b ; x ; y M/m into a library mouse report
func parseSGRReport(body []byte, final byte) (MouseReport, bool) {
	var vals [3]int
	n := 0
	for _, c := range body {
		switch {
		case c >= '0' && c <= '9':
			vals[n] = vals[n]*10 + int(c-'0')
			if vals[n] > 9999 { // Sanity limit
				return MouseReport{}, false
			}
		case c == ';':
			n++
			if n > 2 {
				return MouseReport{}, false
			}
		default:
			return MouseReport{}, false
		}
	}
	if n != 2 {
		return MouseReport{}, false
	}

	b := vals[0]
	r := MouseReport{
		X:     vals[1] - 1,
		Y:     vals[2] - 1,
		Shift: b&4 != 0,
		Alt:   b&8 != 0,
		Ctrl:  b&16 != 0,
	}
	if b&32 != 0 {
		return r, true // motion only reports position
	}

	var button int
	switch b & 0x43 {
	case 0:
		button = 1
	case 1:
		button = 2
	case 2:
		button = 3
	case 64:
		button = 4
	case 65:
		button = 5
	default:
		return r, true
	}
	if final == 'm' {
		r.Released = ButtonBit(button)
	} else {
		r.Pressed = ButtonBit(button)
	}
	return r, true
}
