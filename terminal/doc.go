// @focus: #sys { term }
// Package terminal provides the physical side of the terminal back-end.
//
// Features:
//   - Colour model (default, 16 named, 24-bit RGB) and faces
//   - Palette manager: dynamic palette slots or nearest-entry quantization
//   - Raw input decoding: CSI keys, SGR and legacy X10 mouse, UTF-8 assembly
//   - Backends: direct ANSI over a unix tty, or tcell
//   - Double-buffered output with cell-level diffing
//   - SIGWINCH/SIGHUP bridge into atomic flags
//   - Clean terminal restoration on exit/panic
//
// The ANSI backend bypasses terminfo/termcap entirely and targets
// xterm-compatible terminals on Linux, macOS and the BSDs.
package terminal
