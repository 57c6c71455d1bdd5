//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// DetectCapabilities guesses palette size and redefinability from the environment
func DetectCapabilities() (colors int, canChangeColor bool) {
	term := strings.ToLower(os.Getenv("TERM"))
	colorterm := os.Getenv("COLORTERM")

	switch {
	case term == "" || term == "dumb":
		return 8, false
	case term == "linux" || strings.HasPrefix(term, "vt"):
		return 8, false
	case strings.Contains(term, "256color") || strings.Contains(term, "direct"),
		colorterm == "truecolor" || colorterm == "24bit":
		colors = 256
	default:
		colors = 16
	}

	// Multiplexers swallow OSC 4, palette slots cannot be redefined through them
	if strings.HasPrefix(term, "screen") || strings.HasPrefix(term, "tmux") || os.Getenv("TMUX") != "" {
		return colors, false
	}
	return colors, colors > 16
}

// queryWinsize returns (rows, cols) of the terminal behind fd
func queryWinsize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}

// controllingTTYSize queries the controlling terminal, independent of redirected fds
func controllingTTYSize() (int, int, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, err
	}
	defer tty.Close()
	return queryWinsize(int(tty.Fd()))
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		// Get current termios, enable ECHO and ICANON
		if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
		}
	}
}
