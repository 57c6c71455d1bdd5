package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/termface/terminal"
)

var (
	builtinFlag = flag.Bool("builtin", false, "Decode raw escape sequences instead of keypad translation")
	mouseFlag   = flag.Bool("mouse", true, "Report mouse and focus events")
)

// Prints every decoded event on its own line. Ctrl+C quits.
func main() {
	flag.Parse()

	flags := terminal.ProcessSignals
	stop := terminal.StartSignalBridge(flags)
	defer stop()

	term := terminal.NewANSIBackend(os.Stdin, os.Stdout)
	term.SetCapabilities(terminal.DetectCapabilities())
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()

	term.SetKeypad(!*builtinFlag)
	if *mouseFlag {
		term.EnableMouse(true, *builtinFlag)
		defer term.EnableMouse(false, *builtinFlag)
	}

	dec := terminal.NewDecoder(term, terminal.DefaultDecoderConfig())
	dec.SetDimensions(func() (int, int) {
		lines, cols, err := term.Size()
		if err != nil {
			return 0, 0
		}
		return lines - 1, cols
	})

	emit := func(format string, args ...any) {
		term.Write([]byte(fmt.Sprintf(format, args...) + "\r\n"))
	}
	emit("builtin parser: %v, mouse: %v. Press Ctrl+C to quit", *builtinFlag, *mouseFlag)

	for {
		term.Wait(flags.Wakeups(), time.Second)

		if flags.HangupRaised() {
			return
		}
		if flags.TakeResize() {
			lines, cols, _ := term.Size()
			emit("SIGWINCH %dx%d", cols, lines)
		}

		for {
			ev, ok := dec.Next()
			if !ok {
				break
			}
			switch ev.Type {
			case terminal.EventMouse:
				emit("%-16v button=%v action=%v x=%d y=%d", ev, ev.MouseBtn, ev.MouseAction, ev.MouseX, ev.MouseY)
			case terminal.EventResize:
				emit("%-16v %dx%d", ev, ev.Width, ev.Height)
			default:
				emit("%v", ev)
			}
			if ev.Type == terminal.EventKey && ev.Key == terminal.KeyRune && ev.Rune == 'c' && ev.Modifiers == terminal.ModCtrl {
				return
			}
		}
	}
}
