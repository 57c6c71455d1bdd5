package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/termface/config"
	"github.com/lixenwraith/termface/logging"
	"github.com/lixenwraith/termface/screen"
	"github.com/lixenwraith/termface/terminal"
	"github.com/lixenwraith/termface/terminal/tui"
)

var (
	backendFlag  = flag.String("backend", "ansi", "Terminal backend: ansi, tcell")
	configFlag   = flag.String("config", os.Getenv("TERMFACE_CONFIG"), "Options file (TOML), reloaded on change")
	logDirFlag   = flag.String("log-dir", os.Getenv("TERMFACE_LOG_DIR"), "Log directory, empty disables logging")
	logLevelFlag = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

const maxHistory = 200

// defaultFaces can be restyled with terminal_face_<name> options, or a
// [terminal.face] table in the options file
var defaultFaces = map[string]terminal.Face{
	"default":       {},
	"padding":       {Fg: terminal.NamedColor(terminal.Blue)},
	"status":        {Fg: terminal.NamedColor(terminal.Yellow), Attrs: terminal.AttrBold},
	"menu_selected": {Fg: terminal.NamedColor(terminal.Black), Bg: terminal.NamedColor(terminal.Cyan)},
	"menu":          {Fg: terminal.NamedColor(terminal.BrightWhite), Bg: terminal.NamedColor(terminal.Blue)},
	"info":          {Fg: terminal.NamedColor(terminal.Black), Bg: terminal.NamedColor(terminal.BrightYellow)},
}

var menuWords = []string{
	"buffer", "client", "command", "echo", "edit", "evaluate-commands",
	"execute-keys", "hook", "info", "map", "menu", "prompt", "quit", "set-option",
}

const helpText = `m   prompt menu       s   search menu
l   inline menu       n/p next/previous item
i   prompt info       d   modal info
M   toggle mouse      Esc hide popups
q   quit`

// demo holds the state the event callback mutates
type demo struct {
	scr      *screen.Screen
	faces    map[string]terminal.Face
	history  []string
	selected int
	mouse    bool
	quit     bool
}

func (d *demo) record(format string, args ...any) {
	d.history = append(d.history, fmt.Sprintf(format, args...))
	if len(d.history) > maxHistory {
		d.history = d.history[len(d.history)-maxHistory:]
	}
}

func (d *demo) menuItems() []tui.Line {
	items := make([]tui.Line, len(menuWords))
	for i, w := range menuWords {
		items[i] = tui.NewLine(w, d.faces["default"])
	}
	return items
}

func (d *demo) handle(ev terminal.Event) {
	switch ev.Type {
	case terminal.EventResize:
		d.record("resize %dx%d", ev.Width, ev.Height)
		return
	case terminal.EventMouse:
		d.record("mouse %v at %d,%d", ev.MouseBtn, ev.MouseY, ev.MouseX)
		return
	case terminal.EventScroll:
		d.record("scroll %d", ev.Scroll)
		return
	case terminal.EventFocusIn, terminal.EventFocusOut:
		d.record("%v", ev)
		return
	case terminal.EventKey:
	default:
		return
	}

	d.record("key %v", ev)

	if ev.Key == terminal.KeyEscape {
		d.scr.MenuHide()
		d.scr.InfoHide()
		return
	}
	if ev.Key != terminal.KeyRune || ev.Modifiers != 0 {
		return
	}

	dims := d.scr.Dimensions()
	switch ev.Rune {
	case 'q':
		d.quit = true
	case 'm':
		d.selected = -1
		d.scr.MenuShow(d.menuItems(), tui.Coord{Line: dims.Line, Column: 0}, d.faces["menu_selected"], d.faces["menu"], tui.MenuPrompt)
	case 's':
		d.selected = -1
		d.scr.MenuShow(d.menuItems(), tui.Coord{Line: dims.Line, Column: 0}, d.faces["menu_selected"], d.faces["menu"], tui.MenuSearch)
	case 'l':
		d.selected = -1
		anchor := tui.Coord{Line: min(len(d.visibleHistory()), dims.Line-1), Column: 2}
		d.scr.MenuShow(d.menuItems(), anchor, d.faces["menu_selected"], d.faces["menu"], tui.MenuInline)
	case 'n', 'p':
		if !d.scr.MenuVisible() {
			return
		}
		if ev.Rune == 'n' {
			d.selected = (d.selected + 1) % len(menuWords)
		} else {
			d.selected = (d.selected - 1 + len(menuWords)) % len(menuWords)
		}
		d.scr.MenuSelect(d.selected)
		d.scr.InfoShow(menuWords[d.selected], "Documentation for "+menuWords[d.selected], tui.Coord{}, d.faces["info"], tui.InfoMenuDoc)
	case 'i':
		d.scr.InfoShow("help", helpText, tui.Coord{}, d.faces["info"], tui.InfoPrompt)
	case 'd':
		d.scr.InfoShow("about", "termface terminal front end demo", tui.Coord{}, d.faces["info"], tui.InfoModal)
	case 'M':
		d.mouse = !d.mouse
		d.scr.EnableMouse(d.mouse)
	}
}

func (d *demo) visibleHistory() []string {
	n := d.scr.Dimensions().Line
	if len(d.history) <= n {
		return d.history
	}
	return d.history[len(d.history)-n:]
}

func (d *demo) draw() {
	hist := d.visibleHistory()
	lines := make([]tui.Line, len(hist))
	for i, h := range hist {
		lines[i] = tui.NewLine(h, d.faces["default"])
	}
	d.scr.Draw(lines, d.faces["default"], d.faces["padding"])

	mode := "normal"
	if d.scr.MenuVisible() {
		mode = "menu"
	}
	d.scr.DrawStatus(tui.NewLine("press i for help", d.faces["default"]), tui.NewLine(mode, d.faces["status"]), d.faces["default"])
	d.scr.SetCursor(screen.CursorBuffer, tui.Coord{Line: len(hist), Column: 0})
	d.scr.Refresh(false)
}

func openBackend(name string) (terminal.Backend, *terminal.SignalFlags, func(), error) {
	switch name {
	case "ansi":
		b := terminal.NewANSIBackend(os.Stdin, os.Stdout)
		b.SetCapabilities(terminal.DetectCapabilities())
		stop := terminal.StartSignalBridge(terminal.ProcessSignals)
		return b, terminal.ProcessSignals, stop, nil
	case "tcell":
		b, err := terminal.NewTcellBackend(nil, terminal.ProcessSignals)
		if err != nil {
			return nil, nil, nil, err
		}
		return b, terminal.ProcessSignals, func() {}, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown backend %q", name)
}

func main() {
	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMFACE CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if *logDirFlag != "" {
		level, err := logging.ParseLevel(*logLevelFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		if err := logging.Initialize(*logDirFlag, level); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		}
		defer logging.Close()
	}

	options := map[string]string{}
	if *configFlag != "" {
		loaded, err := config.LoadFile(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		options = loaded
	}

	backend, flags, stopSignals, err := openBackend(*backendFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	defer stopSignals()

	scr, err := screen.New(backend, flags, screen.Options{AppName: "termface"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer scr.Close()
	scr.SetOptions(options)

	d := &demo{
		scr:      scr,
		faces:    config.ParseFaces(options, defaultFaces),
		selected: -1,
		mouse:    config.ParseOptions(options).EnableMouse,
	}
	scr.SetOnKey(d.handle)

	// Reloaded options cross over to the loop goroutine, which owns the screen
	reloads := make(chan map[string]string, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *configFlag != "" {
		w, err := config.NewWatcher(*configFlag, func(o map[string]string) {
			// Keep only the newest map
			select {
			case <-reloads:
			default:
			}
			reloads <- o
			flags.Wake()
		})
		if err != nil {
			logging.Warn("options watcher disabled: %v", err)
		} else {
			defer w.Close()
			go w.Run(ctx)
		}
	}

	d.draw()
	for !d.quit && !scr.HungUp() {
		scr.Wait(time.Second)

		select {
		case o := <-reloads:
			logging.Info("applying reloaded options")
			scr.SetOptions(o)
			d.faces = config.ParseFaces(o, defaultFaces)
			d.mouse = config.ParseOptions(o).EnableMouse
		default:
		}

		scr.ProcessInput()
		d.draw()
	}
	logging.Info("exiting")
}
