// @focus: #render { compositor } #input { poll }
package screen

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lixenwraith/termface/config"
	"github.com/lixenwraith/termface/logging"
	"github.com/lixenwraith/termface/terminal"
	"github.com/lixenwraith/termface/terminal/tui"
)

// CursorMode selects how the cursor coordinate is interpreted
type CursorMode uint8

const (
	CursorBuffer CursorMode = iota // content coordinates
	CursorPrompt                   // column on the status line
)

// Cursor is the hardware cursor request
type Cursor struct {
	Mode  CursorMode
	Coord tui.Coord
}

// maxTitleLen caps the sanitized mode line mirrored into the title
const maxTitleLen = 500

// Options configures a Screen at construction
type Options struct {
	AppName string // title suffix, "termface" when empty
}

// Screen owns the terminal: a full-size main surface holding the content and
// status lines, and menu and info popups composited over it in that order.
// Not safe for concurrent use; signal handlers reach it only through flags.
type Screen struct {
	backend terminal.Backend
	flags   *terminal.SignalFlags
	palette *terminal.Palette
	decoder *terminal.Decoder

	stage *tui.Stage
	main  *tui.Surface
	menu  *tui.Menu
	info  *tui.Info

	// Items as requested, re-laid out on resize
	menuItems []tui.Line

	appName   string
	opts      config.UIOptions
	assistant []string
	border    tui.LineType
	builtin   bool
	mouse     bool

	dims        tui.Coord
	statusLen   int
	cursor      Cursor
	dirty       bool
	resizeEvent bool
	hungUp      bool
	closed      bool

	onKey func(terminal.Event)
}

// New initializes backend and builds the screen at the current terminal size.
// The first NextKey reports the initial dimensions as a resize event.
func New(backend terminal.Backend, flags *terminal.SignalFlags, opts Options) (*Screen, error) {
	if flags == nil {
		flags = terminal.ProcessSignals
	}
	if opts.AppName == "" {
		opts.AppName = "termface"
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}

	palette := terminal.NewPalette(backend)
	s := &Screen{
		backend: backend,
		flags:   flags,
		palette: palette,
		stage:   tui.NewStage(0, 0),
		main:    tui.NewSurface(palette),
		menu:    tui.NewMenu(palette),
		info:    tui.NewInfo(palette),
		appName: opts.AppName,
	}
	s.main.AttachInput(backend)
	s.decoder = terminal.NewDecoder(s.main, terminal.DefaultDecoderConfig())
	s.decoder.SetDimensions(func() (int, int) { return s.dims.Line, s.dims.Column })

	s.applyOptions(config.DefaultUIOptions())
	s.CheckResize(true)
	s.redraw(false)
	return s, nil
}

// geometry is the shape menus and info boxes are laid out against
func (s *Screen) geometry() tui.Geometry {
	return tui.Geometry{Dimensions: s.dims, StatusOnTop: s.opts.StatusOnTop}
}

// Dimensions returns the content area, status line excluded
func (s *Screen) Dimensions() tui.Coord {
	return s.dims
}

// HungUp reports that the terminal went away; the screen no longer draws or reads
func (s *Screen) HungUp() bool {
	return s.hungUp
}

// Palette exposes the color palette shared by all surfaces
func (s *Screen) Palette() *terminal.Palette {
	return s.palette
}

// Draw renders content lines from the top of the content area and fills the
// rest with padding markers
func (s *Screen) Draw(content []tui.Line, defaultFace, paddingFace terminal.Face) {
	// A resize recreates the main surface, which drops its background
	s.CheckResize(false)
	s.main.SetBackground(defaultFace)

	offset := s.geometry().LineOffset()
	end := s.dims.Line + offset
	line := offset
	for _, l := range content {
		if line >= end {
			break
		}
		s.main.MoveCursor(tui.Coord{Line: line})
		s.main.ClearToEOL()
		tui.DrawLine(s.main, l, 0, s.dims.Column, defaultFace)
		line++
	}

	s.main.SetBackground(paddingFace)
	s.main.SetFace(paddingFace, defaultFace)
	for ; line < end; line++ {
		s.main.MoveCursor(tui.Coord{Line: line})
		s.main.ClearToEOL()
		s.main.AddStr("~")
	}
	s.dirty = true
}

// DrawStatus renders the status line and right-aligns the mode line after it,
// trimming the mode line from the left behind an ellipsis when it does not fit
func (s *Screen) DrawStatus(status, mode tui.Line, defaultFace terminal.Face) {
	row := s.geometry().StatusLine()
	s.main.MoveCursor(tui.Coord{Line: row})
	s.main.SetBackground(defaultFace)
	s.main.ClearToEOL()

	tui.DrawLine(s.main, status, 0, s.dims.Column, defaultFace)

	modeLen := mode.Length()
	s.statusLen = status.Length()
	remaining := s.dims.Column - s.statusLen
	if modeLen < remaining {
		col := s.dims.Column - modeLen
		s.main.MoveCursor(tui.Coord{Line: row, Column: col})
		tui.DrawLine(s.main, mode, col, s.dims.Column, defaultFace)
	} else if remaining > 2 {
		trimmed := mode.Trim(modeLen+2-remaining, remaining-2).Insert(0, tui.Atom{Content: "…"})
		col := s.dims.Column - remaining + 1
		s.main.MoveCursor(tui.Coord{Line: row, Column: col})
		tui.DrawLine(s.main, trimmed, col, s.dims.Column, defaultFace)
	}

	if s.opts.SetTitle {
		if err := s.backend.Write(terminal.TitleSequence(titleText(mode, s.appName))); err != nil {
			logging.Debug("title: %v", err)
		}
	}
	s.dirty = true
}

// titleText sanitizes the mode line to printable 7-bit characters, one '?'
// per other code point
func titleText(mode tui.Line, app string) string {
	var b strings.Builder
	for _, atom := range mode {
		for _, r := range atom.Content {
			if b.Len() >= maxTitleLen {
				break
			}
			if r >= 0x20 && r <= 0x7e {
				b.WriteRune(r)
			} else {
				b.WriteByte('?')
			}
		}
	}
	b.WriteString(" - ")
	b.WriteString(app)
	return b.String()
}

// SetCursor records where the hardware cursor goes on the next redraw
func (s *Screen) SetCursor(mode CursorMode, coord tui.Coord) {
	s.cursor = Cursor{Mode: mode, Coord: coord}
}

// Refresh pushes pending changes to the terminal; force repaints every line
func (s *Screen) Refresh(force bool) {
	if s.dirty || force {
		s.redraw(force)
	}
	s.dirty = false
}

func (s *Screen) redraw(force bool) {
	if s.hungUp || s.closed {
		return
	}
	s.stage.BeginCycle()
	s.main.Refresh(s.stage, force)

	// The single-row menu shares the status line and must not hide the status text
	if s.menu.Columns != 0 || s.menu.Surface().Pos().Column > s.statusLen {
		s.menu.Surface().Refresh(s.stage, false)
	}
	s.info.Surface().Refresh(s.stage, false)

	s.backend.Flush(s.stage.Cells(), s.stage.Width(), s.stage.Height())

	var pos tui.Coord
	if s.cursor.Mode == CursorPrompt {
		pos = tui.Coord{Line: s.geometry().StatusLine(), Column: s.cursor.Coord.Column}
	} else {
		pos = s.cursor.Coord.Add(tui.Coord{Line: s.geometry().LineOffset()})
	}
	s.backend.ShowCursor(pos.Column, pos.Line)
}

// CheckResize rebuilds every surface at the terminal's current size when a
// resize is pending or force is set. Visible popups are laid out again and a
// resize event is queued for the next NextKey.
func (s *Screen) CheckResize(force bool) {
	pending := s.flags.TakeResize()
	if !pending && !force {
		return
	}

	rows, cols, err := s.backend.Size()
	if err != nil {
		logging.Warn("resize skipped: %v", err)
		return
	}
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("screen: cannot allocate %dx%d main surface", rows, cols))
	}

	infoVisible := s.info.Visible()
	menuVisible := s.menu.Visible()
	s.main.Destroy()
	s.menu.Surface().Destroy()
	s.info.Hide()

	s.main.Create(tui.Coord{}, tui.Coord{Line: rows, Column: cols})
	s.backend.SetKeypad(!s.builtin)
	s.dims = tui.Coord{Line: rows - 1, Column: cols}
	s.stage.Resize(cols, rows)

	if err := s.backend.Write(terminal.ScrollRegionSequence(0, rows-1)); err != nil {
		logging.Debug("scroll region: %v", err)
	}
	logging.Debug("resize to %dx%d", cols, rows)

	if menuVisible {
		s.MenuShow(s.menuItems, s.menu.Anchor, s.menu.Fg, s.menu.Bg, s.menu.Style)
	}
	if infoVisible {
		s.showInfo(s.info.InfoRequest)
	}

	s.resizeEvent = true
	s.flags.Wake()
	s.backend.Invalidate()
	s.dirty = true
}

// MenuShow lays out items around anchor and shows them with nothing selected
func (s *Screen) MenuShow(items []tui.Line, anchor tui.Coord, fg, bg terminal.Face, style tui.MenuStyle) {
	if s.menu.Visible() {
		r := s.menu.Surface().Rect()
		s.main.MarkDirty(r.Pos.Line, r.Size.Line)
		s.dirty = true
	}

	s.menuItems = slices.Clone(items)
	s.menu.Show(items, anchor, fg, bg, style, s.geometry())
	if !s.menu.Visible() {
		logging.Debug("menu of %d items suppressed on %dx%d", len(items), s.dims.Column, s.dims.Line)
	}
	s.dirty = true

	// The info box may have to move out of the way
	if s.info.Visible() {
		s.showInfo(s.info.InfoRequest)
	}
}

// MenuSelect highlights item i; out of range clears the selection
func (s *Screen) MenuSelect(i int) {
	if !s.menu.Visible() {
		return
	}
	s.menu.Select(i)
	s.dirty = true
}

// MenuHide removes the menu and lets the info box reclaim its space
func (s *Screen) MenuHide() {
	if !s.menu.Visible() {
		return
	}
	s.menuItems = nil
	r := s.menu.Surface().Rect()
	s.main.MarkDirty(r.Pos.Line, r.Size.Line)
	s.menu.Hide()
	s.dirty = true

	if s.info.Visible() {
		s.showInfo(s.info.InfoRequest)
	}
}

// InfoShow shows a popup text box; boxes that do not fit are not shown
func (s *Screen) InfoShow(title, content string, anchor tui.Coord, face terminal.Face, style tui.InfoStyle) {
	s.showInfo(tui.InfoRequest{Title: title, Content: content, Anchor: anchor, Face: face, Style: style})
}

func (s *Screen) showInfo(req tui.InfoRequest) {
	s.InfoHide()
	req.Border = s.border

	var menu tui.Rect
	if s.menu.Visible() {
		menu = s.menu.Surface().Rect()
	}
	s.info.Show(req, s.geometry(), menu, s.assistant)
	if !s.info.Visible() {
		logging.Debug("info box %q (%s) suppressed", req.Title, req.Style)
	}
	s.dirty = true
}

// InfoHide removes the info box
func (s *Screen) InfoHide() {
	if !s.info.Visible() {
		return
	}
	r := s.info.Surface().Rect()
	s.main.MarkDirty(r.Pos.Line, r.Size.Line)
	s.info.Hide()
	s.dirty = true
}

// MenuVisible reports whether a menu is on screen
func (s *Screen) MenuVisible() bool {
	return s.menu.Visible()
}

// InfoVisible reports whether an info box is on screen
func (s *Screen) InfoVisible() bool {
	return s.info.Visible()
}

// NextKey returns the next input event without blocking. Pending resizes are
// reported before any input; after a hangup nothing is ever returned.
func (s *Screen) NextKey() (terminal.Event, bool) {
	if s.flags.HangupRaised() {
		if !s.hungUp {
			s.hungUp = true
			s.main.Destroy()
			logging.Info("terminal hangup")
		}
		return terminal.Event{}, false
	}

	s.CheckResize(false)
	if ev, ok := s.takeResizeEvent(); ok {
		return ev, true
	}

	ev, ok := s.decoder.Next()
	if !ok {
		// Library backends report resizes through the flags alone
		s.CheckResize(false)
		return s.takeResizeEvent()
	}
	if ev.Type == terminal.EventSuspend {
		s.suspend()
		return terminal.Event{}, false
	}
	return ev, true
}

func (s *Screen) takeResizeEvent() (terminal.Event, bool) {
	if !s.resizeEvent {
		return terminal.Event{}, false
	}
	s.resizeEvent = false
	return terminal.Event{Type: terminal.EventResize, Width: s.dims.Column, Height: s.dims.Line}, true
}

// suspend stops the process until it is resumed, then re-reads the size
func (s *Screen) suspend() {
	mouse := s.mouse
	s.enableMouse(false)
	logging.Debug("suspend")
	if err := s.backend.Suspend(); err != nil {
		logging.Warn("suspend: %v", err)
	}
	s.CheckResize(true)
	s.enableMouse(mouse)
}

// SetOnKey installs the event callback used by ProcessInput and wakes the loop
func (s *Screen) SetOnKey(cb func(terminal.Event)) {
	s.onKey = cb
	s.flags.Wake()
}

// ProcessInput delivers every available event to the callback
func (s *Screen) ProcessInput() {
	if s.onKey == nil {
		return
	}
	for {
		ev, ok := s.NextKey()
		if !ok {
			return
		}
		s.onKey(ev)
	}
}

// Wait blocks until input may be available, a signal arrives or timeout elapses.
// After a hangup the terminal is never polled again: Wait only sleeps until
// woken or timed out and reports false, so hosts should stop on HungUp.
// A timeout of zero or less waits for a wakeup alone.
func (s *Screen) Wait(timeout time.Duration) bool {
	if s.hungUp || s.flags.HangupRaised() {
		// A hung up descriptor polls ready forever
		var expired <-chan time.Time
		if timeout > 0 {
			t := time.NewTimer(timeout)
			defer t.Stop()
			expired = t.C
		}
		select {
		case <-s.flags.Wakeups():
		case <-expired:
		}
		return false
	}
	if s.resizeEvent {
		return true
	}
	return s.backend.Wait(s.flags.Wakeups(), timeout)
}

// SetOptions applies an option map; see config.ParseOptions for the keys
func (s *Screen) SetOptions(options map[string]string) {
	s.applyOptions(config.ParseOptions(options))
}

func (s *Screen) applyOptions(opts config.UIOptions) {
	if art, ok := tui.Assistant(opts.Assistant); ok {
		s.assistant = art
	} else {
		logging.Warn("unknown assistant %q", opts.Assistant)
	}
	if border, ok := tui.ParseLineType(opts.InfoBorder); ok {
		s.border = border
	} else {
		logging.Warn("unknown info border %q", opts.InfoBorder)
	}
	s.opts = opts

	s.decoder.SetConfig(terminal.DecoderConfig{
		ShiftFunctionKey:  opts.ShiftFunctionKey,
		WheelUpButton:     opts.WheelUpButton,
		WheelDownButton:   opts.WheelDownButton,
		WheelScrollAmount: opts.WheelScrollAmount,
	})
	s.decoder.SetLineOffset(s.geometry().LineOffset())

	if s.palette.SetDynamicAllocation(opts.ChangeColors) {
		logging.Debug("palette reset, dynamic allocation %v", opts.ChangeColors)
		s.main.InvalidatePair()
		s.menu.Surface().InvalidatePair()
		s.info.Surface().InvalidatePair()
	}

	s.enableMouse(opts.EnableMouse)

	// The mouse encoding depends on the parser
	mouse := s.mouse
	s.enableMouse(false)
	s.builtin = opts.BuiltinKeyParser
	s.backend.SetKeypad(!s.builtin)
	s.enableMouse(mouse)
}

// EnableMouse toggles mouse and focus reporting
func (s *Screen) EnableMouse(enabled bool) {
	s.enableMouse(enabled)
}

func (s *Screen) enableMouse(enabled bool) {
	if enabled == s.mouse {
		return
	}
	s.mouse = enabled
	s.backend.EnableMouse(enabled, s.builtin)
}

// Abort tears the terminal down immediately, for crash paths
func (s *Screen) Abort() {
	s.closed = true
	s.backend.Fini()
}

// Close disables mouse reporting, restores the palette and releases the terminal
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.enableMouse(false)
	if s.palette.DynamicAllocation() && s.backend.CanChangeColor() {
		s.backend.ResetPalette()
	}
	s.closed = true
	s.backend.Fini()
}
