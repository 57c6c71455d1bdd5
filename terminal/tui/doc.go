// Package tui provides the logical side of the terminal front-end: off-screen
// surfaces, the stage they are composited onto, and the popup layouts.
//
// Core abstraction is Surface, a rectangular cell grid with a cursor, a current
// face and per-line dirty flags. Surfaces resolve colors through the shared
// terminal.Palette and are copied onto the Stage in refresh order, so later
// surfaces cover earlier ones.
//
// Popups:
//   - Menu: inline list, prompt grid with scrollbar, or single-row search bar
//   - Info: framed prompt box with an optional assistant, modal, menu doc and
//     inline variants placed around an anchor
//
// Usage pattern:
//
//	stage := tui.NewStage(w, h)
//	main := tui.NewSurface(palette)
//	main.Create(tui.Coord{}, tui.Coord{Line: h, Column: w})
//
//	main.MoveCursor(tui.Coord{})
//	tui.DrawLine(main, tui.NewLine("hello", face), 0, w, terminal.Face{})
//
//	stage.BeginCycle()
//	main.Refresh(stage, false)
//	backend.Flush(stage.Cells(), stage.Width(), stage.Height())
package tui
