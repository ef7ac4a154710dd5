// Package terminal defines the cell-buffer surface the forms engine renders
// to, and binds it to tcell.
//
// The engine only ever talks to the Surface interface: a grid of cells, a
// cursor, a blocking event source and a rune width oracle. Tcell implements
// it on the controlling terminal; termtest.Fake implements it in memory.
//
// # Colors and Attributes
//
// SetCell takes the foreground color and the text attributes packed into a
// single value, mirroring termbox-style APIs:
//
//	s.SetCell(x, y, '?', terminal.Fg(terminal.ColorGreen, terminal.AttrBold), terminal.ColorDefault)
//
// # Keys
//
// Key events stringify to the same names bubbles/key uses ("esc", "enter",
// "ctrl+b", "a"), so key.Binding values can be matched against events
// without any translation table.
//
// # Serialized Writes
//
// Screen wraps a Surface with a mutex. Every draw, from the interaction loop
// or from an update handler goroutine, goes through Screen.Do.
package terminal
