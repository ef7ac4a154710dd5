// Package engine drives registered fields through their lifecycle on a
// terminal surface.
//
// An Engine owns the surface, a single poller goroutine that turns
// PollEvent into a buffered channel, and the registrar the fields are
// served from. For every field the registrar hands out, Start runs:
//
//	mount -> render + interact -> unmount -> close
//
// A mount hook returning false skips straight to close. An unmount hook
// returning false resets the field and rewinds the registrar so the same
// field is asked again.
//
// Usage:
//
//	screen, err := terminal.NewTcell()
//	if err != nil {
//		return err
//	}
//	e := engine.New(screen)
//	e.Register(field.NewText("name", "What is your name?"))
//	results, err := e.Start(ctx)
//
// Fatal errors are returned as *Error after the terminal has been restored.
package engine
