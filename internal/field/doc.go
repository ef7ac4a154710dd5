// Package field implements form questions and their interaction loop.
//
// A Field pairs a query with a widget: single-line text or secret entry, a
// single- or multi-choice scrolling list, or a static message. The engine
// serves a field through its lifecycle:
//
//	Mount -> Render -> Interact -> Unmount -> Close
//
// Mount returning false skips straight to Close. Unmount returning false
// resets the field and serves it again, which is how validation hooks ask
// a question twice.
//
// # Interaction
//
// Interact reads events from a channel until the widget sets the end
// signal (Enter or Esc for most widgets). Every key event is pushed onto a
// bounded Ring, handed to the widget, and then checked against the update
// handlers registered with OnUpdate:
//
//	f.OnUpdate("enter", func(u *field.Update) error {
//	    if u.Field().Value().Value != "" {
//	        return nil
//	    }
//	    u.Reopen()
//	    u.Draw(func(s terminal.Surface) { /* error line */ })
//	    _, err := u.Next() // wait for any key
//	    return err
//	})
//
// A launched handler holds the field's gate until it returns or calls
// Release. While the gate is held, events go to the handler's Next instead
// of the widget, and the loop does not exit. All drawing, from the loop
// and from handlers, goes through terminal.Screen.Do.
//
// # Text Entry
//
// Editor keeps the buffer as runes with a rune cursor, a display column
// (tabs advance to the next multiple of TabStop, wide runes by two) and a
// horizontal scroll offset computed by AdjustScroll.
//
// # Lists
//
// Window scrolls a fixed number of rows over the options, keeping the
// highlighted row within half a window of the middle except at either end.
package field
