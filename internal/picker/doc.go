// Package picker lists the form files in a directory and lets the user
// choose one to run.
//
// Every candidate is parsed and validated while the list loads, so broken
// forms are marked before anyone tries to run them. The picker is a
// Bubble Tea program; the chosen form still runs on the cell-buffer engine.
//
// # Usage Example
//
//	entry, err := picker.Run(".")
//	if err != nil {
//	    return err
//	}
//	if entry == nil {
//	    return nil // the user quit
//	}
//	def, err := form.Load(entry.Path)
//
// A path outside the directory can be typed in with "o".
package picker
