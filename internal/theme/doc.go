// Package theme normalizes styling settings for form fields.
//
// Every text-like setting (icon, prompt, cursor, ...) is stored as a Styled
// value: the text plus one Style per rune. Callers may describe a setting in
// several ways, each an explicit Input variant:
//
//	field.Setup(
//	    theme.Set(theme.KeyIcon, theme.TextStyle{Text: "<?>", Style: theme.Pair(terminal.ColorBlue, 0)}),
//	    theme.Set(theme.KeyActive, theme.Recolor(theme.Pair(terminal.ColorYellow, 0))),
//	    theme.Set(theme.KeyLinespace, theme.Integer(3)),
//	)
//
// Resolve is pure. An input that does not fit a setting's kind, or whose
// style list does not cover its text, leaves the current value in place.
package theme
