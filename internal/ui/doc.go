// Package ui renders the output printed after a form has run.
//
// Forms themselves are drawn cell by cell on the terminal surface. Once the
// surface is closed, this package takes over and prints plain styled text
// with Lipgloss, following a "run once and exit" pattern:
//
//   - Header: title banner with ordered parameters
//   - Progress: answered/total bar with one line per question
//   - Result: success, warning or failure boxes
//   - Output: the JSON document for --format json
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintResults(fm.Title(), results)
//
// # Logging Integration
//
// Logging is controlled via IMPROMPTU_LOG_LEVEL and always goes to a file,
// so the curated output here is never interleaved with log lines.
package ui
