package picker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/impromptu/internal/form"
	"github.com/muurk/impromptu/internal/logging"
)

// Extensions lists the file extensions treated as forms
var Extensions = []string{".yaml", ".yml"}

// Entry is one form file found on disk
type Entry struct {
	// Path is the scanned directory joined with the file name
	Path string

	// Title is the form title, or the file name when the form has none
	Title string

	// Questions counts every question, detached ones included
	Questions int

	// Detached counts questions only reachable through jumps
	Detached int

	// Err is set when the file does not parse or validate
	Err error

	// FoundAt is when the file was loaded
	FoundAt time.Time
}

// String returns a human-readable description
func (e *Entry) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (invalid: %v)", e.Path, e.Err)
	}
	return fmt.Sprintf("%s (%d questions) at %s", e.Title, e.Questions, e.Path)
}

// Valid reports whether the form can run
func (e *Entry) Valid() bool {
	return e.Err == nil
}

// Problem returns the first line of the error, for one-line displays
func (e *Entry) Problem() string {
	if e.Err == nil {
		return ""
	}
	var ve *form.ValidationError
	if errors.As(e.Err, &ve) && len(ve.Problems) > 0 {
		return ve.Problems[0].String()
	}
	first, _, _ := strings.Cut(e.Err.Error(), "\n")
	return first
}

// Load reads and validates one form file. Failures are recorded on the
// entry, not returned.
func Load(path string) *Entry {
	e := &Entry{
		Path:    path,
		Title:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FoundAt: time.Now(),
	}

	def, err := form.Load(path)
	if err != nil {
		e.Err = err
		return e
	}
	if def.Title != "" {
		e.Title = def.Title
	}
	e.Questions = len(def.Questions)
	for _, q := range def.Questions {
		if q.Detached {
			e.Detached++
		}
	}
	e.Err = form.Validate(def)
	return e
}

// Scan loads every form file directly inside dir, sorted by file name.
// Subdirectories are not searched.
func Scan(dir string) ([]*Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]*Entry, 0)
	for _, f := range files {
		if f.IsDir() || !slices.Contains(Extensions, strings.ToLower(filepath.Ext(f.Name()))) {
			continue
		}
		e := Load(filepath.Join(dir, f.Name()))
		logging.Debug("Form file scanned",
			zap.String("path", e.Path),
			zap.Bool("valid", e.Valid()),
			zap.Int("questions", e.Questions),
		)
		entries = append(entries, e)
	}
	return entries, nil
}
