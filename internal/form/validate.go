package form

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/muurk/impromptu/internal/field"
	"github.com/muurk/impromptu/internal/theme"
)

// Problem is one thing wrong with a form definition
type Problem struct {
	Question   string // Question name, empty for form-level problems
	Message    string
	Suggestion string // Closest known name, if any
}

func (p Problem) String() string {
	var b strings.Builder
	if p.Question != "" {
		fmt.Fprintf(&b, "question %q: ", p.Question)
	}
	b.WriteString(p.Message)
	if p.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", p.Suggestion)
	}
	return b.String()
}

// ValidationError lists every problem found in a definition
type ValidationError struct {
	Problems []Problem
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = "  - " + p.String()
	}
	return fmt.Sprintf("invalid form (%d problem(s)):\n%s", len(e.Problems), strings.Join(lines, "\n"))
}

// IsValidationError checks if an error came from Validate
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type validator struct {
	names    []string
	problems []Problem
}

func (v *validator) add(question, format string, args ...any) {
	v.problems = append(v.problems, Problem{Question: question, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) suggest(question, kind, got string, known []string) {
	v.problems = append(v.problems, Problem{
		Question:   question,
		Message:    fmt.Sprintf("unknown %s %q", kind, got),
		Suggestion: closest(got, known),
	})
}

// Validate checks a definition before it is built. Every problem is
// reported, not just the first.
func Validate(d *Definition) error {
	v := &validator{names: d.Names()}

	if len(d.Questions) == 0 {
		v.add("", "form has no questions")
	}

	seen := make(map[string]bool)
	attached := 0
	for i := range d.Questions {
		q := &d.Questions[i]
		if q.Name == "" {
			v.add("", "question %d has no name", i+1)
		} else if seen[q.Name] {
			v.add(q.Name, "duplicate name")
		}
		seen[q.Name] = true
		if !q.Detached {
			attached++
		}
		v.question(q)
	}
	if len(d.Questions) > 0 && attached == 0 {
		v.add("", "every question is detached, nothing would be asked")
	}

	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}

func (v *validator) question(q *Question) {
	if q.Query == "" {
		v.add(q.Name, "query is empty")
	}

	kinds := make([]string, len(field.Kinds))
	for i, k := range field.Kinds {
		kinds[i] = string(k)
	}
	switch field.Kind(q.Widget) {
	case field.KindChoice, field.KindMulti:
		if len(q.Choices) == 0 {
			v.add(q.Name, "%s widget needs choices", q.Widget)
		}
	case field.KindStatic:
		if q.Message == "" {
			v.add(q.Name, "static widget needs a message")
		}
	case field.KindText, field.KindSecret:
	default:
		v.suggest(q.Name, "widget", q.Widget, kinds)
	}

	if q.Size < 0 {
		v.add(q.Name, "size must not be negative")
	}
	if _, err := defaultResult(q); err != nil {
		v.add(q.Name, "%v", err)
	}
	if _, err := theme.ParseSettings(q.Setup); err != nil {
		v.add(q.Name, "setup: %v", err)
	}
	if q.Reask != "" {
		if _, err := regexp.Compile(q.Reask); err != nil {
			v.add(q.Name, "reask_unless: %v", err)
		}
	}

	for i, j := range q.Jumps {
		v.jump(q.Name, i, j)
	}
}

func (v *validator) jump(name string, i int, j Jump) {
	prefix := fmt.Sprintf("jump %d: ", i+1)
	switch j.Action {
	case ActionInsert, ActionBranch:
		if len(j.Targets) == 0 {
			v.add(name, "%s%s needs at least one target", prefix, j.Action)
		}
	case ActionMerge, ActionSkip:
		if len(j.Targets) > 1 {
			v.add(name, "%s%s takes at most one target", prefix, j.Action)
		}
	case ActionReask:
		if len(j.Targets) > 0 {
			v.add(name, "%sreask takes no targets", prefix)
		}
	default:
		v.suggest(name, prefix+"action", j.Action, Actions)
		return
	}

	for _, target := range j.Targets {
		if !slices.Contains(v.names, target) {
			v.suggest(name, prefix+"target", target, v.names)
		}
	}
}

// closest returns the known name nearest to got, or "" when nothing is
// close enough to be a plausible typo
func closest(got string, known []string) string {
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(strings.ToLower(got), strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(got)/3) {
		return ""
	}
	return best
}
