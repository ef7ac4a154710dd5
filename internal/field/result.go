package field

import (
	"fmt"
	"slices"
	"strings"
)

// Result is the answer a field produces: a single string, or a list for
// multi-choice fields
type Result struct {
	Value  string
	Values []string
	List   bool
}

// Text builds a single-value result
func Text(v string) Result {
	return Result{Value: v}
}

// List builds a list result
func List(vs ...string) Result {
	return Result{Values: append([]string{}, vs...), List: true}
}

// IsZero reports whether nothing was answered
func (r Result) IsZero() bool {
	if r.List {
		return len(r.Values) == 0
	}
	return r.Value == ""
}

// Interface returns a string or a []string, for encoding
func (r Result) Interface() any {
	if r.List {
		if r.Values == nil {
			return []string{}
		}
		return r.Values
	}
	return r.Value
}

// String implements fmt.Stringer
func (r Result) String() string {
	if r.List {
		return strings.Join(r.Values, ", ")
	}
	return r.Value
}

// Contains reports whether v is the answer or one of the answers
func (r Result) Contains(v string) bool {
	if !r.List {
		return r.Value == v
	}
	return slices.Contains(r.Values, v)
}

// summary is the short form shown once a field is closed
func (r Result) summary(mask rune) string {
	switch {
	case r.List:
		return fmt.Sprintf("[%d] items", len(r.Values))
	case mask != 0:
		return strings.Repeat(string(mask), len([]rune(r.Value)))
	default:
		return r.Value
	}
}
