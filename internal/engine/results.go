package engine

import (
	"github.com/muurk/impromptu/internal/field"
)

// Answer is the outcome of one field
type Answer struct {
	Name    string
	Query   string
	Kind    field.Kind
	Result  field.Result
	Skipped bool // mounted false, or never reached
}

// Results lists answers in the order the fields were closed, followed by
// registered fields the run never reached
type Results []Answer

// Get returns the answer recorded for name
func (r Results) Get(name string) (field.Result, bool) {
	for _, a := range r {
		if a.Name == name {
			return a.Result, true
		}
	}
	return field.Result{}, false
}

// Map returns name to answer, with lists as []string
func (r Results) Map() map[string]any {
	out := make(map[string]any, len(r))
	for _, a := range r {
		out[a.Name] = a.Result.Interface()
	}
	return out
}

// Names returns field names in result order
func (r Results) Names() []string {
	names := make([]string, len(r))
	for i, a := range r {
		names[i] = a.Name
	}
	return names
}

// record adds or replaces the answer for a field. A field asked again keeps
// its first position.
func (r Results) record(a Answer) Results {
	for i := range r {
		if r[i].Name == a.Name {
			r[i] = a
			return r
		}
	}
	return append(r, a)
}
