package form

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/muurk/impromptu/internal/field"
)

// Definition is a form file
type Definition struct {
	Title     string     `yaml:"title,omitempty"`
	Questions []Question `yaml:"questions"`
}

// Question describes one field
type Question struct {
	Name     string         `yaml:"name"`
	Query    string         `yaml:"query"`
	Widget   string         `yaml:"widget"`                 // text, secret, choice, multi or static
	Choices  []string       `yaml:"choices,omitempty"`      // choice and multi only
	Size     int            `yaml:"size,omitempty"`         // list window rows
	Message  string         `yaml:"message,omitempty"`      // static only
	Default  any            `yaml:"default,omitempty"`      // string, or list of strings for multi
	Required bool           `yaml:"required,omitempty"`     // ask again while the answer is empty
	Detached bool           `yaml:"detached,omitempty"`     // only reachable through jumps
	Setup    map[string]any `yaml:"setup,omitempty"`        // theme settings, see theme.ParseInput
	Reask    string         `yaml:"reask_unless,omitempty"` // ask again until the answer matches
	Jumps    []Jump         `yaml:"jumps,omitempty"`
}

// Jump rewires the flow once the question is answered
type Jump struct {
	When    Condition `yaml:"when,omitempty"`
	Action  string    `yaml:"action"`            // insert, branch, merge, skip or reask
	Targets []string  `yaml:"targets,omitempty"` // question names
}

// Condition selects answers. An empty condition always matches.
type Condition struct {
	Equals   string `yaml:"equals,omitempty"`   // whole answer, lists compared joined by ", "
	Contains string `yaml:"contains,omitempty"` // list member, or substring of a text answer
}

// Actions a jump can take
const (
	ActionInsert = "insert"
	ActionBranch = "branch"
	ActionMerge  = "merge"
	ActionSkip   = "skip"
	ActionReask  = "reask"
)

// Actions lists every jump action
var Actions = []string{ActionInsert, ActionBranch, ActionMerge, ActionSkip, ActionReask}

// Load reads and decodes a form file. The result is not validated.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a form definition. Unknown keys are rejected so typos
// surface before the form runs.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse form file: %w", err)
	}
	return &def, nil
}

// Question returns the question named name
func (d *Definition) Question(name string) (*Question, bool) {
	for i := range d.Questions {
		if d.Questions[i].Name == name {
			return &d.Questions[i], true
		}
	}
	return nil, false
}

// Names returns every question name in file order
func (d *Definition) Names() []string {
	names := make([]string, len(d.Questions))
	for i, q := range d.Questions {
		names[i] = q.Name
	}
	return names
}

// Unreachable returns the detached questions no insert or branch jump
// names, in file order. They can never be asked.
func (d *Definition) Unreachable() []string {
	targeted := make(map[string]bool)
	for _, q := range d.Questions {
		for _, j := range q.Jumps {
			if j.Action == ActionInsert || j.Action == ActionBranch {
				for _, name := range j.Targets {
					targeted[name] = true
				}
			}
		}
	}
	var out []string
	for _, q := range d.Questions {
		if q.Detached && !targeted[q.Name] {
			out = append(out, q.Name)
		}
	}
	return out
}

// Matches reports whether an answer satisfies the condition
func (c Condition) Matches(r field.Result) bool {
	if c.Equals != "" && r.String() != c.Equals {
		return false
	}
	if c.Contains == "" {
		return true
	}
	if r.List {
		return slices.Contains(r.Values, c.Contains)
	}
	return strings.Contains(r.Value, c.Contains)
}
