package form

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/muurk/impromptu/internal/field"
	"github.com/muurk/impromptu/internal/logging"
	"github.com/muurk/impromptu/internal/registrar"
	"github.com/muurk/impromptu/internal/theme"
)

// Flow is where a form registers its fields. *engine.Engine satisfies it.
type Flow interface {
	Register(f *field.Field) registrar.Key
}

// Form turns a validated definition into fields wired with their jumps
type Form struct {
	def      *Definition
	defaults []theme.Setting
}

// New validates def. defaults are applied to every field before the
// question's own setup.
func New(def *Definition, defaults ...theme.Setting) (*Form, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}
	return &Form{def: def, defaults: defaults}, nil
}

// Title returns the form title
func (fm *Form) Title() string {
	return fm.def.Title
}

// Definition returns the validated definition
func (fm *Form) Definition() *Definition {
	return fm.def
}

// Register adds every question that is not detached to flow, in file order
func (fm *Form) Register(flow Flow) ([]*field.Field, error) {
	var fields []*field.Field
	for i := range fm.def.Questions {
		q := &fm.def.Questions[i]
		if q.Detached {
			continue
		}
		f, err := fm.build(q)
		if err != nil {
			return nil, err
		}
		flow.Register(f)
		fields = append(fields, f)
	}
	return fields, nil
}

// Field builds a fresh field for the named question. Jumps use it, so a
// question inserted twice is two independent fields.
func (fm *Form) Field(name string) (*field.Field, error) {
	q, ok := fm.def.Question(name)
	if !ok {
		return nil, fmt.Errorf("unknown question %q", name)
	}
	return fm.build(q)
}

func (fm *Form) build(q *Question) (*field.Field, error) {
	var f *field.Field
	switch field.Kind(q.Widget) {
	case field.KindText:
		f = field.NewText(q.Name, q.Query)
	case field.KindSecret:
		f = field.NewSecret(q.Name, q.Query)
	case field.KindChoice:
		f = field.NewChoice(q.Name, q.Query, q.Choices, q.Size)
	case field.KindMulti:
		f = field.NewMulti(q.Name, q.Query, q.Choices, q.Size)
	case field.KindStatic:
		f = field.NewStatic(q.Name, q.Query, q.Message)
	default:
		return nil, fmt.Errorf("question %q: unknown widget %q", q.Name, q.Widget)
	}

	settings, err := theme.ParseSettings(q.Setup)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", q.Name, err)
	}
	f.Setup(fm.defaults...).Setup(settings...)

	r, err := defaultResult(q)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", q.Name, err)
	}
	if !r.IsZero() {
		f.Default(r)
	}

	if q.Required || q.Reask != "" || len(q.Jumps) > 0 {
		hook, err := fm.unmount(q)
		if err != nil {
			return nil, err
		}
		f.OnUnmount(hook)
	}
	return f, nil
}

// defaultResult converts the decoded default into a Result of the
// question's shape
func defaultResult(q *Question) (field.Result, error) {
	switch v := q.Default.(type) {
	case nil:
		return field.Result{}, nil
	case string:
		if field.Kind(q.Widget) == field.KindMulti {
			return field.List(v), nil
		}
		return field.Text(v), nil
	case []any:
		if field.Kind(q.Widget) != field.KindMulti {
			return field.Result{}, fmt.Errorf("default: only multi questions take a list")
		}
		vs := make([]string, len(v))
		for i, item := range v {
			vs[i] = fmt.Sprint(item)
		}
		return field.List(vs...), nil
	default:
		return field.Text(fmt.Sprint(v)), nil
	}
}

// unmount builds the hook that re-asks invalid answers and applies the
// first jump whose condition matches
func (fm *Form) unmount(q *Question) (field.Hook, error) {
	var pattern *regexp.Regexp
	if q.Reask != "" {
		var err error
		if pattern, err = regexp.Compile(q.Reask); err != nil {
			return nil, fmt.Errorf("question %q: reask_unless: %w", q.Name, err)
		}
	}

	return func(f *field.Field) (bool, error) {
		r := f.Result()
		if q.Required && r.IsZero() {
			return false, nil
		}
		if pattern != nil && !pattern.MatchString(r.String()) {
			return false, nil
		}
		for _, j := range q.Jumps {
			if j.When.Matches(r) {
				logging.Debug("Jump taken",
					zap.String("field", q.Name),
					zap.String("action", j.Action),
					zap.Strings("targets", j.Targets),
				)
				return fm.jump(f, j)
			}
		}
		return true, nil
	}, nil
}

func (fm *Form) jump(f *field.Field, j Jump) (bool, error) {
	reg := f.Registrar()
	switch j.Action {
	case ActionReask:
		return false, nil

	case ActionInsert, ActionBranch:
		fields := make([]*field.Field, 0, len(j.Targets))
		for _, name := range j.Targets {
			nf, err := fm.Field(name)
			if err != nil {
				return false, err
			}
			fields = append(fields, nf)
		}
		if j.Action == ActionInsert {
			return true, reg.Insert(fields...)
		}
		return true, reg.Branch(fields...)

	case ActionMerge:
		target := registrar.None
		if len(j.Targets) == 1 {
			cur, ok := reg.Current()
			if !ok || cur.Origin == registrar.None {
				// let the registrar report the misuse
				return true, reg.Merge(registrar.None)
			}
			var err error
			if target, err = find(reg, reg.Branched()[cur.Origin], j.Targets[0]); err != nil {
				return false, err
			}
		}
		return true, reg.Merge(target)

	case ActionSkip:
		target := registrar.None
		if len(j.Targets) == 1 {
			var err error
			if target, err = find(reg, reg.Pending(), j.Targets[0]); err != nil {
				return false, err
			}
		}
		return true, reg.Skip(target)
	}
	return false, fmt.Errorf("unknown jump action %q", j.Action)
}

// find returns the first key among keys whose field is named name
func find(reg *registrar.Registrar[*field.Field], keys []registrar.Key, name string) (registrar.Key, error) {
	for _, k := range keys {
		if n, ok := reg.Lookup(k); ok && n.Data.Name() == name {
			return k, nil
		}
	}
	return registrar.None, fmt.Errorf("question %q is not ahead in the flow", name)
}
