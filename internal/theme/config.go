package theme

// Key names a config entry
type Key string

const (
	KeyIcon       Key = "icon"
	KeyQuery      Key = "query"
	KeyPrompt     Key = "prompt"
	KeyCursor     Key = "cursor"
	KeySelected   Key = "selected"
	KeyUnselected Key = "unselected"
	KeyActive     Key = "active"
	KeyInactive   Key = "inactive"
	KeyInputs     Key = "inputs"
	KeyMessage    Key = "message"
	KeyMask       Key = "mask"
	KeyWidth      Key = "width"
	KeySize       Key = "size"
	KeyLinespace  Key = "linespace"
	KeyRefresh    Key = "refresh"
)

// Setting pairs a key with a caller-supplied input
type Setting struct {
	Key   Key
	Input Input
}

// Set builds a Setting
func Set(key Key, in Input) Setting {
	return Setting{Key: key, Input: in}
}

// Config holds the canonical value of every setting a field understands
type Config map[Key]Value

// Apply resolves each setting against the current value. Keys the config
// does not carry are ignored.
func (c Config) Apply(settings ...Setting) {
	for _, s := range settings {
		current, ok := c[s.Key]
		if !ok {
			continue
		}
		c[s.Key] = Resolve(s.Input, current)
	}
}

// Clone returns an independent copy
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		if st, ok := v.(Styled); ok {
			st.Styles = append([]Style(nil), st.Styles...)
			v = st
		}
		out[k] = v
	}
	return out
}

func (c Config) Styled(k Key) Styled {
	v, _ := c[k].(Styled)
	return v
}

func (c Config) Style(k Key) Style {
	v, _ := c[k].(Style)
	return v
}

func (c Config) Int(k Key) int {
	v, _ := c[k].(Number)
	return int(v)
}

func (c Config) Bool(k Key) bool {
	v, _ := c[k].(Toggle)
	return bool(v)
}

func (c Config) Rune(k Key) rune {
	v, _ := c[k].(Glyph)
	return rune(v)
}
