package theme

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/muurk/impromptu/internal/terminal"
)

// ParseInput converts a decoded YAML/viper value into an Input. The accepted
// shapes are:
//
//	"<?>"                                   Text
//	3                                       Integer
//	true                                    Bool
//	{fg: red, attr: bold, bg: default}      Recolor
//	{text: "<?>", fg: red}                  TextStyle
//	{text: "<?>", styles: [{fg: red}, ...]} TextStyles
//	[{fg: red}, {fg: green}]                Restyle
//	{char: "*"}                             Char
//
// ParseSettings also reads a bare one-character string as Char for keys
// holding a single rune, so mask: "#" works.
func ParseInput(raw any) (Input, error) {
	switch v := raw.(type) {
	case string:
		return Text(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Integer(v), nil
	case int64:
		return Integer(int(v)), nil
	case float64:
		return Integer(int(v)), nil
	case []any:
		styles, err := parseStyles(v)
		if err != nil {
			return nil, err
		}
		return Restyle(styles), nil
	case map[string]any:
		return parseMap(v)
	default:
		return nil, fmt.Errorf("unsupported setting value %v (%T)", raw, raw)
	}
}

func parseMap(m map[string]any) (Input, error) {
	if c, ok := m["char"]; ok {
		s, _ := c.(string)
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("char must be a single character, got %q", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	}

	text, hasText := m["text"].(string)
	if list, ok := m["styles"].([]any); ok {
		if !hasText {
			return nil, fmt.Errorf("styles requires text")
		}
		styles, err := parseStyles(list)
		if err != nil {
			return nil, err
		}
		return TextStyles{Text: text, Styles: styles}, nil
	}

	style, err := ParseStyle(m)
	if err != nil {
		return nil, err
	}
	if hasText {
		return TextStyle{Text: text, Style: style}, nil
	}
	return Recolor(style), nil
}

func parseStyles(list []any) ([]Style, error) {
	styles := make([]Style, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("style %d: expected a mapping, got %T", i, item)
		}
		s, err := ParseStyle(m)
		if err != nil {
			return nil, fmt.Errorf("style %d: %w", i, err)
		}
		styles = append(styles, s)
	}
	return styles, nil
}

// ParseStyle reads fg, attr and bg from a mapping. attr accepts a
// comma-separated list of bold, underline and reverse.
func ParseStyle(m map[string]any) (Style, error) {
	var s Style
	var err error
	if fg, ok := m["fg"]; ok {
		if s.Fg, err = terminal.ParseColor(fmt.Sprint(fg)); err != nil {
			return Style{}, err
		}
	}
	if bg, ok := m["bg"]; ok {
		if s.Bg, err = terminal.ParseColor(fmt.Sprint(bg)); err != nil {
			return Style{}, err
		}
	}
	if attr, ok := m["attr"]; ok {
		if s.Attr, err = ParseAttr(fmt.Sprint(attr)); err != nil {
			return Style{}, err
		}
	}
	return s, nil
}

// ParseAttr parses "bold,underline"
func ParseAttr(s string) (terminal.Attr, error) {
	var attr terminal.Attr
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "", "none":
		case "bold":
			attr |= terminal.AttrBold
		case "underline":
			attr |= terminal.AttrUnderline
		case "reverse":
			attr |= terminal.AttrReverse
		default:
			return 0, fmt.Errorf("unknown attribute %q", part)
		}
	}
	return attr, nil
}

// Keys lists every setting name a field understands
var Keys = []Key{
	KeyIcon, KeyQuery, KeyPrompt, KeyCursor, KeySelected, KeyUnselected,
	KeyActive, KeyInactive, KeyInputs, KeyMessage, KeyMask, KeyWidth,
	KeySize, KeyLinespace, KeyRefresh,
}

// ParseSettings converts a decoded mapping of setting name to value. The
// result is ordered by name so applying it is deterministic.
func ParseSettings(raw map[string]any) ([]Setting, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)

	settings := make([]Setting, 0, len(names))
	for _, name := range names {
		key := Key(strings.ToLower(name))
		if !slices.Contains(Keys, key) {
			return nil, fmt.Errorf("unknown setting %q", name)
		}
		in, err := parseSetting(key, raw[name])
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		settings = append(settings, Set(key, in))
	}
	return settings, nil
}

// glyphKeys hold a single rune rather than styled text
var glyphKeys = []Key{KeyMask}

func parseSetting(key Key, raw any) (Input, error) {
	s, ok := raw.(string)
	if !ok || !slices.Contains(glyphKeys, key) {
		return ParseInput(raw)
	}
	if utf8.RuneCountInString(s) != 1 {
		return nil, fmt.Errorf("must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return Char(r), nil
}
