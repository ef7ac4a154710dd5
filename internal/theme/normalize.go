package theme

import "unicode/utf8"

// Value is the canonical form of one config entry: Styled, Style, Number,
// Toggle or Glyph.
type Value interface {
	value()
}

// Number is an integer setting (width, size, linespace)
type Number int

// Toggle is a boolean setting (refresh)
type Toggle bool

// Glyph is a single-rune setting (mask)
type Glyph rune

func (Styled) value() {}
func (Style) value()  {}
func (Number) value() {}
func (Toggle) value() {}
func (Glyph) value()  {}

// Input is a caller-supplied setting. The set of variants is closed; each
// one knows which canonical values it can produce.
type Input interface {
	resolve(current Value) (Value, bool)
}

// Text replaces the text and keeps the current styles. The new text must
// have as many runes as the current one.
type Text string

// TextStyle replaces the text and styles every rune with one style
type TextStyle struct {
	Text  string
	Style Style
}

// TextStyles replaces the text with an explicit per-rune style list
type TextStyles struct {
	Text   string
	Styles []Style
}

// Recolor applies one style. On text settings every rune is restyled; on
// style settings the style is replaced.
type Recolor Style

// Restyle replaces the per-rune styles of the current text
type Restyle []Style

// Integer sets a Number
type Integer int

// Bool sets a Toggle
type Bool bool

// Char sets a Glyph
type Char rune

func (in Text) resolve(current Value) (Value, bool) {
	cur, ok := current.(Styled)
	if !ok || utf8.RuneCountInString(string(in)) != len(cur.Styles) {
		return nil, false
	}
	return Styled{Text: string(in), Styles: cur.Styles}, true
}

func (in TextStyle) resolve(current Value) (Value, bool) {
	if _, ok := current.(Styled); !ok {
		return nil, false
	}
	return Uniform(in.Text, in.Style), true
}

func (in TextStyles) resolve(current Value) (Value, bool) {
	if _, ok := current.(Styled); !ok {
		return nil, false
	}
	out := Styled{Text: in.Text, Styles: append([]Style(nil), in.Styles...)}
	if !out.Valid() {
		return nil, false
	}
	return out, true
}

func (in Recolor) resolve(current Value) (Value, bool) {
	switch cur := current.(type) {
	case Styled:
		return Uniform(cur.Text, Style(in)), true
	case Style:
		return Style(in), true
	}
	return nil, false
}

func (in Restyle) resolve(current Value) (Value, bool) {
	cur, ok := current.(Styled)
	if !ok || cur.Len() != len(in) {
		return nil, false
	}
	return Styled{Text: cur.Text, Styles: append([]Style(nil), in...)}, true
}

func (in Integer) resolve(current Value) (Value, bool) {
	if _, ok := current.(Number); !ok {
		return nil, false
	}
	return Number(in), true
}

func (in Bool) resolve(current Value) (Value, bool) {
	if _, ok := current.(Toggle); !ok {
		return nil, false
	}
	return Toggle(in), true
}

func (in Char) resolve(current Value) (Value, bool) {
	if _, ok := current.(Glyph); !ok {
		return nil, false
	}
	return Glyph(in), true
}

// Resolve normalizes an input against the current value of a setting. Any
// input that does not fit the setting's kind, or whose styles do not cover
// its text, yields current unchanged.
func Resolve(in Input, current Value) Value {
	if in == nil || current == nil {
		return current
	}
	if v, ok := in.resolve(current); ok {
		return v
	}
	return current
}
