package terminal

import (
	"errors"
	"testing"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"rune", RuneEvent('h'), "h"},
		{"space", RuneEvent(' '), " "},
		{"escape", KeyEvent(KeyEsc), "esc"},
		{"ctrl", KeyEvent(KeyCtrlB), "ctrl+b"},
		{"arrow", KeyEvent(KeyArrowDown), "down"},
		{"resize", Event{Type: EventResize, Width: 80, Height: 24}, "resize(80x24)"},
		{"error", ErrorEvent(errors.New("boom")), "error(boom)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuneEventSpace(t *testing.T) {
	ev := RuneEvent(' ')
	if ev.Key != KeySpace {
		t.Errorf("Key = %v, want %v", ev.Key, KeySpace)
	}
	if !ev.Printable() {
		t.Error("space should be printable")
	}
	if KeyEvent(KeyEsc).Printable() {
		t.Error("esc should not be printable")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"", ColorDefault, false},
		{"red", ColorRed, false},
		{" Cyan ", ColorCyan, false},
		{"0", Palette(0), false},
		{"208", Palette(208), false},
		{"256", ColorDefault, true},
		{"chartreuse", ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFgSplit(t *testing.T) {
	fg := Fg(Palette(255), AttrBold|AttrReverse)
	color, attr := Split(fg)
	if color != Palette(255) {
		t.Errorf("color = %v, want %v", color, Palette(255))
	}
	if attr != AttrBold|AttrReverse {
		t.Errorf("attr = %v, want %v", attr, AttrBold|AttrReverse)
	}

	color, attr = Split(Fg(ColorGreen, AttrNone))
	if color != ColorGreen || attr != AttrNone {
		t.Errorf("Split() = (%v, %v), want (%v, %v)", color, attr, ColorGreen, AttrNone)
	}
}

func TestScreenDoSerializes(t *testing.T) {
	s := NewScreen(nil)
	done := make(chan struct{})
	counter := 0
	for i := 0; i < 10; i++ {
		go func() {
			s.Do(func(Surface) { counter++ })
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if counter != 10 {
		t.Errorf("counter = %d, want 10", counter)
	}
}
