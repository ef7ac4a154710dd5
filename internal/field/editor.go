package field

import (
	"slices"

	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

const (
	// TabStop is the column multiple a tab advances to
	TabStop = 8
	// DefaultPadding is how many columns are kept visible on either side of
	// the cursor while scrolling
	DefaultPadding = 5
	// DefaultWidth is the editor width before clamping to the screen
	DefaultWidth = 60
)

// Editor is a single-line rune buffer with a cursor and a horizontal scroll
// offset. Offsets are in runes (cursor) and display columns (visual,
// offset).
type Editor struct {
	buf    []rune
	cursor int
	visual int
	offset int

	// mask replaces every rune on screen when non-zero
	mask  rune
	width func(rune) int
}

// NewEditor creates an empty editor. width reports the display width of a
// rune and is normally the surface's RuneWidth.
func NewEditor(width func(rune) int) *Editor {
	return &Editor{width: width}
}

// String returns the buffer contents
func (e *Editor) String() string {
	return string(e.buf)
}

// Set replaces the buffer and moves the cursor to the end
func (e *Editor) Set(s string) {
	e.buf = []rune(s)
	e.offset = 0
	e.moveTo(len(e.buf))
}

// Cursor returns the cursor position in runes
func (e *Editor) Cursor() int { return e.cursor }

// Visual returns the cursor column, counting tab stops and wide runes
func (e *Editor) Visual() int { return e.visual }

// Offset returns the horizontal scroll in columns
func (e *Editor) Offset() int { return e.offset }

func (e *Editor) advance(r rune, pos int) int {
	if e.mask != 0 {
		return e.width(e.mask)
	}
	if r == '\t' {
		return TabStop - pos%TabStop
	}
	return e.width(r)
}

// moveTo places the cursor at rune index i and recomputes its column by
// walking the buffer from the start
func (e *Editor) moveTo(i int) {
	col := 0
	for _, r := range e.buf[:i] {
		col += e.advance(r, col)
	}
	e.cursor = i
	e.visual = col
}

func (e *Editor) Left() {
	if e.cursor > 0 {
		e.moveTo(e.cursor - 1)
	}
}

func (e *Editor) Right() {
	if e.cursor < len(e.buf) {
		e.moveTo(e.cursor + 1)
	}
}

func (e *Editor) Home() { e.moveTo(0) }

func (e *Editor) End() { e.moveTo(len(e.buf)) }

// DeleteBackward removes the rune before the cursor
func (e *Editor) DeleteBackward() {
	if e.cursor == 0 {
		return
	}
	e.buf = slices.Delete(e.buf, e.cursor-1, e.cursor)
	e.moveTo(e.cursor - 1)
}

// DeleteForward removes the rune under the cursor
func (e *Editor) DeleteForward() {
	if e.cursor == len(e.buf) {
		return
	}
	e.buf = slices.Delete(e.buf, e.cursor, e.cursor+1)
}

// DeleteToEnd truncates the buffer at the cursor
func (e *Editor) DeleteToEnd() {
	e.buf = e.buf[:e.cursor]
}

// Insert adds r before the cursor and steps over it
func (e *Editor) Insert(r rune) {
	e.buf = slices.Insert(e.buf, e.cursor, r)
	e.moveTo(e.cursor + 1)
}

// Scroll updates the offset for a window of the given width
func (e *Editor) Scroll(width, padding int) int {
	e.offset = AdjustScroll(e.visual, e.offset, width, padding)
	return e.offset
}

// AdjustScroll returns the scroll offset that keeps cursor inside a window
// of width columns with padding columns of context on either side. The
// cursor may touch the left edge only at offset 0. Calling it again with
// its own result returns the same offset.
func AdjustScroll(cursor, offset, width, padding int) int {
	if width < 1 {
		return 0
	}
	ht := padding
	if limit := (width - 1) / 2; ht > limit {
		ht = limit
	}

	threshold := width - 1
	if offset != 0 {
		threshold = width - ht
	}
	if cursor-offset >= threshold {
		offset = cursor + ht - width + 1
	}
	if offset != 0 && cursor-offset < ht {
		offset = cursor - ht
		if offset < 0 {
			offset = 0
		}
	}
	return offset
}

// Draw renders the visible part of the buffer starting at column x. Runes
// cut off on the right are replaced by an arrow; so is the first column
// when the buffer is scrolled.
func (e *Editor) Draw(s terminal.Surface, x, y, width int, style theme.Style) {
	fg, bg := style.Cell()
	col := 0
	for _, r := range e.buf {
		adv := e.advance(r, col)
		rx := col - e.offset
		if rx >= width {
			s.SetCell(x+width-1, y, '→', fg, bg)
			break
		}
		switch {
		case e.mask != 0:
			if rx >= 0 {
				s.SetCell(x+rx, y, e.mask, fg, bg)
			}
		case r == '\t':
			for i := 0; i < adv; i++ {
				if c := rx + i; c >= 0 && c < width {
					s.SetCell(x+c, y, ' ', fg, bg)
				}
			}
		default:
			if rx >= 0 {
				s.SetCell(x+rx, y, r, fg, bg)
			}
		}
		col += adv
	}
	if e.offset != 0 {
		s.SetCell(x, y, '←', fg, bg)
	}
}

// CursorX returns the screen column of the cursor relative to the editor
func (e *Editor) CursorX() int {
	return e.visual - e.offset
}
