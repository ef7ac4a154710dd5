package field

// DefaultSize is the number of list rows shown at once
const DefaultSize = 7

// Window scrolls a fixed number of rows over a list. Choice is the
// absolute index of the highlighted option, Cursor its row inside the
// window. The cursor stays within Size/2 rows of the middle except at
// either end of the list.
type Window struct {
	Len    int
	Size   int
	Choice int
	Cursor int
}

// NewWindow creates a window over n options
func NewWindow(n, size int) Window {
	if size < 1 {
		size = DefaultSize
	}
	return Window{Len: n, Size: size}
}

// Visible returns how many rows are shown
func (w Window) Visible() int {
	return min(w.Size, w.Len)
}

func (w Window) padding() int {
	return w.Size / 2
}

// Bounds returns the half-open range of options shown
func (w Window) Bounds() (start, end int) {
	start = w.Choice - w.Cursor
	return start, start + w.Visible()
}

// Down moves the highlight one option down, scrolling once the cursor has
// passed the padding zone
func (w *Window) Down() {
	if w.Choice >= w.Len-1 {
		return
	}
	_, end := w.Bounds()
	w.Choice++
	if w.Cursor < w.padding() || end >= w.Len {
		w.Cursor++
	}
}

// Up moves the highlight one option up
func (w *Window) Up() {
	if w.Choice <= 0 {
		return
	}
	start, _ := w.Bounds()
	w.Choice--
	if w.Cursor > w.padding() || start == 0 {
		w.Cursor--
	}
}

// Home jumps to the first option
func (w *Window) Home() {
	w.Choice, w.Cursor = 0, 0
}

// End jumps to the last option
func (w *Window) End() {
	if w.Len == 0 {
		return
	}
	w.Choice = w.Len - 1
	w.Cursor = w.Visible() - 1
}

// Select moves the highlight to option i, keeping it as close to the
// middle of the window as the list allows
func (w *Window) Select(i int) {
	if i < 0 || i >= w.Len {
		return
	}
	w.Home()
	for w.Choice < i {
		w.Down()
	}
}
