package field

import (
	"sync"

	"github.com/muurk/impromptu/internal/terminal"
)

// RingCapacity is the number of events a field remembers
const RingCapacity = 20

// Ring is a bounded event buffer that keeps the most recent events. Pushing
// onto a full ring drops the oldest event.
type Ring struct {
	mu    sync.Mutex
	buf   []terminal.Event
	start int
	n     int
}

// NewRing creates a ring holding up to capacity events
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]terminal.Event, capacity)}
}

// Push appends an event
func (r *Ring) Push(ev terminal.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.n == len(r.buf) {
		r.buf[r.start] = ev
		r.start = (r.start + 1) % len(r.buf)
		return
	}
	r.buf[(r.start+r.n)%len(r.buf)] = ev
	r.n++
}

// Latest returns the most recent event without removing it
func (r *Ring) Latest() (terminal.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.n == 0 {
		return terminal.Event{}, false
	}
	return r.buf[(r.start+r.n-1)%len(r.buf)], true
}

// Pull removes and returns up to n of the most recent events, newest first.
// Older events stay buffered in arrival order.
func (r *Ring) Pull(n int) []terminal.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.n {
		n = r.n
	}
	out := make([]terminal.Event, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.buf[(r.start+r.n-1)%len(r.buf)])
		r.n--
	}
	return out
}

// Len returns the number of buffered events
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Clear drops every buffered event
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start, r.n = 0, 0
}
