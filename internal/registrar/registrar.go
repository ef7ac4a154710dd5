package registrar

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/impromptu/internal/logging"
)

// Key addresses a node. Keys come from a counter and are never reused; the
// zero value means "no node".
type Key uint64

// None is the absent key
const None Key = 0

// Node is one entry of the registry
type Node[T any] struct {
	Key    Key
	Data   T
	Prev   Key
	Next   Key
	Origin Key // running node at branch time, None outside branches
}

// Registrar is a cursor-driven chain of items that can be rewired while it
// is being walked. Nodes live in an arena addressed by Key; the branched and
// orphaned indices sit beside it.
type Registrar[T any] struct {
	mu sync.Mutex

	nodes    map[Key]*Node[T]
	order    []Key
	branched map[Key][]Key
	orphaned map[Key]Key

	entry   Key
	cursor  Key
	running Key
	tail    Key
	last    Key
}

// New creates an empty registrar
func New[T any]() *Registrar[T] {
	return &Registrar[T]{
		nodes:    make(map[Key]*Node[T]),
		branched: make(map[Key][]Key),
		orphaned: make(map[Key]Key),
	}
}

func (r *Registrar[T]) newNode(item T) *Node[T] {
	r.last++
	n := &Node[T]{Key: r.last, Data: item}
	r.nodes[n.Key] = n
	r.order = append(r.order, n.Key)
	return n
}

// Put appends an item to the tail of the primary chain
func (r *Registrar[T]) Put(item T) Key {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.newNode(item)
	if r.entry == None {
		r.entry = n.Key
		r.cursor = n.Key
	} else {
		tail := r.nodes[r.tail]
		tail.Next = n.Key
		n.Prev = tail.Key
		// the walk already ran off the end: serve the new item next
		if r.cursor == None && r.running == tail.Key {
			r.cursor = n.Key
		}
	}
	r.tail = n.Key
	return n.Key
}

// Get serves the item at the cursor and advances the cursor. ok is false
// once the chain is exhausted.
func (r *Registrar[T]) Get() (item T, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, found := r.nodes[r.cursor]
	if !found {
		return item, false
	}
	r.running = n.Key
	r.cursor = n.Next
	return n.Data, true
}

// Restart rewinds the cursor to the running node so the next Get serves it
// again.
func (r *Registrar[T]) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running != None {
		r.cursor = r.running
	}
}

// Current returns the running node
func (r *Registrar[T]) Current() (Node[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(r.running)
}

// Previous returns the node linked before the running node
func (r *Registrar[T]) Previous() (Node[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.nodes[r.running]
	if !ok {
		return Node[T]{}, false
	}
	return r.lookup(run.Prev)
}

// Subsequent returns the node linked after the running node
func (r *Registrar[T]) Subsequent() (Node[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.nodes[r.running]
	if !ok {
		return Node[T]{}, false
	}
	return r.lookup(run.Next)
}

// Lookup returns a copy of any node
func (r *Registrar[T]) Lookup(key Key) (Node[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(key)
}

func (r *Registrar[T]) lookup(key Key) (Node[T], bool) {
	n, ok := r.nodes[key]
	if !ok {
		return Node[T]{}, false
	}
	return *n, true
}

// Insert splices items between the running node and its successor. The next
// Get serves the first inserted item. Inserting nothing is a no-op.
func (r *Registrar[T]) Insert(items ...T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		return nil
	}
	run, ok := r.nodes[r.running]
	if !ok {
		return newFlowError(ErrTypeNotRunning, r.running, None, "insert requires a running node")
	}

	successor := run.Next
	last := r.chain(run, items, run.Origin)
	last.Next = successor
	if n, ok := r.nodes[successor]; ok {
		n.Prev = last.Key
	}

	logging.LogRegistrarOp("insert", uint64(run.Key), zap.Int("count", len(items)))
	return nil
}

// Branch links items after the running node and records the chain they
// displace, so Merge can later resume it. The branch does not link back to
// the displaced chain. Branching twice from the same node overwrites the
// first snapshot.
func (r *Registrar[T]) Branch(items ...T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		return nil
	}
	run, ok := r.nodes[r.running]
	if !ok {
		return newFlowError(ErrTypeNotRunning, r.running, None, "branch requires a running node")
	}

	r.branched[run.Key] = r.linked(run.Next)
	last := r.chain(run, items, run.Key)
	last.Next = None

	logging.LogRegistrarOp("branch", uint64(run.Key),
		zap.Int("count", len(items)),
		zap.Int("displaced", len(r.branched[run.Key])),
	)
	return nil
}

// chain links fresh nodes after from, points the cursor at the first one
// and returns the last
func (r *Registrar[T]) chain(from *Node[T], items []T, origin Key) *Node[T] {
	prev := from
	for i, item := range items {
		n := r.newNode(item)
		n.Origin = origin
		n.Prev = prev.Key
		prev.Next = n.Key
		if i == 0 {
			r.cursor = n.Key
		}
		prev = n
	}
	return prev
}

// Merge resumes the chain displaced by the active branch, at target or at
// its first node when target is None. Displaced nodes before the target are
// orphaned by the branch origin; branch nodes still pending after the
// running node are orphaned by the running node.
//
// Called on the origin itself, right after Branch, Merge undoes the branch:
// the whole branch is orphaned and the original chain is restored.
func (r *Registrar[T]) Merge(target Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.nodes[r.running]
	if !ok {
		return newFlowError(ErrTypeNotRunning, r.running, target, "merge requires a running node")
	}

	origin := run.Origin
	if next, ok := r.nodes[run.Next]; ok && next.Origin == run.Key {
		origin = run.Key
	}
	snapshot, ok := r.branched[origin]
	if origin == None || !ok {
		return newFlowError(ErrTypeNoActiveBranch, run.Key, target, "no branch to merge from")
	}

	if target == None {
		if len(snapshot) == 0 {
			// the branch displaced nothing: merging ends the walk
			r.orphanPending(run)
			run.Next = None
			r.cursor = None
			return nil
		}
		target = snapshot[0]
	}
	idx := slices.Index(snapshot, target)
	if idx < 0 {
		return newFlowError(ErrTypeInvalidMergeTarget, run.Key, target, "key is not in the branch snapshot of %d", origin)
	}

	for _, k := range snapshot[:idx] {
		r.orphaned[k] = origin
	}
	r.orphanPending(run)

	run.Next = target
	r.nodes[target].Prev = run.Key
	r.cursor = target

	logging.LogRegistrarOp("merge", uint64(run.Key),
		zap.Uint64("origin", uint64(origin)),
		zap.Uint64("target", uint64(target)),
	)
	return nil
}

// Skip bypasses pending nodes. With target None exactly one node is
// orphaned and the walk continues after it; otherwise every node before
// target is orphaned.
func (r *Registrar[T]) Skip(target Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.nodes[r.running]
	if !ok {
		return newFlowError(ErrTypeNotRunning, r.running, target, "skip requires a running node")
	}
	pending := r.linked(run.Next)

	var idx int
	if target == None {
		if len(pending) == 0 {
			return newFlowError(ErrTypeNothingToSkip, run.Key, None, "no pending node to skip")
		}
		idx = 1
		if len(pending) > 1 {
			target = pending[1]
		}
	} else {
		idx = slices.Index(pending, target)
		if idx < 0 {
			return newFlowError(ErrTypeInvalidSkipTarget, run.Key, target, "key is not pending after the running node")
		}
	}

	for _, k := range pending[:idx] {
		r.orphaned[k] = run.Key
	}
	run.Next = target
	if n, ok := r.nodes[target]; ok {
		n.Prev = run.Key
	}
	r.cursor = target

	logging.LogRegistrarOp("skip", uint64(run.Key),
		zap.Int("orphaned", idx),
		zap.Uint64("target", uint64(target)),
	)
	return nil
}

func (r *Registrar[T]) orphanPending(run *Node[T]) {
	for _, k := range r.linked(run.Next) {
		r.orphaned[k] = run.Key
	}
}

// linked lists the keys reachable from start by following Next
func (r *Registrar[T]) linked(start Key) []Key {
	var keys []Key
	seen := make(map[Key]bool)
	for k := start; k != None && !seen[k]; {
		n, ok := r.nodes[k]
		if !ok {
			break
		}
		seen[k] = true
		keys = append(keys, k)
		k = n.Next
	}
	return keys
}

// Pending lists the keys the walk will serve after the running node
func (r *Registrar[T]) Pending() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linked(r.cursor)
}

// Entry returns the head of the registry
func (r *Registrar[T]) Entry() Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entry
}

// Cursor returns the key the next Get serves
func (r *Registrar[T]) Cursor() Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

// Running returns the key of the node being served
func (r *Registrar[T]) Running() Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Len returns the number of nodes ever created
func (r *Registrar[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Keys returns every key in creation order
func (r *Registrar[T]) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// Orphaned returns a copy of the orphaned index: bypassed key to the key
// of the node that bypassed it
func (r *Registrar[T]) Orphaned() map[Key]Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Key]Key, len(r.orphaned))
	for k, v := range r.orphaned {
		out[k] = v
	}
	return out
}

// Branched returns a copy of the branch snapshots keyed by origin
func (r *Registrar[T]) Branched() map[Key][]Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Key][]Key, len(r.branched))
	for k, v := range r.branched {
		out[k] = slices.Clone(v)
	}
	return out
}
