package wrap

import (
	"sync"

	"github.com/wippyai/list-bridge/nlist"
)

// Handle is an opaque reference to a wrapped element slot.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Table is the slot table backing element wrappers. Each live node occupies
// at most one slot: inserting a node that is already tracked returns its
// existing handle, so repeated reads of one element cannot grow the table.
// Slots are reused through a free list; a slot stays invalid from
// invalidation until reuse, so stale handles fail their liveness check
// instead of resolving to a dead node.
type Table struct {
	entries  []entry
	freeList []Handle
	byNode   map[*nlist.Node]Handle
	mu       sync.RWMutex
}

type entry struct {
	node  *nlist.Node
	valid bool
}

// NewTable creates an empty slot table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
		byNode:   make(map[*nlist.Node]Handle, 16),
	}
}

// Insert returns the handle tracking a node, allocating a slot only for
// nodes not already tracked. A nil node yields the invalid handle.
func (t *Table) Insert(n *nlist.Node) Handle {
	if n == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.byNode[n]; ok {
		return h
	}

	e := entry{node: n, valid: true}

	var h Handle
	if len(t.freeList) > 0 {
		h = t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
	} else {
		t.entries = append(t.entries, e)
		h = Handle(len(t.entries))
	}

	t.byNode[n] = h
	return h
}

// Node resolves a handle to its live node. Stale and unknown handles return
// false.
func (t *Table) Node(h Handle) (*nlist.Node, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(h) - 1
	if idx >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.node, true
}

// Invalidate marks a handle's slot dead and queues it for reuse. Reports
// whether the handle was live.
func (t *Table) Invalidate(h Handle) bool {
	if h == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(h) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return false
	}

	delete(t.byNode, t.entries[idx].node)
	t.entries[idx] = entry{}
	t.freeList = append(t.freeList, h)
	return true
}

// InvalidateNode invalidates the slot tracking n, if any, and returns how
// many slots were invalidated. Called when a node is removed through any
// path.
func (t *Table) InvalidateNode(n *nlist.Node) int {
	if n == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.byNode[n]
	if !ok {
		return 0
	}

	delete(t.byNode, n)
	t.entries[h-1] = entry{}
	t.freeList = append(t.freeList, h)
	return 1
}

// Len returns the number of live slots.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byNode)
}

// Clear invalidates every slot.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.entries {
		if t.entries[i].valid {
			t.entries[i] = entry{}
			t.freeList = append(t.freeList, Handle(i+1))
		}
	}
	t.byNode = make(map[*nlist.Node]Handle, 16)
}
