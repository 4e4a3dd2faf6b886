package seq

// Snapshot marshals every element to its host representation at call time
// and returns them as a fresh, self-contained slice. Iterating a snapshot
// never observes later mutation of the underlying list and holds no live
// node references.
func (a *Adapter) Snapshot() ([]any, error) {
	out := make([]any, 0, a.list.Len())
	for n := a.list.Front(); n != nil; n = n.Next() {
		v, err := a.nodeToHost(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Iterate returns a one-shot iterator over a snapshot of the current state.
// The iterator is finite and not restartable; call Iterate again for a
// fresh snapshot.
func (a *Adapter) Iterate() (*Iterator, error) {
	items, err := a.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Iterator{items: items}, nil
}

// Iterator walks a materialized snapshot of a sequence.
type Iterator struct {
	items []any
	pos   int
}

// Next returns the next element and true, or false when exhausted.
func (it *Iterator) Next() (any, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	v := it.items[it.pos]
	it.pos++
	return v, true
}

// Remaining reports how many elements are left to yield.
func (it *Iterator) Remaining() int {
	return len(it.items) - it.pos
}
