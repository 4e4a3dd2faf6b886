package nlist

import (
	listbridge "github.com/wippyai/list-bridge"
)

// Node is a single owned element slot within a List. A node belongs to
// exactly one list from allocation until removal; its links must not be
// touched by callers.
type Node struct {
	prev  *Node
	next  *Node
	value any
}

// Value returns the element stored in the node.
func (n *Node) Value() any { return n.value }

// SetValue replaces the element stored in the node.
func (n *Node) SetValue(v any) { n.value = v }

// Next returns the successor node or nil.
func (n *Node) Next() *Node { return n.next }

// Prev returns the predecessor node or nil.
func (n *Node) Prev() *Node { return n.prev }

// List is an ordered, doubly-linked collection of owned elements. It tracks
// its own count, so Len is O(1); locating a node by index is an O(n)
// traversal from the nearer end. Node allocation is charged against the
// supplied Allocator, one unit per node.
//
// To iterate over a list (where l is a *List):
//
//	for n := l.Front(); n != nil; n = n.Next() {
//		// do something with n
//	}
type List struct {
	head  *Node
	tail  *Node
	count int
	alloc listbridge.Allocator
}

// New creates an empty list. A nil allocator means unmetered allocation.
func New(alloc listbridge.Allocator) *List {
	if alloc == nil {
		alloc = listbridge.Unlimited()
	}
	return &List{alloc: alloc}
}

// Allocator returns the allocator the list charges node allocations to.
func (l *List) Allocator() listbridge.Allocator { return l.alloc }

// Len returns the number of live nodes.
func (l *List) Len() int { return l.count }

// Front returns the first node or nil.
func (l *List) Front() *Node { return l.head }

// Back returns the last node or nil.
func (l *List) Back() *Node { return l.tail }

func (l *List) newNode(v any) (*Node, error) {
	if err := l.alloc.Reserve(1); err != nil {
		return nil, err
	}
	return &Node{value: v}, nil
}

// PushFront links a new node holding v at the head in O(1).
func (l *List) PushFront(v any) (*Node, error) {
	n, err := l.newNode(v)
	if err != nil {
		return nil, err
	}

	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.count++
	return n, nil
}

// PushBack links a new node holding v at the tail in O(1).
func (l *List) PushBack(v any) (*Node, error) {
	n, err := l.newNode(v)
	if err != nil {
		return nil, err
	}

	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.count++
	return n, nil
}

// InsertBefore splices a new node holding v immediately before at, in O(1).
// at must be a live node of this list; a nil at behaves like PushBack.
func (l *List) InsertBefore(at *Node, v any) (*Node, error) {
	if at == nil {
		return l.PushBack(v)
	}
	if at.prev == nil {
		return l.PushFront(v)
	}

	n, err := l.newNode(v)
	if err != nil {
		return nil, err
	}

	n.prev = at.prev
	n.next = at
	at.prev.next = n
	at.prev = n
	l.count++
	return n, nil
}

// Remove unlinks n from the list in O(1), releases its allocator unit, and
// returns the stored value. n must be a live node of this list.
func (l *List) Remove(n *Node) any {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	v := n.value
	n.prev = nil
	n.next = nil
	n.value = nil
	l.count--
	l.alloc.Release(1)
	return v
}

// At returns the node at logical index i, or nil when i is outside
// [0, Len()). Traversal starts from whichever end is nearer.
func (l *List) At(i int) *Node {
	if i < 0 || i >= l.count {
		return nil
	}

	if i < l.count/2 {
		n := l.head
		for ; i > 0; i-- {
			n = n.next
		}
		return n
	}

	n := l.tail
	for i = l.count - 1 - i; i > 0; i-- {
		n = n.prev
	}
	return n
}

// Contains reports whether n is a live node of this list. O(n) scan.
func (l *List) Contains(n *Node) bool {
	for cur := l.head; cur != nil; cur = cur.next {
		if cur == n {
			return true
		}
	}
	return false
}

// Clear removes every node front to back, releasing their allocator units.
func (l *List) Clear() {
	for l.head != nil {
		l.Remove(l.head)
	}
}
