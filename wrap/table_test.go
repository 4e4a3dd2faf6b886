package wrap

import (
	"testing"

	"github.com/wippyai/list-bridge/nlist"
)

func TestTable_Basic(t *testing.T) {
	table := NewTable()
	l := nlist.New(nil)
	n, _ := l.PushBack("elem")

	h := table.Insert(n)
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	got, ok := table.Node(h)
	if !ok || got != n {
		t.Fatalf("Node(%d) = %v, %v", h, got, ok)
	}

	if !table.Invalidate(h) {
		t.Fatal("Invalidate failed")
	}
	if _, ok := table.Node(h); ok {
		t.Fatal("stale handle should not resolve")
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, len = %d", table.Len())
	}
}

func TestTable_InvalidHandles(t *testing.T) {
	table := NewTable()

	if _, ok := table.Node(0); ok {
		t.Error("handle 0 must never resolve")
	}
	if _, ok := table.Node(99); ok {
		t.Error("unknown handle must not resolve")
	}
	if table.Invalidate(0) || table.Invalidate(99) {
		t.Error("invalidating unknown handles should report false")
	}
	if table.Insert(nil) != 0 {
		t.Error("nil node should yield the invalid handle")
	}
}

func TestTable_SlotReuse(t *testing.T) {
	table := NewTable()
	l := nlist.New(nil)
	a, _ := l.PushBack("a")
	b, _ := l.PushBack("b")

	h1 := table.Insert(a)
	table.Invalidate(h1)

	h2 := table.Insert(b)
	if h2 != h1 {
		t.Fatalf("expected slot reuse, got %d and %d", h1, h2)
	}

	got, ok := table.Node(h2)
	if !ok || got != b {
		t.Fatal("reused slot resolves to wrong node")
	}
}

func TestTable_DedupesLiveNodes(t *testing.T) {
	table := NewTable()
	l := nlist.New(nil)
	n, _ := l.PushBack("x")

	h1 := table.Insert(n)
	for i := 0; i < 100; i++ {
		if h := table.Insert(n); h != h1 {
			t.Fatalf("re-insert of a live node returned %d, want %d", h, h1)
		}
	}
	if table.Len() != 1 {
		t.Fatalf("one live node should occupy one slot, got %d", table.Len())
	}

	// a fresh slot after the old one dies
	table.Invalidate(h1)
	h2 := table.Insert(n)
	if _, ok := table.Node(h1); ok {
		t.Error("old handle should stay stale")
	}
	if got, ok := table.Node(h2); !ok || got != n {
		t.Fatal("new handle should resolve to the node")
	}
}

func TestTable_InvalidateNode(t *testing.T) {
	table := NewTable()
	l := nlist.New(nil)
	n, _ := l.PushBack("x")
	other, _ := l.PushBack("y")

	h1 := table.Insert(n)
	h2 := table.Insert(n)
	h3 := table.Insert(other)

	if count := table.InvalidateNode(n); count != 1 {
		t.Fatalf("expected 1 invalidated, got %d", count)
	}
	if _, ok := table.Node(h1); ok {
		t.Error("h1 should be stale")
	}
	if _, ok := table.Node(h2); ok {
		t.Error("h2 should be stale")
	}
	if _, ok := table.Node(h3); !ok {
		t.Error("unrelated handle was invalidated")
	}
	if count := table.InvalidateNode(n); count != 0 {
		t.Fatalf("second invalidation should find nothing, got %d", count)
	}
}

func TestWrapper_Identity(t *testing.T) {
	table := NewTable()
	l := nlist.New(nil)
	n, _ := l.PushBack("x")
	m, _ := l.PushBack("y")

	w1 := NewWrapper(table, table.Insert(n))
	w2 := NewWrapper(table, table.Insert(n))
	w3 := NewWrapper(table, table.Insert(m))

	if !w1.Same(w2) {
		t.Error("wrappers of one node should compare equal")
	}
	if w1.Same(w3) {
		t.Error("wrappers of different nodes should not compare equal")
	}

	v, ok := w1.Value()
	if !ok || v != "x" {
		t.Fatalf("Value = %v, %v", v, ok)
	}

	table.InvalidateNode(n)
	if _, ok := w1.Node(); ok {
		t.Error("wrapper should be stale after node invalidation")
	}
	if w1.Same(w2) {
		t.Error("stale wrappers are never the same element")
	}
}

func TestTable_Clear(t *testing.T) {
	table := NewTable()
	l := nlist.New(nil)
	for i := 0; i < 4; i++ {
		n, _ := l.PushBack(i)
		table.Insert(n)
	}

	table.Clear()
	if table.Len() != 0 {
		t.Fatalf("expected 0 live slots, got %d", table.Len())
	}
}
