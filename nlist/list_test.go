package nlist

import (
	"testing"

	listbridge "github.com/wippyai/list-bridge"
)

func values(l *List) []any {
	var out []any
	for n := l.Front(); n != nil; n = n.Next() {
		out = append(out, n.Value())
	}
	return out
}

func TestList_PushOrder(t *testing.T) {
	l := New(nil)

	for i := 1; i <= 3; i++ {
		if _, err := l.PushBack(i); err != nil {
			t.Fatalf("PushBack: %v", err)
		}
	}
	if _, err := l.PushFront(0); err != nil {
		t.Fatalf("PushFront: %v", err)
	}

	if l.Len() != 4 {
		t.Fatalf("expected len 4, got %d", l.Len())
	}

	got := values(l)
	want := []any{0, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}

	if l.Front().Value() != 0 || l.Back().Value() != 3 {
		t.Errorf("front/back wrong: %v / %v", l.Front().Value(), l.Back().Value())
	}
}

func TestList_InsertBefore(t *testing.T) {
	l := New(nil)
	a, _ := l.PushBack("a")
	c, _ := l.PushBack("c")

	if _, err := l.InsertBefore(c, "b"); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	if _, err := l.InsertBefore(a, "start"); err != nil {
		t.Fatalf("InsertBefore head: %v", err)
	}
	if _, err := l.InsertBefore(nil, "end"); err != nil {
		t.Fatalf("InsertBefore nil: %v", err)
	}

	got := values(l)
	want := []any{"start", "a", "b", "c", "end"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestList_Remove(t *testing.T) {
	l := New(nil)
	l.PushBack(1)
	b, _ := l.PushBack(2)
	l.PushBack(3)

	if v := l.Remove(b); v != 2 {
		t.Fatalf("Remove returned %v, want 2", v)
	}
	if l.Len() != 2 {
		t.Fatalf("expected len 2, got %d", l.Len())
	}

	got := values(l)
	if got[0] != 1 || got[1] != 3 {
		t.Fatalf("unexpected order after remove: %v", got)
	}

	// removing head and tail
	l.Remove(l.Front())
	l.Remove(l.Back())
	if l.Len() != 0 || l.Front() != nil || l.Back() != nil {
		t.Fatal("list not empty after removing all nodes")
	}
}

func TestList_At(t *testing.T) {
	l := New(nil)
	for i := 0; i < 7; i++ {
		l.PushBack(i)
	}

	for i := 0; i < 7; i++ {
		n := l.At(i)
		if n == nil || n.Value() != i {
			t.Fatalf("At(%d) = %v", i, n)
		}
	}

	if l.At(-1) != nil || l.At(7) != nil {
		t.Error("At out of range should return nil")
	}
}

func TestList_Contains(t *testing.T) {
	l := New(nil)
	n, _ := l.PushBack("x")

	other := New(nil)
	foreign, _ := other.PushBack("x")

	if !l.Contains(n) {
		t.Error("expected Contains for own node")
	}
	if l.Contains(foreign) {
		t.Error("node of another list should not be contained")
	}

	l.Remove(n)
	if l.Contains(n) {
		t.Error("removed node should not be contained")
	}
}

func TestList_Clear(t *testing.T) {
	l := New(nil)
	for i := 0; i < 5; i++ {
		l.PushBack(i)
	}

	l.Clear()
	if l.Len() != 0 || l.Front() != nil {
		t.Fatal("clear left nodes behind")
	}

	// reusable after clear
	if _, err := l.PushBack("again"); err != nil {
		t.Fatalf("PushBack after Clear: %v", err)
	}
}

func TestList_QuotaAllocator(t *testing.T) {
	q := listbridge.NewQuota(2)
	l := New(q)

	if _, err := l.PushBack(1); err != nil {
		t.Fatalf("first alloc: %v", err)
	}
	if _, err := l.PushBack(2); err != nil {
		t.Fatalf("second alloc: %v", err)
	}

	if _, err := l.PushBack(3); err == nil {
		t.Fatal("expected quota exhaustion")
	}
	if l.Len() != 2 {
		t.Fatalf("failed alloc must not link a node, len = %d", l.Len())
	}

	l.Remove(l.Front())
	if q.Used() != 1 {
		t.Fatalf("expected 1 unit in use, got %d", q.Used())
	}
	if _, err := l.PushBack(3); err != nil {
		t.Fatalf("alloc after release: %v", err)
	}
}
