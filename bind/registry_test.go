package bind

import (
	"errors"
	"math"
	"reflect"
	"testing"

	lberr "github.com/wippyai/list-bridge/errors"
	"github.com/wippyai/list-bridge/nlist"
	"github.com/wippyai/list-bridge/seq"
	"github.com/wippyai/list-bridge/wrap"
)

type record struct {
	ID   int64
	Name string
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	b, err := r.Register(reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if b == nil {
		t.Fatal("nil bindings")
	}

	t.Run("idempotent", func(t *testing.T) {
		again, err := r.Register(reflect.TypeOf(int64(0)))
		if err != nil {
			t.Fatalf("second Register: %v", err)
		}
		if again != b {
			t.Error("re-registration must return the original bindings")
		}
		if r.Len() != 1 {
			t.Errorf("registry size = %d, want 1", r.Len())
		}
	})

	t.Run("pointer_and_struct_share", func(t *testing.T) {
		byStruct, err := r.Register(reflect.TypeOf(record{}))
		if err != nil {
			t.Fatalf("Register(struct): %v", err)
		}
		byPtr, err := r.Register(reflect.TypeOf(&record{}))
		if err != nil {
			t.Fatalf("Register(ptr): %v", err)
		}
		if byStruct != byPtr {
			t.Error("pointer-to-struct must resolve to the struct's bindings")
		}
	})

	t.Run("lookup", func(t *testing.T) {
		if r.Lookup(reflect.TypeOf(int64(0))) != b {
			t.Error("Lookup missed a registered type")
		}
		if r.Lookup(reflect.TypeOf(&record{})) == nil {
			t.Error("Lookup must dereference pointer-to-struct")
		}
		if r.Lookup(reflect.TypeOf("")) != nil {
			t.Error("Lookup invented bindings for an unregistered type")
		}
		if r.Lookup(nil) != nil {
			t.Error("Lookup(nil) must be nil")
		}
	})

	t.Run("uncompilable", func(t *testing.T) {
		if _, err := r.Register(reflect.TypeOf(make(chan int))); !errors.Is(err, lberr.ErrUnsupported) {
			t.Fatalf("expected unsupported, got %v", err)
		}
	})

	t.Run("nil_type", func(t *testing.T) {
		if _, err := r.Register(nil); err == nil {
			t.Fatal("expected error for nil type")
		}
	})
}

func TestBindings_Hooks(t *testing.T) {
	r := NewRegistry()
	b, err := r.Register(reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, name := range []string{"len", "get-item", "append", "insert", "remove", "pop", "clear", "iterate", "compare"} {
		if b.Op(name) == nil {
			t.Errorf("missing hook %q", name)
		}
	}
	if b.Op("reverse") != nil {
		t.Error("unexpected hook")
	}
	if len(b.Names()) != 9 {
		t.Errorf("hook count = %d, want 9", len(b.Names()))
	}
}

func TestBindings_Dispatch(t *testing.T) {
	r := NewRegistry()
	b, err := r.Register(reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	a := b.NewAdapter(nlist.New(nil))

	call := func(t *testing.T, name string, args ...any) any {
		t.Helper()
		v, err := b.Call(a, name, args...)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		return v
	}

	call(t, "append", int64(1))
	call(t, "append", int64(2))
	call(t, "insert", 1, int64(99))

	if n := call(t, "len"); n != int64(3) {
		t.Fatalf("len = %v", n)
	}
	if v := call(t, "get-item", 1); v != int64(99) {
		t.Fatalf("get-item(1) = %v", v)
	}
	if v := call(t, "get-item", int64(-1)); v != int64(2) {
		t.Fatalf("get-item(-1) = %v", v)
	}

	call(t, "pop", 1)
	if eq := call(t, "compare", "eq", []any{int64(1), int64(2)}); eq != true {
		t.Fatal("sequence should equal [1 2] after pop")
	}

	it := call(t, "iterate").(*seq.Iterator)
	if it.Remaining() != 2 {
		t.Fatalf("Remaining = %d", it.Remaining())
	}

	call(t, "clear")
	if n := call(t, "len"); n != int64(0) {
		t.Fatalf("len after clear = %v", n)
	}

	t.Run("unknown_hook", func(t *testing.T) {
		if _, err := b.Call(a, "reverse"); !errors.Is(err, lberr.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("bad_arity", func(t *testing.T) {
		if _, err := b.Call(a, "len", 1); err == nil {
			t.Error("len with an argument should fail")
		}
		if _, err := b.Call(a, "insert", 0); err == nil {
			t.Error("insert with one argument should fail")
		}
	})

	t.Run("bad_index", func(t *testing.T) {
		if _, err := b.Call(a, "get-item", "zero"); err == nil {
			t.Error("non-integer index should fail")
		}
		if _, err := b.Call(a, "get-item", 1.5); err == nil {
			t.Error("fractional index should fail")
		}
		// must not wrap around to a negative index
		if _, err := b.Call(a, "get-item", uint64(math.MaxUint64)); err == nil {
			t.Error("over-wide index should fail")
		}
	})
}

func TestBindings_CompareQuirk(t *testing.T) {
	r := NewRegistry()
	b, err := r.Register(reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	a := b.NewAdapter(nlist.New(nil))
	if err := a.Append(int64(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// only equality travels the wire; ordering operators answer as
	// inequality even against an equal sequence
	for _, cmp := range []string{"ne", "lt", "le", "gt", "ge"} {
		v, err := b.Call(a, "compare", cmp, []any{int64(1)})
		if err != nil {
			t.Fatalf("compare %s: %v", cmp, err)
		}
		if v != false {
			t.Errorf("compare %s against an equal sequence = %v, want false", cmp, v)
		}
	}

	v, err := b.Call(a, "compare", "eq", []any{int64(1)})
	if err != nil || v != true {
		t.Fatalf("compare eq = %v %v", v, err)
	}

	if _, err := b.Call(a, "compare", 42, []any{}); err == nil {
		t.Error("non-string operator should fail")
	}
}

func TestBind_Default(t *testing.T) {
	a, err := Bind(nlist.New(nil), reflect.TypeOf(record{}))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if err := a.Append(map[string]any{"id": int64(7), "name": "seven"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	v, err := a.Get(0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := v.(*wrap.Wrapper); !ok {
		t.Fatalf("composite Get returned %T", v)
	}

	// a second Bind of the same type shares the registration
	if Default.Lookup(reflect.TypeOf(record{})) == nil {
		t.Fatal("Bind did not register in the default registry")
	}
	again, err := Bind(nlist.New(nil), reflect.TypeOf(&record{}))
	if err != nil {
		t.Fatalf("Bind again: %v", err)
	}
	if again.ElemType() != a.ElemType() {
		t.Error("adapters of one type must share the compiled element type")
	}
}
