package bind

import (
	"math"

	"github.com/wippyai/list-bridge/errors"
	"github.com/wippyai/list-bridge/marshal"
	"github.com/wippyai/list-bridge/nlist"
	"github.com/wippyai/list-bridge/seq"
)

// Op is one protocol hook: it receives the adapter the host runtime is
// operating on plus the host-side arguments, and returns the host-side
// result.
type Op func(a *seq.Adapter, args ...any) (any, error)

// Bindings is the complete set of protocol hooks for one element type.
// A Bindings value is immutable after construction and shared by every
// adapter of its element type.
type Bindings struct {
	elem *marshal.ElemType
	ops  map[string]Op
}

// ElemType returns the compiled element type these bindings serve.
func (b *Bindings) ElemType() *marshal.ElemType { return b.elem }

// NewAdapter binds an existing list to this element type's protocol.
func (b *Bindings) NewAdapter(list *nlist.List) *seq.Adapter {
	return seq.New(list, b.elem)
}

// Op returns the named hook, or nil if the protocol does not define it.
func (b *Bindings) Op(name string) Op { return b.ops[name] }

// Names returns the hook names the protocol defines.
func (b *Bindings) Names() []string {
	out := make([]string, 0, len(b.ops))
	for name := range b.ops {
		out = append(out, name)
	}
	return out
}

// Call dispatches one hook by name.
func (b *Bindings) Call(a *seq.Adapter, name string, args ...any) (any, error) {
	op := b.ops[name]
	if op == nil {
		return nil, errors.NotFound(errors.PhaseBind, "no hook named "+name)
	}
	return op(a, args...)
}

func newBindings(elem *marshal.ElemType) *Bindings {
	return &Bindings{
		elem: elem,
		ops: map[string]Op{
			"len":      opLen,
			"get-item": opGetItem,
			"append":   opAppend,
			"insert":   opInsert,
			"remove":   opRemove,
			"pop":      opPop,
			"clear":    opClear,
			"iterate":  opIterate,
			"compare":  opCompare,
		},
	}
}

func opLen(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return int64(a.Len()), nil
}

func opGetItem(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	idx, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	return a.Get(idx)
}

func opAppend(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return nil, a.Append(args[0])
}

func opInsert(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 2, 2); err != nil {
		return nil, err
	}
	idx, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	return nil, a.Insert(idx, args[1])
}

func opRemove(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 1, 1); err != nil {
		return nil, err
	}
	return nil, a.Remove(args[0])
}

func opPop(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, a.Pop()
	}
	idx, err := intArg(args[0])
	if err != nil {
		return nil, err
	}
	return nil, a.Pop(idx)
}

func opClear(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	a.Clear()
	return nil, nil
}

func opIterate(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 0, 0); err != nil {
		return nil, err
	}
	return a.Iterate()
}

// opCompare implements the protocol's comparison hook. The wire only carries
// equality: "eq" answers Equal, and every other comparison operator the host
// runtime may send is answered as inequality.
func opCompare(a *seq.Adapter, args ...any) (any, error) {
	if err := arity(args, 2, 2); err != nil {
		return nil, err
	}
	cmp, ok := args[0].(string)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseBind, "comparison operator must be a string")
	}
	if cmp == "eq" {
		return a.Equal(args[1])
	}
	return a.NotEqual(args[1])
}

func arity(args []any, min, max int) error {
	if len(args) < min || len(args) > max {
		return errors.InvalidInput(errors.PhaseBind, "wrong argument count")
	}
	return nil
}

func intArg(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		if n <= math.MaxInt {
			return int(n), nil
		}
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, errors.InvalidInput(errors.PhaseBind, "index must be an integer")
}
