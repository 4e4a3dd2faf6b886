package wasmhost

import (
	"context"
	"errors"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	lberr "github.com/wippyai/list-bridge/errors"
	"github.com/wippyai/list-bridge/seq"
)

// ModuleName is the WIT interface path the host module instantiates under.
const ModuleName = "wippy:list/sequence@0.1.0"

// Guest-visible error codes. Every host function returns one as its last
// result; 0 means success.
const (
	ErrnoOK          uint32 = 0
	ErrnoBounds      uint32 = 1
	ErrnoNotFound    uint32 = 2
	ErrnoType        uint32 = 3
	ErrnoAlloc       uint32 = 4
	ErrnoUnsupported uint32 = 5
	ErrnoBadHandle   uint32 = 6
	ErrnoInternal    uint32 = 7
)

// Host exposes published sequence adapters to WebAssembly guests as the
// wippy:list/sequence interface. Guests address sequences by handle; the
// wire carries 64-bit integers, so only integer-element adapters are fully
// usable from the guest side.
type Host struct {
	mu       sync.RWMutex
	adapters map[uint32]*seq.Adapter
	next     uint32
}

// NewHost returns a host with no published sequences.
func NewHost() *Host {
	return &Host{adapters: make(map[uint32]*seq.Adapter)}
}

// Publish makes an adapter addressable by guests and returns its handle.
// Handles are never zero and never reused within one host.
func (h *Host) Publish(a *seq.Adapter) uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.adapters[h.next] = a
	Logger().Debug("published sequence", zap.Uint32("handle", h.next))
	return h.next
}

// Revoke withdraws a published adapter. Guest calls on a revoked handle
// fail with ErrnoBadHandle. The underlying list is untouched.
func (h *Host) Revoke(handle uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.adapters[handle]; !ok {
		return false
	}
	delete(h.adapters, handle)
	return true
}

func (h *Host) adapter(handle uint32) *seq.Adapter {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.adapters[handle]
}

// Instantiate builds the host module into the given wazero runtime. The
// module can be imported by guests or, in tests, called directly through
// its exported functions.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	i32 := api.ValueTypeI32
	i64 := api.ValueTypeI64

	builder := rt.NewHostModuleBuilder(ModuleName)

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.hostLen), []api.ValueType{i32}, []api.ValueType{i64, i32}).
		Export("len")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.hostGet), []api.ValueType{i32, i64}, []api.ValueType{i64, i32}).
		Export("get")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.hostAppend), []api.ValueType{i32, i64}, []api.ValueType{i32}).
		Export("append")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.hostInsert), []api.ValueType{i32, i64, i64}, []api.ValueType{i32}).
		Export("insert")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.hostPop), []api.ValueType{i32, i64}, []api.ValueType{i32}).
		Export("pop")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.hostClear), []api.ValueType{i32}, []api.ValueType{i32}).
		Export("clear")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.hostEq), []api.ValueType{i32, i32}, []api.ValueType{i32, i32}).
		Export("eq")

	return builder.Instantiate(ctx)
}

func (h *Host) hostLen(_ context.Context, _ api.Module, stack []uint64) {
	a := h.adapter(uint32(stack[0]))
	if a == nil {
		stack[0], stack[1] = 0, uint64(ErrnoBadHandle)
		return
	}
	stack[0] = uint64(a.Len())
	stack[1] = uint64(ErrnoOK)
}

func (h *Host) hostGet(_ context.Context, _ api.Module, stack []uint64) {
	a := h.adapter(uint32(stack[0]))
	if a == nil {
		stack[0], stack[1] = 0, uint64(ErrnoBadHandle)
		return
	}

	v, err := a.Get(int(int64(stack[1])))
	if err != nil {
		stack[0], stack[1] = 0, uint64(errno(err))
		return
	}

	enc, code := encodeValue(v)
	stack[0], stack[1] = enc, uint64(code)
}

func (h *Host) hostAppend(_ context.Context, _ api.Module, stack []uint64) {
	a := h.adapter(uint32(stack[0]))
	if a == nil {
		stack[0] = uint64(ErrnoBadHandle)
		return
	}
	stack[0] = uint64(errno(a.Append(int64(stack[1]))))
}

func (h *Host) hostInsert(_ context.Context, _ api.Module, stack []uint64) {
	a := h.adapter(uint32(stack[0]))
	if a == nil {
		stack[0] = uint64(ErrnoBadHandle)
		return
	}
	idx := int(int64(stack[1]))
	stack[0] = uint64(errno(a.Insert(idx, int64(stack[2]))))
}

func (h *Host) hostPop(_ context.Context, _ api.Module, stack []uint64) {
	a := h.adapter(uint32(stack[0]))
	if a == nil {
		stack[0] = uint64(ErrnoBadHandle)
		return
	}
	stack[0] = uint64(errno(a.Pop(int(int64(stack[1])))))
}

func (h *Host) hostClear(_ context.Context, _ api.Module, stack []uint64) {
	a := h.adapter(uint32(stack[0]))
	if a == nil {
		stack[0] = uint64(ErrnoBadHandle)
		return
	}
	a.Clear()
	stack[0] = uint64(ErrnoOK)
}

func (h *Host) hostEq(_ context.Context, _ api.Module, stack []uint64) {
	a := h.adapter(uint32(stack[0]))
	b := h.adapter(uint32(stack[1]))
	if a == nil || b == nil {
		stack[0], stack[1] = 0, uint64(ErrnoBadHandle)
		return
	}

	eq, err := a.Equal(b)
	if err != nil {
		stack[0], stack[1] = 0, uint64(errno(err))
		return
	}
	stack[0] = 0
	if eq {
		stack[0] = 1
	}
	stack[1] = uint64(ErrnoOK)
}

// encodeValue flattens a host value onto the wasm stack. Only values with a
// lossless 64-bit integer form encode; everything else is a type error at
// the boundary.
func encodeValue(v any) (uint64, uint32) {
	switch n := v.(type) {
	case int64:
		return api.EncodeI64(n), ErrnoOK
	case uint64:
		return n, ErrnoOK
	case bool:
		if n {
			return 1, ErrnoOK
		}
		return 0, ErrnoOK
	}
	return 0, ErrnoType
}

func errno(err error) uint32 {
	if err == nil {
		return ErrnoOK
	}
	var e *lberr.Error
	if !errors.As(err, &e) {
		return ErrnoInternal
	}
	switch e.Kind {
	case lberr.KindOutOfBounds:
		return ErrnoBounds
	case lberr.KindNotFound:
		return ErrnoNotFound
	case lberr.KindTypeMismatch, lberr.KindInvalidUTF8, lberr.KindOverflow, lberr.KindInvalidInput:
		return ErrnoType
	case lberr.KindAllocation:
		return ErrnoAlloc
	case lberr.KindUnsupported:
		return ErrnoUnsupported
	default:
		return ErrnoInternal
	}
}
