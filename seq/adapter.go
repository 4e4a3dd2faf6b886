package seq

import (
	"go.uber.org/zap"

	"github.com/wippyai/list-bridge/errors"
	"github.com/wippyai/list-bridge/marshal"
	"github.com/wippyai/list-bridge/nlist"
	"github.com/wippyai/list-bridge/wrap"
)

// Adapter exposes one native list as a host-runtime sequence. It borrows the
// list: construction does not take ownership and the adapter must not be
// used after the list's owner destroys it.
//
// An adapter is bound to one element type for its whole lifetime. Composite
// element types additionally carry a wrapper table so host code gets
// identity handles instead of copies.
//
// Adapters are not safe for concurrent use; the host is expected to
// serialize calls, matching the original single-threaded protocol contract.
type Adapter struct {
	list     *nlist.List
	elem     *marshal.ElemType
	m        *marshal.Marshaller
	wrappers *wrap.Table
}

// New binds an adapter to an existing list. Byte-string copies are charged
// to the list's allocator.
func New(list *nlist.List, elem *marshal.ElemType) *Adapter {
	a := &Adapter{
		list: list,
		elem: elem,
		m:    marshal.New(list.Allocator()),
	}
	if elem.Kind == marshal.KindStruct {
		a.wrappers = wrap.NewTable()
	}
	return a
}

// ElemType returns the adapter's compiled element type descriptor.
func (a *Adapter) ElemType() *marshal.ElemType { return a.elem }

// List returns the borrowed native list.
func (a *Adapter) List() *nlist.List { return a.list }

// Wrappers returns the composite wrapper table, nil for scalar element
// types.
func (a *Adapter) Wrappers() *wrap.Table { return a.wrappers }

// Len returns the sequence length.
func (a *Adapter) Len() int { return a.list.Len() }

// resolveIndex maps negative indices to offsets from the end. The result
// may still be out of range; each operation applies its own policy.
func (a *Adapter) resolveIndex(i int) int {
	if i < 0 {
		return i + a.list.Len()
	}
	return i
}

// Get returns the element at index, marshalled to its host representation.
// Negative indices address from the end; a resolved index outside
// [0, Len()) is an error. Composite elements come back as identity
// wrappers, everything else as a host value copy.
func (a *Adapter) Get(index int) (any, error) {
	idx := a.resolveIndex(index)
	if idx < 0 || idx >= a.list.Len() {
		return nil, errors.OutOfBounds(errors.PhaseSequence, index, a.list.Len())
	}

	n := a.list.At(idx)
	return a.nodeToHost(n)
}

func (a *Adapter) nodeToHost(n *nlist.Node) (any, error) {
	if a.elem.Kind == marshal.KindStruct {
		return wrap.NewWrapper(a.wrappers, a.wrappers.Insert(n)), nil
	}
	return a.m.ToHost(a.elem, n.Value())
}

// Append converts the host value and links a new node at the tail. On
// conversion failure no node is allocated; on allocation failure nothing is
// linked and the converted value's storage is returned to the allocator.
func (a *Adapter) Append(host any) error {
	native, err := a.m.FromHost(a.elem, host)
	if err != nil {
		return err
	}

	if _, err := a.list.PushBack(native); err != nil {
		a.m.ReleaseNative(a.elem, native)
		return errors.AllocationFailed(errors.PhaseSequence, 1, err)
	}

	Logger().Debug("append", zap.Int("len", a.list.Len()))
	return nil
}

// Insert converts the host value and splices a new node at the resolved
// index, clamped into [0, Len()]. Clamping is policy, not an error: an index
// past the end appends, a far-negative index prepends.
func (a *Adapter) Insert(index int, host any) error {
	native, err := a.m.FromHost(a.elem, host)
	if err != nil {
		return err
	}

	idx := a.resolveIndex(index)
	if idx < 0 {
		idx = 0
	}
	if idx > a.list.Len() {
		idx = a.list.Len()
	}

	if idx == a.list.Len() {
		_, err = a.list.PushBack(native)
	} else {
		_, err = a.list.InsertBefore(a.list.At(idx), native)
	}
	if err != nil {
		a.m.ReleaseNative(a.elem, native)
		return errors.AllocationFailed(errors.PhaseSequence, 1, err)
	}

	Logger().Debug("insert", zap.Int("index", idx), zap.Int("len", a.list.Len()))
	return nil
}

// Remove unlinks the first element whose storage identity matches the given
// wrapper. Only composite element types support structural removal; scalar
// element types fail with an unsupported-type error. A stale wrapper, a
// non-wrapper argument, or a wrapper into a different list finds no match.
func (a *Adapter) Remove(host any) error {
	if a.elem.Kind != marshal.KindStruct {
		return errors.Unsupported(errors.PhaseSequence,
			"remove requires a composite element type")
	}

	w, ok := host.(*wrap.Wrapper)
	if !ok {
		return errors.NotFound(errors.PhaseSequence, "no element with matching identity")
	}
	target, ok := w.Node()
	if !ok {
		return errors.NotFound(errors.PhaseSequence, "no element with matching identity")
	}

	for n := a.list.Front(); n != nil; n = n.Next() {
		if n == target {
			a.destroyNode(n)
			return nil
		}
	}

	return errors.NotFound(errors.PhaseSequence, "no element with matching identity")
}

// Pop unlinks and destroys the element at the resolved index, defaulting to
// the last. On a non-empty list an out-of-range index is clamped to the
// nearest valid one rather than rejected; only an empty list is an error.
func (a *Adapter) Pop(index ...int) error {
	length := a.list.Len()
	if length == 0 {
		idx := -1
		if len(index) > 0 {
			idx = index[0]
		}
		return errors.OutOfBounds(errors.PhaseSequence, idx, 0)
	}

	idx := length - 1
	if len(index) > 0 {
		idx = a.resolveIndex(index[0])
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= length {
		idx = length - 1
	}

	a.destroyNode(a.list.At(idx))
	Logger().Debug("pop", zap.Int("index", idx), zap.Int("len", a.list.Len()))
	return nil
}

// Clear destroys every node in order, releasing owned storage per element.
func (a *Adapter) Clear() {
	for a.list.Front() != nil {
		a.destroyNode(a.list.Front())
	}
	Logger().Debug("clear")
}

// destroyNode is the single teardown path: wrappers aliasing the node go
// stale before the node is unlinked and its owned storage released.
func (a *Adapter) destroyNode(n *nlist.Node) {
	if a.wrappers != nil {
		a.wrappers.InvalidateNode(n)
	}
	v := a.list.Remove(n)
	a.m.ReleaseNative(a.elem, v)
}
