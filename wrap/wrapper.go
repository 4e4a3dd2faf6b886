package wrap

import (
	"github.com/wippyai/list-bridge/nlist"
)

// Wrapper is the host-facing identity handle for one composite element. It
// carries no ownership: the node stays owned by its list, and the wrapper
// goes stale the moment the node is removed.
type Wrapper struct {
	table  *Table
	handle Handle
}

// NewWrapper binds a handle to its table.
func NewWrapper(t *Table, h Handle) *Wrapper {
	return &Wrapper{table: t, handle: h}
}

// Handle returns the wrapper's slot handle.
func (w *Wrapper) Handle() Handle { return w.handle }

// Node resolves the wrapper to its live node, or reports staleness.
func (w *Wrapper) Node() (*nlist.Node, bool) {
	if w == nil || w.table == nil {
		return nil, false
	}
	return w.table.Node(w.handle)
}

// Value returns the wrapped element's native storage, or false when the
// wrapper is stale.
func (w *Wrapper) Value() (any, bool) {
	n, ok := w.Node()
	if !ok {
		return nil, false
	}
	return n.Value(), true
}

// Same reports whether two wrappers reference the same element: both must be
// live and resolve to the same underlying storage.
func (w *Wrapper) Same(other *Wrapper) bool {
	a, okA := w.Node()
	b, okB := other.Node()
	return okA && okB && a == b
}
