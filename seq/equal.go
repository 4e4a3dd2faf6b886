package seq

import (
	"reflect"

	"github.com/wippyai/list-bridge/marshal"
	"github.com/wippyai/list-bridge/wrap"
)

// Equal reports structural equality against any sequence-shaped host value:
// another adapter, a []any, or any slice. Sequences are equal iff they have
// equal length and every pair of elements compares equal under host
// equality semantics. A non-sequence other compares unequal rather than
// erroring.
func (a *Adapter) Equal(other any) (bool, error) {
	theirs, ok := hostSequence(other)
	if !ok {
		return false, nil
	}

	if a.list.Len() != len(theirs) {
		return false, nil
	}

	mine, err := a.Snapshot()
	if err != nil {
		return false, err
	}

	for i := range mine {
		// composite elements compare by identity, not by handle value
		if wa, ok := mine[i].(*wrap.Wrapper); ok {
			wb, ok := theirs[i].(*wrap.Wrapper)
			if !ok || !wa.Same(wb) {
				return false, nil
			}
			continue
		}
		if !marshal.HostEqual(mine[i], theirs[i]) {
			return false, nil
		}
	}
	return true, nil
}

// NotEqual is the negation of Equal. The original protocol treats every
// ordering comparison as an inequality test; bind exposes that quirk
// through its compare hook.
func (a *Adapter) NotEqual(other any) (bool, error) {
	eq, err := a.Equal(other)
	return !eq, err
}

func hostSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case *Adapter:
		items, err := s.Snapshot()
		if err != nil {
			return nil, false
		}
		return items, true
	case []any:
		return s, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	// a []byte is a host string, not a host sequence
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
