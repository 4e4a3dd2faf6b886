package bind

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/list-bridge/errors"
	"github.com/wippyai/list-bridge/marshal"
	"github.com/wippyai/list-bridge/nlist"
	"github.com/wippyai/list-bridge/seq"
)

// Registry maps Go element types to their protocol bindings. Registration
// compiles the element type once; registering the same type again is a
// no-op that returns the existing bindings, so callers may register
// unconditionally on every code path that might be first.
type Registry struct {
	mu       sync.RWMutex
	compiler *marshal.Compiler
	types    map[reflect.Type]*Bindings
}

// NewRegistry returns an empty registry with its own type compiler.
func NewRegistry() *Registry {
	return &Registry{
		compiler: marshal.NewCompiler(),
		types:    make(map[reflect.Type]*Bindings),
	}
}

// Register compiles goType and installs its protocol bindings. A type that
// is already registered keeps its original bindings. Pointer-to-struct and
// struct register identically.
func (r *Registry) Register(goType reflect.Type) (*Bindings, error) {
	if goType == nil {
		return nil, errors.Registration(errors.PhaseBind, "<nil>", nil)
	}

	elem, err := r.compiler.Compile(goType)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.types[elem.GoType]; ok {
		return b, nil
	}

	b := newBindings(elem)
	r.types[elem.GoType] = b
	Logger().Debug("registered element type",
		zap.String("type", elem.GoType.String()),
		zap.String("kind", elem.Kind.String()))
	return b, nil
}

// Lookup returns the bindings for a registered type, nil if unregistered.
// Pointer-to-struct resolves to the struct's bindings.
func (r *Registry) Lookup(goType reflect.Type) *Bindings {
	if goType == nil {
		return nil
	}
	if goType.Kind() == reflect.Ptr && goType.Elem().Kind() == reflect.Struct {
		goType = goType.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[goType]
}

// Len reports how many element types are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Default is the process-wide registry used by Bind.
var Default = NewRegistry()

// Bind registers goType in the default registry if needed and returns an
// adapter exposing list as a sequence of that element type.
func Bind(list *nlist.List, goType reflect.Type) (*seq.Adapter, error) {
	b, err := Default.Register(goType)
	if err != nil {
		return nil, err
	}
	return b.NewAdapter(list), nil
}
