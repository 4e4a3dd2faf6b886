// Package bind maps Go element types to the sequence protocol the host
// runtime speaks.
//
// A Registry compiles each element type once and installs a Bindings value:
// the named hooks (len, get-item, append, insert, remove, pop, clear,
// iterate, compare) the host dispatches through. Registration is
// idempotent, so every code path that might be the first to see a type can
// register it unconditionally.
//
// Most callers only need Bind, which uses the process-wide Default
// registry:
//
//	adapter, err := bind.Bind(list, reflect.TypeOf(int64(0)))
package bind
