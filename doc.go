// Package listbridge exposes natively-owned linked lists as mutable
// sequences inside a dynamically-typed host environment.
//
// The native side of the bridge is a doubly-linked list (package nlist)
// holding elements of one statically-declared Go type. The host side is a
// dynamic value domain: host integers are int64/uint64, host floats float64,
// host strings string, host composites map[string]any or element wrappers.
// The bridge marshals values across that boundary in both directions and
// wires the host sequence protocol (length, indexed read, append, insert,
// remove, pop, clear, iterate, compare) onto list operations.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	listbridge/          Root package with the Allocator interface
//	├── nlist/           Doubly-linked native list and its nodes
//	├── marshal/         Element type descriptors and value marshalling
//	├── wrap/            Handle table and wrappers for composite elements
//	├── seq/             Sequence adapter combining list traversal and marshalling
//	├── bind/            Protocol binding tables and the process-wide registry
//	├── wasmhost/        wazero host module exposing sequences to WASM guests
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Bind an existing list and use it as a sequence:
//
//	list := nlist.New(listbridge.Unlimited())
//	ad, err := bind.Bind(list, reflect.TypeOf(int64(0)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = ad.Append(int64(1))
//	_ = ad.Append(int64(2))
//	v, _ := ad.Get(-1) // int64(2)
//	fmt.Println(v)
//
// # Element Categories
//
// The marshaller dispatches on the static category of the element type:
//
//   - Integers and floats: copied by value, widened to int64/uint64/float64
//   - Booleans: copied by value, host values truthiness-coerced on the way in
//   - Byte strings: each direction makes an independent owned copy
//   - Structs: never copied outward; exposed through identity wrappers
//   - Enums: native tag to host tag-name string, one direction only
//
// # Thread Safety
//
// An Adapter is NOT thread-safe and should be used by a single goroutine, or
// access must be synchronized. The binding registry and wrapper tables are
// safe for concurrent use.
//
// # Ownership
//
// The adapter borrows its list. The collaborator that built the list frees
// it, and the adapter must not be used after the list is gone. Composite
// wrappers are invalidated when their node is removed, so a stale wrapper
// fails its liveness check instead of dangling.
package listbridge
