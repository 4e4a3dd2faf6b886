// Package marshal converts element values between their native typed
// representation and the host runtime's dynamic value domain.
//
// Dispatch is keyed on the static category of the element type, compiled
// once per Go type into an ElemType descriptor:
//
//   - bool: host booleans out; any host value truthiness-coerced in
//   - int/uint/float: widened to int64/uint64/float64 out; any numeric host
//     representation accepted in, with exactness and range checks
//   - bytes: each direction makes an independent owned copy; native storage
//     is always []byte, host representation a UTF-8 string
//   - struct: never copied outward (the sequence layer wraps them); host
//     field maps or same-typed values copied in, one nesting level only
//   - enum: native tag to host tag-name string, reverse unsupported
//
// Owned byte-string copies are charged against the Allocator supplied at
// construction and returned through ReleaseNative when the owning node dies.
package marshal
