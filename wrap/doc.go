// Package wrap implements the identity handles that expose composite
// elements to host code without copying them.
//
// A Wrapper is an indexed handle into a slot table rather than a raw
// reference, so liveness is validated on every access: removing a node
// invalidates the handles aliasing it, and a stale wrapper answers false
// instead of dangling. Two wrappers reference "the same element" exactly
// when they resolve to the same slot storage.
package wrap
