// Package wasmhost publishes sequence adapters to WebAssembly guests.
//
// A Host instantiates the wippy:list/sequence interface into a wazero
// runtime. Guests address published sequences by integer handle and speak a
// flat errno protocol: every function's last result is an error code, 0 on
// success. The wire carries 64-bit integers, so the module is intended for
// integer-element sequences; reading any other element kind reports a type
// error at the boundary.
package wasmhost
