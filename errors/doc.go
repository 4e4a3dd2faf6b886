// Package errors provides structured error types for the list-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/element type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseFromHost, errors.KindTypeMismatch).
//		Path("point", "x").
//		GoType("string").
//		ElemType("int32").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseFromHost, path, "string", "int32")
//	err := errors.OutOfBounds(errors.PhaseSequence, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
// The exported sentinels (ErrOutOfBounds, ErrNotFound, ...) match any error
// of the same Kind regardless of phase.
package errors
