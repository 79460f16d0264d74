// Package errors provides structured error types for the native adapter.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: argument path, Go/C type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidEncoding).
//		Path("window_set_title", "title").
//		CType("const char*").
//		Detail("title is not valid UTF-8").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NullPointer(errors.PhaseDecode, path, "const char*")
//	err := errors.NotFound(errors.PhasePlatform, "window", 7)
//
// Every error that reaches the containment wrapper is reduced to a Kind with
// KindOf. Recovered panics are carried by PanicError and always classify as
// KindAbnormalTermination; every other error is an explicit failure.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
