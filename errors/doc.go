// Package errors provides structured error types for the sharedptr library.
//
// Errors are categorized by Phase (which lifecycle step failed) and Kind (error category).
// The Error type carries context: the handle name, the Go type of the shared value,
// and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDestroy, errors.KindDestroyFailed).
//		Handle("conn").
//		Type("*net.TCPConn").
//		Cause(closeErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NullDereference("payload.Verbose", "A")
//	err := errors.NotFound(errors.PhaseScript, "handle", "B")
//
// All errors implement the standard error interface and support errors.Is/As.
// ErrNullDereference matches any dereference of an empty handle:
//
//	if errors.Is(err, errors.ErrNullDereference) { ... }
package errors
