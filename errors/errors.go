package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which lifecycle step produced the error
type Phase string

const (
	PhaseConstruct Phase = "construct" // block allocation
	PhaseAccess    Phase = "access"    // dereference of a handle
	PhaseRetain    Phase = "retain"    // count increment
	PhaseRelease   Phase = "release"   // count decrement
	PhaseDestroy   Phase = "destroy"   // block teardown and finalizer
	PhaseScript    Phase = "script"    // demo session commands
)

// Kind categorizes the error
type Kind string

const (
	KindNullDereference Kind = "null_dereference"
	KindInvalidInput    Kind = "invalid_input"
	KindOverRelease     Kind = "over_release"
	KindReleased        Kind = "released"
	KindDoubleDestroy   Kind = "double_destroy"
	KindStillReferenced Kind = "still_referenced"
	KindDestroyFailed   Kind = "destroy_failed"
	KindNotFound        Kind = "not_found"
	KindInvalidData     Kind = "invalid_data"
	KindUnsupported     Kind = "unsupported"
	KindInterrupted     Kind = "interrupted"
)

// ErrNullDereference matches every null dereference error via errors.Is.
var ErrNullDereference = &Error{Phase: PhaseAccess, Kind: KindNullDereference}

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Handle string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Handle != "" {
		b.WriteString(" at ")
		b.WriteString(e.Handle)
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Handle sets the handle name
func (b *Builder) Handle(name string) *Builder {
	b.err.Handle = name
	return b
}

// Type sets the Go type name of the shared value
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NullDereference creates the error returned when an empty handle is dereferenced.
// handle is the handle's diagnostic name and may be empty.
func NullDereference(typeName, handle string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindNullDereference,
		Type:   typeName,
		Handle: handle,
		Detail: "dereference of empty handle",
	}
}

// NilResource creates the error used when a block is constructed from a nil pointer
func NilResource(typeName string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindInvalidInput,
		Type:   typeName,
		Detail: "nil resource",
	}
}

// OverRelease creates the error used when a block is released past zero
func OverRelease(typeName string, block uint64) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindOverRelease,
		Type:   typeName,
		Detail: fmt.Sprintf("block %d released too often", block),
		Value:  block,
	}
}

// RetainReleased creates the error used when a dead block is retained
func RetainReleased(typeName string, block uint64) *Error {
	return &Error{
		Phase:  PhaseRetain,
		Kind:   KindReleased,
		Type:   typeName,
		Detail: fmt.Sprintf("retaining released block %d", block),
		Value:  block,
	}
}

// DoubleDestroy creates the error returned when a block is destroyed twice
func DoubleDestroy(typeName string, block uint64) *Error {
	return &Error{
		Phase:  PhaseDestroy,
		Kind:   KindDoubleDestroy,
		Type:   typeName,
		Detail: fmt.Sprintf("block %d already destroyed", block),
		Value:  block,
	}
}

// StillReferenced creates the error returned when a referenced block is destroyed
func StillReferenced(typeName string, block uint64, count uint32) *Error {
	return &Error{
		Phase:  PhaseDestroy,
		Kind:   KindStillReferenced,
		Type:   typeName,
		Detail: fmt.Sprintf("block %d still has %d reference(s)", block, count),
		Value:  count,
	}
}

// DestroyFailed wraps an error returned by a value's finalizer
func DestroyFailed(typeName string, cause error) *Error {
	return &Error{
		Phase:  PhaseDestroy,
		Kind:   KindDestroyFailed,
		Type:   typeName,
		Detail: "finalizer failed",
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Interrupted creates the error returned when a run stops on an exit signal
func Interrupted(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInterrupted,
		Detail: "interrupted",
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseScript,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
