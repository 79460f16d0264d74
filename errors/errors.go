package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBoundary Phase = "boundary" // containment wrapper
	PhaseDecode   Phase = "decode"   // host to native (borrowed arguments)
	PhaseEncode   Phase = "encode"   // native to host (owned results)
	PhasePlatform Phase = "platform" // OS integration
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseLoad     Phase = "load"     // native library loading
)

// Kind categorizes the error
type Kind string

const (
	KindExplicitFailure     Kind = "explicit_failure"
	KindAbnormalTermination Kind = "abnormal_termination"
	KindInvalidEncoding     Kind = "invalid_encoding"
	KindNullPointer         Kind = "null_pointer"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindNotFound            Kind = "not_found"
	KindInvalidInput        Kind = "invalid_input"
	KindUnsupported         Kind = "unsupported"
	KindNotInitialized      Kind = "not_initialized"
	KindBusy                Kind = "busy"
	KindAllocation          Kind = "allocation"
	KindPlatform            Kind = "platform"
)

// Error is the structured error type used throughout the adapter
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	CType  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return nilError
	}
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.CType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.CType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", C type ")
			b.WriteString(e.CType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("C type ")
			b.WriteString(e.CType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.CType != "" {
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

// nilError describes a nil *Error stored in a non-nil error interface.
const nilError = "nil *errors.Error returned as a failure"

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*Error); ok && t != nil {
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

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// CType sets the C type name
func (b *Builder) CType(t string) *Builder {
	b.err.CType = t
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

// InvalidUTF8 creates an invalid encoding error for text that failed to decode
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// NullPointer creates a null pointer error
func NullPointer(phase Phase, path []string, cType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullPointer,
		Path:   path,
		CType:  cType,
		Detail: "null pointer",
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NotFound creates a not found error for a named object
func NotFound(phase Phase, what string, id any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %v not found", what, id),
		Value:  id,
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

// NotInitialized creates an error for use of a component before setup
func NotInitialized(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: what + " not initialized",
	}
}

// Busy creates an error for an object that cannot be released while in use
func Busy(phase Phase, what string, id any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBusy,
		Detail: fmt.Sprintf("%s %v is in use", what, id),
		Value:  id,
	}
}

// Platform wraps a failure reported by an OS integration
func Platform(op string, cause error) *Error {
	return &Error{
		Phase:  PhasePlatform,
		Kind:   KindPlatform,
		Detail: op,
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

// PanicError carries a payload recovered from a panic inside a wrapped operation.
type PanicError struct {
	Payload any
	Stack   []byte
}

// Aborted is the message used when a panic carries no payload.
const Aborted = "operation aborted"

// NewPanicError builds a PanicError from a recovered value.
func NewPanicError(payload any, stack []byte) *PanicError {
	return &PanicError{Payload: payload, Stack: stack}
}

func (e *PanicError) Error() string {
	return "panic: " + e.Describe()
}

// Describe renders the payload, or Aborted when there is none. Payload
// methods are called through fmt, which reports a panicking Error or
// String method instead of propagating it.
func (e *PanicError) Describe() string {
	switch p := e.Payload.(type) {
	case nil:
		return Aborted
	case *runtime.PanicNilError:
		return Aborted
	case string:
		if p == "" {
			return Aborted
		}
		return p
	default:
		return fmt.Sprint(p)
	}
}

// Unwrap exposes an error payload to errors.Is/As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Payload.(error); ok {
		return err
	}
	return nil
}

// KindOf classifies an error for the exception log.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var pe *PanicError
	if stderrors.As(err, &pe) {
		return KindAbnormalTermination
	}
	var e *Error
	if stderrors.As(err, &e) && e != nil && e.Kind != "" {
		return e.Kind
	}
	return KindExplicitFailure
}

// IsAbnormal reports whether err came from a recovered panic.
func IsAbnormal(err error) bool {
	return KindOf(err) == KindAbnormalTermination
}
