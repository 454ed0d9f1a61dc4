// Package errors provides structured error handling for the retained UI core.
//
// Recoverable failures (host dialogs, mismatched payloads, unrouted commands)
// are described by [UIError] and either returned to the caller or sent to the
// global [ErrorHandler] through [Report]. Tree-invariant violations are
// programmer errors: the core panics with a [*TreeError] instead of trying to
// continue on a corrupted tree.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a host window or OS failure, such as a cancelled dialog.
	KindPlatform
	// KindDispatch indicates a payload that did not match the receiver's expected type.
	KindDispatch
	// KindCommand indicates a host command that nothing was registered to receive.
	KindCommand
	// KindTree indicates a violated tree invariant.
	KindTree
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindDispatch:
		return "dispatch"
	case KindCommand:
		return "command"
	case KindTree:
		return "tree"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrNoCommandListener is reported when a host command arrives and no
	// command listener is registered.
	ErrNoCommandListener = stderrors.New("command received but no handler")

	// ErrReentrant is the panic value used when UI state is entered while it is
	// already borrowed by another callback.
	ErrReentrant = stderrors.New("ui state already borrowed")
)

// UIError represents a structured, recoverable error.
type UIError struct {
	// Op is the operation that failed (e.g., "core.ListenerCtx.FileDialog").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *UIError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "termhost.Run").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// TypeMismatchError describes a payload whose dynamic type differs from the
// type a listener or widget expected.
type TypeMismatchError struct {
	// Want is the expected type name.
	Want string
	// Got is the payload that was delivered.
	Got any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch in listener arg: want %s, got %T", e.Want, e.Got)
}

// TreeError describes a violated tree invariant. It is used as a panic value.
type TreeError struct {
	// Op is the graph operation that detected the violation.
	Op string
	// ID is the offending node handle.
	ID int
	// Reason explains the violation.
	Reason string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("%s: node %d: %s", e.Op, e.ID, e.Reason)
}

// ErrorHandler receives errors reported by the UI core.
type ErrorHandler interface {
	// HandleError is called when a recoverable error occurs.
	HandleError(err *UIError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
