package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// handlerSlot boxes the handler so atomic.Pointer can hold an interface.
type handlerSlot struct {
	h ErrorHandler
}

var current atomic.Pointer[handlerSlot]

func init() {
	current.Store(&handlerSlot{h: &LogHandler{}})
}

// SetHandler installs h as the process-wide error handler and returns the
// one it replaced. Nil installs a LogHandler writing to stderr.
func SetHandler(h ErrorHandler) (prev ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerSlot{h: h}).h
}

// Handler returns the process-wide error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report sends err to the current handler, stamping it if Timestamp is zero.
func Report(err *UIError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic sends err to the current handler, stamping it if Timestamp is
// zero.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in the calling goroutine and lets it exit
// normally. It must be deferred directly:
//
//	go func() {
//	    defer errors.Recover("demo.clock")
//	    ...
//	}()
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r). Hosts use it to
// restore the terminal and re-panic.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
	})
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame, at most 32 frames deep.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteByte('\n')
	}
	return sb.String()
}
