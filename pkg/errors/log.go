package errors

import (
	"context"
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that writes structured records through slog.
type LogHandler struct {
	// Logger receives the records. Nil means a text logger on stderr.
	Logger *slog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

var stderrLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return stderrLogger
}

// HandleError logs a UIError. Dispatch and command errors are warnings since
// the UI keeps running; everything else is logged as an error.
func (h *LogHandler) HandleError(err *UIError) {
	if err == nil {
		return
	}
	level := slog.LevelError
	if err.Kind == KindDispatch || err.Kind == KindCommand {
		level = slog.LevelWarn
	}
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Log(context.Background(), level, "ui error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"value", err.Value}
	if err.Op != "" {
		attrs = append(attrs, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Error("ui panic", attrs...)
}
