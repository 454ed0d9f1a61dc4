package platform

import "errors"

// Sentinel errors for host window operations.
var (
	// ErrDialogCancelled is returned when the user dismisses a file dialog.
	ErrDialogCancelled = errors.New("platform: dialog cancelled")

	// ErrUnsupported is returned when the host cannot perform an operation,
	// such as showing a native dialog from a terminal.
	ErrUnsupported = errors.New("platform: operation not supported by host")
)
