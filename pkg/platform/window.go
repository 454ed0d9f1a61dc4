// Package platform defines the boundary between the UI core and the host
// window system: the capabilities a host window offers to the core, the
// callbacks the core implements for the host, and the raw input events
// that cross between them.
package platform

import "github.com/go-drift/retained/pkg/rendering"

// BaseDPI is the DPI at which one logical pixel equals one device pixel.
const BaseDPI = 96.0

// WindowHandle is the capability a host window exposes to the UI core.
type WindowHandle interface {
	// Invalidate asks the host to schedule a paint.
	Invalidate()
	// Close asks the host to close the window.
	Close()
	// FileDialog shows a modal file dialog and blocks until it is dismissed.
	// A cancelled dialog returns ErrDialogCancelled.
	FileDialog(kind FileDialogType, opts FileDialogOptions) (string, error)
	// DPI returns the window's current DPI.
	DPI() float64
	// PixelsToPx converts device pixels to logical pixels.
	PixelsToPx(x, y int32) (float64, float64)
	// IdleHandle returns the handle used to submit work from other
	// goroutines, or nil if the host has none.
	IdleHandle() IdleHandle
}

// IdleHandle submits closures to be run on the host thread. The closure
// receives the host's WinHandler.
type IdleHandle interface {
	AddIdle(fn func(handler any))
}

// WinHandler is the callback contract a host window drives. All methods are
// called on the host thread.
type WinHandler interface {
	Connect(handle WindowHandle)
	// Paint draws a frame and reports whether another animation frame is wanted.
	Paint(canvas rendering.Canvas) bool
	Command(id uint32)
	KeyDown(event KeyEvent) bool
	KeyUp(event KeyEvent)
	MouseWheel(delta int32, mods Modifiers)
	MouseHWheel(delta int32, mods Modifiers)
	MouseMove(event *MouseEvent)
	Mouse(event *MouseEvent)
	// Size reports the new client size in device pixels.
	Size(width, height uint32)
	Destroy()
}

// NullWindow is the handle used before a host connects. Every operation is a
// no-op and dialogs report cancellation.
type NullWindow struct{}

func (NullWindow) Invalidate() {}

func (NullWindow) Close() {}

func (NullWindow) FileDialog(FileDialogType, FileDialogOptions) (string, error) {
	return "", ErrDialogCancelled
}

func (NullWindow) DPI() float64 { return BaseDPI }

func (NullWindow) PixelsToPx(x, y int32) (float64, float64) {
	return float64(x), float64(y)
}

func (NullWindow) IdleHandle() IdleHandle { return nil }
