// Package termhost runs a UI in a terminal. Each character cell stands for a
// CellWidth by CellHeight block of device pixels, which matches the advance
// and line height of the bitmap font used to measure text, so one glyph of a
// label occupies one cell.
package termhost

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/retained/pkg/platform"
)

// Cell size in device pixels.
const (
	CellWidth  = 7
	CellHeight = 13
)

// Window is the platform.WindowHandle of a terminal screen. Invalidate and
// Close only set flags; the host loop acts on them after each callback.
type Window struct {
	screen tcell.Screen
	dpi    float64
	idle   platform.IdleQueue

	dirty  bool
	closed bool
}

var _ platform.WindowHandle = (*Window)(nil)

// NewWindow wraps screen. Idle closures wake the event loop by posting an
// interrupt event. A non-positive dpi selects platform.BaseDPI.
func NewWindow(screen tcell.Screen, dpi float64) *Window {
	if dpi <= 0 {
		dpi = platform.BaseDPI
	}
	w := &Window{screen: screen, dpi: dpi, dirty: true}
	w.idle.Notify = func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
	return w
}

func (w *Window) Invalidate() { w.dirty = true }

func (w *Window) Close() { w.closed = true }

// FileDialog is not available in a terminal.
func (w *Window) FileDialog(platform.FileDialogType, platform.FileDialogOptions) (string, error) {
	return "", platform.ErrUnsupported
}

func (w *Window) DPI() float64 { return w.dpi }

func (w *Window) PixelsToPx(x, y int32) (float64, float64) {
	scale := platform.BaseDPI / w.dpi
	return float64(x) * scale, float64(y) * scale
}

func (w *Window) IdleHandle() platform.IdleHandle { return &w.idle }

// Closed reports whether a listener asked to close the window.
func (w *Window) Closed() bool { return w.closed }

// pixelSize returns the screen size in device pixels.
func (w *Window) pixelSize() (uint32, uint32) {
	cols, rows := w.screen.Size()
	return uint32(cols * CellWidth), uint32(rows * CellHeight)
}
