package testing

import (
	"github.com/go-drift/retained/pkg/platform"
)

// DialogCall records one FileDialog request.
type DialogCall struct {
	Kind    platform.FileDialogType
	Options platform.FileDialogOptions
}

// FakeWindow is an in-memory platform.WindowHandle. It counts paint
// requests, records dialog calls and queues idle closures until RunIdle.
type FakeWindow struct {
	// Idle holds closures submitted through IdleHandle.
	Idle platform.IdleQueue

	// Scale is the DPI; zero means platform.BaseDPI.
	Scale float64

	// DialogPath and DialogErr script the result of FileDialog. A path the
	// request's AllowedTypes reject is reported as ErrDialogCancelled.
	DialogPath string
	DialogErr  error

	Invalidations int
	Closed        bool
	Dialogs       []DialogCall
}

var _ platform.WindowHandle = (*FakeWindow)(nil)

func (w *FakeWindow) Invalidate() { w.Invalidations++ }

func (w *FakeWindow) Close() { w.Closed = true }

func (w *FakeWindow) FileDialog(kind platform.FileDialogType, opts platform.FileDialogOptions) (string, error) {
	w.Dialogs = append(w.Dialogs, DialogCall{Kind: kind, Options: opts})
	if w.DialogErr != nil {
		return "", w.DialogErr
	}
	if !opts.Allows(w.DialogPath) {
		return "", platform.ErrDialogCancelled
	}
	return w.DialogPath, nil
}

func (w *FakeWindow) DPI() float64 {
	if w.Scale == 0 {
		return platform.BaseDPI
	}
	return w.Scale
}

func (w *FakeWindow) PixelsToPx(x, y int32) (float64, float64) {
	scale := platform.BaseDPI / w.DPI()
	return float64(x) * scale, float64(y) * scale
}

func (w *FakeWindow) IdleHandle() platform.IdleHandle {
	return &w.Idle
}
