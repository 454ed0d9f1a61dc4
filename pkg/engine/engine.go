// Package engine connects a core.UIState to a host window. UiMain implements
// platform.WinHandler: it converts device pixels to logical pixels, runs the
// animation, layout and paint passes for each frame, and guards the UI state
// so that no callback can enter it while another holds it.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/platform"
	"github.com/go-drift/retained/pkg/rendering"
)

// DefaultBackground is the color each frame is cleared to.
const DefaultBackground = rendering.Color(0xFF272822)

// Options configures a UiMain.
type Options struct {
	// Background is the clear color. Zero selects DefaultBackground.
	Background rendering.Color
	// OnDestroy is called when the host destroys the window.
	OnDestroy func()
	// Logger receives engine diagnostics. Nil selects slog.Default().
	Logger *slog.Logger
	// Trace, if set, records a sample for every painted frame.
	Trace *FrameTraceBuffer
}

// UiMain owns a UIState and adapts it to the host callback contract.
//
// Two locks guard the state. mu is only ever try-locked, by With on the host
// thread, to catch re-entry. access is a blocking lock taken by both With and
// Inspect, so readers on other goroutines wait for the current callback
// instead of failing.
type UiMain struct {
	mu     sync.Mutex
	access sync.Mutex
	state  *core.UIState
	handle platform.WindowHandle
	opts   Options
	logger *slog.Logger
}

var _ platform.WinHandler = (*UiMain)(nil)

// New wraps state. The state must not be used directly afterwards; use
// UiMain.With instead.
func New(state *core.UIState, opts Options) *UiMain {
	if opts.Background == 0 {
		opts.Background = DefaultBackground
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UiMain{
		state:  state,
		handle: platform.NullWindow{},
		opts:   opts,
		logger: logger,
	}
}

// With runs fn with exclusive access to the UI state. Calling With, or any
// WinHandler method, from inside fn panics with errors.ErrReentrant.
func (m *UiMain) With(fn func(s *core.UIState)) {
	if !m.mu.TryLock() {
		panic(errors.ErrReentrant)
	}
	defer m.mu.Unlock()
	m.access.Lock()
	defer m.access.Unlock()
	fn(m.state)
}

// Inspect runs fn with the UI state once no host callback holds it. It is
// meant for goroutines other than the host thread, such as the debug server,
// and blocks rather than panicking on contention. fn must only read the
// state. Calling Inspect from inside With deadlocks.
func (m *UiMain) Inspect(fn func(s *core.UIState)) {
	m.access.Lock()
	defer m.access.Unlock()
	fn(m.state)
}

// SendExt submits a poke of id with payload through idle. It may be called
// from any goroutine; the poke runs on the host thread and the event queue is
// drained afterwards.
func SendExt(idle platform.IdleHandle, id graph.ID, payload any) {
	idle.AddIdle(func(handler any) {
		m, ok := handler.(*UiMain)
		if !ok {
			errors.Report(&errors.UIError{
				Op:        "engine.SendExt",
				Kind:      errors.KindDispatch,
				Err:       &errors.TypeMismatchError{Want: "*engine.UiMain", Got: handler},
				Timestamp: time.Now(),
			})
			return
		}
		m.With(func(s *core.UIState) {
			s.PokeAndDispatch(id, payload)
		})
	})
}

// Connect attaches the host window, requests the first paint and registers
// listeners queued while the tree was built.
func (m *UiMain) Connect(handle platform.WindowHandle) {
	m.With(func(s *core.UIState) {
		m.handle = handle
		s.SetHandle(handle)
		s.DispatchEvents()
	})
	m.logger.Debug("window connected", "dpi", handle.DPI())
}

// Paint runs one frame: animation callbacks, clear, layout of the root under
// tight constraints equal to the surface size, then paint. It reports
// whether a widget asked for another animation frame.
func (m *UiMain) Paint(canvas rendering.Canvas) bool {
	var keep bool
	m.With(func(s *core.UIState) {
		var sample FrameSample
		sample.Start = time.Now()

		s.AnimFrame()
		sample.Phases.AnimFrame = time.Since(sample.Start)

		canvas.Clear(m.opts.Background)
		if root := s.Root(); root.IsValid() {
			t := time.Now()
			s.Layout(layout.Tight(s.Size()), root)
			sample.Phases.Layout = time.Since(t)

			t = time.Now()
			s.Paint(core.NewPaintCtx(canvas), root)
			sample.Phases.Paint = time.Since(t)
			s.Graph().Walk(root, func(graph.ID) { sample.Nodes++ })
		}
		keep = s.FinishFrame()

		if m.opts.Trace != nil {
			sample.Total = time.Since(sample.Start)
			sample.KeepAnimating = keep
			m.opts.Trace.Add(sample)
		}
	})
	return keep
}

func (m *UiMain) Command(id uint32) {
	m.With(func(s *core.UIState) { s.Command(id) })
}

func (m *UiMain) KeyDown(event platform.KeyEvent) bool {
	var handled bool
	m.With(func(s *core.UIState) { handled = s.KeyDown(&event) })
	return handled
}

func (m *UiMain) KeyUp(event platform.KeyEvent) {
	m.With(func(s *core.UIState) { s.KeyUp(&event) })
}

func (m *UiMain) MouseWheel(delta int32, mods platform.Modifiers) {
	m.With(func(s *core.UIState) {
		s.Scroll(&core.ScrollEvent{DY: float64(delta), Mods: mods})
	})
}

func (m *UiMain) MouseHWheel(delta int32, mods platform.Modifiers) {
	m.With(func(s *core.UIState) {
		s.Scroll(&core.ScrollEvent{DX: float64(delta), Mods: mods})
	})
}

func (m *UiMain) MouseMove(event *platform.MouseEvent) {
	m.With(func(s *core.UIState) {
		s.MouseMove(m.logical(event))
	})
}

func (m *UiMain) Mouse(event *platform.MouseEvent) {
	m.With(func(s *core.UIState) {
		s.Mouse(m.logical(event), event)
	})
}

// Size converts the device-pixel client size to logical pixels.
func (m *UiMain) Size(width, height uint32) {
	var size graphics.Size
	m.With(func(s *core.UIState) {
		scale := platform.BaseDPI / m.handle.DPI()
		size = graphics.Size{Width: float64(width) * scale, Height: float64(height) * scale}
		s.SetSize(size)
	})
	m.logger.Debug("window resized", "width", width, "height", height, "logical", size)
}

func (m *UiMain) Destroy() {
	m.logger.Debug("window destroyed")
	if m.opts.OnDestroy != nil {
		m.opts.OnDestroy()
	}
}

func (m *UiMain) logical(event *platform.MouseEvent) graphics.Offset {
	x, y := m.handle.PixelsToPx(event.X, event.Y)
	return graphics.Offset{X: x, Y: y}
}
