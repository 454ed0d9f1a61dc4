package testing

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/engine"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/platform"
	"github.com/go-drift/retained/pkg/rendering"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
)

// Tester drives an engine.UiMain connected to a FakeWindow. Frames are
// painted into a display list, and input is given in logical pixels and
// converted to device pixels using the window's DPI.
type Tester struct {
	tb       testing.TB
	window   *FakeWindow
	main     *engine.UiMain
	clock    *FakeClock
	size     graphics.Size
	recorder rendering.PictureRecorder
	last     *rendering.DisplayList
}

// NewTester connects state to a FakeWindow sized DefaultTestWidth by
// DefaultTestHeight and installs a FakeClock until the test ends.
func NewTester(tb testing.TB, state *core.UIState) *Tester {
	return NewTesterWithOptions(tb, state, engine.Options{}, &FakeWindow{})
}

// NewTesterWithOptions is NewTester with explicit engine options and window.
func NewTesterWithOptions(tb testing.TB, state *core.UIState, opts engine.Options, window *FakeWindow) *Tester {
	tb.Helper()
	t := &Tester{
		tb:     tb,
		window: window,
		main:   engine.New(state, opts),
		clock:  NewFakeClock(),
		last:   &rendering.DisplayList{},
	}
	tb.Cleanup(t.clock.Install())
	t.main.Connect(window)
	t.SetSize(graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight})
	return t
}

// Window returns the fake host window.
func (t *Tester) Window() *FakeWindow { return t.window }

// Main returns the window handler under test.
func (t *Tester) Main() *engine.UiMain { return t.main }

// Clock returns the animation clock.
func (t *Tester) Clock() *FakeClock { return t.clock }

// With runs fn with exclusive access to the UI state.
func (t *Tester) With(fn func(s *core.UIState)) {
	t.main.With(fn)
}

// SetSize resizes the surface to size logical pixels.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
	w, h := t.device(size.Width, size.Height)
	t.main.Size(uint32(w), uint32(h))
}

// Pump paints one frame and reports whether a widget asked for another.
func (t *Tester) Pump() bool {
	canvas := t.recorder.BeginRecording(t.size)
	keep := t.main.Paint(canvas)
	t.last = t.recorder.EndRecording()
	return keep
}

// PumpFrames paints frames, advancing the clock by step between them, until
// no widget asks for another frame or limit frames have been painted. It
// returns the number of frames painted.
func (t *Tester) PumpFrames(step time.Duration, limit int) int {
	n := 0
	for n < limit {
		n++
		if !t.Pump() {
			break
		}
		t.clock.Advance(step)
	}
	return n
}

// DisplayList returns what the last Pump painted.
func (t *Tester) DisplayList() *rendering.DisplayList {
	return t.last
}

// MoveTo moves the pointer to (x, y).
func (t *Tester) MoveTo(x, y float64) {
	t.main.MouseMove(t.mouseEvent(x, y, 0))
}

// Press presses the left button at (x, y).
func (t *Tester) Press(x, y float64) {
	t.main.Mouse(t.mouseEvent(x, y, 1))
}

// Release releases the left button at (x, y).
func (t *Tester) Release(x, y float64) {
	t.main.Mouse(t.mouseEvent(x, y, 0))
}

// Click moves to (x, y), then presses and releases there.
func (t *Tester) Click(x, y float64) {
	t.MoveTo(x, y)
	t.Press(x, y)
	t.Release(x, y)
}

// ClickNode clicks the center of node's absolute rectangle as of the last
// layout.
func (t *Tester) ClickNode(node graph.ID) {
	var center graphics.Offset
	t.With(func(s *core.UIState) {
		center = s.AbsoluteRect(node).Center()
	})
	t.Click(center.X, center.Y)
}

// Key sends a key press and release and reports whether the press was
// handled.
func (t *Tester) Key(event platform.KeyEvent) bool {
	handled := t.main.KeyDown(event)
	t.main.KeyUp(event)
	return handled
}

// Type sends one KeyRune press per rune of text.
func (t *Tester) Type(text string) {
	for _, r := range text {
		t.Key(platform.KeyEvent{Key: platform.KeyRune, Text: string(r)})
	}
}

// Scroll sends a vertical wheel event.
func (t *Tester) Scroll(dy int32) {
	t.main.MouseWheel(dy, 0)
}

// Command sends a host command.
func (t *Tester) Command(id uint32) {
	t.main.Command(id)
}

// RunIdle runs closures submitted to the window's idle handle.
func (t *Tester) RunIdle() int {
	return t.window.Idle.Run(t.main)
}

func (t *Tester) device(x, y float64) (int32, int32) {
	scale := t.window.DPI() / platform.BaseDPI
	return int32(math.Round(x * scale)), int32(math.Round(y * scale))
}

func (t *Tester) mouseEvent(x, y float64, count uint8) *platform.MouseEvent {
	dx, dy := t.device(x, y)
	return &platform.MouseEvent{X: dx, Y: dy, Button: platform.ButtonLeft, Count: count}
}
