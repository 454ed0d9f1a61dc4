package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/platform"
)

// fakeWindow counts host requests and returns a scripted dialog result.
type fakeWindow struct {
	platform.NullWindow
	invalidations int
	closed        bool
	dialogPath    string
	dialogErr     error
}

func (w *fakeWindow) Invalidate() { w.invalidations++ }

func (w *fakeWindow) Close() { w.closed = true }

func (w *fakeWindow) FileDialog(platform.FileDialogType, platform.FileDialogOptions) (string, error) {
	return w.dialogPath, w.dialogErr
}

// spy records every callback it receives into a shared log.
type spy struct {
	WidgetBase
	name string
	log  *[]string

	handleMouse bool
	capture     bool
	handlePoke  bool
	sendOnPoke  bool
	handleKeys  bool

	mouse   []graphics.Offset
	moves   []graphics.Offset
	keys    int
	scrolls int
	pokes   []any
	removed []graph.ID
	frames  []time.Duration
	more    int
	painted []paintRecord
}

type paintRecord struct {
	rect                 graphics.Rect
	active, hot, focused bool
}

func (p *spy) record(format string, args ...any) {
	if p.log != nil {
		*p.log = append(*p.log, p.name+":"+fmt.Sprintf(format, args...))
	}
}

func (p *spy) Mouse(ev *MouseEvent, ctx *HandlerCtx) bool {
	p.mouse = append(p.mouse, ev.Pos)
	p.record("mouse")
	if p.capture {
		ctx.SetActive(ev.IsPress())
	}
	return p.handleMouse
}

func (p *spy) MouseMoved(pos graphics.Offset, ctx *HandlerCtx) {
	p.moves = append(p.moves, pos)
}

func (p *spy) KeyDown(ev *platform.KeyEvent, ctx *HandlerCtx) bool {
	p.keys++
	ctx.SendEvent(ev.Text)
	return p.handleKeys
}

func (p *spy) KeyUp(ev *platform.KeyEvent, ctx *HandlerCtx) {
	p.keys++
}

func (p *spy) Scroll(ev *ScrollEvent, ctx *HandlerCtx) {
	p.scrolls++
	ctx.SendEvent(ev.DY)
}

func (p *spy) Poke(payload any, ctx *HandlerCtx) bool {
	p.pokes = append(p.pokes, payload)
	p.record("poke")
	if p.sendOnPoke {
		ctx.SendEvent(payload)
	}
	return p.handlePoke
}

func (p *spy) AnimFrame(interval time.Duration, ctx *HandlerCtx) {
	p.frames = append(p.frames, interval)
	if p.more > 0 {
		p.more--
		ctx.RequestAnimFrame()
	}
}

func (p *spy) OnHotChanged(hot bool, ctx *HandlerCtx) {
	p.record("hot=%v", hot)
	if hot != ctx.IsHot() {
		p.record("inconsistent")
	}
}

func (p *spy) OnChildRemoved(child graph.ID) {
	p.removed = append(p.removed, child)
}

func (p *spy) Paint(ctx *PaintCtx, rect graphics.Rect) {
	p.painted = append(p.painted, paintRecord{rect, ctx.IsActive(), ctx.IsHot(), ctx.IsFocused()})
	p.record("paint")
}

// place positions each child at a preset rectangle and fills the maximum
// constraints itself.
type place struct {
	spy
	at map[graph.ID]graphics.Rect
	ix int
}

func (p *place) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *LayoutCtx) layout.Result {
	if size == nil {
		p.ix = 0
	} else {
		ctx.PositionChild(children[p.ix], p.at[children[p.ix]].Origin())
		p.ix++
	}
	if p.ix < len(children) {
		return layout.RequestChild(children[p.ix], layout.Tight(p.at[children[p.ix]].Size()))
	}
	return layout.SizeResult(bc.Max())
}

// halves stacks its children vertically, giving each the full width and an
// equal share of the height.
type halves struct {
	WidgetBase
	ix int
	y  float64
}

func (h *halves) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *LayoutCtx) layout.Result {
	if size == nil {
		h.ix, h.y = 0, 0
	} else {
		ctx.PositionChild(children[h.ix], graphics.Offset{Y: h.y})
		h.y += size.Height
		h.ix++
	}
	if h.ix < len(children) {
		full := bc.Max()
		share := graphics.Size{Width: full.Width, Height: full.Height / float64(len(children))}
		return layout.RequestChild(children[h.ix], layout.Tight(share))
	}
	return layout.SizeResult(bc.Max())
}

type recordingHandler struct {
	errs   []*errors.UIError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.UIError)    { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func captureErrors(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	prev := errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return h
}

// scene is a root place widget of 200x100 with two leaves:
// a at (10,10,50,50) and b at (100,10,50,50).
type scene struct {
	s      *UIState
	win    *fakeWindow
	log    []string
	root   *place
	a, b   *spy
	rootID graph.ID
	aID    graph.ID
	bID    graph.ID
}

func newScene(t *testing.T) *scene {
	t.Helper()
	sc := &scene{s: NewUIState(), win: &fakeWindow{}}
	sc.s.SetHandle(sc.win)
	sc.a = &spy{name: "a", log: &sc.log}
	sc.b = &spy{name: "b", log: &sc.log}
	sc.aID = sc.s.Add(sc.a)
	sc.bID = sc.s.Add(sc.b)
	sc.root = &place{spy: spy{name: "root", log: &sc.log}, at: map[graph.ID]graphics.Rect{
		sc.aID: graphics.RectFromLTWH(10, 10, 50, 50),
		sc.bID: graphics.RectFromLTWH(100, 10, 50, 50),
	}}
	sc.rootID = sc.s.Add(sc.root, sc.aID, sc.bID)
	sc.s.SetRoot(sc.rootID)
	sc.s.Layout(layout.Tight(graphics.Size{Width: 200, Height: 100}), sc.rootID)
	sc.log = nil
	return sc
}

func press(x, y float64) (graphics.Offset, *platform.MouseEvent) {
	return graphics.Offset{X: x, Y: y}, &platform.MouseEvent{X: int32(x), Y: int32(y), Count: 1}
}

func release(x, y float64) (graphics.Offset, *platform.MouseEvent) {
	return graphics.Offset{X: x, Y: y}, &platform.MouseEvent{X: int32(x), Y: int32(y)}
}
