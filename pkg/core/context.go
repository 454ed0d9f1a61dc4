package core

import (
	"github.com/go-drift/retained/pkg/animation"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/platform"
	"github.com/go-drift/retained/pkg/rendering"
)

// AnimState tracks where the UI is in the invalidate/paint cycle.
type AnimState int

const (
	// AnimIdle means no paint is pending.
	AnimIdle AnimState = iota
	// AnimInvalidationRequested means the host was asked to paint.
	AnimInvalidationRequested
	// AnimFrameStart means animation callbacks for a frame are running.
	AnimFrameStart
	// AnimFrameRequested means a widget asked for another frame during the
	// current one.
	AnimFrameRequested
)

func (s AnimState) String() string {
	switch s {
	case AnimIdle:
		return "idle"
	case AnimInvalidationRequested:
		return "invalidation-requested"
	case AnimFrameStart:
		return "anim-frame-start"
	case AnimFrameRequested:
		return "anim-frame-requested"
	default:
		return "unknown"
	}
}

type perWidgetState struct {
	animFrameRequested bool
}

// LayoutCtx is the per-node state shared by every widget callback: geometry,
// interaction singletons, the event queue, animation state and the host
// window handle. Layout steps receive it directly; other callbacks reach it
// through a HandlerCtx.
type LayoutCtx struct {
	handle    platform.WindowHandle
	geom      []graphics.Rect
	perWidget []perWidgetState

	animState AnimState
	frames    animation.FrameTimer

	eventQ []queueItem

	focused graph.ID
	active  graph.ID
	hot     graph.ID

	size graphics.Size
}

func newLayoutCtx() LayoutCtx {
	return LayoutCtx{
		handle:  platform.NullWindow{},
		focused: graph.None,
		active:  graph.None,
		hot:     graph.None,
	}
}

// PositionChild sets the origin of child within its parent.
func (c *LayoutCtx) PositionChild(child graph.ID, pos graphics.Offset) {
	c.geom[child] = c.geom[child].WithOrigin(pos)
}

// ChildSize returns the size most recently recorded for child.
func (c *LayoutCtx) ChildSize(child graph.ID) graphics.Size {
	return c.geom[child].Size()
}

// Handle returns the host window handle.
func (c *LayoutCtx) Handle() platform.WindowHandle {
	return c.handle
}

func (c *LayoutCtx) invalidate() {
	if c.animState == AnimIdle {
		c.handle.Invalidate()
		c.animState = AnimInvalidationRequested
	}
}

func (c *LayoutCtx) growTo(n int) {
	for len(c.geom) < n {
		c.geom = append(c.geom, graphics.Rect{})
		c.perWidget = append(c.perWidget, perWidgetState{})
	}
}

// HandlerCtx is passed to input, poke and animation callbacks. It identifies
// the node being called and gives access to the shared layout state.
type HandlerCtx struct {
	id graph.ID
	c  *LayoutCtx
}

// ID returns the node this context belongs to.
func (h *HandlerCtx) ID() graph.ID {
	return h.id
}

// Invalidate asks the host for a repaint.
func (h *HandlerCtx) Invalidate() {
	h.c.invalidate()
}

// RequestLayout asks for a layout pass. The whole tree is laid out on every
// paint, so this is the same as Invalidate.
func (h *HandlerCtx) RequestLayout() {
	h.c.invalidate()
}

// SendEvent queues payload for delivery to this node's listeners.
func (h *HandlerCtx) SendEvent(payload any) {
	h.c.eventQ = append(h.c.eventQ, queueItem{kind: itemEvent, id: h.id, payload: payload})
}

// SetActive captures the pointer for this node, or releases it if this
// node holds the capture.
func (h *HandlerCtx) SetActive(active bool) {
	switch {
	case active:
		h.c.active = h.id
	case h.c.active == h.id:
		h.c.active = graph.None
	}
}

// SetFocused makes this node the keyboard target, or gives up focus if it
// currently has it.
func (h *HandlerCtx) SetFocused(focused bool) {
	switch {
	case focused:
		h.c.focused = h.id
	case h.c.focused == h.id:
		h.c.focused = graph.None
	}
}

func (h *HandlerCtx) IsActive() bool {
	return h.c.active == h.id
}

// IsHot reports whether the pointer is over this node and no other node
// holds the capture.
func (h *HandlerCtx) IsHot() bool {
	return h.c.hot == h.id && (h.IsActive() || h.c.active == graph.None)
}

func (h *HandlerCtx) IsFocused() bool {
	return h.c.focused == h.id
}

// RequestAnimFrame asks for AnimFrame to be called on the next frame. The
// request is cleared before each call, so widgets re-request every frame
// they want to keep animating.
func (h *HandlerCtx) RequestAnimFrame() {
	h.c.perWidget[h.id].animFrameRequested = true
	switch h.c.animState {
	case AnimIdle:
		h.c.invalidate()
	case AnimFrameStart:
		h.c.animState = AnimFrameRequested
	}
}

// Geom returns the node's rectangle in its parent's coordinates.
func (h *HandlerCtx) Geom() graphics.Rect {
	return h.c.geom[h.id]
}

// PaintCtx is passed to Widget.Paint.
type PaintCtx struct {
	Canvas rendering.Canvas

	isActive  bool
	isHot     bool
	isFocused bool
}

// NewPaintCtx wraps a canvas for a paint pass.
func NewPaintCtx(canvas rendering.Canvas) *PaintCtx {
	return &PaintCtx{Canvas: canvas}
}

// IsActive reports whether the node being painted holds the pointer capture.
func (p *PaintCtx) IsActive() bool { return p.isActive }

// IsHot reports whether the pointer is over the node being painted and no
// other node holds the capture.
func (p *PaintCtx) IsHot() bool { return p.isHot }

// IsFocused reports whether the node being painted has keyboard focus.
func (p *PaintCtx) IsFocused() bool { return p.isFocused }
