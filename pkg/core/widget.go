package core

import (
	"time"

	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/platform"
)

// Widget is the behavior stored at each node of the tree. Embed [WidgetBase]
// to inherit no-op defaults and override only what the widget needs.
type Widget interface {
	// Layout performs one step of the layout negotiation for this node.
	// size is nil on the first step and otherwise holds the size of the
	// child requested by the previous step.
	Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *LayoutCtx) layout.Result

	// Paint draws the widget. geom is the node's rectangle in absolute
	// coordinates.
	Paint(ctx *PaintCtx, geom graphics.Rect)

	// Mouse handles a button event in local coordinates and reports whether
	// it was handled.
	Mouse(event *MouseEvent, ctx *HandlerCtx) bool

	// MouseMoved receives pointer motion in local coordinates.
	MouseMoved(pos graphics.Offset, ctx *HandlerCtx)

	KeyDown(event *platform.KeyEvent, ctx *HandlerCtx) bool
	KeyUp(event *platform.KeyEvent, ctx *HandlerCtx)
	Scroll(event *ScrollEvent, ctx *HandlerCtx)

	// Poke delivers an arbitrary payload and reports whether the widget
	// understood it.
	Poke(payload any, ctx *HandlerCtx) bool

	// AnimFrame is called once per requested animation frame with the time
	// since the previous animation frame, zero on the first.
	AnimFrame(interval time.Duration, ctx *HandlerCtx)

	// OnHotChanged is called when the pointer enters or leaves the widget.
	OnHotChanged(hot bool, ctx *HandlerCtx)

	// OnChildRemoved is called after child is detached from this node.
	OnChildRemoved(child graph.ID)
}

// MouseEvent is a pointer button event delivered to a widget.
type MouseEvent struct {
	// Pos is the pointer position in the receiving widget's coordinates.
	Pos    graphics.Offset
	Mods   platform.Modifiers
	Button platform.MouseButton
	// Count is the click count for a press; zero means release.
	Count uint8
}

// IsPress reports whether the event is a button press.
func (e *MouseEvent) IsPress() bool {
	return e.Count > 0
}

// ScrollEvent is a wheel or trackpad scroll in logical pixels.
type ScrollEvent struct {
	DX, DY float64
	Mods   platform.Modifiers
}

// WidgetBase provides default implementations of every Widget method.
type WidgetBase struct{}

// Layout sizes a leaf to the minimum constraint. A node with children passes
// the constraints to its first child, places it at the origin and adopts
// its size.
func (WidgetBase) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *LayoutCtx) layout.Result {
	if size != nil {
		ctx.PositionChild(children[0], graphics.Offset{})
		return layout.SizeResult(*size)
	}
	if len(children) == 0 {
		return layout.SizeResult(bc.Min())
	}
	return layout.RequestChild(children[0], bc)
}

func (WidgetBase) Paint(*PaintCtx, graphics.Rect) {}

func (WidgetBase) Mouse(*MouseEvent, *HandlerCtx) bool { return false }

func (WidgetBase) MouseMoved(graphics.Offset, *HandlerCtx) {}

func (WidgetBase) KeyDown(*platform.KeyEvent, *HandlerCtx) bool { return false }

func (WidgetBase) KeyUp(*platform.KeyEvent, *HandlerCtx) {}

func (WidgetBase) Scroll(*ScrollEvent, *HandlerCtx) {}

func (WidgetBase) Poke(any, *HandlerCtx) bool { return false }

func (WidgetBase) AnimFrame(time.Duration, *HandlerCtx) {}

func (WidgetBase) OnHotChanged(bool, *HandlerCtx) {}

func (WidgetBase) OnChildRemoved(graph.ID) {}
