package core

import (
	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
)

// Ui owns the widget slots, the tree shape and the shared layout state.
// A nil slot marks a deleted node whose ID is waiting for reuse.
type Ui struct {
	widgets []Widget
	graph   *graph.Graph
	c       LayoutCtx
}

func newUi() Ui {
	return Ui{graph: graph.New(), c: newLayoutCtx()}
}

// Add inserts widget as a new node with the given children and returns its
// ID. A reused ID starts with empty geometry and no animation request.
func (ui *Ui) Add(widget Widget, children ...graph.ID) graph.ID {
	if widget == nil {
		panic(&errors.TreeError{Op: "core.Add", ID: int(graph.None), Reason: "nil widget"})
	}
	id := ui.graph.AllocNode()
	if int(id) < len(ui.widgets) {
		ui.widgets[id] = widget
		ui.c.geom[id] = graphics.Rect{}
		ui.c.perWidget[id] = perWidgetState{}
	} else {
		ui.widgets = append(ui.widgets, widget)
		ui.c.growTo(len(ui.widgets))
	}
	for _, child := range children {
		ui.graph.AppendChild(id, child)
	}
	return id
}

// SetRoot makes id the root of the tree.
func (ui *Ui) SetRoot(id graph.ID) {
	ui.graph.SetRoot(id)
	ui.c.invalidate()
}

// Root returns the root node, or graph.None.
func (ui *Ui) Root() graph.ID {
	return ui.graph.Root()
}

// Graph exposes the tree shape for inspection. Mutate the tree through Ui so
// widgets are notified and layout is requested.
func (ui *Ui) Graph() *graph.Graph {
	return ui.graph
}

// Widget returns the widget at id, or nil for a vacant slot.
func (ui *Ui) Widget(id graph.ID) Widget {
	if id < 0 || int(id) >= len(ui.widgets) {
		return nil
	}
	return ui.widgets[id]
}

// IsVacant reports whether id has no widget, either because it was deleted
// or was never allocated.
func (ui *Ui) IsVacant(id graph.ID) bool {
	return ui.Widget(id) == nil
}

// SetFocus moves keyboard focus to id. graph.None clears it.
func (ui *Ui) SetFocus(id graph.ID) {
	ui.c.focused = id
}

// Focused, Active and Hot return the interaction singletons.
func (ui *Ui) Focused() graph.ID { return ui.c.focused }

func (ui *Ui) Active() graph.ID { return ui.c.active }

func (ui *Ui) Hot() graph.ID { return ui.c.hot }

// Geom returns the rectangle of id in its parent's coordinates.
func (ui *Ui) Geom(id graph.ID) graphics.Rect {
	return ui.c.geom[id]
}

// Size returns the logical size of the paint surface.
func (ui *Ui) Size() graphics.Size {
	return ui.c.size
}

// SetSize records the logical size of the paint surface and requests layout.
func (ui *Ui) SetSize(size graphics.Size) {
	ui.c.size = size
	ui.c.invalidate()
}

// AnimState returns the current animation scheduling state.
func (ui *Ui) AnimState() AnimState {
	return ui.c.animState
}

// PendingEvents returns the number of items waiting in the event queue.
func (ui *Ui) PendingEvents() int {
	return len(ui.c.eventQ)
}

// Poke delivers payload to the widget at node synchronously and reports
// whether it was handled. Vacant slots report false.
func (ui *Ui) Poke(node graph.ID, payload any) bool {
	w := ui.Widget(node)
	if w == nil {
		return false
	}
	return w.Poke(payload, ui.handlerCtx(node))
}

// AddListenerFunc queues registration of fn on node. See AddListener for a
// typed variant.
func (ui *Ui) AddListenerFunc(node graph.ID, fn Listener) {
	ui.c.eventQ = append(ui.c.eventQ, queueItem{kind: itemAddListener, id: node, listener: fn})
}

// AppendChild adds child as the last (topmost) child of node.
func (ui *Ui) AppendChild(node, child graph.ID) {
	ui.graph.AppendChild(node, child)
	ui.c.invalidate()
}

// AddBefore inserts child into node's children just before sibling.
func (ui *Ui) AddBefore(node, sibling, child graph.ID) {
	ui.graph.AddBefore(node, sibling, child)
	ui.c.invalidate()
}

// RemoveChild detaches child from node. The child keeps its ID, widget and
// listeners; reattach it or delete it.
func (ui *Ui) RemoveChild(node, child graph.ID) {
	ui.graph.RemoveChild(node, child)
	if w := ui.Widget(node); w != nil {
		w.OnChildRemoved(child)
	}
	ui.c.invalidate()
}

// DeleteChild removes child from node and deletes its whole subtree: every
// widget slot is emptied, listener removal is queued and the IDs return to
// the free list. Interaction state pointing into the subtree is cleared.
func (ui *Ui) DeleteChild(node, child graph.ID) {
	for _, held := range []*graph.ID{&ui.c.active, &ui.c.hot, &ui.c.focused} {
		if held.IsValid() && ui.graph.Contains(child, *held) {
			*held = graph.None
		}
	}
	ui.graph.Walk(child, func(id graph.ID) {
		ui.widgets[id] = nil
		ui.c.eventQ = append(ui.c.eventQ, queueItem{kind: itemClearListeners, id: id})
	})
	ui.RemoveChild(node, child)
	ui.graph.FreeSubtree(child)
}

// Layout runs the layout negotiation for root under bc. Every node's size is
// clamped to the constraints it was given.
func (ui *Ui) Layout(bc layout.BoxConstraints, root graph.ID) graphics.Size {
	return ui.layoutNode(bc, root)
}

func (ui *Ui) layoutNode(bc layout.BoxConstraints, node graph.ID) graphics.Size {
	w := ui.Widget(node)
	if w == nil {
		return bc.Min()
	}
	children := ui.graph.Children(node)
	var size *graphics.Size
	for {
		res := w.Layout(bc, children, size, &ui.c)
		if !res.IsRequest() {
			final := bc.Constrain(res.Size())
			ui.c.geom[node] = ui.c.geom[node].WithSize(final)
			return final
		}
		child, childBC := res.Child()
		if parent, ok := ui.graph.Parent(child); !ok || parent != node {
			panic(&errors.TreeError{Op: "core.Layout", ID: int(child), Reason: "requested node is not a child of " + node.String()})
		}
		childSize := ui.layoutNode(childBC, child)
		size = &childSize
	}
}

// Paint draws the subtree at root in pre-order, so children paint over
// their parents.
func (ui *Ui) Paint(ctx *PaintCtx, root graph.ID) {
	ui.paintNode(ctx, root, graphics.Offset{})
}

func (ui *Ui) paintNode(ctx *PaintCtx, node graph.ID, origin graphics.Offset) {
	w := ui.Widget(node)
	if w == nil {
		return
	}
	geom := ui.c.geom[node]
	abs := geom.WithOrigin(origin.Add(geom.Origin()))
	ctx.isActive = ui.c.active == node
	ctx.isHot = ui.c.hot == node && (ctx.isActive || ui.c.active == graph.None)
	ctx.isFocused = ui.c.focused == node
	w.Paint(ctx, abs)
	for _, child := range ui.graph.Children(node) {
		ui.paintNode(ctx, child, abs.Origin())
	}
}

func (ui *Ui) handlerCtx(id graph.ID) *HandlerCtx {
	return &HandlerCtx{id: id, c: &ui.c}
}
