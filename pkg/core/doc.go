// Package core is the retained-mode UI engine: it owns a tree of widgets
// addressed by graph.ID, negotiates sizes through a resumable box-constraint
// layout protocol, routes input with hover, focus and capture semantics, and
// delivers application notifications through a deferred event queue.
//
// # Tree
//
// [Ui] owns the widget slots, the [graph.Graph] and the [LayoutCtx]. Nodes are
// created with [Ui.Add] and arranged with [Ui.AppendChild], [Ui.AddBefore],
// [Ui.RemoveChild] and [Ui.DeleteChild]. Deleting a subtree empties its slots
// and returns the IDs to the graph's free list for reuse.
//
// # Layout
//
// A widget's Layout is called repeatedly for the same node. The first call
// receives a nil size; each later call receives the size of the child it last
// asked for with [layout.RequestChild]. Returning [layout.SizeResult] ends the
// sequence:
//
//	func (c *column) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *core.LayoutCtx) layout.Result {
//	    next := 0
//	    if size != nil {
//	        // position the child that was just measured, then move on
//	        ...
//	    }
//	    if next < len(children) {
//	        return layout.RequestChild(children[next], childBC)
//	    }
//	    return layout.SizeResult(total)
//	}
//
// # Events
//
// Input enters through [UIState]. After every entry point the event queue is
// drained to a fixed point: deliveries queued with [HandlerCtx.SendEvent] run
// the listeners registered with [AddListener], which receive a [ListenerCtx]
// with full access to the tree.
//
// UIState is not safe for concurrent use. Hosts serialize access (see
// engine.UiMain) and submit cross-goroutine work through an idle handle.
package core
