package core

import (
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
)

// OffsetOf returns the absolute position of node: the sum of its own origin
// and the origins of all of its ancestors.
func (ui *Ui) OffsetOf(node graph.ID) graphics.Offset {
	var offset graphics.Offset
	for id := node; id.IsValid(); {
		offset = offset.Add(ui.c.geom[id].Origin())
		parent, ok := ui.graph.Parent(id)
		if !ok {
			break
		}
		id = parent
	}
	return offset
}

// AbsoluteRect returns the rectangle of node in absolute coordinates.
func (ui *Ui) AbsoluteRect(node graph.ID) graphics.Rect {
	return ui.c.geom[node].WithOrigin(ui.OffsetOf(node))
}
