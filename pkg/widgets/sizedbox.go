package widgets

import (
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
)

// SizedBox forces a fixed size, within the incoming constraints, on itself
// and its child.
type SizedBox struct {
	core.WidgetBase
	Width, Height float64
}

func (s *SizedBox) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *core.LayoutCtx) layout.Result {
	tight := layout.Tight(bc.Constrain(graphics.Size{Width: s.Width, Height: s.Height}))
	return s.WidgetBase.Layout(tight, children, size, ctx)
}
