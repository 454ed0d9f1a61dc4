package widgets

import (
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
)

// Padding adds empty space around its child. Without a child it is an empty
// box of the padding size.
type Padding struct {
	core.WidgetBase
	Padding layout.EdgeInsets
}

func (p *Padding) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *core.LayoutCtx) layout.Result {
	h, v := p.Padding.Horizontal(), p.Padding.Vertical()
	if len(children) == 0 {
		return layout.SizeResult(bc.Constrain(graphics.Size{Width: h, Height: v}))
	}
	if size == nil {
		return layout.RequestChild(children[0], bc.Deflate(h, v))
	}
	ctx.PositionChild(children[0], graphics.Offset{X: p.Padding.Left, Y: p.Padding.Top})
	return layout.SizeResult(bc.Constrain(graphics.Size{Width: size.Width + h, Height: size.Height + v}))
}
