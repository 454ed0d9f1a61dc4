package widgets

import (
	"math"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/rendering"
)

// ColorBox fills its rectangle with Color and paints its child on top. As a
// leaf it expands to the maximum constraints where they are bounded.
type ColorBox struct {
	core.WidgetBase
	Color rendering.Color
}

func (c *ColorBox) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *core.LayoutCtx) layout.Result {
	if len(children) > 0 {
		return c.WidgetBase.Layout(bc, children, size, ctx)
	}
	fill := bc.Max()
	if math.IsInf(fill.Width, 1) {
		fill.Width = bc.Min().Width
	}
	if math.IsInf(fill.Height, 1) {
		fill.Height = bc.Min().Height
	}
	return layout.SizeResult(fill)
}

func (c *ColorBox) Paint(ctx *core.PaintCtx, geom graphics.Rect) {
	ctx.Canvas.DrawRect(geom, rendering.FillPaint(c.Color))
}

// Poke accepts a rendering.Color and repaints with it.
func (c *ColorBox) Poke(payload any, ctx *core.HandlerCtx) bool {
	color, ok := payload.(rendering.Color)
	if !ok {
		return false
	}
	c.Color = color
	ctx.Invalidate()
	return true
}
