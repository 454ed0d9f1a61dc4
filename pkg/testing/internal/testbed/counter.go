// Package testbed provides small widgets for exercising the test harness.
package testbed

import (
	"strconv"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/rendering"
)

// Counted is sent to a Counter's listeners after every click.
type Counted struct {
	N int
}

// Reset sets a Counter back to zero when poked into it.
type Reset struct{}

// Counter is a leaf that fills its constraints, counts completed clicks and
// paints the count.
type Counter struct {
	core.WidgetBase
	N int
}

func (c *Counter) Layout(bc layout.BoxConstraints, _ []graph.ID, _ *graphics.Size, _ *core.LayoutCtx) layout.Result {
	return layout.SizeResult(bc.Max())
}

func (c *Counter) Paint(ctx *core.PaintCtx, geom graphics.Rect) {
	ctx.Canvas.DrawText(strconv.Itoa(c.N), geom.Origin(), rendering.FillPaint(rendering.ColorWhite))
}

func (c *Counter) Mouse(event *core.MouseEvent, ctx *core.HandlerCtx) bool {
	if event.IsPress() {
		return true
	}
	c.N++
	ctx.SendEvent(Counted{N: c.N})
	ctx.Invalidate()
	return true
}

func (c *Counter) Poke(payload any, ctx *core.HandlerCtx) bool {
	if _, ok := payload.(Reset); !ok {
		return false
	}
	c.N = 0
	ctx.Invalidate()
	return true
}
