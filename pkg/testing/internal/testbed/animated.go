package testbed

import (
	"time"

	"github.com/go-drift/retained/pkg/animation"
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/rendering"
)

// Grow starts a GrowBox animation when poked into it.
type Grow struct{}

// GrowBox animates its width from From to To over Duration once poked with
// Grow. Frames counts the animation frames it received.
type GrowBox struct {
	core.WidgetBase
	Duration time.Duration
	From, To float64
	Height   float64

	Width  float64
	Frames int

	progress animation.Progress
	running  bool
}

func (g *GrowBox) Layout(bc layout.BoxConstraints, _ []graph.ID, _ *graphics.Size, _ *core.LayoutCtx) layout.Result {
	width := g.Width
	if !g.running && g.progress.Duration == 0 {
		width = g.From
	}
	return layout.SizeResult(bc.Constrain(graphics.Size{Width: width, Height: g.Height}))
}

func (g *GrowBox) Paint(ctx *core.PaintCtx, geom graphics.Rect) {
	ctx.Canvas.DrawRect(geom, rendering.FillPaint(rendering.ColorBlue))
}

func (g *GrowBox) Poke(payload any, ctx *core.HandlerCtx) bool {
	if _, ok := payload.(Grow); !ok {
		return false
	}
	g.progress = animation.Progress{Duration: g.Duration}
	g.Width = g.From
	g.running = true
	ctx.RequestAnimFrame()
	return true
}

func (g *GrowBox) AnimFrame(interval time.Duration, ctx *core.HandlerCtx) {
	if !g.running {
		return
	}
	g.Frames++
	t, done := g.progress.Advance(interval)
	g.Width = animation.LerpFloat64(g.From, g.To, t)
	if done {
		g.running = false
		return
	}
	ctx.RequestAnimFrame()
}

// Loosen lays out its first child with the minimum constraint removed.
type Loosen struct {
	core.WidgetBase
}

func (l *Loosen) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *core.LayoutCtx) layout.Result {
	if size == nil && len(children) > 0 {
		return layout.RequestChild(children[0], layout.Loose(bc.Max()))
	}
	if size != nil {
		ctx.PositionChild(children[0], graphics.Offset{})
	}
	return layout.SizeResult(bc.Max())
}
