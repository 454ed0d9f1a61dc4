package widgets

import (
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/rendering"
)

// DefaultTextColor is used when a Label's Color is zero.
const DefaultTextColor = rendering.Color(0xFFF8F8F2)

// Label displays a single line of text. Poking it with a string replaces the
// text and requests layout.
type Label struct {
	core.WidgetBase
	Text  string
	Color rendering.Color
}

func (l *Label) Layout(bc layout.BoxConstraints, _ []graph.ID, _ *graphics.Size, _ *core.LayoutCtx) layout.Result {
	return layout.SizeResult(bc.Constrain(rendering.MeasureText(l.Text)))
}

func (l *Label) Paint(ctx *core.PaintCtx, geom graphics.Rect) {
	ctx.Canvas.DrawText(l.Text, geom.Origin(), rendering.FillPaint(textColor(l.Color)))
}

func (l *Label) Poke(payload any, ctx *core.HandlerCtx) bool {
	text, ok := payload.(string)
	if !ok {
		return false
	}
	l.Text = text
	ctx.RequestLayout()
	return true
}

func textColor(c rendering.Color) rendering.Color {
	if c == 0 {
		return DefaultTextColor
	}
	return c
}
