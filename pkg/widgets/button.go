package widgets

import (
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/rendering"
)

// Clicked is sent to a Button's listeners when it is pressed and released
// while the pointer is over it.
type Clicked struct {
	Button graph.ID
}

// Button colors used when the corresponding field is zero.
const (
	DefaultButtonColor   = rendering.Color(0xFF3E3D32)
	DefaultButtonHot     = rendering.Color(0xFF49483E)
	DefaultButtonPressed = rendering.Color(0xFF75715E)
)

// buttonPadding is the space between the label and the button edge.
var buttonPadding = layout.EdgeInsetsSymmetric(8, 4)

// Button is a clickable label. A press captures the pointer; releasing over
// the button sends Clicked. Poking it with a string replaces the label.
type Button struct {
	core.WidgetBase
	Label     string
	Color     rendering.Color
	TextColor rendering.Color
}

func (b *Button) Layout(bc layout.BoxConstraints, _ []graph.ID, _ *graphics.Size, _ *core.LayoutCtx) layout.Result {
	text := rendering.MeasureText(b.Label)
	return layout.SizeResult(bc.Constrain(graphics.Size{
		Width:  text.Width + buttonPadding.Horizontal(),
		Height: text.Height + buttonPadding.Vertical(),
	}))
}

func (b *Button) Paint(ctx *core.PaintCtx, geom graphics.Rect) {
	bg := b.Color
	if bg == 0 {
		bg = DefaultButtonColor
	}
	switch {
	case ctx.IsActive() && ctx.IsHot():
		bg = DefaultButtonPressed
	case ctx.IsHot():
		bg = DefaultButtonHot
	}
	ctx.Canvas.DrawRect(geom, rendering.FillPaint(bg))
	if ctx.IsFocused() {
		ctx.Canvas.DrawRect(geom, rendering.StrokePaint(textColor(b.TextColor), 1))
	}
	origin := geom.Origin().Add(graphics.Offset{X: buttonPadding.Left, Y: buttonPadding.Top})
	ctx.Canvas.DrawText(b.Label, origin, rendering.FillPaint(textColor(b.TextColor)))
}

func (b *Button) Mouse(event *core.MouseEvent, ctx *core.HandlerCtx) bool {
	if event.IsPress() {
		ctx.SetActive(true)
	} else {
		if ctx.IsActive() && ctx.IsHot() {
			ctx.SendEvent(Clicked{Button: ctx.ID()})
		}
		ctx.SetActive(false)
	}
	ctx.Invalidate()
	return true
}

func (b *Button) OnHotChanged(_ bool, ctx *core.HandlerCtx) {
	ctx.Invalidate()
}

func (b *Button) Poke(payload any, ctx *core.HandlerCtx) bool {
	label, ok := payload.(string)
	if !ok {
		return false
	}
	b.Label = label
	ctx.RequestLayout()
	return true
}
