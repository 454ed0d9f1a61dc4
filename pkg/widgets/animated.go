package widgets

import (
	"time"

	"github.com/go-drift/retained/pkg/animation"
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/rendering"
)

// FadeTo starts a FadeBox animation towards Color when poked into it.
type FadeTo struct {
	Color rendering.Color
}

// FadeFinished is sent to a FadeBox's listeners when an animation ends.
type FadeFinished struct {
	Color rendering.Color
}

// FadeBox is a ColorBox that animates color changes. Poke it with FadeTo to
// start a transition over Duration, eased with EaseInOut.
type FadeBox struct {
	ColorBox
	Duration time.Duration

	from, to rendering.Color
	progress animation.Progress
	running  bool
}

func (f *FadeBox) Poke(payload any, ctx *core.HandlerCtx) bool {
	fade, ok := payload.(FadeTo)
	if !ok {
		return f.ColorBox.Poke(payload, ctx)
	}
	f.from, f.to = f.Color, fade.Color
	f.progress = animation.Progress{Duration: f.Duration, Curve: animation.EaseInOut}
	f.running = true
	ctx.RequestAnimFrame()
	return true
}

func (f *FadeBox) AnimFrame(interval time.Duration, ctx *core.HandlerCtx) {
	if !f.running {
		return
	}
	t, done := f.progress.Advance(interval)
	f.Color = animation.LerpColor(f.from, f.to, t)
	ctx.Invalidate()
	if done {
		f.running = false
		ctx.SendEvent(FadeFinished{Color: f.Color})
		return
	}
	ctx.RequestAnimFrame()
}

// Animating reports whether a transition is in progress.
func (f *FadeBox) Animating() bool {
	return f.running
}
