package widgets

import (
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/platform"
)

// KeyPressed is sent to a KeyListener's listeners for every key press it
// receives while focused.
type KeyPressed struct {
	Event platform.KeyEvent
}

// KeyListener forwards key presses to its listeners. It takes keyboard focus
// when clicked and otherwise behaves like its single child.
type KeyListener struct {
	core.WidgetBase
}

func (k *KeyListener) Mouse(event *core.MouseEvent, ctx *core.HandlerCtx) bool {
	if event.IsPress() {
		ctx.SetFocused(true)
		ctx.Invalidate()
	}
	return false
}

func (k *KeyListener) KeyDown(event *platform.KeyEvent, ctx *core.HandlerCtx) bool {
	ctx.SendEvent(KeyPressed{Event: *event})
	return true
}
