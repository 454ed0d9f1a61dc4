// Package demo builds the sample tree shown by the retained CLI.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/engine"
	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/platform"
	"github.com/go-drift/retained/pkg/rendering"
	"github.com/go-drift/retained/pkg/widgets"
)

// Host commands understood by the demo. The terminal host sends F1 to F12
// as commands 1 to 12.
const (
	CmdReset uint32 = 1
	CmdOpen  uint32 = 2
	CmdQuit  uint32 = 10
)

// FadeDuration is the length of a swatch color transition.
const FadeDuration = 400 * time.Millisecond

var swatchColors = []rendering.Color{
	rendering.RGB(0xA6, 0xE2, 0x2E),
	rendering.RGB(0xF9, 0x26, 0x72),
	rendering.RGB(0x66, 0xD9, 0xEF),
	rendering.RGB(0xFD, 0x97, 0x1F),
}

// Demo holds the node IDs of the sample tree and the state its listeners
// share. Listeners run on the host thread, so the fields need no locking.
type Demo struct {
	Root      graph.ID
	Title     graph.ID
	Count     graph.ID
	Clock     graph.ID
	Typed     graph.ID
	KeyArea   graph.ID
	Swatch    graph.ID
	Status    graph.ID
	Increment graph.ID
	Reset     graph.ID
	Fade      graph.ID
	Quit      graph.ID

	count int
	typed string
	next  int
}

// Build adds the sample tree to state, sets it as the root and registers
// its listeners and the command listener.
func Build(state *core.UIState, title string) *Demo {
	d := &Demo{}

	d.Title = state.Add(&widgets.Label{Text: title, Color: rendering.RGB(0xE6, 0xDB, 0x74)})
	d.Increment = state.Add(&widgets.Button{Label: "+1"})
	d.Reset = state.Add(&widgets.Button{Label: "Reset"})
	d.Fade = state.Add(&widgets.Button{Label: "Fade"})
	d.Quit = state.Add(&widgets.Button{Label: "Quit"})
	buttons := state.Add(widgets.RowOf(7), d.Increment, d.Reset, d.Fade, d.Quit)
	d.Count = state.Add(&widgets.Label{Text: countText(0)})
	d.Clock = state.Add(&widgets.Label{Text: "--:--:--"})
	d.Typed = state.Add(&widgets.Label{Text: "click here and type"})
	d.KeyArea = state.Add(&widgets.KeyListener{}, d.Typed)
	d.Swatch = state.Add(&widgets.FadeBox{
		ColorBox: widgets.ColorBox{Color: swatchColors[0]},
		Duration: FadeDuration,
	})
	d.Status = state.Add(&widgets.Label{Text: "F1 reset, F2 open, F10 quit"})

	column := widgets.ColumnOf(13)
	col := state.Add(column, d.Title, buttons, d.Count, d.Clock, d.KeyArea, d.Swatch, d.Status)
	column.SetFlex(d.Swatch, 1)
	d.Root = state.Add(&widgets.Padding{Padding: layout.EdgeInsetsSymmetric(14, 13)}, col)
	state.SetRoot(d.Root)

	ui := &state.Ui
	core.AddListener(ui, d.Increment, func(_ widgets.Clicked, ctx *core.ListenerCtx) {
		d.count++
		ctx.Poke(d.Count, countText(d.count))
	})
	core.AddListener(ui, d.Reset, func(_ widgets.Clicked, ctx *core.ListenerCtx) {
		d.reset(ctx)
	})
	core.AddListener(ui, d.Fade, func(_ widgets.Clicked, ctx *core.ListenerCtx) {
		d.next = (d.next + 1) % len(swatchColors)
		ctx.Poke(d.Swatch, widgets.FadeTo{Color: swatchColors[d.next]})
	})
	core.AddListener(ui, d.Swatch, func(f widgets.FadeFinished, ctx *core.ListenerCtx) {
		ctx.Poke(d.Status, "faded to "+f.Color.String())
	})
	core.AddListener(ui, d.Quit, func(_ widgets.Clicked, ctx *core.ListenerCtx) {
		ctx.Close()
	})
	core.AddListener(ui, d.KeyArea, func(k widgets.KeyPressed, ctx *core.ListenerCtx) {
		d.key(k.Event, ctx)
	})
	state.SetCommandListener(d.command)
	return d
}

func (d *Demo) reset(ctx *core.ListenerCtx) {
	d.count = 0
	d.typed = ""
	ctx.Poke(d.Count, countText(0))
	ctx.Poke(d.Typed, "")
}

func (d *Demo) key(event platform.KeyEvent, ctx *core.ListenerCtx) {
	switch event.Key {
	case platform.KeyRune:
		d.typed += event.Text
	case platform.KeyBackspace:
		if r := []rune(d.typed); len(r) > 0 {
			d.typed = string(r[:len(r)-1])
		}
	case platform.KeyEscape:
		d.typed = ""
	default:
		return
	}
	ctx.Poke(d.Typed, d.typed)
}

func (d *Demo) command(cmd uint32, ctx *core.ListenerCtx) {
	switch cmd {
	case CmdReset:
		d.reset(ctx)
	case CmdOpen:
		path, err := ctx.FileDialog(platform.FileDialogOpen, platform.FileDialogOptions{})
		if err != nil {
			ctx.Poke(d.Status, "open: "+err.Error())
			return
		}
		ctx.Poke(d.Status, "opened "+path)
	case CmdQuit:
		ctx.Close()
	default:
		ctx.Poke(d.Status, fmt.Sprintf("unknown command %d", cmd))
	}
}

// RunClock pokes the current time into the clock label every interval until
// ctx is done. It runs on its own goroutine and reaches the UI only through
// engine.SendExt. A panic is reported and ends the clock, not the program.
func (d *Demo) RunClock(ctx context.Context, idle platform.IdleHandle, interval time.Duration) {
	defer errors.Recover("demo.RunClock")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			engine.SendExt(idle, d.Clock, now.Format(time.TimeOnly))
		}
	}
}

func countText(n int) string {
	return fmt.Sprintf("Count: %d", n)
}
