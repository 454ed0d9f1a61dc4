package termhost

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/platform"
)

// DefaultFrameInterval paces animation frames.
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures a Host.
type Options struct {
	// DPI scales device pixels to logical pixels. Zero means platform.BaseDPI.
	DPI float64
	// FrameInterval is the delay between animation frames.
	FrameInterval time.Duration
	// Logger receives host diagnostics. Nil selects slog.Default().
	Logger *slog.Logger
}

// Host owns a terminal screen and feeds its events to a WinHandler.
// Terminals report no key releases, so every key press is followed by a
// synthetic KeyUp. Function keys F1 to F12 are sent as commands 1 to 12.
type Host struct {
	screen  tcell.Screen
	window  *Window
	handler platform.WinHandler
	opts    Options
	logger  *slog.Logger

	buttons  tcell.ButtonMask
	lastX    int
	lastY    int
	animate  bool
	quitting bool
}

// New prepares a host for an initialized screen. Call Run to connect the
// handler and start the loop.
func New(screen tcell.Screen, handler platform.WinHandler, opts Options) *Host {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		screen:  screen,
		window:  NewWindow(screen, opts.DPI),
		handler: handler,
		opts:    opts,
		logger:  logger,
		lastX:   -1,
		lastY:   -1,
	}
}

// Window returns the host's window handle.
func (h *Host) Window() *Window {
	return h.window
}

// Run connects the handler and processes events until ctx is done, a
// listener closes the window, or the user presses Ctrl+C. The handler's
// Destroy is called before Run returns. A panic restores the terminal
// before it is reported and re-raised.
func (h *Host) Run(ctx context.Context) error {
	defer errors.RecoverWithCallback("termhost.Run", func(r any) {
		h.screen.Fini()
		panic(r)
	})

	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.handler.Connect(h.window)
	h.resize()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	frame := time.NewTimer(0)
	defer frame.Stop()

	for !h.quitting && !h.window.Closed() {
		if h.window.dirty && !h.animate {
			h.paint()
			if h.animate {
				frame.Reset(h.opts.FrameInterval)
			}
		}
		select {
		case <-ctx.Done():
			h.quitting = true
		case ev, ok := <-events:
			if !ok {
				h.quitting = true
				break
			}
			h.Handle(ev)
		case <-frame.C:
			if h.animate {
				h.paint()
				if h.animate {
					frame.Reset(h.opts.FrameInterval)
				}
			}
		}
	}

	h.handler.Destroy()
	return ctx.Err()
}

// Handle translates one tcell event into handler calls.
func (h *Host) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.key(ev)
	case *tcell.EventMouse:
		h.mouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	case *tcell.EventInterrupt:
		n := h.window.idle.Run(h.handler)
		h.logger.Debug("ran idle closures", "count", n)
	}
}

func (h *Host) resize() {
	w, ht := h.window.pixelSize()
	h.handler.Size(w, ht)
	h.window.dirty = true
}

func (h *Host) paint() {
	h.window.dirty = false
	canvas := NewCanvas(h.screen, h.window.DPI()/platform.BaseDPI)
	h.animate = h.handler.Paint(canvas)
	h.screen.Show()
}

func (h *Host) key(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		h.quitting = true
		return
	}
	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		h.handler.Command(uint32(ev.Key()-tcell.KeyF1) + 1)
		return
	}
	event := platform.KeyEvent{Key: keyCode(ev.Key()), Mods: modifiers(ev.Modifiers())}
	if event.Key == platform.KeyRune {
		event.Text = string(ev.Rune())
	}
	h.handler.KeyDown(event)
	h.handler.KeyUp(event)
}

func (h *Host) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	mods := modifiers(ev.Modifiers())
	x, y := int32(col*CellWidth+CellWidth/2), int32(row*CellHeight+CellHeight/2)

	if col != h.lastX || row != h.lastY {
		h.lastX, h.lastY = col, row
		h.handler.MouseMove(&platform.MouseEvent{X: x, Y: y, Mods: mods})
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		h.handler.MouseWheel(-CellHeight, mods)
	case buttons&tcell.WheelDown != 0:
		h.handler.MouseWheel(CellHeight, mods)
	case buttons&tcell.WheelLeft != 0:
		h.handler.MouseHWheel(-CellWidth, mods)
	case buttons&tcell.WheelRight != 0:
		h.handler.MouseHWheel(CellWidth, mods)
	}

	for _, b := range []struct {
		mask   tcell.ButtonMask
		button platform.MouseButton
	}{
		{tcell.Button1, platform.ButtonLeft},
		{tcell.Button2, platform.ButtonRight},
		{tcell.Button3, platform.ButtonMiddle},
	} {
		was, is := h.buttons&b.mask != 0, buttons&b.mask != 0
		if was == is {
			continue
		}
		event := &platform.MouseEvent{X: x, Y: y, Mods: mods, Button: b.button}
		if is {
			event.Count = 1
		}
		h.handler.Mouse(event)
	}
	h.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
}

func modifiers(m tcell.ModMask) platform.Modifiers {
	var mods platform.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= platform.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= platform.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= platform.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= platform.ModMeta
	}
	return mods
}

var keyCodes = map[tcell.Key]platform.KeyCode{
	tcell.KeyRune:       platform.KeyRune,
	tcell.KeyEnter:      platform.KeyEnter,
	tcell.KeyEscape:     platform.KeyEscape,
	tcell.KeyTab:        platform.KeyTab,
	tcell.KeyBackspace:  platform.KeyBackspace,
	tcell.KeyBackspace2: platform.KeyBackspace,
	tcell.KeyDelete:     platform.KeyDelete,
	tcell.KeyLeft:       platform.KeyLeft,
	tcell.KeyRight:      platform.KeyRight,
	tcell.KeyUp:         platform.KeyUp,
	tcell.KeyDown:       platform.KeyDown,
	tcell.KeyHome:       platform.KeyHome,
	tcell.KeyEnd:        platform.KeyEnd,
	tcell.KeyPgUp:       platform.KeyPageUp,
	tcell.KeyPgDn:       platform.KeyPageDown,
}

func keyCode(k tcell.Key) platform.KeyCode {
	if code, ok := keyCodes[k]; ok {
		return code
	}
	return platform.KeyUnknown
}
