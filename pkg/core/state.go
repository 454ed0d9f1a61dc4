package core

import (
	"time"

	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/platform"
)

// UIState is the entry point for all input. It adds the listener registry
// and the command listener to Ui, and drains the event queue after every
// entry point so no work carries over between host callbacks.
type UIState struct {
	Ui

	listeners       map[graph.ID][]Listener
	commandListener CommandListener
}

// NewUIState returns an empty UI with no root, attached to a NullWindow.
func NewUIState() *UIState {
	return &UIState{
		Ui:        newUi(),
		listeners: make(map[graph.ID][]Listener),
	}
}

// SetHandle attaches the host window and asks it for a first paint. A paint
// request made before the attach went to the previous handle and is
// discarded, so later invalidations reach the new window.
func (s *UIState) SetHandle(handle platform.WindowHandle) {
	if handle == nil {
		handle = platform.NullWindow{}
	}
	s.c.handle = handle
	if s.c.animState == AnimInvalidationRequested {
		s.c.animState = AnimIdle
	}
	s.c.invalidate()
}

// SetCommandListener installs the process-wide command listener.
func (s *UIState) SetCommandListener(fn CommandListener) {
	s.commandListener = fn
}

// ListenerCount returns how many listeners are registered on node.
func (s *UIState) ListenerCount(node graph.ID) int {
	return len(s.listeners[node])
}

// Mouse routes a button event at pos (logical pixels, window coordinates).
// A node holding the capture receives it exclusively; otherwise the tree is
// hit-tested from the root.
func (s *UIState) Mouse(pos graphics.Offset, raw *platform.MouseEvent) {
	if active := s.c.active; active.IsValid() {
		if w := s.Widget(active); w != nil {
			local := pos.Sub(s.OffsetOf(active))
			w.Mouse(s.mouseEvent(local, raw), s.handlerCtx(active))
		}
	} else if root := s.Root(); root.IsValid() {
		s.mouseHit(pos, raw, root)
	}
	s.DispatchEvents()
}

// mouseHit offers the event to node and then to its children front to back
// until one handles it. pos is in node's parent's coordinates.
func (s *UIState) mouseHit(pos graphics.Offset, raw *platform.MouseEvent, node graph.ID) bool {
	w := s.Widget(node)
	if w == nil {
		return false
	}
	geom := s.c.geom[node]
	local := pos.Sub(geom.Origin())
	if !geom.Contains(pos) {
		return false
	}
	handled := w.Mouse(s.mouseEvent(local, raw), s.handlerCtx(node))
	children := s.graph.Children(node)
	for i := len(children) - 1; i >= 0 && !handled; i-- {
		handled = s.mouseHit(local, raw, children[i])
	}
	return handled
}

func (s *UIState) mouseEvent(local graphics.Offset, raw *platform.MouseEvent) *MouseEvent {
	return &MouseEvent{Pos: local, Mods: raw.Mods, Button: raw.Button, Count: raw.Count}
}

// MouseMove updates the hot node and delivers motion. The hot node is found
// by descending from the root into the topmost child containing the
// pointer; a leaf reached this way becomes hot, while a container with no
// containing child leaves nothing hot.
func (s *UIState) MouseMove(pos graphics.Offset) {
	root := s.Root()
	if !root.IsValid() {
		return
	}
	hot := graph.None
	node := root
	local := pos
	for {
		local = local.Sub(s.c.geom[node].Origin())
		children := s.graph.Children(node)
		if len(children) == 0 {
			hot = node
			break
		}
		next := graph.None
		for i := len(children) - 1; i >= 0; i-- {
			if s.c.geom[children[i]].Contains(local) {
				next = children[i]
				break
			}
		}
		if !next.IsValid() {
			break
		}
		node = next
	}

	if hot != s.c.hot {
		old := s.c.hot
		s.c.hot = hot
		if w := s.Widget(old); w != nil {
			w.OnHotChanged(false, s.handlerCtx(old))
		}
		if w := s.Widget(hot); w != nil {
			w.OnHotChanged(true, s.handlerCtx(hot))
		}
	}

	if active := s.c.active; active.IsValid() {
		if w := s.Widget(active); w != nil {
			w.MouseMoved(pos.Sub(s.OffsetOf(active)), s.handlerCtx(active))
		}
	} else if w := s.Widget(hot); w != nil {
		w.MouseMoved(local, s.handlerCtx(hot))
	}
	s.DispatchEvents()
}

// KeyDown delivers a key press to the focused node and reports whether it
// was handled.
func (s *UIState) KeyDown(event *platform.KeyEvent) bool {
	handled := false
	if w := s.Widget(s.c.focused); w != nil {
		handled = w.KeyDown(event, s.handlerCtx(s.c.focused))
	}
	s.DispatchEvents()
	return handled
}

// KeyUp delivers a key release to the focused node.
func (s *UIState) KeyUp(event *platform.KeyEvent) {
	if w := s.Widget(s.c.focused); w != nil {
		w.KeyUp(event, s.handlerCtx(s.c.focused))
	}
	s.DispatchEvents()
}

// Scroll delivers a scroll to the hot node.
func (s *UIState) Scroll(event *ScrollEvent) {
	if w := s.Widget(s.c.hot); w != nil {
		w.Scroll(event, s.handlerCtx(s.c.hot))
	}
	s.DispatchEvents()
}

// Command delivers a host command to the command listener. Without one the
// command is reported and dropped.
func (s *UIState) Command(cmd uint32) {
	if s.commandListener != nil {
		s.commandListener(cmd, &ListenerCtx{Ui: &s.Ui, id: s.Root()})
	} else {
		errors.Report(&errors.UIError{
			Op:        "core.UIState.Command",
			Kind:      errors.KindCommand,
			Err:       errors.ErrNoCommandListener,
			Timestamp: time.Now(),
		})
	}
	s.DispatchEvents()
}

// PokeAndDispatch pokes node and drains the event queue. It is the entry
// point for work submitted from other goroutines through an idle handle.
func (s *UIState) PokeAndDispatch(node graph.ID, payload any) bool {
	handled := s.Poke(node, payload)
	s.DispatchEvents()
	return handled
}

// DispatchEvents drains the event queue until it stays empty. Listeners may
// queue more work, which is processed in later passes of the same call.
// There is no iteration bound: a listener that always re-queues work for
// itself keeps this loop running.
func (s *UIState) DispatchEvents() {
	for len(s.c.eventQ) > 0 {
		queue := s.c.eventQ
		s.c.eventQ = nil
		for _, item := range queue {
			switch item.kind {
			case itemEvent:
				for _, l := range s.listeners[item.id] {
					l(item.payload, &ListenerCtx{Ui: &s.Ui, id: item.id})
				}
			case itemAddListener:
				s.listeners[item.id] = append(s.listeners[item.id], item.listener)
			case itemClearListeners:
				delete(s.listeners, item.id)
			}
		}
	}
}

// AnimFrame runs the animation callbacks of every node that requested a
// frame, passing the time since the previous animation frame.
func (s *UIState) AnimFrame() {
	now, interval := s.c.frames.Start()
	s.c.animState = AnimFrameStart
	for i := range s.widgets {
		if !s.c.perWidget[i].animFrameRequested {
			continue
		}
		s.c.perWidget[i].animFrameRequested = false
		id := graph.ID(i)
		if w := s.widgets[i]; w != nil {
			w.AnimFrame(interval, s.handlerCtx(id))
		}
	}
	s.c.frames.Mark(now)
	s.DispatchEvents()
}

// FinishFrame ends a paint cycle. It reports true if a widget asked for
// another animation frame; otherwise the state returns to idle and the
// frame timer is reset so the next animation starts from a zero interval.
func (s *UIState) FinishFrame() bool {
	if s.c.animState == AnimFrameRequested {
		return true
	}
	s.c.animState = AnimIdle
	s.c.frames.Reset()
	return false
}

// ListenerCtx is passed to listeners. It gives full access to the tree and
// remembers which node the delivery was for.
type ListenerCtx struct {
	*Ui
	id graph.ID
}

// ID returns the node the payload was delivered to.
func (l *ListenerCtx) ID() graph.ID {
	return l.id
}

// PokeUp offers payload to each ancestor of the listener's node in turn,
// nearest first, and stops at the first that handles it. It reports false
// if no ancestor did.
func (l *ListenerCtx) PokeUp(payload any) bool {
	node := l.id
	for {
		parent, ok := l.graph.Parent(node)
		if !ok {
			return false
		}
		node = parent
		if l.Poke(node, payload) {
			return true
		}
	}
}

// Close asks the host to close the window.
func (l *ListenerCtx) Close() {
	l.c.handle.Close()
}

// FileDialog shows a modal file dialog. Host failures, including
// cancellation, are returned as a *errors.UIError wrapping the host error.
func (l *ListenerCtx) FileDialog(kind platform.FileDialogType, opts platform.FileDialogOptions) (string, error) {
	path, err := l.c.handle.FileDialog(kind, opts)
	if err != nil {
		return "", &errors.UIError{
			Op:        "core.ListenerCtx.FileDialog",
			Kind:      errors.KindPlatform,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
	return path, nil
}
