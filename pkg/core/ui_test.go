package core

import (
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
	"github.com/go-drift/retained/pkg/rendering"
)

func TestStackedChildrenSplitHeight(t *testing.T) {
	s := NewUIState()
	top := s.Add(&spy{})
	bottom := s.Add(&spy{})
	root := s.Add(&halves{}, top, bottom)
	s.SetRoot(root)

	got := s.Layout(layout.Tight(graphics.Size{Width: 800, Height: 600}), root)

	if got != (graphics.Size{Width: 800, Height: 600}) {
		t.Errorf("root size = %v, want 800x600", got)
	}
	if g := s.Geom(top); g != graphics.RectFromLTWH(0, 0, 800, 300) {
		t.Errorf("top = %v, want (0,0,800,300)", g)
	}
	if g := s.Geom(bottom); g != graphics.RectFromLTWH(0, 300, 800, 300) {
		t.Errorf("bottom = %v, want (0,300,800,300)", g)
	}
}

// oversize always answers with a fixed size regardless of constraints.
type oversize struct {
	WidgetBase
	size graphics.Size
}

func (o *oversize) Layout(layout.BoxConstraints, []graph.ID, *graphics.Size, *LayoutCtx) layout.Result {
	return layout.SizeResult(o.size)
}

func TestLayoutClampsToConstraints(t *testing.T) {
	tests := []struct {
		name string
		bc   layout.BoxConstraints
		size graphics.Size
		want graphics.Size
	}{
		{"too big", layout.Loose(graphics.Size{Width: 100, Height: 50}), graphics.Size{Width: 500, Height: 500}, graphics.Size{Width: 100, Height: 50}},
		{"too small", layout.NewBoxConstraints(graphics.Size{Width: 20, Height: 20}, graphics.Size{Width: 40, Height: 40}), graphics.Size{Width: 1, Height: 1}, graphics.Size{Width: 20, Height: 20}},
		{"tight", layout.Tight(graphics.Size{Width: 7, Height: 9}), graphics.Size{Width: 3, Height: 30}, graphics.Size{Width: 7, Height: 9}},
		{"fits", layout.Loose(graphics.Size{Width: 100, Height: 100}), graphics.Size{Width: 30, Height: 40}, graphics.Size{Width: 30, Height: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewUIState()
			leaf := s.Add(&oversize{size: tt.size})
			root := s.Add(&spy{}, leaf)
			s.SetRoot(root)
			s.Layout(tt.bc, root)
			if got := s.Geom(leaf).Size(); got != tt.want {
				t.Errorf("leaf size = %v, want %v", got, tt.want)
			}
			if got := s.Geom(root).Size(); tt.bc.Constrain(got) != got {
				t.Errorf("root size %v outside %v", s.Geom(root).Size(), tt.bc)
			}
		})
	}
}

func TestDefaultLayoutPassesThroughToFirstChild(t *testing.T) {
	s := NewUIState()
	leaf := s.Add(&oversize{size: graphics.Size{Width: 30, Height: 20}})
	wrapper := s.Add(&spy{}, leaf)
	s.SetRoot(wrapper)

	got := s.Layout(layout.Loose(graphics.Size{Width: 100, Height: 100}), wrapper)
	if got != (graphics.Size{Width: 30, Height: 20}) {
		t.Errorf("wrapper size = %v", got)
	}
	if s.Geom(leaf).Origin() != (graphics.Offset{}) {
		t.Errorf("child origin = %v", s.Geom(leaf).Origin())
	}
}

// stranger asks for a node that is not its child.
type stranger struct {
	WidgetBase
	other graph.ID
}

func (w *stranger) Layout(bc layout.BoxConstraints, _ []graph.ID, _ *graphics.Size, _ *LayoutCtx) layout.Result {
	return layout.RequestChild(w.other, bc)
}

func TestLayoutRequestForNonChildPanics(t *testing.T) {
	s := NewUIState()
	other := s.Add(&spy{})
	root := s.Add(&stranger{other: other})
	s.SetRoot(root)

	defer func() {
		var te *errors.TreeError
		r := recover()
		err, _ := r.(error)
		if !stderrors.As(err, &te) {
			t.Fatalf("recovered %v, want *errors.TreeError", r)
		}
	}()
	s.Layout(layout.Tight(graphics.Size{Width: 1, Height: 1}), root)
}

func TestPaintIsPreOrderWithAbsoluteRects(t *testing.T) {
	sc := newScene(t)
	inner := &spy{name: "inner", log: &sc.log}
	innerID := sc.s.Add(inner)
	sc.s.RemoveChild(sc.rootID, sc.bID)
	sc.s.DeleteChild(sc.rootID, sc.aID)
	// Rebuild: root -> a2(10,10) -> inner at (5,5) via default pass-through.
	a2 := &place{spy: spy{name: "a2", log: &sc.log}, at: map[graph.ID]graphics.Rect{
		innerID: graphics.RectFromLTWH(5, 5, 10, 10),
	}}
	a2ID := sc.s.Add(a2, innerID)
	sc.root.at[a2ID] = graphics.RectFromLTWH(10, 10, 50, 50)
	sc.s.AppendChild(sc.rootID, a2ID)
	sc.s.Layout(layout.Tight(graphics.Size{Width: 200, Height: 100}), sc.rootID)
	sc.log = nil

	var rec rendering.PictureRecorder
	sc.s.Paint(NewPaintCtx(rec.BeginRecording(graphics.Size{Width: 200, Height: 100})), sc.rootID)

	want := []string{"root:paint", "a2:paint", "inner:paint"}
	if len(sc.log) != len(want) {
		t.Fatalf("log = %v, want %v", sc.log, want)
	}
	for i := range want {
		if sc.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, sc.log[i], want[i])
		}
	}
	if got := inner.painted[0].rect; got != graphics.RectFromLTWH(15, 15, 10, 10) {
		t.Errorf("inner absolute rect = %v, want (15,15,10,10)", got)
	}
	if got := sc.s.AbsoluteRect(innerID); got != graphics.RectFromLTWH(15, 15, 10, 10) {
		t.Errorf("AbsoluteRect = %v", got)
	}
}

func TestPaintFlags(t *testing.T) {
	sc := newScene(t)
	sc.s.MouseMove(graphics.Offset{X: 20, Y: 20})
	sc.s.SetFocus(sc.bID)

	var rec rendering.PictureRecorder
	sc.s.Paint(NewPaintCtx(rec.BeginRecording(graphics.Size{})), sc.rootID)
	if p := sc.a.painted[0]; !p.hot || p.active || p.focused {
		t.Errorf("a flags = %+v, want hot only", p)
	}
	if p := sc.b.painted[0]; p.hot || !p.focused {
		t.Errorf("b flags = %+v, want focused only", p)
	}

	// While b holds the capture, a is no longer painted as hot.
	sc.b.capture = true
	sc.s.Mouse(press(110, 20))
	sc.s.Paint(NewPaintCtx(rec.BeginRecording(graphics.Size{})), sc.rootID)
	if p := sc.a.painted[1]; p.hot {
		t.Errorf("a painted hot while b is active")
	}
	if p := sc.b.painted[1]; !p.active {
		t.Errorf("b not painted active")
	}
}

func TestDeleteThenReuseStartsClean(t *testing.T) {
	sc := newScene(t)
	calls := 0
	AddListener(&sc.s.Ui, sc.bID, func(string, *ListenerCtx) { calls++ })
	sc.s.DispatchEvents()
	if sc.s.ListenerCount(sc.bID) != 1 {
		t.Fatalf("listener not registered")
	}

	sc.s.DeleteChild(sc.rootID, sc.bID)
	if !sc.s.IsVacant(sc.bID) {
		t.Error("deleted slot not vacant")
	}
	if got := sc.a.removed; len(got) != 0 {
		t.Errorf("sibling notified of removal: %v", got)
	}
	if got := sc.root.removed; len(got) != 1 || got[0] != sc.bID {
		t.Errorf("parent removed = %v, want [%v]", got, sc.bID)
	}
	sc.s.DispatchEvents()

	fresh := &spy{sendOnPoke: true}
	id := sc.s.Add(fresh)
	if id != sc.bID {
		t.Fatalf("new id = %v, want reused %v", id, sc.bID)
	}
	if g := sc.s.Geom(id); g != (graphics.Rect{}) {
		t.Errorf("reused geometry = %v, want zero", g)
	}
	if n := sc.s.ListenerCount(id); n != 0 {
		t.Errorf("reused node has %d listeners", n)
	}
	sc.s.PokeAndDispatch(id, "hello")
	if calls != 0 {
		t.Errorf("old listener resurrected: %d calls", calls)
	}
}

func TestDeleteQueuesClearBeforeNewRegistration(t *testing.T) {
	sc := newScene(t)
	AddListener(&sc.s.Ui, sc.bID, func(string, *ListenerCtx) {})
	sc.s.DispatchEvents()

	sc.s.DeleteChild(sc.rootID, sc.bID)
	id := sc.s.Add(&spy{})
	AddListener(&sc.s.Ui, id, func(string, *ListenerCtx) {})
	sc.s.DispatchEvents()

	if n := sc.s.ListenerCount(id); n != 1 {
		t.Errorf("listener count = %d, want only the new registration", n)
	}
}

func TestDeleteClearsInteractionState(t *testing.T) {
	sc := newScene(t)
	sc.a.capture = true
	sc.s.MouseMove(graphics.Offset{X: 20, Y: 20})
	sc.s.Mouse(press(20, 20))
	sc.s.SetFocus(sc.aID)
	if sc.s.Active() != sc.aID || sc.s.Hot() != sc.aID || sc.s.Focused() != sc.aID {
		t.Fatalf("setup failed: active=%v hot=%v focused=%v", sc.s.Active(), sc.s.Hot(), sc.s.Focused())
	}

	sc.s.DeleteChild(sc.rootID, sc.aID)
	if sc.s.Active() != graph.None || sc.s.Hot() != graph.None || sc.s.Focused() != graph.None {
		t.Errorf("after delete: active=%v hot=%v focused=%v", sc.s.Active(), sc.s.Hot(), sc.s.Focused())
	}
}

func TestDeleteClearsStateHeldByDescendant(t *testing.T) {
	sc := newScene(t)
	inner := sc.s.Add(&spy{name: "inner", log: &sc.log})
	sc.s.AppendChild(sc.aID, inner)
	sc.s.SetFocus(inner)
	sc.s.MouseMove(graphics.Offset{X: 120, Y: 20})
	if sc.s.Hot() != sc.bID {
		t.Fatalf("hot = %v, want b", sc.s.Hot())
	}

	sc.s.DeleteChild(sc.rootID, sc.aID)
	if sc.s.Focused() != graph.None {
		t.Errorf("focused = %v, want none after deleting its ancestor", sc.s.Focused())
	}
	if sc.s.Hot() != sc.bID {
		t.Errorf("hot = %v, want b kept", sc.s.Hot())
	}
}

func TestRemoveChildKeepsListeners(t *testing.T) {
	sc := newScene(t)
	sc.b.sendOnPoke = true
	got := 0
	AddListener(&sc.s.Ui, sc.bID, func(int, *ListenerCtx) { got++ })
	sc.s.DispatchEvents()

	sc.s.RemoveChild(sc.rootID, sc.bID)
	if _, ok := sc.s.Graph().Parent(sc.bID); ok {
		t.Error("removed child still has a parent")
	}
	sc.s.AddBefore(sc.rootID, sc.aID, sc.bID)
	if kids := sc.s.Graph().Children(sc.rootID); kids[0] != sc.bID || kids[1] != sc.aID {
		t.Errorf("children = %v, want b before a", kids)
	}
	sc.s.PokeAndDispatch(sc.bID, 7)
	if got != 1 {
		t.Errorf("listener calls = %d, want 1", got)
	}
}

func TestStructuralChangesRequestLayout(t *testing.T) {
	sc := newScene(t)
	sc.s.FinishFrame()
	before := sc.win.invalidations
	sc.s.RemoveChild(sc.rootID, sc.bID)
	if sc.win.invalidations != before+1 {
		t.Errorf("invalidations = %d, want %d", sc.win.invalidations, before+1)
	}
	if sc.s.AnimState() != AnimInvalidationRequested {
		t.Errorf("state = %v", sc.s.AnimState())
	}
	// Further requests while one is pending do not reach the host.
	sc.s.AppendChild(sc.rootID, sc.bID)
	if sc.win.invalidations != before+1 {
		t.Errorf("duplicate invalidation sent to host")
	}
}

func TestVacantSlotsAreInert(t *testing.T) {
	sc := newScene(t)
	sc.s.DeleteChild(sc.rootID, sc.bID)
	if sc.s.Poke(sc.bID, "x") {
		t.Error("poke on vacant slot reported handled")
	}
	if !sc.s.IsVacant(graph.ID(99)) {
		t.Error("unallocated id should be vacant")
	}
}

func TestAddNilWidgetPanics(t *testing.T) {
	s := NewUIState()
	defer func() {
		if _, ok := recover().(*errors.TreeError); !ok {
			t.Error("expected *errors.TreeError panic")
		}
	}()
	s.Add(nil)
}

func TestRandomEditsKeepSlotsAndListenersConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := NewUIState()
	root := s.Add(&spy{})
	s.SetRoot(root)
	attached := []graph.ID{root}

	for step := 0; step < 400; step++ {
		parent := attached[rng.Intn(len(attached))]
		switch {
		case rng.Intn(3) > 0 || len(attached) == 1:
			id := s.Add(&spy{})
			s.AppendChild(parent, id)
			AddListener(&s.Ui, id, func(int, *ListenerCtx) {})
			attached = append(attached, id)
		default:
			kids := s.Graph().Children(parent)
			if len(kids) == 0 {
				continue
			}
			s.DeleteChild(parent, kids[rng.Intn(len(kids))])
			attached = attached[:0]
			s.Graph().Walk(root, func(id graph.ID) { attached = append(attached, id) })
		}
		s.DispatchEvents()
	}

	seen := make(map[graph.ID]bool)
	s.Graph().Walk(root, func(id graph.ID) {
		if seen[id] {
			t.Fatalf("id %v reachable twice", id)
		}
		seen[id] = true
		if s.IsVacant(id) {
			t.Errorf("reachable node %v has no widget", id)
		}
	})
	for i := 0; i < s.Graph().Len(); i++ {
		id := graph.ID(i)
		live := s.Graph().IsLive(id)
		if live != !s.IsVacant(id) {
			t.Errorf("node %v: live=%v vacant=%v", id, live, s.IsVacant(id))
		}
		if !live && s.ListenerCount(id) != 0 {
			t.Errorf("freed node %v still has %d listeners", id, s.ListenerCount(id))
		}
		if live && s.ListenerCount(id) > 1 && id != root {
			t.Errorf("node %v has %d listeners, stale registrations leaked", id, s.ListenerCount(id))
		}
	}
}
