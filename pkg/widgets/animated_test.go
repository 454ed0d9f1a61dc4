package widgets_test

import (
	"testing"
	"time"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/rendering"
	retainedtest "github.com/go-drift/retained/pkg/testing"
	"github.com/go-drift/retained/pkg/widgets"
)

func TestFadeBoxAnimatesToTarget(t *testing.T) {
	state := core.NewUIState()
	fade := &widgets.FadeBox{ColorBox: widgets.ColorBox{Color: rendering.ColorBlack}, Duration: 100 * time.Millisecond}
	id := state.Add(fade)
	state.SetRoot(id)

	var finished []widgets.FadeFinished
	core.AddListener(&state.Ui, id, func(f widgets.FadeFinished, _ *core.ListenerCtx) {
		finished = append(finished, f)
	})
	tester := retainedtest.NewTester(t, state)
	tester.Pump()

	tester.With(func(s *core.UIState) { s.PokeAndDispatch(id, widgets.FadeTo{Color: rendering.ColorWhite}) })
	if !fade.Animating() {
		t.Fatal("FadeTo did not start an animation")
	}

	tester.Pump()
	tester.Clock().Advance(50 * time.Millisecond)
	tester.Pump()
	if fade.Color == rendering.ColorBlack || fade.Color == rendering.ColorWhite {
		t.Errorf("midway color = %v, want something between", fade.Color)
	}

	tester.PumpFrames(16*time.Millisecond, 100)
	if fade.Animating() {
		t.Error("animation still running")
	}
	if fade.Color != rendering.ColorWhite {
		t.Errorf("final color = %v, want white", fade.Color)
	}
	if len(finished) != 1 || finished[0].Color != rendering.ColorWhite {
		t.Errorf("finished events = %v", finished)
	}
}

func TestFadeBoxAcceptsPlainColor(t *testing.T) {
	state := core.NewUIState()
	fade := &widgets.FadeBox{Duration: time.Second}
	id := state.Add(fade)
	state.SetRoot(id)
	tester := retainedtest.NewTester(t, state)

	tester.With(func(s *core.UIState) { s.PokeAndDispatch(id, rendering.ColorRed) })
	if tester.Pump() {
		t.Error("plain color poke started an animation")
	}
	if fade.Color != rendering.ColorRed {
		t.Errorf("color = %v, want red", fade.Color)
	}
}
