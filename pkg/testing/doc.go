// Package testing provides a headless host for exercising UI trees in tests.
//
// # Quick Start
//
// Build a tree, hand it to a Tester and drive it like a window would:
//
//	func TestSubmit(t *testing.T) {
//	    state := core.NewUIState()
//	    button := state.Add(&widgets.Button{Label: "Submit"})
//	    state.SetRoot(state.Add(&widgets.Padding{Padding: layout.EdgeInsetsAll(8)}, button))
//
//	    tester := retainedtest.NewTester(t, state)
//	    clicked := false
//	    tester.With(func(s *core.UIState) {
//	        core.AddListener(&s.Ui, button, func(widgets.Clicked, *core.ListenerCtx) { clicked = true })
//	    })
//	    tester.Pump()
//	    tester.ClickNode(button)
//	    if !clicked {
//	        t.Error("expected a click")
//	    }
//	}
//
// # Animation Testing
//
// The tester installs a FakeClock as the animation clock. PumpFrames
// advances it between frames until no widget asks for another one:
//
//	frames := tester.PumpFrames(16*time.Millisecond, 100)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import retainedtest "github.com/go-drift/retained/pkg/testing"
package testing
