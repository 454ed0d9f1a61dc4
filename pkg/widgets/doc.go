// Package widgets provides reference widgets for the retained UI core.
//
// Widgets are plain structs configured with struct literals and mounted into
// a tree with core.Ui.Add, which returns the node's ID:
//
//	state := core.NewUIState()
//	label := state.Add(&widgets.Label{Text: "Hello"})
//	ok := state.Add(&widgets.Button{Label: "OK"})
//	state.SetRoot(state.Add(widgets.ColumnOf(8), label, ok))
//
// Widgets that change at runtime accept pokes: a Label or Button poked
// with a string replaces its text. Buttons report presses through the event
// queue; register a listener for [Clicked] on the button's ID:
//
//	core.AddListener(&state.Ui, ok, func(_ widgets.Clicked, ctx *core.ListenerCtx) {
//	    ctx.Close()
//	})
package widgets
