package layout

import (
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
)

// Result is the answer a widget gives to one layout step.
type Result struct {
	request     bool
	size        graphics.Size
	child       graph.ID
	constraints BoxConstraints
}

// SizeResult ends the widget's layout with its final size.
func SizeResult(size graphics.Size) Result {
	return Result{size: size, child: graph.None}
}

// RequestChild asks the engine to lay out child under bc and call the widget
// again with the resulting size.
func RequestChild(child graph.ID, bc BoxConstraints) Result {
	return Result{request: true, child: child, constraints: bc}
}

// IsRequest reports whether the result asks for a child layout.
func (r Result) IsRequest() bool {
	return r.request
}

// Size returns the final size. Only meaningful when IsRequest is false.
func (r Result) Size() graphics.Size {
	return r.size
}

// Child returns the requested child and its constraints. Only meaningful
// when IsRequest is true.
func (r Result) Child() (graph.ID, BoxConstraints) {
	return r.child, r.constraints
}
