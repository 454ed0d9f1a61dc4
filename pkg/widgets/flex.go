package widgets

import (
	"math"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/layout"
)

// Axis is the direction children are laid out in.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Flex lays its children out in a line along Axis. Children without a flex
// weight are measured first with unbounded main-axis constraints; the space
// left over is then shared between weighted children in proportion to their
// weights. Children are aligned to the start of the cross axis.
type Flex struct {
	core.WidgetBase
	Axis    Axis
	Spacing float64

	weights map[graph.ID]float64

	// layout progress, valid only during a layout pass
	flexPhase bool
	ix        int
	used      float64
	total     float64
}

// RowOf returns a horizontal Flex.
func RowOf(spacing float64) *Flex {
	return &Flex{Axis: Horizontal, Spacing: spacing}
}

// ColumnOf returns a vertical Flex.
func ColumnOf(spacing float64) *Flex {
	return &Flex{Axis: Vertical, Spacing: spacing}
}

// SetFlex gives child a share of the leftover main-axis space. A weight of
// zero makes it a fixed child again.
func (f *Flex) SetFlex(child graph.ID, weight float64) {
	if f.weights == nil {
		f.weights = make(map[graph.ID]float64)
	}
	if weight <= 0 {
		delete(f.weights, child)
		return
	}
	f.weights[child] = weight
}

func (f *Flex) OnChildRemoved(child graph.ID) {
	delete(f.weights, child)
}

func (f *Flex) Layout(bc layout.BoxConstraints, children []graph.ID, size *graphics.Size, ctx *core.LayoutCtx) layout.Result {
	if size == nil {
		f.flexPhase, f.ix, f.used, f.total = false, 0, 0, 0
		for _, child := range children {
			f.total += f.weights[child]
		}
	} else {
		if !f.flexPhase {
			f.used += f.main(*size)
		}
		f.ix++
	}
	for {
		if f.ix >= len(children) {
			if !f.flexPhase && f.total > 0 {
				f.flexPhase, f.ix = true, 0
				continue
			}
			return f.finish(bc, children, ctx)
		}
		child := children[f.ix]
		weight := f.weights[child]
		switch {
		case !f.flexPhase && weight == 0:
			return layout.RequestChild(child, f.fixedConstraints(bc))
		case f.flexPhase && weight > 0:
			return layout.RequestChild(child, f.flexConstraints(bc, weight, len(children)))
		}
		f.ix++
	}
}

func (f *Flex) fixedConstraints(bc layout.BoxConstraints) layout.BoxConstraints {
	return f.constraints(0, math.Inf(1), 0, f.cross(bc.Max()))
}

func (f *Flex) flexConstraints(bc layout.BoxConstraints, weight float64, n int) layout.BoxConstraints {
	share := 0.0
	if avail := f.main(bc.Max()); !math.IsInf(avail, 1) {
		free := avail - f.used - f.Spacing*float64(n-1)
		share = math.Max(0, free) * weight / f.total
	}
	return f.constraints(share, share, 0, f.cross(bc.Max()))
}

func (f *Flex) finish(bc layout.BoxConstraints, children []graph.ID, ctx *core.LayoutCtx) layout.Result {
	pos, cross := 0.0, 0.0
	for i, child := range children {
		if i > 0 {
			pos += f.Spacing
		}
		sz := ctx.ChildSize(child)
		if f.Axis == Horizontal {
			ctx.PositionChild(child, graphics.Offset{X: pos})
		} else {
			ctx.PositionChild(child, graphics.Offset{Y: pos})
		}
		pos += f.main(sz)
		cross = math.Max(cross, f.cross(sz))
	}
	if f.total > 0 && !math.IsInf(f.main(bc.Max()), 1) {
		pos = f.main(bc.Max())
	}
	if f.Axis == Horizontal {
		return layout.SizeResult(bc.Constrain(graphics.Size{Width: pos, Height: cross}))
	}
	return layout.SizeResult(bc.Constrain(graphics.Size{Width: cross, Height: pos}))
}

func (f *Flex) main(s graphics.Size) float64 {
	if f.Axis == Horizontal {
		return s.Width
	}
	return s.Height
}

func (f *Flex) cross(s graphics.Size) float64 {
	if f.Axis == Horizontal {
		return s.Height
	}
	return s.Width
}

func (f *Flex) constraints(minMain, maxMain, minCross, maxCross float64) layout.BoxConstraints {
	if f.Axis == Horizontal {
		return layout.NewBoxConstraints(graphics.Size{Width: minMain, Height: minCross}, graphics.Size{Width: maxMain, Height: maxCross})
	}
	return layout.NewBoxConstraints(graphics.Size{Width: minCross, Height: minMain}, graphics.Size{Width: maxCross, Height: maxMain})
}
