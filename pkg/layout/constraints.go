// Package layout defines the box-constraint protocol that widgets use to
// negotiate their sizes.
//
// Layout runs top-down. A widget receives [BoxConstraints] and answers with a
// [Result]: either its final size or a request to lay out one child under
// constraints of its choosing. The engine lays the child out to completion
// and calls the widget again with the child's size, so a container can
// measure any number of children, in any order, before settling on a size.
package layout

import (
	"fmt"
	"math"

	"github.com/go-drift/retained/pkg/graphics"
)

// BoxConstraints bound the size a widget may choose.
type BoxConstraints struct {
	min graphics.Size
	max graphics.Size
}

// NewBoxConstraints returns constraints with the given bounds.
func NewBoxConstraints(min, max graphics.Size) BoxConstraints {
	return BoxConstraints{min: min, max: max}
}

// Tight returns constraints that only admit size.
func Tight(size graphics.Size) BoxConstraints {
	return BoxConstraints{min: size, max: size}
}

// Loose returns constraints from zero up to size.
func Loose(size graphics.Size) BoxConstraints {
	return BoxConstraints{max: size}
}

// Unbounded returns constraints with no upper limit on either axis.
func Unbounded() BoxConstraints {
	return BoxConstraints{max: graphics.Size{Width: math.Inf(1), Height: math.Inf(1)}}
}

// Constrain clamps size to [Min, Max] on each axis.
func (c BoxConstraints) Constrain(size graphics.Size) graphics.Size {
	return size.Clamp(c.min, c.max)
}

// Min returns the minimum size.
func (c BoxConstraints) Min() graphics.Size {
	return c.min
}

// Max returns the maximum size.
func (c BoxConstraints) Max() graphics.Size {
	return c.max
}

// IsTight reports whether only one size satisfies the constraints.
func (c BoxConstraints) IsTight() bool {
	return c.min == c.max
}

// Deflate shrinks both bounds by the given amounts, never below zero.
func (c BoxConstraints) Deflate(width, height float64) BoxConstraints {
	shrink := func(v, by float64) float64 { return math.Max(0, v-by) }
	return BoxConstraints{
		min: graphics.Size{Width: shrink(c.min.Width, width), Height: shrink(c.min.Height, height)},
		max: graphics.Size{Width: shrink(c.max.Width, width), Height: shrink(c.max.Height, height)},
	}
}

func (c BoxConstraints) String() string {
	return fmt.Sprintf("BoxConstraints(%gx%g..%gx%g)", c.min.Width, c.min.Height, c.max.Width, c.max.Height)
}
