package testing

import (
	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/rendering"
)

// Texts returns every string drawn in the last frame, in paint order.
func (t *Tester) Texts() []string {
	var texts []string
	for _, op := range t.last.Ops() {
		if text, ok := op.(rendering.TextOp); ok {
			texts = append(texts, text.Text)
		}
	}
	return texts
}

// HasText reports whether text was drawn in the last frame.
func (t *Tester) HasText(text string) bool {
	for _, s := range t.Texts() {
		if s == text {
			return true
		}
	}
	return false
}

// FilledRects returns the filled rectangles drawn in the last frame with
// their colors, in paint order.
func (t *Tester) FilledRects() []FilledRect {
	var rects []FilledRect
	for _, op := range t.last.Ops() {
		if r, ok := op.(rendering.RectOp); ok && r.Paint.Style == rendering.PaintStyleFill {
			rects = append(rects, FilledRect{Rect: r.Rect, Color: r.Paint.Color})
		}
	}
	return rects
}

// FilledRect is one filled rectangle in a frame.
type FilledRect struct {
	Rect  graphics.Rect
	Color rendering.Color
}

// ClearColor returns the color of the first clear in the last frame.
func (t *Tester) ClearColor() (rendering.Color, bool) {
	for _, op := range t.last.Ops() {
		if c, ok := op.(rendering.ClearOp); ok {
			return c.Color, true
		}
	}
	return 0, false
}
