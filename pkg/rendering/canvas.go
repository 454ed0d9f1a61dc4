// Package rendering defines the drawing surface widgets paint onto and ships
// two reference surfaces: a recorder for replay and inspection, and an
// in-memory raster canvas.
package rendering

import "github.com/go-drift/retained/pkg/graphics"

// Canvas records or renders drawing commands. Coordinates are logical
// pixels; widgets receive absolute rects, so most never translate.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect graphics.Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect graphics.Rect, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end graphics.Offset, paint Paint)

	// DrawText draws a single line of text with its top-left corner at position.
	DrawText(text string, position graphics.Offset, paint Paint)

	// Size returns the size of the canvas in logical pixels.
	Size() graphics.Size
}
