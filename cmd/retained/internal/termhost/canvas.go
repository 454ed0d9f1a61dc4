package termhost

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/retained/pkg/graphics"
	"github.com/go-drift/retained/pkg/rendering"
)

// Canvas draws on terminal cells. Coordinates are logical pixels, converted
// to cells through the window's DPI. A cell belongs to a rectangle when its
// center lies inside it.
type Canvas struct {
	screen tcell.Screen
	// scale converts logical pixels to device pixels.
	scale float64
	state cellState
	stack []cellState
}

type cellState struct {
	dx, dy float64
	clip   graphics.Rect
}

var _ rendering.Canvas = (*Canvas)(nil)

// NewCanvas returns a canvas covering the whole screen.
func NewCanvas(screen tcell.Screen, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{screen: screen, scale: scale}
	c.state.clip = graphics.Rect{Right: c.Size().Width, Bottom: c.Size().Height}
	return c
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) Translate(dx, dy float64) {
	c.state.dx += dx
	c.state.dy += dy
}

func (c *Canvas) ClipRect(rect graphics.Rect) {
	c.state.clip = c.state.clip.Intersect(rect.Translate(c.state.dx, c.state.dy))
}

func (c *Canvas) Clear(color rendering.Color) {
	c.fill(c.state.clip, color)
}

func (c *Canvas) DrawRect(rect graphics.Rect, paint rendering.Paint) {
	rect = rect.Translate(c.state.dx, c.state.dy)
	if paint.Style == rendering.PaintStyleFill {
		c.fill(rect.Intersect(c.state.clip), paint.Color)
		return
	}
	c0, r0, c1, r1 := c.cells(rect)
	if c1 <= c0 || r1 <= r0 {
		return
	}
	for col := c0; col < c1; col++ {
		c.setRune(col, r0, '─', paint.Color)
		c.setRune(col, r1-1, '─', paint.Color)
	}
	for row := r0; row < r1; row++ {
		c.setRune(c0, row, '│', paint.Color)
		c.setRune(c1-1, row, '│', paint.Color)
	}
	c.setRune(c0, r0, '┌', paint.Color)
	c.setRune(c1-1, r0, '┐', paint.Color)
	c.setRune(c0, r1-1, '└', paint.Color)
	c.setRune(c1-1, r1-1, '┘', paint.Color)
}

func (c *Canvas) DrawLine(start, end graphics.Offset, paint rendering.Paint) {
	x0, y0 := c.cellAt(start.X+c.state.dx, start.Y+c.state.dy)
	x1, y1 := c.cellAt(end.X+c.state.dx, end.Y+c.state.dy)
	r := '·'
	switch {
	case y0 == y1:
		r = '─'
	case x0 == x1:
		r = '│'
	}
	// Bresenham over cells.
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for {
		c.setRune(x0, y0, r, paint.Color)
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * err; e2 >= dy {
			err += dy
			x0 += sx
		} else {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) DrawText(text string, position graphics.Offset, paint rendering.Paint) {
	col, row := c.cellAt(position.X+c.state.dx, position.Y+c.state.dy)
	for _, r := range text {
		c.setRune(col, row, r, paint.Color)
		col++
	}
}

// Size returns the screen size in logical pixels.
func (c *Canvas) Size() graphics.Size {
	cols, rows := c.screen.Size()
	return graphics.Size{
		Width:  float64(cols*CellWidth) / c.scale,
		Height: float64(rows*CellHeight) / c.scale,
	}
}

// fill sets the background of every cell whose center is in rect, which is
// already in absolute logical coordinates.
func (c *Canvas) fill(rect graphics.Rect, color rendering.Color) {
	if color.Alpha() == 0 {
		return
	}
	c0, r0, c1, r1 := c.cells(rect)
	bg := tcellColor(color)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			c.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

// setRune draws r in cell (col, row) over the existing background if the
// cell center is inside the clip.
func (c *Canvas) setRune(col, row int, r rune, color rendering.Color) {
	if color.Alpha() == 0 || !c.state.clip.Contains(c.cellCenter(col, row)) {
		return
	}
	_, _, style, _ := c.screen.GetContent(col, row)
	c.screen.SetContent(col, row, r, nil, style.Foreground(tcellColor(color)))
}

// cells returns the half-open cell range [c0, c1) x [r0, r1) whose centers
// lie in rect.
func (c *Canvas) cells(rect graphics.Rect) (c0, r0, c1, r1 int) {
	cols, rows := c.screen.Size()
	cw, ch := CellWidth/c.scale, CellHeight/c.scale
	c0 = clamp(int(math.Ceil(rect.Left/cw-0.5)), 0, cols)
	c1 = clamp(int(math.Ceil(rect.Right/cw-0.5)), 0, cols)
	r0 = clamp(int(math.Ceil(rect.Top/ch-0.5)), 0, rows)
	r1 = clamp(int(math.Ceil(rect.Bottom/ch-0.5)), 0, rows)
	return c0, r0, c1, r1
}

func (c *Canvas) cellAt(x, y float64) (int, int) {
	return int(math.Floor(x * c.scale / CellWidth)), int(math.Floor(y * c.scale / CellHeight))
}

func (c *Canvas) cellCenter(col, row int) graphics.Offset {
	return graphics.Offset{
		X: (float64(col) + 0.5) * CellWidth / c.scale,
		Y: (float64(row) + 0.5) * CellHeight / c.scale,
	}
}

func tcellColor(c rendering.Color) tcell.Color {
	r, g, b, _ := c.Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
