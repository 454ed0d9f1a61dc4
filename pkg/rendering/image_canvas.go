package rendering

import (
	"image"
	"math"

	"github.com/go-drift/retained/pkg/graphics"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageCanvas rasterizes drawing commands into an RGBA image. It supports
// translation and rectangular clips, which is all the core's paint pass uses.
type ImageCanvas struct {
	img    *image.RGBA
	state  canvasState
	stack  []canvasState
	mask   *image.Alpha
	raster *vector.Rasterizer
}

type canvasState struct {
	dx, dy float64
	clip   image.Rectangle
}

// NewImageCanvas returns a transparent canvas of the given pixel size.
func NewImageCanvas(width, height int) *ImageCanvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &ImageCanvas{
		img:    img,
		state:  canvasState{clip: img.Bounds()},
		mask:   image.NewAlpha(img.Bounds()),
		raster: vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

func (c *ImageCanvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *ImageCanvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *ImageCanvas) Translate(dx, dy float64) {
	c.state.dx += dx
	c.state.dy += dy
}

func (c *ImageCanvas) ClipRect(rect graphics.Rect) {
	c.state.clip = c.state.clip.Intersect(c.pixelRect(rect))
}

func (c *ImageCanvas) Clear(color Color) {
	draw.Draw(c.img, c.state.clip, image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *ImageCanvas) DrawRect(rect graphics.Rect, paint Paint) {
	if paint.Style == PaintStyleFill {
		c.fillPolygon(paint.Color,
			graphics.Offset{X: rect.Left, Y: rect.Top},
			graphics.Offset{X: rect.Right, Y: rect.Top},
			graphics.Offset{X: rect.Right, Y: rect.Bottom},
			graphics.Offset{X: rect.Left, Y: rect.Bottom},
		)
		return
	}
	w := math.Max(paint.StrokeWidth, 1)
	fill := FillPaint(paint.Color)
	c.DrawRect(graphics.Rect{Left: rect.Left, Top: rect.Top, Right: rect.Right, Bottom: rect.Top + w}, fill)
	c.DrawRect(graphics.Rect{Left: rect.Left, Top: rect.Bottom - w, Right: rect.Right, Bottom: rect.Bottom}, fill)
	c.DrawRect(graphics.Rect{Left: rect.Left, Top: rect.Top + w, Right: rect.Left + w, Bottom: rect.Bottom - w}, fill)
	c.DrawRect(graphics.Rect{Left: rect.Right - w, Top: rect.Top + w, Right: rect.Right, Bottom: rect.Bottom - w}, fill)
}

func (c *ImageCanvas) DrawLine(start, end graphics.Offset, paint Paint) {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(paint.StrokeWidth, 1) / 2
	nx, ny := -dy/length*half, dx/length*half
	c.fillPolygon(paint.Color,
		graphics.Offset{X: start.X + nx, Y: start.Y + ny},
		graphics.Offset{X: end.X + nx, Y: end.Y + ny},
		graphics.Offset{X: end.X - nx, Y: end.Y - ny},
		graphics.Offset{X: start.X - nx, Y: start.Y - ny},
	)
}

func (c *ImageCanvas) DrawText(text string, position graphics.Offset, paint Paint) {
	dst, ok := c.img.SubImage(c.state.clip).(*image.RGBA)
	if !ok || dst.Bounds().Empty() {
		return
	}
	ascent := DefaultFace.Metrics().Ascent
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(paint.Color.NRGBA()),
		Face: DefaultFace,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round((position.X + c.state.dx) * 64)),
			Y: fixed.Int26_6(math.Round((position.Y+c.state.dy)*64)) + ascent,
		},
	}
	drawer.DrawString(text)
}

func (c *ImageCanvas) Size() graphics.Size {
	b := c.img.Bounds()
	return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// fillPolygon rasterizes a closed polygon in local coordinates into the
// shared coverage mask, then composites paint through it inside the clip.
func (c *ImageCanvas) fillPolygon(color Color, points ...graphics.Offset) {
	if c.state.clip.Empty() || len(points) < 3 {
		return
	}
	b := c.img.Bounds()
	c.raster.Reset(b.Dx(), b.Dy())
	c.raster.DrawOp = draw.Src
	for i, p := range points {
		x, y := float32(p.X+c.state.dx), float32(p.Y+c.state.dy)
		if i == 0 {
			c.raster.MoveTo(x, y)
		} else {
			c.raster.LineTo(x, y)
		}
	}
	c.raster.ClosePath()
	c.raster.Draw(c.mask, c.mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(c.img, c.state.clip, image.NewUniform(color.NRGBA()), image.Point{}, c.mask, c.state.clip.Min, draw.Over)
}

func (c *ImageCanvas) pixelRect(rect graphics.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(rect.Left+c.state.dx)),
		int(math.Floor(rect.Top+c.state.dy)),
		int(math.Ceil(rect.Right+c.state.dx)),
		int(math.Ceil(rect.Bottom+c.state.dy)),
	)
}
