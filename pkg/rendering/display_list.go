package rendering

import "github.com/go-drift/retained/pkg/graphics"

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []Op
	size graphics.Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Ops returns the recorded operations in order.
func (d *DisplayList) Ops() []Op {
	return d.ops
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() graphics.Size {
	return d.size
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []Op
	recording bool
	size      graphics.Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size graphics.Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op Op) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

// Op is one recorded drawing operation.
type Op interface {
	execute(canvas Canvas)
}

type recordingCanvas struct {
	recorder *PictureRecorder
	size     graphics.Size
}

func (c *recordingCanvas) Save() {
	c.recorder.append(SaveOp{})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(RestoreOp{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(TranslateOp{DX: dx, DY: dy})
}

func (c *recordingCanvas) ClipRect(rect graphics.Rect) {
	c.recorder.append(ClipRectOp{Rect: rect})
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(ClearOp{Color: color})
}

func (c *recordingCanvas) DrawRect(rect graphics.Rect, paint Paint) {
	c.recorder.append(RectOp{Rect: rect, Paint: paint})
}

func (c *recordingCanvas) DrawLine(start, end graphics.Offset, paint Paint) {
	c.recorder.append(LineOp{Start: start, End: end, Paint: paint})
}

func (c *recordingCanvas) DrawText(text string, position graphics.Offset, paint Paint) {
	c.recorder.append(TextOp{Text: text, Position: position, Paint: paint})
}

func (c *recordingCanvas) Size() graphics.Size {
	return c.size
}

// SaveOp records Canvas.Save.
type SaveOp struct{}

func (SaveOp) execute(canvas Canvas) {
	canvas.Save()
}

// RestoreOp records Canvas.Restore.
type RestoreOp struct{}

func (RestoreOp) execute(canvas Canvas) {
	canvas.Restore()
}

// TranslateOp records Canvas.Translate.
type TranslateOp struct {
	DX, DY float64
}

func (op TranslateOp) execute(canvas Canvas) {
	canvas.Translate(op.DX, op.DY)
}

// ClipRectOp records Canvas.ClipRect.
type ClipRectOp struct {
	Rect graphics.Rect
}

func (op ClipRectOp) execute(canvas Canvas) {
	canvas.ClipRect(op.Rect)
}

// ClearOp records Canvas.Clear.
type ClearOp struct {
	Color Color
}

func (op ClearOp) execute(canvas Canvas) {
	canvas.Clear(op.Color)
}

// RectOp records Canvas.DrawRect.
type RectOp struct {
	Rect  graphics.Rect
	Paint Paint
}

func (op RectOp) execute(canvas Canvas) {
	canvas.DrawRect(op.Rect, op.Paint)
}

// LineOp records Canvas.DrawLine.
type LineOp struct {
	Start, End graphics.Offset
	Paint      Paint
}

func (op LineOp) execute(canvas Canvas) {
	canvas.DrawLine(op.Start, op.End, op.Paint)
}

// TextOp records Canvas.DrawText.
type TextOp struct {
	Text     string
	Position graphics.Offset
	Paint    Paint
}

func (op TextOp) execute(canvas Canvas) {
	canvas.DrawText(op.Text, op.Position, op.Paint)
}
