package rendering

import (
	"image/color"
	"testing"

	"github.com/go-drift/retained/pkg/graphics"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#272822", Color(0xFF272822), false},
		{"272822", Color(0xFF272822), false},
		{"#80FF0000", Color(0x80FF0000), false},
		{"#12345", 0, true},
		{"#GGGGGG", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecorderReplaysInOrder(t *testing.T) {
	var rec PictureRecorder
	canvas := rec.BeginRecording(graphics.Size{Width: 10, Height: 10})
	canvas.Clear(ColorBlack)
	canvas.DrawRect(graphics.RectFromLTWH(0, 0, 5, 5), FillPaint(ColorRed))
	canvas.DrawText("hi", graphics.Offset{X: 1, Y: 2}, FillPaint(ColorWhite))
	list := rec.EndRecording()

	ops := list.Ops()
	if len(ops) != 3 {
		t.Fatalf("recorded %d ops, want 3", len(ops))
	}
	if _, ok := ops[0].(ClearOp); !ok {
		t.Errorf("op 0 = %T, want ClearOp", ops[0])
	}
	if r, ok := ops[1].(RectOp); !ok || r.Paint.Color != ColorRed {
		t.Errorf("op 1 = %#v", ops[1])
	}
	if txt, ok := ops[2].(TextOp); !ok || txt.Text != "hi" {
		t.Errorf("op 2 = %#v", ops[2])
	}

	// Replaying onto a second recorder yields the same ops.
	var again PictureRecorder
	list.Paint(again.BeginRecording(list.Size()))
	if got := len(again.EndRecording().Ops()); got != 3 {
		t.Errorf("replayed %d ops, want 3", got)
	}
}

func TestImageCanvasFillsRect(t *testing.T) {
	c := NewImageCanvas(20, 20)
	c.Clear(ColorBlack)
	c.DrawRect(graphics.RectFromLTWH(5, 5, 10, 10), FillPaint(ColorRed))

	inside := c.Image().RGBAAt(10, 10)
	if inside != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside pixel = %v, want red", inside)
	}
	outside := c.Image().RGBAAt(2, 2)
	if outside != (color.RGBA{A: 255}) {
		t.Errorf("outside pixel = %v, want black", outside)
	}
}

func TestImageCanvasRespectsClipAndTranslate(t *testing.T) {
	c := NewImageCanvas(20, 20)
	c.Clear(ColorBlack)
	c.Save()
	c.Translate(10, 0)
	c.ClipRect(graphics.RectFromLTWH(0, 0, 5, 20))
	c.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), FillPaint(ColorGreen))
	c.Restore()

	if got := c.Image().RGBAAt(12, 5); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("clipped interior = %v, want green", got)
	}
	if got := c.Image().RGBAAt(17, 5); got != (color.RGBA{A: 255}) {
		t.Errorf("pixel beyond clip = %v, want black", got)
	}
	if got := c.Image().RGBAAt(2, 5); got != (color.RGBA{A: 255}) {
		t.Errorf("pixel before translation = %v, want black", got)
	}
}

func TestImageCanvasDrawsText(t *testing.T) {
	c := NewImageCanvas(40, 20)
	c.Clear(ColorBlack)
	c.DrawText("M", graphics.Offset{X: 2, Y: 2}, FillPaint(ColorWhite))

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if c.Image().RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected some pixels to be drawn for text")
	}
}

func TestMeasureTextUsesFixedAdvance(t *testing.T) {
	got := MeasureText("abcd")
	if got.Width != 28 || got.Height != 13 {
		t.Errorf("MeasureText = %v, want 28x13", got)
	}
}
