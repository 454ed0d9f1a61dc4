package rendering

import (
	"github.com/go-drift/retained/pkg/graphics"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace is the fixed 7x13 bitmap face used for measuring and drawing
// text on the reference surfaces.
var DefaultFace font.Face = basicfont.Face7x13

// MeasureText returns the size of a single line of text in DefaultFace.
func MeasureText(text string) graphics.Size {
	advance := font.MeasureString(DefaultFace, text)
	metrics := DefaultFace.Metrics()
	return graphics.Size{
		Width:  float64(advance.Ceil()),
		Height: float64(metrics.Height.Ceil()),
	}
}
