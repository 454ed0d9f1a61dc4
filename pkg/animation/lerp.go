package animation

import "github.com/go-drift/retained/pkg/rendering"

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor interpolates each ARGB channel independently.
func LerpColor(a, b rendering.Color, t float64) rendering.Color {
	ar, ag, ab, aa := a.Components()
	br, bg, bb, ba := b.Components()
	ch := func(x, y uint8) uint8 {
		return uint8(LerpFloat64(float64(x), float64(y), t) + 0.5)
	}
	return rendering.RGBA(ch(ar, br), ch(ag, bg), ch(ab, bb), ch(aa, ba))
}
