package layout

// EdgeInsets is an amount of space on each side of a box.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// EdgeInsetsAll returns insets of v on every side.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// EdgeInsetsSymmetric returns insets of horizontal on the left and right and
// vertical on the top and bottom.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns the total of the left and right insets.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the total of the top and bottom insets.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}
