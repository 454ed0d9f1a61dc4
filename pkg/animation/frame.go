package animation

import "time"

// FrameTimer measures the interval between consecutive animation frames.
// The zero value has no previous frame.
type FrameTimer struct {
	prev    time.Time
	running bool
}

// Start reads the clock and returns the interval since the previous frame.
// The first frame after construction or Reset reports zero.
func (f *FrameTimer) Start() (now time.Time, interval time.Duration) {
	now = Now()
	if f.running {
		interval = now.Sub(f.prev)
		if interval < 0 {
			interval = 0
		}
	}
	return now, interval
}

// Mark records now as the time of the most recent frame.
func (f *FrameTimer) Mark(now time.Time) {
	f.prev = now
	f.running = true
}

// Reset forgets the previous frame so the next Start reports zero.
func (f *FrameTimer) Reset() {
	f.prev = time.Time{}
	f.running = false
}

// Running reports whether a previous frame has been marked.
func (f *FrameTimer) Running() bool {
	return f.running
}

// Progress advances a value from 0 to 1 over Duration, shaped by Curve.
// Widgets drive it from their animation-frame callback.
type Progress struct {
	// Duration is the total length of the animation.
	Duration time.Duration
	// Curve shapes the linear progress. Nil means LinearCurve.
	Curve func(float64) float64

	elapsed time.Duration
}

// Advance adds dt to the elapsed time and returns the eased value together
// with whether the animation has completed.
func (p *Progress) Advance(dt time.Duration) (value float64, done bool) {
	p.elapsed += dt
	return p.Value(), p.Done()
}

// Value returns the eased progress in [0, 1].
func (p *Progress) Value() float64 {
	t := 1.0
	if p.Duration > 0 {
		t = clampUnit(float64(p.elapsed) / float64(p.Duration))
	}
	if p.Curve == nil {
		return t
	}
	return p.Curve(t)
}

// Done reports whether the elapsed time has reached Duration.
func (p *Progress) Done() bool {
	return p.elapsed >= p.Duration
}

// Restart rewinds the progress to zero.
func (p *Progress) Restart() {
	p.elapsed = 0
}
