package engine

import (
	"sync"
	"time"
)

const (
	frameTraceSamplesDefault   = 240
	defaultFrameTraceThreshold = 16667 * time.Microsecond
)

// FramePhaseTimings captures time spent in each phase of a paint.
type FramePhaseTimings struct {
	AnimFrame time.Duration `json:"animFrame"`
	Layout    time.Duration `json:"layout"`
	Paint     time.Duration `json:"paint"`
}

// FrameSample describes one call to UiMain.Paint.
type FrameSample struct {
	Start         time.Time         `json:"start"`
	Total         time.Duration     `json:"total"`
	Phases        FramePhaseTimings `json:"phases"`
	Nodes         int               `json:"nodes"`
	KeepAnimating bool              `json:"keepAnimating"`
}

// FrameTimeline is a chronological copy of the trace buffer.
type FrameTimeline struct {
	Samples       []FrameSample `json:"samples"`
	DroppedFrames int           `json:"droppedFrames"`
	Threshold     time.Duration `json:"threshold"`
}

// FrameTraceBuffer stores recent frame samples in a ring buffer. Frames
// slower than the threshold are counted as dropped.
type FrameTraceBuffer struct {
	mu        sync.RWMutex
	samples   []FrameSample
	index     int
	count     int
	dropped   int
	threshold time.Duration
}

// NewFrameTraceBuffer creates a buffer. Non-positive arguments select the
// defaults of 240 samples and one 60 Hz frame.
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = frameTraceSamplesDefault
	}
	if threshold <= 0 {
		threshold = defaultFrameTraceThreshold
	}
	return &FrameTraceBuffer{
		samples:   make([]FrameSample, capacity),
		threshold: threshold,
	}
}

// Add records a frame sample.
func (b *FrameTraceBuffer) Add(sample FrameSample) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if sample.Total > b.threshold {
		b.dropped++
	}
	b.mu.Unlock()
}

// Snapshot returns the samples oldest first.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]FrameSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}
	return FrameTimeline{
		Samples:       result,
		DroppedFrames: b.dropped,
		Threshold:     b.threshold,
	}
}
