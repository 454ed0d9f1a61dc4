package engine

import (
	"runtime"
	"sync"
	"time"

	"github.com/go-drift/retained/pkg/errors"
)

const (
	runtimeSampleIntervalDefault = 5 * time.Second
	runtimeSampleWindowDefault   = 60 * time.Second
	runtimeSampleMinInterval     = 10 * time.Millisecond
	runtimeSampleMaxSamples      = 120
)

// RuntimeSample captures memory, GC, and goroutine counters at one instant.
type RuntimeSample struct {
	Timestamp    int64  `json:"ts"`
	HeapAlloc    uint64 `json:"heapAlloc"`
	HeapInuse    uint64 `json:"heapInuse"`
	NumGC        uint32 `json:"numGC"`
	LastPauseNs  uint64 `json:"lastPauseNs"`
	PauseTotalNs uint64 `json:"pauseTotalNs"`
	Goroutines   int    `json:"goroutines"`
}

// RuntimeSampler keeps a ring of recent RuntimeSamples, filled by a ticker
// goroutine between Start and Stop.
type RuntimeSampler struct {
	mu       sync.RWMutex
	samples  []RuntimeSample
	index    int
	count    int
	interval time.Duration
	stop     chan struct{}
}

// NewRuntimeSampler sizes the ring to cover window at the given interval.
// Non-positive arguments select five-second samples over one minute.
func NewRuntimeSampler(window, interval time.Duration) *RuntimeSampler {
	if interval <= 0 {
		interval = runtimeSampleIntervalDefault
	}
	interval = max(interval, runtimeSampleMinInterval)
	if window <= 0 {
		window = runtimeSampleWindowDefault
	}
	window = max(window, interval)

	capacity := min(max(int(window/interval), 1), runtimeSampleMaxSamples)
	return &RuntimeSampler{
		samples:  make([]RuntimeSample, capacity),
		interval: interval,
	}
}

// Interval returns the sampling interval.
func (s *RuntimeSampler) Interval() time.Duration {
	return s.interval
}

// Start records one sample immediately and then one per interval. Calling
// Start on a running sampler does nothing.
func (s *RuntimeSampler) Start() {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	s.Add(ReadRuntimeSample())
	go func() {
		defer errors.Recover("engine.RuntimeSampler")
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Add(ReadRuntimeSample())
			case <-stop:
				return
			}
		}
	}()
}

// Stop ends the sampling goroutine. Recorded samples are kept.
func (s *RuntimeSampler) Stop() {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.mu.Unlock()
}

// Add stores a sample, overwriting the oldest once the ring is full.
func (s *RuntimeSampler) Add(sample RuntimeSample) {
	s.mu.Lock()
	s.samples[s.index] = sample
	s.index = (s.index + 1) % len(s.samples)
	if s.count < len(s.samples) {
		s.count++
	}
	s.mu.Unlock()
}

// Snapshot returns samples in chronological order.
func (s *RuntimeSampler) Snapshot() []RuntimeSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.count == 0 {
		return nil
	}
	result := make([]RuntimeSample, s.count)
	if s.count < len(s.samples) {
		copy(result, s.samples[:s.count])
	} else {
		copy(result, s.samples[s.index:])
		copy(result[len(s.samples)-s.index:], s.samples[:s.index])
	}
	return result
}

// ReadRuntimeSample reads the current process counters.
func ReadRuntimeSample() RuntimeSample {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	lastPause := uint64(0)
	if stats.NumGC > 0 {
		lastPause = stats.PauseNs[(stats.NumGC-1)%256]
	}

	return RuntimeSample{
		Timestamp:    time.Now().UnixMilli(),
		HeapAlloc:    stats.HeapAlloc,
		HeapInuse:    stats.HeapInuse,
		NumGC:        stats.NumGC,
		LastPauseNs:  lastPause,
		PauseTotalNs: stats.PauseTotalNs,
		Goroutines:   runtime.NumGoroutine(),
	}
}
