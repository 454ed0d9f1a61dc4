package platform

import "sync"

// IdleFunc adapts a plain function to the IdleHandle interface.
type IdleFunc func(fn func(handler any))

// AddIdle calls f(fn).
func (f IdleFunc) AddIdle(fn func(handler any)) {
	f(fn)
}

// IdleQueue is a goroutine-safe queue of idle closures. Hosts embed it to
// implement IdleHandle: any goroutine may call AddIdle, and the host thread
// calls Run with its window handler to execute the pending closures.
type IdleQueue struct {
	mu      sync.Mutex
	pending []func(handler any)

	// Notify, if set, is called after each AddIdle so the host can wake its
	// event loop. It must be safe to call from any goroutine.
	Notify func()
}

// AddIdle queues fn for the next Run. Nil closures are ignored.
func (q *IdleQueue) AddIdle(fn func(handler any)) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	notify := q.Notify
	q.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// Run executes every queued closure with handler and returns how many ran.
// Closures queued while Run is executing are left for the next call.
func (q *IdleQueue) Run(handler any) int {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		fn(handler)
	}
	return len(pending)
}

// Len returns the number of queued closures.
func (q *IdleQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
