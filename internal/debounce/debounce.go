// Package debounce collapses bursts of updates into one delayed call.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a pending update is emitted.
const DefaultDelay = 300 * time.Millisecond

// Debouncer emits at most one call per quiet period, always with the most
// recent value. Every Update cancels the pending call and schedules a new one.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64 // bumped on every schedule or cancel; a timer only fires for its own gen
	stopped bool
}

// New creates a debouncer calling fn. delay <= 0 selects DefaultDelay.
// fn runs on the timer goroutine for Update and on the caller's goroutine for Flush.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Update supersedes any pending call with v and restarts the quiet period.
func (d *Debouncer[T]) Update(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped || d.gen != gen {
			// Superseded after the timer had already fired
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn(v)
	})
}

// Flush cancels any pending call and calls fn with v immediately.
func (d *Debouncer[T]) Flush(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.mu.Unlock()

	d.fn(v)
}

// Cancel drops the pending call, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	d.cancelLocked()
	d.mu.Unlock()
}

// Pending reports whether a call is scheduled
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending call; later Update and Flush calls do nothing.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.cancelLocked()
	d.stopped = true
	d.mu.Unlock()
}

func (d *Debouncer[T]) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
