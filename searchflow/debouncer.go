package searchflow

import (
	"sync"
	"time"
)

// Debouncer delivers the latest pushed value once no newer value has arrived
// for delay. Earlier values are dropped.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
	running sync.WaitGroup
}

func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push restarts the quiet period with v as the pending value.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, v) })
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	// A timer that lost the race with Stop or a newer Push still runs; gen
	// tells it apart.
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(v)
}

// Cancel drops the pending value, if any, without stopping the debouncer.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels the pending value and waits for a delivery already in
// progress. Nothing is delivered after Stop returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.running.Wait()
}
