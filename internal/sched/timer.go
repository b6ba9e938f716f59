// Package sched provides the two timing primitives the viewer needs: a
// rearmable single-shot timer for debouncing scroll bursts and a restartable
// ticker for caret blinking. Both deliver through a callback so the owner
// can funnel fires into its own event stream.
package sched

import (
	"sync"
	"time"
)

// Debounce is a single-shot timer with rearm semantics: Arm while pending
// postpones the fire rather than queueing a second one. The callback runs on
// the timer goroutine; owners are expected to post an event and return.
type Debounce struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func()
	timer *time.Timer
}

// NewDebounce creates a disarmed timer firing fn after d.
func NewDebounce(d time.Duration, fn func()) *Debounce {
	return &Debounce{d: d, fn: fn}
}

// Arm starts the timer, or pushes the pending fire back to a full interval
// from now if one is already scheduled.
func (t *Debounce) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.d, t.fire)
}

// Cancel stops any pending fire. A fire already in flight may still run.
func (t *Debounce) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Debounce) fire() {
	t.mu.Lock()
	t.timer = nil
	t.mu.Unlock()
	t.fn()
}

// Blinker is a restartable periodic ticker. Restart resets the phase so the
// first tick lands a full period after the restart; Stop halts ticking until
// the next Restart.
type Blinker struct {
	mu     sync.Mutex
	d      time.Duration
	fn     func()
	ticker *time.Ticker
	stop   chan struct{}
}

// NewBlinker creates a stopped ticker firing fn every d.
func NewBlinker(d time.Duration, fn func()) *Blinker {
	return &Blinker{d: d, fn: fn}
}

// Restart (re)starts ticking with a fresh phase.
func (b *Blinker) Restart() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.ticker = time.NewTicker(b.d)
	b.stop = make(chan struct{})
	go b.loop(b.ticker, b.stop)
}

// Stop halts ticking.
func (b *Blinker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *Blinker) stopLocked() {
	if b.ticker != nil {
		b.ticker.Stop()
		close(b.stop)
		b.ticker = nil
		b.stop = nil
	}
}

func (b *Blinker) loop(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			b.fn()
		}
	}
}
