// Package clock schedules delayed and repeating work for a live page.
//
// A page session is single-threaded: every callback must run on the
// session's event loop. Loop hands fired timers to a post function instead
// of running them on timer goroutines. Fake runs them synchronously when a
// test advances virtual time.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending one-shot or repeating task.
type Timer interface {
	// Stop cancels the task. It returns false if a one-shot task already
	// ran or the task was stopped before.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Loop is a real-time Clock that posts callbacks to an event loop.
type Loop struct {
	post func(func()) bool

	mu     sync.Mutex
	timers map[*loopTimer]struct{}
	closed bool
}

// NewLoop creates a Loop. post enqueues fn on the owning event loop and
// reports whether it was accepted.
func NewLoop(post func(fn func()) bool) *Loop {
	return &Loop{
		post:   post,
		timers: make(map[*loopTimer]struct{}),
	}
}

// Now returns the current time.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc posts fn to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{loop: l}
	started := l.track(t, func() {
		t.timer = time.AfterFunc(d, func() {
			l.post(func() {
				if t.stopped.CompareAndSwap(false, true) {
					l.untrack(t)
					fn()
				}
			})
		})
	})
	if !started {
		t.stopped.Store(true)
	}
	return t
}

// Every posts fn to the loop every d until stopped.
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := &loopTimer{loop: l, done: make(chan struct{})}
	if !l.track(t, nil) {
		t.stopped.Store(true)
		return t
	}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				l.post(func() {
					if !t.stopped.Load() {
						fn()
					}
				})
			}
		}
	}()
	return t
}

// Close stops every pending timer. Timers created afterwards never fire.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	timers := l.timers
	l.timers = make(map[*loopTimer]struct{})
	l.mu.Unlock()

	for t := range timers {
		t.cancel()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// track registers t and runs start while holding the lock, so Close never
// sees a timer whose fields are still being set.
func (l *Loop) track(t *loopTimer, start func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if start != nil {
		start()
	}
	l.timers[t] = struct{}{}
	return true
}

func (l *Loop) untrack(t *loopTimer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

type loopTimer struct {
	loop    *Loop
	timer   *time.Timer
	done    chan struct{}
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if !t.cancel() {
		return false
	}
	t.loop.untrack(t)
	return true
}

// cancel marks the timer stopped and releases its resources.
func (t *loopTimer) cancel() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.done != nil {
		close(t.done)
	}
	return true
}
