package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a virtual Clock for tests. Nothing fires until Advance is called;
// callbacks then run synchronously on the caller's goroutine.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*fakeTimer
}

// NewFake creates a Fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

type fakeTimer struct {
	clock    *Fake
	due      time.Time
	interval time.Duration
	seq      uint64
	fn       func()
	stopped  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.clock.remove(t)
	return true
}

// Now returns the virtual time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc schedules fn to run once the virtual time reaches now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	return f.schedule(d, 0, fn)
}

// Every schedules fn every d of virtual time. A non-positive d is treated
// as one millisecond so Advance always terminates.
func (f *Fake) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return f.schedule(d, d, fn)
}

func (f *Fake) schedule(d, interval time.Duration, fn func()) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{
		clock:    f,
		due:      f.now.Add(d),
		interval: interval,
		seq:      f.seq,
		fn:       fn,
	}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves virtual time forward by d, running every callback that
// becomes due, in due-time order. Ties run in scheduling order. Callbacks
// may schedule or stop other timers.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		t := f.next(target)
		if t == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = t.due
		if t.interval > 0 {
			f.seq++
			t.seq = f.seq
			t.due = t.due.Add(t.interval)
		} else {
			t.stopped = true
			f.remove(t)
		}
		fn := t.fn
		f.mu.Unlock()

		fn()
	}
}

// Pending returns the number of scheduled timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// next returns the earliest timer due at or before target. Caller holds mu.
func (f *Fake) next(target time.Time) *fakeTimer {
	if len(f.timers) == 0 {
		return nil
	}
	sort.SliceStable(f.timers, func(i, j int) bool {
		a, b := f.timers[i], f.timers[j]
		if !a.due.Equal(b.due) {
			return a.due.Before(b.due)
		}
		return a.seq < b.seq
	})
	if t := f.timers[0]; !t.due.After(target) {
		return t
	}
	return nil
}

// remove drops t from the schedule. Caller holds mu.
func (f *Fake) remove(t *fakeTimer) {
	for i, other := range f.timers {
		if other == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}
