package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Sleep advances time instead of
// blocking, and timers fire synchronously on the goroutine that advances.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	slept  time.Duration
}

// NewFake returns a Fake starting at start
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Sleep advances the clock by d
func (f *Fake) Sleep(d time.Duration) {
	f.mu.Lock()
	f.slept += d
	f.mu.Unlock()
	f.Advance(d)
}

// Slept returns the total duration passed to Sleep
func (f *Fake) Slept() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slept
}

// AfterFunc schedules fn to run once the clock passes now+d
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{clock: f, fn: fn, deadline: f.now.Add(d), active: true}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves time forward, firing every timer whose deadline passes
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now
	var due []*fakeTimer
	for _, t := range f.timers {
		if t.active && !t.deadline.After(now) {
			t.active = false
			due = append(due, t)
		}
	}
	f.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	for _, t := range due {
		t.fn()
	}
}

type fakeTimer struct {
	clock    *Fake
	fn       func()
	deadline time.Time
	active   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.active
	t.active = false
	return was
}

func (t *fakeTimer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.active
	t.active = true
	t.deadline = t.clock.now.Add(d)
	return was
}
