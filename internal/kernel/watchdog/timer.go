package watchdog

import (
	"errors"
	"sync"
	"time"

	"github.com/GriffinCanCode/SlimeOS/internal/shared/clock"
)

var (
	ErrNotStarted     = errors.New("watchdog timer not started")
	ErrAlreadyStarted = errors.New("watchdog timer already started")
	ErrUnsupported    = errors.New("watchdog device not supported on this platform")
)

// Timer is a hardware-style reset timer
type Timer interface {
	// Start arms the timer; it must be fed within timeout from now on
	Start(timeout time.Duration) error
	// Feed restarts the countdown
	Feed() error
	// Stop disarms the timer on clean shutdown
	Stop() error
}

// SoftTimer emulates a watchdog with a clock timer. On expiry it calls the
// reset function from the timer's own goroutine, independent of whatever
// the scheduler is doing.
type SoftTimer struct {
	clock clock.Clock
	reset func()

	mu      sync.Mutex
	timer   clock.Timer
	timeout time.Duration
	expired bool
}

// NewSoftTimer creates a soft timer. A nil reset defaults to Reexec.
func NewSoftTimer(c clock.Clock, reset func()) *SoftTimer {
	if c == nil {
		c = clock.Real()
	}
	if reset == nil {
		reset = Reexec
	}
	return &SoftTimer{clock: c, reset: reset}
}

// Start arms the timer
func (t *SoftTimer) Start(timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		return ErrAlreadyStarted
	}
	t.timeout = timeout
	t.timer = t.clock.AfterFunc(timeout, t.expire)
	return nil
}

// Feed restarts the countdown. Feeding after expiry does nothing; real
// hardware would already be resetting.
func (t *SoftTimer) Feed() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer == nil {
		return ErrNotStarted
	}
	if t.expired {
		return nil
	}
	t.timer.Reset(t.timeout)
	return nil
}

// Stop disarms the timer
func (t *SoftTimer) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer == nil {
		return ErrNotStarted
	}
	t.timer.Stop()
	return nil
}

// Expired reports whether the timer fired
func (t *SoftTimer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

func (t *SoftTimer) expire() {
	t.mu.Lock()
	if t.expired {
		t.mu.Unlock()
		return
	}
	t.expired = true
	t.mu.Unlock()

	t.reset()
}
