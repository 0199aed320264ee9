package watchdog

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// FallbackTimer arms primary and switches to secondary when primary cannot
// be started, such as a /dev/watchdog node the process cannot open or
// program.
type FallbackTimer struct {
	primary   Timer
	secondary Timer
	logger    *zap.Logger

	mu     sync.Mutex
	active Timer
}

// NewFallbackTimer wraps primary with secondary as the backup
func NewFallbackTimer(primary, secondary Timer, logger *zap.Logger) *FallbackTimer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackTimer{primary: primary, secondary: secondary, logger: logger}
}

func (f *FallbackTimer) Start(timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.active != nil {
		return ErrAlreadyStarted
	}
	err := f.primary.Start(timeout)
	if err == nil {
		f.active = f.primary
		return nil
	}
	f.logger.Warn("Primary watchdog unavailable, using fallback", zap.Error(err))
	if err := f.secondary.Start(timeout); err != nil {
		return err
	}
	f.active = f.secondary
	return nil
}

func (f *FallbackTimer) Feed() error {
	f.mu.Lock()
	active := f.active
	f.mu.Unlock()
	if active == nil {
		return ErrNotStarted
	}
	return active.Feed()
}

func (f *FallbackTimer) Stop() error {
	f.mu.Lock()
	active := f.active
	f.active = nil
	f.mu.Unlock()
	if active == nil {
		return ErrNotStarted
	}
	return active.Stop()
}

// Active returns the armed timer, or nil before Start
func (f *FallbackTimer) Active() Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}
