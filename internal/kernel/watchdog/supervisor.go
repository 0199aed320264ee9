package watchdog

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/monitoring"
)

// ExitCodeReset is the exit status used when a reset cannot re-exec.
const ExitCodeReset = 75

// MaxFeedInterval caps the cadence used while the kernel itself waits
const MaxFeedInterval = 500 * time.Millisecond

var ErrAlreadyConfigured = errors.New("watchdog already configured")

// Supervisor wraps an optional Timer and is a no-op when disabled
type Supervisor struct {
	timer   Timer
	logger  *zap.Logger
	metrics *monitoring.Metrics

	mu         sync.Mutex
	configured bool
	enabled    bool
	timeout    time.Duration

	feeds atomic.Uint64
}

// NewSupervisor creates a supervisor around timer. A nil timer means the
// platform has no watchdog; configuring a timeout then only logs a warning.
func NewSupervisor(timer Timer, logger *zap.Logger) *Supervisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Supervisor{timer: timer, logger: logger}
}

// WithMetrics adds metrics tracking to the supervisor
func (s *Supervisor) WithMetrics(metrics *monitoring.Metrics) *Supervisor {
	s.metrics = metrics
	return s
}

// Configure arms the watchdog. Zero disables it. Call exactly once.
func (s *Supervisor) Configure(timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.configured {
		return ErrAlreadyConfigured
	}
	s.configured = true

	if timeout <= 0 {
		s.logger.Info("Watchdog disabled")
		return nil
	}
	if s.timer == nil {
		s.logger.Warn("Watchdog not available on this platform", zap.Duration("timeout", timeout))
		return nil
	}
	if err := s.timer.Start(timeout); err != nil {
		return fmt.Errorf("start watchdog: %w", err)
	}

	s.enabled = true
	s.timeout = timeout
	s.logger.Info("Watchdog enabled", zap.Duration("timeout", timeout))
	return nil
}

// Enabled reports whether the watchdog is armed
func (s *Supervisor) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Timeout returns the configured timeout, zero when disabled
func (s *Supervisor) Timeout() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeout
}

// Feed restarts the countdown. It is a no-op when disabled and never fails;
// a timer error is logged, since the hardware will act regardless.
func (s *Supervisor) Feed() {
	s.mu.Lock()
	enabled := s.enabled
	s.mu.Unlock()

	if !enabled {
		return
	}
	if err := s.timer.Feed(); err != nil {
		s.logger.Warn("Watchdog feed failed", zap.Error(err))
		return
	}
	s.feeds.Add(1)
	s.metrics.IncWatchdogFeeds()
}

// Feeds returns the number of successful feeds
func (s *Supervisor) Feeds() uint64 {
	return s.feeds.Load()
}

// FeedInterval is the cadence to use while blocking inside the kernel:
// half the timeout, capped at MaxFeedInterval
func (s *Supervisor) FeedInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return MaxFeedInterval
	}
	return min(s.timeout/2, MaxFeedInterval)
}

// Stop disarms the watchdog on explicit shutdown
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}
	s.enabled = false
	if err := s.timer.Stop(); err != nil {
		return fmt.Errorf("stop watchdog: %w", err)
	}
	s.logger.Info("Watchdog disarmed")
	return nil
}
