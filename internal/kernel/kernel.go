package kernel

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/hal"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SlimeOS/internal/kernel/watchdog"
	"github.com/GriffinCanCode/SlimeOS/internal/settings"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/clock"
)

// State is the scheduler's lifecycle phase
type State int

const (
	StateStarting State = iota
	StateRunning
	StateSwitching
	StateFaulted
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateSwitching:
		return "switching"
	case StateFaulted:
		return "faulted"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// Kernel schedules apps on one device
type Kernel struct {
	cfg      config.Config
	profile  hal.Profile
	logger   *zap.Logger
	ring     *logging.Ring
	metrics  *monitoring.Metrics
	clock    clock.Clock
	timer    watchdog.Timer
	settings app.Settings
	probe    MemoryProbe
	reclaim  Reclaimer

	loader   *Loader
	screen   *screen
	watchdog *watchdog.Supervisor
	crash    *CrashHandler
	limiter  *rate.Limiter

	mu      sync.Mutex
	state   State
	current *session
	booted  bool
}

// Option customizes a Kernel
type Option func(*Kernel)

// WithLogger sets the kernel logger. Its ring buffer, if any, backs the
// apps' RecentLogs.
func WithLogger(l *logging.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.logger = l.Logger
			k.ring = l.Ring()
		}
	}
}

// WithMetrics records scheduler metrics
func WithMetrics(m *monitoring.Metrics) Option {
	return func(k *Kernel) { k.metrics = m }
}

// WithClock replaces wall-clock time
func WithClock(c clock.Clock) Option {
	return func(k *Kernel) {
		if c != nil {
			k.clock = c
		}
	}
}

// WithWatchdogTimer replaces the platform watchdog timer
func WithWatchdogTimer(t watchdog.Timer) Option {
	return func(k *Kernel) { k.timer = t }
}

// WithSettings sets the store apps read and write
func WithSettings(s app.Settings) Option {
	return func(k *Kernel) {
		if s != nil {
			k.settings = s
		}
	}
}

// WithMemory replaces the heap probe and reclaimer
func WithMemory(probe MemoryProbe, reclaim Reclaimer) Option {
	return func(k *Kernel) {
		k.probe = probe
		k.reclaim = reclaim
	}
}

// New creates a kernel for profile. Nothing touches hardware until Boot.
func New(cfg config.Config, profile hal.Profile, opts ...Option) *Kernel {
	k := &Kernel{
		cfg:     cfg,
		profile: profile,
		logger:  zap.NewNop(),
		clock:   clock.Real(),
		state:   StateStarting,
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.settings == nil {
		k.settings = settings.NewMemory()
	}
	if k.timer == nil && cfg.Watchdog.Enabled() {
		k.timer = k.platformTimer()
	}

	k.loader = NewLoader(profile, k.logger.Named("loader")).WithMemory(k.probe, k.reclaim)
	k.screen = newScreen(k.loader, profile, cfg.Kernel.ToolbarEnabled)
	k.watchdog = watchdog.NewSupervisor(k.timer, k.logger.Named("watchdog")).WithMetrics(k.metrics)
	k.crash = newCrashHandler(k.screen, k.watchdog, k.clock, k.logger.Named("crash"), cfg.Kernel.CrashScreenDuration)
	if cfg.Kernel.TargetFPS > 0 {
		k.limiter = rate.NewLimiter(rate.Limit(cfg.Kernel.TargetFPS), 1)
	}
	return k
}

// platformTimer prefers the hardware device and falls back to a soft timer,
// both when the device node is missing and when it cannot be armed
func (k *Kernel) platformTimer() watchdog.Timer {
	soft := watchdog.NewSoftTimer(k.clock, nil)
	if _, err := os.Stat(k.cfg.Watchdog.Device); err == nil {
		if t, err := watchdog.NewDeviceTimer(k.cfg.Watchdog.Device); err == nil {
			return watchdog.NewFallbackTimer(t, soft, k.logger.Named("watchdog"))
		}
	}
	k.logger.Info("Using soft watchdog", zap.String("device", k.cfg.Watchdog.Device))
	return soft
}

// State returns the current lifecycle phase
func (k *Kernel) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// Current returns the running app's ID and instance ID. ok is false while
// no instance is current, including during the crash screen.
func (k *Kernel) Current() (appID, instanceID string, ok bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.current == nil {
		return "", "", false
	}
	return k.current.desc.ID, k.current.id.String(), true
}

// Loader returns the driver loader
func (k *Kernel) Loader() *Loader {
	return k.loader
}

// Memory returns the most recent heap estimate without sampling
func (k *Kernel) Memory() app.MemoryInfo {
	return k.loader.LastMemory()
}

// Watchdog returns the watchdog supervisor
func (k *Kernel) Watchdog() *watchdog.Supervisor {
	return k.watchdog
}

// Crashes returns the crash handler
func (k *Kernel) Crashes() *CrashHandler {
	return k.crash
}

func (k *Kernel) setState(s State) {
	k.mu.Lock()
	k.state = s
	k.mu.Unlock()
}

func (k *Kernel) setCurrent(s *session) {
	k.mu.Lock()
	k.current = s
	k.mu.Unlock()
}
