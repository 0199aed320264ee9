package kernel

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/hal"
)

// Loader builds the profile's drivers on first use and keeps them for the
// life of the kernel. It also owns memory reclamation between apps.
type Loader struct {
	profile hal.Profile
	logger  *zap.Logger
	probe   MemoryProbe
	reclaim Reclaimer

	mu      sync.Mutex
	display hal.Display
	input   hal.Input
	last    app.MemoryInfo
}

// NewLoader creates a loader for profile using the runtime's heap
func NewLoader(profile hal.Profile, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		profile: profile,
		logger:  logger,
		probe:   RuntimeProbe,
		reclaim: RuntimeReclaim,
	}
}

// WithMemory replaces the heap probe and reclaimer
func (l *Loader) WithMemory(probe MemoryProbe, reclaim Reclaimer) *Loader {
	if probe != nil {
		l.probe = probe
	}
	if reclaim != nil {
		l.reclaim = reclaim
	}
	return l
}

// Display returns the display singleton, building it on first call
func (l *Loader) Display() (hal.Display, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.display != nil {
		return l.display, nil
	}
	d, err := l.profile.CreateDisplay()
	if err == nil && d == nil {
		err = hal.ErrNoDisplay
	}
	if err != nil {
		return nil, &DriverInitError{Driver: "display", Device: l.profile.Name(), Err: err}
	}
	w, h := d.Size()
	l.logger.Info("Display initialized",
		zap.String("device", l.profile.Name()),
		zap.Int("width", w),
		zap.Int("height", h))
	l.display = d
	return d, nil
}

// Input returns the input singleton, building it on first call
func (l *Loader) Input() (hal.Input, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.input != nil {
		return l.input, nil
	}
	in, err := l.profile.CreateInput()
	if err == nil && in == nil {
		err = hal.ErrNoInput
	}
	if err != nil {
		return nil, &DriverInitError{Driver: "input", Device: l.profile.Name(), Err: err}
	}
	l.logger.Info("Input initialized", zap.String("device", l.profile.Name()))
	l.input = in
	return in, nil
}

// DisplayLoaded reports whether the display has been built
func (l *Loader) DisplayLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.display != nil
}

// InputLoaded reports whether the input has been built
func (l *Loader) InputLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.input != nil
}

// Memory samples the heap and returns the current estimate
func (l *Loader) Memory() app.MemoryInfo {
	info := memoryInfo(l.probe(), l.profile.Capabilities().MemoryBudget)
	l.mu.Lock()
	l.last = info
	l.mu.Unlock()
	return info
}

// LastMemory returns the most recent estimate without sampling
func (l *Loader) LastMemory() app.MemoryInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// Reclaim forces a collection and refreshes the estimate
func (l *Loader) Reclaim() app.MemoryInfo {
	l.reclaim()
	info := l.Memory()
	l.logger.Debug("Memory reclaimed",
		zap.Uint64("free", info.Free),
		zap.Uint64("allocated", info.Allocated),
		zap.Float64("percent_used", info.PercentUsed))
	return info
}
