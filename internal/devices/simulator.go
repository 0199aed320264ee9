package devices

import (
	"sync"

	"github.com/GriffinCanCode/SlimeOS/internal/drivers/framebuffer"
	"github.com/GriffinCanCode/SlimeOS/internal/drivers/keymatrix"
	"github.com/GriffinCanCode/SlimeOS/internal/hal"
)

const (
	SimulatorName   = "simulator"
	SimulatorWidth  = 320
	SimulatorHeight = 320
)

// Simulator is a desktop profile with an in-memory panel and key matrix.
// The matrix exists from the start so keys can be injected at any time;
// the framebuffer is only allocated when the kernel asks for a display.
type Simulator struct {
	keys *keymatrix.Matrix

	mu      sync.Mutex
	display *framebuffer.Display
}

var _ hal.Profile = (*Simulator)(nil)

// NewSimulator creates a simulator profile
func NewSimulator() *Simulator {
	return &Simulator{keys: keymatrix.New()}
}

func (s *Simulator) Name() string {
	return SimulatorName
}

func (s *Simulator) Capabilities() hal.Capabilities {
	return hal.Capabilities{
		HasDisplay: true,
		HasInput:   true,
		HasStorage: true,
		Width:      SimulatorWidth,
		Height:     SimulatorHeight,
	}
}

// CreateDisplay allocates the framebuffer
func (s *Simulator) CreateDisplay() (hal.Display, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.display == nil {
		s.display = framebuffer.New(SimulatorWidth, SimulatorHeight)
	}
	return s.display, nil
}

// CreateInput returns the key matrix
func (s *Simulator) CreateInput() (hal.Input, error) {
	return s.keys, nil
}

// Framebuffer returns the panel, or nil before the kernel has built it
func (s *Simulator) Framebuffer() *framebuffer.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

// Keys returns the key matrix for injecting presses
func (s *Simulator) Keys() *keymatrix.Matrix {
	return s.keys
}
