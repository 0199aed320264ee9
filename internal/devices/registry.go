package devices

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/SlimeOS/internal/hal"
)

var ErrUnknownDevice = errors.New("unknown device")

// Constructor builds a fresh profile
type Constructor func() hal.Profile

// Registry maps device names to profile constructors
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Constructor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]Constructor)}
}

// Default returns a registry holding the built-in profiles
func Default() *Registry {
	r := NewRegistry()
	_ = r.Register(SimulatorName, func() hal.Profile { return NewSimulator() })
	return r
}

// Register adds a profile under name
func (r *Registry) Register(name string, c Constructor) error {
	if name == "" || c == nil {
		return fmt.Errorf("register device %q: name and constructor are required", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[name]; exists {
		return fmt.Errorf("device %q already registered", name)
	}
	r.profiles[name] = c
	return nil
}

// Get builds the profile registered under name
func (r *Registry) Get(name string) (hal.Profile, error) {
	r.mu.RLock()
	c, ok := r.profiles[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q, available devices: %s", ErrUnknownDevice, name, strings.Join(r.List(), ", "))
	}
	return c(), nil
}

// List returns the registered names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
