// Package keymatrix is an in-memory key-state input driver.
//
// Keys can be held (Press/Release) or tapped. A tap latches the key as
// pressed until an app reads it once through Key or Keys, which is how the
// simulator turns discrete debug-server requests into single presses.
package keymatrix

import (
	"sort"
	"sync"

	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
)

// Matrix is a hal.Input with a consistent snapshot per query
type Matrix struct {
	mu     sync.Mutex
	held   map[keycode.Code]bool
	tapped map[keycode.Code]bool
}

// New creates a matrix with nothing pressed
func New() *Matrix {
	return &Matrix{
		held:   make(map[keycode.Code]bool),
		tapped: make(map[keycode.Code]bool),
	}
}

// Press holds code down until Release
func (m *Matrix) Press(code keycode.Code) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[code] = true
}

// Release lets go of a held key
func (m *Matrix) Release(code keycode.Code) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, code)
}

// Tap latches code until it is read once
func (m *Matrix) Tap(code keycode.Code) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tapped[code] = true
}

// Key reports whether code is pressed, consuming a tap
func (m *Matrix) Key(code keycode.Code) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read(code)
}

// Keys reads every code under one lock, consuming taps
func (m *Matrix) Keys(codes []keycode.Code) map[keycode.Code]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[keycode.Code]bool, len(codes))
	for _, c := range codes {
		out[c] = out[c] || m.read(c)
	}
	return out
}

// Pressed lists held and tapped keys without consuming taps
func (m *Matrix) Pressed() []keycode.Code {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[keycode.Code]bool, len(m.held)+len(m.tapped))
	for c := range m.held {
		seen[c] = true
	}
	for c := range m.tapped {
		seen[c] = true
	}
	out := make([]keycode.Code, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ClearState drops every held key and pending tap
func (m *Matrix) ClearState() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.held)
	clear(m.tapped)
}

// read reports and consumes; caller holds mu
func (m *Matrix) read(code keycode.Code) bool {
	if m.tapped[code] {
		delete(m.tapped, code)
		return true
	}
	return m.held[code]
}
