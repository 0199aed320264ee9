package hal

import "errors"

var (
	ErrNoDisplay = errors.New("device has no display")
	ErrNoInput   = errors.New("device has no input")
)

// Capabilities describes what a device offers
type Capabilities struct {
	HasDisplay bool `json:"has_display"`
	HasInput   bool `json:"has_input"`
	HasStorage bool `json:"has_storage"`
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	// MemoryBudget is the heap available to apps in bytes; zero means use
	// whatever the runtime reports
	MemoryBudget uint64 `json:"memory_budget"`
}

// Profile is a named hardware configuration
type Profile interface {
	Name() string
	Capabilities() Capabilities
	CreateDisplay() (Display, error)
	CreateInput() (Input, error)
}
