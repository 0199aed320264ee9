package app

import (
	"context"
	"errors"
)

var ErrInvalidDescriptor = errors.New("app descriptor requires an id and a factory")

// Factory builds a fresh Instance bound to the given facade
type Factory func(sys System) Instance

// Descriptor is the static metadata for one app
type Descriptor struct {
	Name string
	ID   string
	New  Factory
}

// Validate checks the descriptor can be instantiated
func (d Descriptor) Validate() error {
	if d.ID == "" || d.New == nil {
		return ErrInvalidDescriptor
	}
	return nil
}

// DisplayName falls back to the ID when no name was given
func (d Descriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Instance is one running app. Step performs at most one bounded unit of
// work and must not block; a returned error is treated as a fault.
type Instance interface {
	Step(ctx context.Context, snap Snapshot) (Signal, error)
}

// ExitReason tells OnExit why the instance is stopping
type ExitReason string

const (
	ExitNormal    ExitReason = "normal"
	ExitLaunch    ExitReason = "launch"
	ExitInterrupt ExitReason = "interrupt"
	ExitCrash     ExitReason = "crash"
)

// Optional lifecycle hooks. Panics inside a hook are logged and ignored.
type (
	// Enterer runs once before the first Step
	Enterer interface {
		OnEnter()
	}
	// Exiter runs after a normal exit, a launch, or an interrupt, but not
	// after a crash
	Exiter interface {
		OnExit(reason ExitReason)
	}
	// Cleaner always runs at teardown, even after a crash
	Cleaner interface {
		OnCleanup()
	}
)
