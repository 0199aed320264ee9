package kernel

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrAlreadyBooted = errors.New("kernel already booted")

// AppFault wraps an error returned or panicked by an app step
type AppFault struct {
	AppID      string
	AppName    string
	InstanceID string
	Step       uint64
	Err        error
}

func (f *AppFault) Error() string {
	return fmt.Sprintf("app %s faulted at step %d: %v", f.AppID, f.Step, f.Err)
}

func (f *AppFault) Unwrap() error {
	return f.Err
}

// Description is the text shown on the crash screen
func (f *AppFault) Description() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// DriverInitError means the device profile could not build a driver. It is
// fatal: Boot returns it.
type DriverInitError struct {
	Driver string
	Device string
	Err    error
}

func (e *DriverInitError) Error() string {
	return fmt.Sprintf("init %s driver for %s: %v", e.Driver, e.Device, e.Err)
}

func (e *DriverInitError) Unwrap() error {
	return e.Err
}

// PanicError carries a recovered panic value and the stack it came from
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsRuntime reports whether the panic came from the Go runtime, such as a
// nil dereference or an integer divide by zero
func (e *PanicError) IsRuntime() bool {
	_, ok := e.Value.(runtime.Error)
	return ok
}

// asDriverInit extracts a DriverInitError from err
func asDriverInit(err error) *DriverInitError {
	var die *DriverInitError
	if errors.As(err, &die) {
		return die
	}
	return nil
}
