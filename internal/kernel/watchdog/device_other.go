//go:build !linux

package watchdog

import "time"

// DeviceTimer is unavailable off Linux
type DeviceTimer struct{}

// NewDeviceTimer always fails off Linux
func NewDeviceTimer(path string) (*DeviceTimer, error) {
	return nil, ErrUnsupported
}

func (d *DeviceTimer) Start(timeout time.Duration) error { return ErrUnsupported }
func (d *DeviceTimer) Feed() error                       { return ErrUnsupported }
func (d *DeviceTimer) Stop() error                       { return ErrUnsupported }
