//go:build linux

package watchdog

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// magicClose disarms drivers built with nowayout disabled.
const magicClose = 'V'

// DeviceTimer drives a Linux watchdog character device such as /dev/watchdog.
// Opening the device arms the hardware.
type DeviceTimer struct {
	path string

	mu sync.Mutex
	fd int
}

// NewDeviceTimer returns a timer for the device at path
func NewDeviceTimer(path string) (*DeviceTimer, error) {
	if path == "" {
		return nil, fmt.Errorf("watchdog device path is required")
	}
	return &DeviceTimer{path: path, fd: -1}, nil
}

// Start opens the device and programs the timeout, rounded up to whole seconds
func (d *DeviceTimer) Start(timeout time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fd >= 0 {
		return ErrAlreadyStarted
	}
	fd, err := unix.Open(d.path, unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.path, err)
	}

	secs := int((timeout + time.Second - 1) / time.Second)
	if err := unix.IoctlSetPointerInt(fd, unix.WDIOC_SETTIMEOUT, secs); err != nil {
		_, _ = unix.Write(fd, []byte{magicClose})
		_ = unix.Close(fd)
		return fmt.Errorf("set watchdog timeout %ds: %w", secs, err)
	}
	d.fd = fd
	return nil
}

// Feed writes a keepalive byte
func (d *DeviceTimer) Feed() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fd < 0 {
		return ErrNotStarted
	}
	if _, err := unix.Write(d.fd, []byte{0}); err != nil {
		return fmt.Errorf("feed %s: %w", d.path, err)
	}
	return nil
}

// Stop writes the magic close character and closes the device
func (d *DeviceTimer) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fd < 0 {
		return ErrNotStarted
	}
	_, _ = unix.Write(d.fd, []byte{magicClose})
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
