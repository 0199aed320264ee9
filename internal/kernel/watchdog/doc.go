// Package watchdog supervises the device's last-resort liveness timer.
//
// A Supervisor is configured once at boot. With a zero timeout it is inert
// and Feed does nothing. With a positive timeout it arms a Timer that resets
// the whole process unless Feed is called again within the window. The
// reset path never runs through the scheduler: an app that stops yielding
// cannot be recovered in software, so the timer acts on its own.
//
// Timers:
//   - DeviceTimer: the Linux /dev/watchdog character device
//   - SoftTimer: a clock-driven timer that calls a reset function on
//     expiry (re-exec of the current binary by default)
package watchdog
