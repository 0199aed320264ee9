// Package hal defines the capability contracts between the kernel and
// hardware drivers.
//
// Contracts:
//   - Display: Off-screen drawing plus a flip that makes the frame visible
//   - Input: Point-in-time key queries
//   - Profile: A named device that reports its capabilities and builds
//     its own Display and Input drivers
//
// The kernel never talks to a bus or a pin directly. Everything hardware
// facing lives behind these interfaces, and drivers are only constructed
// when the kernel first needs them.
package hal
