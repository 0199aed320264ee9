// Package kernel runs one app at a time on a device.
//
// The Kernel owns the device's drivers, the watchdog, and the crash screen.
// Boot instantiates an app, advances it one Step at a time, and routes the
// returned signal: continue, exit back to the default app, or launch
// another app. Every switch tears the old instance down completely before
// the next one is built, then reclaims memory.
//
// A Step that returns an error or panics is a fault. Faults are caught at
// the step boundary, shown on the crash screen, and followed by a switch to
// the default app. A Step that never returns is not a fault: only the
// watchdog can recover from that, by resetting the process.
//
// Components:
//   - Loader: lazy display and input singletons plus memory reclamation
//   - CrashHandler: renders the fault screen while keeping the watchdog fed
//   - session: the app.System facade lent to exactly one instance
package kernel
