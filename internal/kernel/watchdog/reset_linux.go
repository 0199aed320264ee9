//go:build linux

package watchdog

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Reexec replaces the running process with a fresh copy of itself, so the
// kernel boots again from scratch. It only returns if exec fails, in which
// case the process exits.
func Reexec() {
	exe, err := os.Executable()
	if err == nil {
		err = unix.Exec(exe, os.Args, os.Environ())
	}
	fmt.Fprintf(os.Stderr, "watchdog: reset failed, exiting: %v\n", err)
	os.Exit(ExitCodeReset)
}
