//go:build !linux

package watchdog

import (
	"fmt"
	"os"
)

// Reexec exits the process; a supervisor is expected to restart it
func Reexec() {
	fmt.Fprintln(os.Stderr, "watchdog: timeout, exiting")
	os.Exit(ExitCodeReset)
}
