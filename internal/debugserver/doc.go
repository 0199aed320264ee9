// Package debugserver is the simulator's HTTP window into a running
// kernel: Prometheus metrics, the current frame as PNG, key injection and
// the in-memory log buffer. It is off unless DEBUG_ADDR is set.
package debugserver
