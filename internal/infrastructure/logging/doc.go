// Package logging provides structured logging using uber/zap.
//
// This package offers two output modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Every logger can also tee into a Ring, a bounded in-memory zapcore.Core
// that the on-device Log Viewer pages through. The ring keeps the newest
// entries and silently evicts the oldest.
//
// Log Levels:
//   - Debug: Verbose debugging information
//   - Info: General informational messages
//   - Warn: Warning messages
//   - Error: Error messages
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	logger.Info("Display initialized", zap.Int("width", 320))
//	for _, e := range logger.Ring().Recent(16) {
//	    fmt.Println(e)
//	}
package logging
