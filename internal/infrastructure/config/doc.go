// Package config provides 12-factor configuration for the SlimeOS kernel.
//
// Configuration is loaded once from environment variables with sensible
// defaults and then passed, immutable, into kernel.New. Nothing in the
// kernel reads the environment on its own.
//
// Configuration Sections:
//   - Device: Which device profile to boot
//   - Kernel: Frame rate, crash screen duration, toolbar
//   - Watchdog: Hardware reset timeout (zero disables it)
//   - Settings: Persistent settings file
//   - Debug: Optional simulator debug HTTP server
//   - Logging: Log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Booting %s with watchdog %s\n", cfg.Device.Name, cfg.Watchdog.Timeout)
//
// Environment Variables:
//   - SLIME_DEVICE
//   - TARGET_FPS, CRASH_SCREEN_DURATION, TOOLBAR_ENABLED
//   - WATCHDOG_TIMEOUT
//   - SETTINGS_PATH, DEBUG_ADDR
//   - LOG_LEVEL, LOG_DEV, LOG_BUFFER
package config
