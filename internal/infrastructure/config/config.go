package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all kernel configuration.
type Config struct {
	Device   DeviceConfig
	Kernel   KernelConfig
	Watchdog WatchdogConfig
	Settings SettingsConfig
	Debug    DebugConfig
	Logging  LogConfig
}

// DeviceConfig selects the active device profile.
type DeviceConfig struct {
	Name string `envconfig:"SLIME_DEVICE" default:"simulator"`
}

// KernelConfig holds scheduler settings.
type KernelConfig struct {
	TargetFPS           int           `envconfig:"TARGET_FPS" default:"30"`
	CrashScreenDuration time.Duration `envconfig:"CRASH_SCREEN_DURATION" default:"3s"`
	ToolbarEnabled      bool          `envconfig:"TOOLBAR_ENABLED" default:"true"`
}

// WatchdogConfig holds the hardware reset timeout. Zero disables it.
type WatchdogConfig struct {
	Timeout time.Duration `envconfig:"WATCHDOG_TIMEOUT" default:"0s"`
	Device  string        `envconfig:"WATCHDOG_DEVICE" default:"/dev/watchdog"`
}

// Enabled reports whether a timeout was configured.
func (w WatchdogConfig) Enabled() bool {
	return w.Timeout > 0
}

// SettingsConfig holds the persistent settings location.
type SettingsConfig struct {
	Path string `envconfig:"SETTINGS_PATH" default:"settings.toml"`
}

// DebugConfig holds the simulator debug server address. Empty disables it.
type DebugConfig struct {
	Addr string `envconfig:"DEBUG_ADDR" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	Buffer      int    `envconfig:"LOG_BUFFER" default:"200"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Name: "simulator",
		},
		Kernel: KernelConfig{
			TargetFPS:           30,
			CrashScreenDuration: 3 * time.Second,
			ToolbarEnabled:      true,
		},
		Watchdog: WatchdogConfig{
			Device: "/dev/watchdog",
		},
		Settings: SettingsConfig{
			Path: "settings.toml",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Buffer:      200,
		},
	}
}

// Validate rejects values the kernel cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Device.Name == "" {
		errs = append(errs, errors.New("device name is required"))
	}
	if c.Kernel.TargetFPS < 0 {
		errs = append(errs, fmt.Errorf("target fps must be >= 0, got %d", c.Kernel.TargetFPS))
	}
	if c.Kernel.CrashScreenDuration < 0 {
		errs = append(errs, fmt.Errorf("crash screen duration must be >= 0, got %s", c.Kernel.CrashScreenDuration))
	}
	if c.Watchdog.Timeout < 0 {
		errs = append(errs, fmt.Errorf("watchdog timeout must be >= 0, got %s", c.Watchdog.Timeout))
	}
	if c.Watchdog.Enabled() && c.Watchdog.Timeout < 100*time.Millisecond {
		errs = append(errs, fmt.Errorf("watchdog timeout %s is too short to feed", c.Watchdog.Timeout))
	}
	if c.Logging.Buffer < 0 {
		errs = append(errs, fmt.Errorf("log buffer must be >= 0, got %d", c.Logging.Buffer))
	}
	return errors.Join(errs...)
}
