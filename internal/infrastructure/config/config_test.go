package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Device config
	assert.Equal(t, "simulator", cfg.Device.Name)

	// Kernel config
	assert.Equal(t, 30, cfg.Kernel.TargetFPS)
	assert.Equal(t, 3*time.Second, cfg.Kernel.CrashScreenDuration)
	assert.True(t, cfg.Kernel.ToolbarEnabled)

	// Watchdog config
	assert.Zero(t, cfg.Watchdog.Timeout)
	assert.False(t, cfg.Watchdog.Enabled())

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 200, cfg.Logging.Buffer)

	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "simulator", cfg.Device.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"SLIME_DEVICE":          "pico_calc",
		"TARGET_FPS":            "60",
		"CRASH_SCREEN_DURATION": "5s",
		"TOOLBAR_ENABLED":       "false",
		"WATCHDOG_TIMEOUT":      "10s",
		"SETTINGS_PATH":         "/tmp/settings.yaml",
		"DEBUG_ADDR":            "127.0.0.1:8080",
		"LOG_LEVEL":             "debug",
		"LOG_DEV":               "true",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pico_calc", cfg.Device.Name)
	assert.Equal(t, 60, cfg.Kernel.TargetFPS)
	assert.Equal(t, 5*time.Second, cfg.Kernel.CrashScreenDuration)
	assert.False(t, cfg.Kernel.ToolbarEnabled)
	assert.Equal(t, 10*time.Second, cfg.Watchdog.Timeout)
	assert.True(t, cfg.Watchdog.Enabled())
	assert.Equal(t, "/tmp/settings.yaml", cfg.Settings.Path)
	assert.Equal(t, "127.0.0.1:8080", cfg.Debug.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("WATCHDOG_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, 5*time.Second, cfg.Watchdog.Timeout)

	// Verify default values still apply
	assert.Equal(t, "simulator", cfg.Device.Name)
	assert.Equal(t, 30, cfg.Kernel.TargetFPS)
	assert.Equal(t, "/dev/watchdog", cfg.Watchdog.Device)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative fps", key: "TARGET_FPS", value: "-1"},
		{name: "negative watchdog", key: "WATCHDOG_TIMEOUT", value: "-5s"},
		{name: "unfeedable watchdog", key: "WATCHDOG_TIMEOUT", value: "10ms"},
		{name: "not a duration", key: "CRASH_SCREEN_DURATION", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Device.Name = ""
	cfg.Kernel.TargetFPS = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device name")
	assert.Contains(t, err.Error(), "target fps")
}
