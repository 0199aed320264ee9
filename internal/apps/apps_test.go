package apps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/settings"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

func TestBuiltins(t *testing.T) {
	catalog, home, err := Builtins()
	require.NoError(t, err)

	assert.Equal(t, LauncherID, home.ID)
	assert.Equal(t, 6, catalog.Len())
	for _, id := range []string{"flashlight", "keyboard_check", "log_viewer", "memory_monitor", "settings", LauncherID} {
		_, ok := catalog.Lookup(id)
		assert.True(t, ok, id)
	}
}

func TestLauncherListsAppsAndWraps(t *testing.T) {
	catalog, home, err := Builtins()
	require.NoError(t, err)
	sys := newFakeSystem()

	inst := home.New(sys).(*launcher)
	assert.Len(t, inst.apps, catalog.Len()-1)

	require.Equal(t, app.Continue, step(inst, 0))
	frame := sys.frame()
	assert.Contains(t, frame, "SLIME OS")
	assert.Contains(t, frame, "> Flashlight")
	assert.Contains(t, frame, "100KB free")
	assert.NotContains(t, frame, "> Launcher")

	sys.tap(keycode.UpArrow)
	step(inst, 1)
	assert.Equal(t, len(inst.apps)-1, inst.selected, "up from the top wraps to the bottom")

	sys.tap(keycode.DownArrow)
	step(inst, 2)
	assert.Zero(t, inst.selected, "down from the bottom wraps to the top")

	sys.tap(keycode.DownArrow)
	step(inst, 3)
	sys.tap(keycode.Enter)
	sig := step(inst, 4)
	assert.Equal(t, app.SignalLaunch, sig.Kind)
	assert.Equal(t, inst.apps[1].ID, sig.Target.ID)
}

func TestLauncherSkipsRedrawWhenIdle(t *testing.T) {
	_, home, err := Builtins()
	require.NoError(t, err)
	sys := newFakeSystem()
	inst := home.New(sys)

	step(inst, 0)
	step(inst, 1)
	step(inst, 2)

	assert.Equal(t, 1, sys.updates)
}

func TestLauncherWithEmptyCatalog(t *testing.T) {
	catalog, err := app.NewCatalog()
	require.NoError(t, err)
	sys := newFakeSystem()

	inst := Launcher(catalog).New(sys)
	assert.Equal(t, app.Continue, step(inst, 0))
	assert.Contains(t, sys.frame(), "NO APPS FOUND")
	assert.Equal(t, []types.Color{types.DarkRed}, sys.clears)
}

func TestFlashlightTogglesAndQuits(t *testing.T) {
	sys := newFakeSystem()
	inst := Flashlight().New(sys).(*flashlight)

	step(inst, 0)
	assert.Contains(t, sys.frame(), "FLASHLIGHT ON")

	sys.tap(keycode.Enter)
	step(inst, 1)
	assert.False(t, inst.on)
	step(inst, 2)
	assert.Contains(t, sys.frame(), "FLASHLIGHT OFF")

	sys.tap(keycode.Q)
	assert.Equal(t, app.Exit, step(inst, 3))
}

func TestKeyboardCheckRecordsNewPresses(t *testing.T) {
	sys := newFakeSystem()
	inst := KeyboardCheck().New(sys).(*keyboardCheck)

	step(inst, 0)
	assert.Contains(t, sys.frame(), "Waiting for keypress...")

	sys.hold(keycode.A)
	step(inst, 1)
	step(inst, 2)
	sys.hold(keycode.B)
	step(inst, 3)
	sys.release(keycode.A, keycode.B)
	step(inst, 4)
	sys.hold(keycode.A)
	step(inst, 5)

	assert.Equal(t, []keycode.Code{keycode.A, keycode.B, keycode.A}, inst.History())
	assert.Contains(t, sys.frame(), "A: 0x04")

	sys.tap(keycode.Escape)
	assert.Equal(t, app.Exit, step(inst, 6))
}

func TestKeyboardCheckCountsRepeatedTaps(t *testing.T) {
	sys := newFakeSystem()
	inst := KeyboardCheck().New(sys).(*keyboardCheck)

	sys.tap(keycode.A)
	step(inst, 0)
	step(inst, 1)
	sys.tap(keycode.A)
	step(inst, 2)
	step(inst, 3)

	assert.Equal(t, []keycode.Code{keycode.A, keycode.A}, inst.History())
	assert.Empty(t, sys.KeysPressed(keycode.A), "taps are consumed")
}

func TestKeyboardCheckKeepsBoundedHistory(t *testing.T) {
	sys := newFakeSystem()
	inst := KeyboardCheck().New(sys).(*keyboardCheck)

	for i := 0; i < keyHistorySize+5; i++ {
		sys.tap(keycode.A)
		step(inst, uint64(2*i))
		step(inst, uint64(2*i+1))
	}

	assert.Len(t, inst.History(), keyHistorySize)
}

func TestLogViewerPagesAndClears(t *testing.T) {
	sys := newFakeSystem()
	for i := 0; i < 40; i++ {
		sys.addLog("INFO", "line")
	}
	sys.addLog("ERROR", "a very long error message that will certainly need truncation")
	inst := LogViewer().New(sys).(*logViewer)

	step(inst, 0)
	frame := sys.frame()
	assert.Contains(t, frame, "41 messages")
	assert.Contains(t, frame, "E: a very long error message that wi...")
	assert.Len(t, inst.window(), logLinesPerPage)

	sys.tap(keycode.UpArrow)
	step(inst, 1)
	assert.Equal(t, logScrollStep, inst.scroll)
	assert.Contains(t, sys.frame(), "^ 3 more")

	sys.tap(keycode.DownArrow)
	sys.tap(keycode.DownArrow)
	step(inst, 2)
	assert.Zero(t, inst.scroll)

	sys.tap(keycode.C)
	step(inst, 3)
	require.Len(t, inst.logs, 1)
	assert.Equal(t, "Logs cleared by user", inst.logs[0].Message)

	sys.tap(keycode.Q)
	assert.Equal(t, app.Exit, step(inst, 4))
}

func TestLogViewerScrollStopsAtOldest(t *testing.T) {
	sys := newFakeSystem()
	for i := 0; i < 20; i++ {
		sys.addLog("INFO", "line")
	}
	inst := LogViewer().New(sys).(*logViewer)

	for i := 0; i < 5; i++ {
		sys.tap(keycode.UpArrow)
		step(inst, uint64(i))
	}

	assert.Equal(t, 20-logLinesPerPage, inst.scroll)
}

func TestLogViewerMemoryLine(t *testing.T) {
	sys := newFakeSystem()
	inst := LogViewer().New(sys).(*logViewer)

	sys.tap(keycode.M)
	step(inst, 0)

	require.NotEmpty(t, inst.logs)
	assert.Equal(t, "Memory", inst.logs[len(inst.logs)-1].Message)
}

func TestMemoryMonitorSamplesPeriodically(t *testing.T) {
	sys := newFakeSystem()
	inst := MemoryMonitor().New(sys).(*memoryMonitor)

	for i := uint64(0); i < 61; i++ {
		step(inst, i)
	}

	assert.Len(t, inst.history, 3)
	assert.Equal(t, 3, sys.updates)
	assert.Contains(t, sys.frame(), "Free:  100KB")

	sys.tap(keycode.Q)
	assert.Equal(t, app.Exit, step(inst, 61))
}

func TestSettingsAdjustAndSave(t *testing.T) {
	sys := newFakeSystem()
	inst := Settings().New(sys).(*settingsApp)

	assert.Equal(t, 150, inst.cpu)
	step(inst, 0)
	assert.Contains(t, sys.frame(), "150 MHz")

	sys.tap(keycode.RightArrow)
	step(inst, 1)
	assert.Equal(t, 175, inst.cpu)
	assert.Equal(t, "CPU: 175 MHz", inst.status)

	sys.tap(keycode.DownArrow)
	step(inst, 2)
	sys.tap(keycode.RightArrow)
	step(inst, 3)
	assert.Equal(t, 255, inst.display, "brightness clamps at 255")

	sys.tap(keycode.LeftArrow)
	step(inst, 4)
	assert.Equal(t, 245, inst.display)

	sys.tap(keycode.S)
	step(inst, 5)
	assert.Equal(t, "Settings saved!", inst.status)
	assert.Equal(t, 175, sys.store.Int(settings.KeyCPUFreqMHz, 0))
	assert.Equal(t, 245, sys.store.Int(settings.KeyDisplayBrightness, 0))

	sys.tap(keycode.Q)
	assert.Equal(t, app.Exit, step(inst, 6))
}

func TestSettingsStatusExpires(t *testing.T) {
	sys := newFakeSystem()
	inst := Settings().New(sys).(*settingsApp)

	sys.tap(keycode.RightArrow)
	step(inst, 0)
	for i := 0; i < statusSteps; i++ {
		step(inst, uint64(i+1))
	}

	assert.Empty(t, inst.status)
}

func TestNearestPreset(t *testing.T) {
	assert.Equal(t, 0, nearestPreset(10))
	assert.Equal(t, 4, nearestPreset(150))
	assert.Equal(t, 3, nearestPreset(131))
	assert.Equal(t, len(cpuPresets)-1, nearestPreset(999))
}
