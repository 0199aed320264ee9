package apps

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/settings"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

var cpuPresets = []int{50, 100, 125, 133, 150, 175, 200, 225, 250}

const (
	brightnessStep = 10
	statusSteps    = 60
	savedSteps     = 90
)

// Settings edits the persistent device settings
func Settings() app.Descriptor {
	return app.Descriptor{
		Name: "Settings",
		ID:   "settings",
		New: func(sys app.System) app.Instance {
			store := sys.Settings()
			return &settingsApp{
				sys:     sys,
				cpu:     store.Int(settings.KeyCPUFreqMHz, 150),
				display: store.Int(settings.KeyDisplayBrightness, 255),
				kbd:     store.Int(settings.KeyKeyboardBrightness, 80),
				dirty:   true,
			}
		},
	}
}

var settingNames = []string{"CPU Frequency", "Display Brightness", "Keyboard Brightness"}

type settingsApp struct {
	sys      app.System
	selected int
	cpu      int
	display  int
	kbd      int

	status      string
	statusTimer int
	dirty       bool
}

func (a *settingsApp) Step(_ context.Context, _ app.Snapshot) (app.Signal, error) {
	if a.statusTimer > 0 {
		a.statusTimer--
		if a.statusTimer == 0 {
			a.status = ""
			a.dirty = true
		}
	}

	keys := a.sys.KeysPressed(keycode.UpArrow, keycode.DownArrow, keycode.LeftArrow, keycode.RightArrow, keycode.S, keycode.Q)
	if keys[keycode.UpArrow] && a.selected > 0 {
		a.selected--
		a.dirty = true
	}
	if keys[keycode.DownArrow] && a.selected < len(settingNames)-1 {
		a.selected++
		a.dirty = true
	}
	if keys[keycode.LeftArrow] && a.adjust(-1) {
		a.dirty = true
	}
	if keys[keycode.RightArrow] && a.adjust(1) {
		a.dirty = true
	}
	if keys[keycode.S] {
		a.save()
		a.dirty = true
	}
	if keys[keycode.Q] {
		return app.Exit, nil
	}

	if !a.dirty {
		return app.Continue, nil
	}
	a.dirty = false
	return app.Continue, a.draw()
}

// adjust moves the selected setting by one notch and reports a change
func (a *settingsApp) adjust(delta int) bool {
	switch a.selected {
	case 0:
		i := nearestPreset(a.cpu) + delta
		if i < 0 || i >= len(cpuPresets) {
			return false
		}
		a.cpu = cpuPresets[i]
		a.flash(fmt.Sprintf("CPU: %d MHz", a.cpu), statusSteps)
	case 1:
		v := clampByte(a.display + delta*brightnessStep)
		if v == a.display {
			return false
		}
		a.display = v
		a.flash(fmt.Sprintf("Display: %d", v), statusSteps)
	case 2:
		v := clampByte(a.kbd + delta*brightnessStep)
		if v == a.kbd {
			return false
		}
		a.kbd = v
		a.flash(fmt.Sprintf("Keyboard: %d", v), statusSteps)
	default:
		return false
	}
	return true
}

func (a *settingsApp) save() {
	store := a.sys.Settings()
	store.Set(settings.KeyCPUFreqMHz, a.cpu)
	store.Set(settings.KeyDisplayBrightness, a.display)
	store.Set(settings.KeyKeyboardBrightness, a.kbd)
	if err := store.Save(); err != nil {
		a.sys.Log().Error("Failed to save settings", zap.Error(err))
		a.flash("Save failed!", savedSteps)
		return
	}
	a.sys.Log().Info("Settings saved")
	a.flash("Settings saved!", savedSteps)
}

func (a *settingsApp) flash(msg string, steps int) {
	a.status = msg
	a.statusTimer = steps
}

func (a *settingsApp) draw() error {
	s := a.sys
	s.Clear(types.DarkBlue)
	s.DrawText("Settings", 5, 5, 2, types.Yellow)

	const boxHeight = 45
	span := s.Width() - 20
	y := 35
	for i, name := range settingNames {
		var value string
		var fill float64
		switch i {
		case 0:
			value = fmt.Sprintf("%d MHz", a.cpu)
			fill = float64(a.cpu-50) / 200
		case 1:
			value = fmt.Sprintf("%d", a.display)
			fill = float64(a.display) / 255
		case 2:
			value = fmt.Sprintf("%d", a.kbd)
			fill = float64(a.kbd) / 255
		}

		box, nameColor, valueColor, barColor := colorPanel, types.White, types.Green, colorBar
		if i == a.selected {
			box, nameColor, valueColor, barColor = types.Yellow, types.Black, colorNavy, colorBlue
		}
		s.DrawRect(3, y-2, s.Width()-6, boxHeight, box)
		s.DrawText(name, 8, y+2, 1, nameColor)
		s.DrawText(value, 8, y+15, 1, valueColor)
		s.DrawRect(8, y+30, max(int(fill*float64(span)), 2), 8, barColor)
		y += boxHeight + 8
	}

	if a.status != "" {
		statusY := s.Height() - 50
		s.DrawRect(0, statusY-2, s.Width(), 16, colorStatus)
		s.DrawText(a.status, 5, statusY, 1, types.White)
	}

	controls := s.Height() - 30
	s.DrawText("[Up/Down] Select", 5, controls, 1, colorDim)
	s.DrawText("[Left/Right] Adjust  [S] Save  [Q] Quit", 5, controls+12, 1, colorDim)
	return s.Update()
}

// nearestPreset returns the index of the preset closest to mhz
func nearestPreset(mhz int) int {
	best := 0
	for i, p := range cpuPresets {
		if abs(p-mhz) < abs(cpuPresets[best]-mhz) {
			best = i
		}
	}
	return best
}

func clampByte(v int) int {
	return max(0, min(255, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
