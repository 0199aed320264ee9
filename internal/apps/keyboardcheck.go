package apps

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

const keyHistorySize = 15

// KeyboardCheck shows the name and code of every newly pressed key
func KeyboardCheck() app.Descriptor {
	return app.Descriptor{
		Name: "Keyboard Check",
		ID:   "keyboard_check",
		New: func(sys app.System) app.Instance {
			return &keyboardCheck{sys: sys, held: app.KeySet{}, dirty: true}
		},
	}
}

type keyboardCheck struct {
	sys     app.System
	held    app.KeySet
	history []keycode.Code
	dirty   bool
}

// Step reads keys through the system rather than the snapshot so that taps
// are consumed: a tap shows as pressed for one step, and a second tap of
// the same key is a new press.
func (k *keyboardCheck) Step(_ context.Context, _ app.Snapshot) (app.Signal, error) {
	pressed := app.KeySet{}
	for code, down := range k.sys.KeysPressed(keycode.All()...) {
		if down {
			pressed[code] = struct{}{}
		}
	}
	if pressed.Has(keycode.Escape) {
		return app.Exit, nil
	}

	for _, code := range pressed.Codes() {
		if !k.held.Has(code) {
			k.push(code)
		}
	}
	k.held = pressed

	if !k.dirty {
		return app.Continue, nil
	}
	k.dirty = false
	return app.Continue, k.draw()
}

func (k *keyboardCheck) push(code keycode.Code) {
	k.history = append(k.history, code)
	if len(k.history) > keyHistorySize {
		k.history = k.history[len(k.history)-keyHistorySize:]
	}
	k.dirty = true
}

// History returns the remembered presses, oldest first
func (k *keyboardCheck) History() []keycode.Code {
	return k.history
}

func (k *keyboardCheck) draw() error {
	s := k.sys
	s.Clear(colorKeysBg)
	s.DrawText("Keyboard Check", 5, 5, 2, types.Yellow)
	s.DrawText("Press any key to see keycode", 5, 30, 1, colorMuted)
	s.DrawText("[Esc] Quit", 5, 42, 1, colorDim)

	y := 62
	if len(k.history) == 0 {
		s.DrawText("Waiting for keypress...", 10, y, 1, colorDim)
		return s.Update()
	}

	s.DrawText("Recent keys:", 5, y, 1, colorCyan)
	y += 15
	for _, code := range k.history {
		name := code.String()
		if len(name) > 20 {
			name = name[:17] + "..."
		}
		s.DrawText(fmt.Sprintf("%s: 0x%02X", name, uint8(code)), 10, y, 1, types.White)
		y += 12
		if y > s.Height()-20 {
			break
		}
	}
	return s.Update()
}
