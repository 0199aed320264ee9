package apps

import (
	"context"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

// Flashlight toggles the whole screen between white and black
func Flashlight() app.Descriptor {
	return app.Descriptor{
		Name: "Flashlight",
		ID:   "flashlight",
		New: func(sys app.System) app.Instance {
			return &flashlight{sys: sys, on: true}
		},
	}
}

type flashlight struct {
	sys app.System
	on  bool
}

func (f *flashlight) OnEnter() {
	f.sys.Log().Info("Flashlight starting")
}

func (f *flashlight) Step(_ context.Context, _ app.Snapshot) (app.Signal, error) {
	if err := f.draw(); err != nil {
		return app.Continue, err
	}

	keys := f.sys.KeysPressed(keycode.Enter, keycode.Q)
	if keys[keycode.Enter] {
		f.on = !f.on
	}
	if keys[keycode.Q] {
		return app.Exit, nil
	}
	return app.Continue, nil
}

func (f *flashlight) draw() error {
	s := f.sys
	hint := types.White
	if f.on {
		s.Clear(types.White)
		s.DrawText("FLASHLIGHT ON", 20, 20, 3, types.Black)
		hint = types.Gray
	} else {
		s.Clear(types.Black)
		s.DrawText("FLASHLIGHT OFF", 20, 20, 3, types.White)
	}
	s.DrawText("[Enter] Toggle", 20, 100, 1, hint)
	s.DrawText("[Q] Quit", 20, 120, 1, hint)
	return s.Update()
}
