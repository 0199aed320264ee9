package apps

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

const LauncherID = "launcher"

const (
	launcherListTop = 80
	launcherRowStep = 20
)

// Launcher lists every catalog entry except itself and launches the
// selected one
func Launcher(catalog *app.Catalog) app.Descriptor {
	return app.Descriptor{
		Name: "Launcher",
		ID:   LauncherID,
		New: func(sys app.System) app.Instance {
			return &launcher{sys: sys, apps: catalog.Sorted(LauncherID), dirty: true}
		},
	}
}

type launcher struct {
	sys      app.System
	apps     []app.Descriptor
	selected int
	dirty    bool
}

func (l *launcher) OnEnter() {
	l.sys.Log().Info("Launcher found apps", zap.Int("count", len(l.apps)))
}

func (l *launcher) Step(_ context.Context, _ app.Snapshot) (app.Signal, error) {
	if len(l.apps) == 0 {
		return app.Continue, l.drawEmpty()
	}

	keys := l.sys.KeysPressed(keycode.UpArrow, keycode.DownArrow, keycode.Enter)
	if keys[keycode.UpArrow] {
		l.selected--
		if l.selected < 0 {
			l.selected = len(l.apps) - 1
		}
		l.dirty = true
	}
	if keys[keycode.DownArrow] {
		l.selected++
		if l.selected >= len(l.apps) {
			l.selected = 0
		}
		l.dirty = true
	}
	if keys[keycode.Enter] {
		target := l.apps[l.selected]
		l.sys.Log().Info("Launching", zap.String("app", target.ID))
		return app.Launch(target), nil
	}

	if l.dirty {
		l.dirty = false
		if err := l.draw(); err != nil {
			return app.Continue, err
		}
	}
	return app.Continue, nil
}

// Selected returns the highlighted app
func (l *launcher) Selected() app.Descriptor {
	return l.apps[l.selected]
}

func (l *launcher) drawEmpty() error {
	l.sys.Clear(types.DarkRed)
	l.sys.DrawText("NO APPS FOUND", 20, 20, 2, types.White)
	l.sys.DrawText("Register apps in the catalog", 20, 60, 1, types.White)
	return l.sys.Update()
}

func (l *launcher) draw() error {
	s := l.sys
	s.Clear(types.DarkBlue)
	s.DrawText("SLIME OS", 10, 10, 2, types.Yellow)

	mem := s.MemoryInfo()
	s.DrawText(s.DeviceName(), 10, 40, 1, colorMuted)
	s.DrawText(fmt.Sprintf("%dKB free", mem.Free/1024), 10, 55, 1, colorMuted)

	y := launcherListTop
	for i, d := range l.apps {
		color := types.White
		if i == l.selected {
			s.DrawRect(5, y-2, s.Width()-10, 16, types.Yellow)
			color = types.Black
		}
		s.DrawText("> "+d.DisplayName(), 10, y, 1, color)
		y += launcherRowStep
		if y > s.Height()-60 {
			break
		}
	}

	bottom := s.Height() - 40
	s.DrawText("[Up/Down] Select", 10, bottom, 1, colorMuted)
	s.DrawText("[Enter] Launch", 10, bottom+15, 1, colorMuted)
	return s.Update()
}
