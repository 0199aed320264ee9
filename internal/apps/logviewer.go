package apps

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

const (
	logLinesPerPage = 16
	logScrollStep   = 3
	logLineHeight   = 12
	logMessageWidth = 36
)

// LogViewer pages through the kernel's recent log entries
func LogViewer() app.Descriptor {
	return app.Descriptor{
		Name: "Log Viewer",
		ID:   "log_viewer",
		New: func(sys app.System) app.Instance {
			return &logViewer{sys: sys, dirty: true}
		},
	}
}

type logViewer struct {
	sys    app.System
	logs   []app.LogEntry
	scroll int
	since  time.Time
	dirty  bool
}

func (v *logViewer) OnCleanup() {
	v.logs = nil
}

func (v *logViewer) Step(_ context.Context, _ app.Snapshot) (app.Signal, error) {
	v.refresh()

	keys := v.sys.KeysPressed(keycode.UpArrow, keycode.DownArrow, keycode.C, keycode.M, keycode.Q)
	if keys[keycode.UpArrow] {
		maxScroll := max(0, len(v.logs)-logLinesPerPage)
		v.scroll = min(v.scroll+logScrollStep, maxScroll)
		v.dirty = true
	}
	if keys[keycode.DownArrow] {
		v.scroll = max(0, v.scroll-logScrollStep)
		v.dirty = true
	}
	if keys[keycode.C] {
		v.since = time.Now()
		v.scroll = 0
		v.sys.Log().Info("Logs cleared by user")
		v.refresh()
		v.dirty = true
	}
	if keys[keycode.M] {
		mem := v.sys.MemoryInfo()
		v.sys.Log().Info("Memory",
			zap.Uint64("free_kb", mem.Free/1024),
			zap.Uint64("used_kb", mem.Allocated/1024),
			zap.String("percent_used", fmt.Sprintf("%.1f", mem.PercentUsed)))
		v.refresh()
	}
	if keys[keycode.Q] {
		return app.Exit, nil
	}

	if !v.dirty {
		return app.Continue, nil
	}
	v.dirty = false
	return app.Continue, v.draw()
}

// refresh reloads entries newer than the last clear
func (v *logViewer) refresh() {
	all := v.sys.RecentLogs(0)
	visible := all[:0:0]
	for _, e := range all {
		if !e.Time.Before(v.since) {
			visible = append(visible, e)
		}
	}
	if len(visible) != len(v.logs) {
		v.dirty = true
	}
	v.logs = visible
}

// window returns the entries on screen: the newest page, shifted back by
// the scroll offset
func (v *logViewer) window() []app.LogEntry {
	end := len(v.logs) - v.scroll
	start := max(0, end-logLinesPerPage)
	return v.logs[start:end]
}

func (v *logViewer) draw() error {
	s := v.sys
	s.Clear(types.Black)
	s.DrawText("SYSTEM LOGS", 5, 5, 1, types.Yellow)
	s.DrawText(fmt.Sprintf("%d messages", len(v.logs)), 5, 18, 1, colorMuted)

	y := 35
	for _, e := range v.window() {
		msg := e.Message
		if len(msg) > logMessageWidth {
			msg = msg[:logMessageWidth-3] + "..."
		}
		level := "I"
		if e.Level != "" {
			level = e.Level[:1]
		}
		s.DrawText(level+": "+msg, 5, y, 1, levelColor(e.Level))
		y += logLineHeight
		if y > s.Height()-40 {
			break
		}
	}

	controls := s.Height() - 42
	s.DrawText("[Up/Down] Scroll", 5, controls, 1, colorMuted)
	s.DrawText("[C] Clear  [M] Mem", 5, controls+12, 1, colorMuted)
	s.DrawText("[Q] Quit", 5, controls+24, 1, colorMuted)
	if v.scroll > 0 {
		s.DrawText(fmt.Sprintf("^ %d more", v.scroll), s.Width()-80, controls, 1, types.Yellow)
	}
	return s.Update()
}

func levelColor(level string) types.Color {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return types.Red
	case "WARN":
		return types.Yellow
	case "DEBUG":
		return types.Gray
	default:
		return types.White
	}
}
