package apps

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

const (
	memoryRefreshSteps = 30
	memoryHistorySize  = 64
)

// MemoryMonitor charts the kernel's free-memory estimate over time
func MemoryMonitor() app.Descriptor {
	return app.Descriptor{
		Name: "Memory Monitor",
		ID:   "memory_monitor",
		New: func(sys app.System) app.Instance {
			return &memoryMonitor{sys: sys}
		},
	}
}

type memoryMonitor struct {
	sys     app.System
	info    app.MemoryInfo
	history []uint64
}

func (m *memoryMonitor) Step(_ context.Context, snap app.Snapshot) (app.Signal, error) {
	if m.sys.KeyPressed(keycode.Q) {
		return app.Exit, nil
	}
	if snap.Step%memoryRefreshSteps != 0 {
		return app.Continue, nil
	}

	m.info = m.sys.MemoryInfo()
	m.history = append(m.history, m.info.Free)
	if len(m.history) > memoryHistorySize {
		m.history = m.history[len(m.history)-memoryHistorySize:]
	}
	return app.Continue, m.draw()
}

func (m *memoryMonitor) draw() error {
	s := m.sys
	s.Clear(colorMemBg)
	s.DrawText("Memory", 5, 5, 2, types.Yellow)

	y := 30
	s.DrawText(fmt.Sprintf("Free:  %dKB", m.info.Free/1024), 5, y, 1, types.Green)
	s.DrawText(fmt.Sprintf("Used:  %dKB", m.info.Allocated/1024), 5, y+12, 1, colorMuted)
	s.DrawText(fmt.Sprintf("Total: %dKB", m.info.Total/1024), 5, y+24, 1, colorMuted)
	s.DrawText(fmt.Sprintf("%.1f%% used", m.info.PercentUsed), 5, y+36, 1, colorMuted)

	barW := s.Width() - 10
	used := int(m.info.PercentUsed / 100 * float64(barW))
	s.DrawRect(5, y+52, barW, 8, colorDivider)
	s.DrawRect(5, y+52, max(used, 2), 8, types.Yellow)

	m.drawChart(5, y+72, barW, s.Height()-(y+72)-30)

	s.DrawText("[Q] Quit", 5, s.Height()-20, 1, colorDim)
	return s.Update()
}

// drawChart plots the free-memory history as vertical bars scaled to the
// largest sample
func (m *memoryMonitor) drawChart(x, y, w, h int) {
	if h <= 0 || len(m.history) == 0 {
		return
	}
	var peak uint64
	for _, v := range m.history {
		peak = max(peak, v)
	}
	if peak == 0 {
		return
	}
	step := max(w/memoryHistorySize, 1)
	for i, v := range m.history {
		bar := int(float64(v) / float64(peak) * float64(h))
		m.sys.DrawRect(x+i*step, y+h-bar, step, bar, types.Green)
	}
}
