package apps

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/settings"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

// fakeSystem is an app.System that records text and serves tapped keys
type fakeSystem struct {
	mu      sync.Mutex
	texts   []string
	clears  []types.Color
	updates int
	taps    map[keycode.Code]bool
	held    map[keycode.Code]bool
	logs    []app.LogEntry
	memory  app.MemoryInfo
	store   *settings.Store
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		taps:   make(map[keycode.Code]bool),
		held:   make(map[keycode.Code]bool),
		memory: app.MemoryInfo{Free: 100 << 10, Allocated: 28 << 10, Total: 128 << 10, PercentUsed: 21.9},
		store:  settings.NewMemory(),
	}
}

func (f *fakeSystem) tap(codes ...keycode.Code) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range codes {
		f.taps[c] = true
	}
}

func (f *fakeSystem) hold(codes ...keycode.Code) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range codes {
		f.held[c] = true
	}
}

func (f *fakeSystem) release(codes ...keycode.Code) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range codes {
		delete(f.held, c)
	}
}

// frame returns the text drawn since the last call
func (f *fakeSystem) frame() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := strings.Join(f.texts, "\n")
	f.texts = nil
	return out
}

func (f *fakeSystem) Width() int         { return 320 }
func (f *fakeSystem) Height() int        { return 304 }
func (f *fakeSystem) DeviceName() string { return "simulator" }

func (f *fakeSystem) Clear(c types.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears = append(f.clears, c)
}

func (f *fakeSystem) DrawRect(x, y, w, h int, c types.Color)     {}
func (f *fakeSystem) DrawLine(x1, y1, x2, y2 int, c types.Color) {}
func (f *fakeSystem) DrawPixel(x, y int, c types.Color)          {}

func (f *fakeSystem) DrawText(text string, x, y, scale int, c types.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
}

func (f *fakeSystem) MeasureText(text string, scale int) int { return len(text) * 6 * scale }

func (f *fakeSystem) Update() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return nil
}

func (f *fakeSystem) KeyPressed(code keycode.Code) bool {
	return f.KeysPressed(code)[code]
}

func (f *fakeSystem) KeysPressed(codes ...keycode.Code) map[keycode.Code]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[keycode.Code]bool, len(codes))
	for _, c := range codes {
		if f.taps[c] {
			out[c] = true
			delete(f.taps, c)
		}
		if f.held[c] {
			out[c] = true
		}
	}
	return out
}

func (f *fakeSystem) MemoryInfo() app.MemoryInfo { return f.memory }
func (f *fakeSystem) Log() app.Logger            { return &fakeLogger{sys: f} }
func (f *fakeSystem) Settings() app.Settings     { return f.store }

func (f *fakeSystem) RecentLogs(n int) []app.LogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 || n > len(f.logs) {
		n = len(f.logs)
	}
	out := make([]app.LogEntry, n)
	copy(out, f.logs[len(f.logs)-n:])
	return out
}

func (f *fakeSystem) addLog(level, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, app.LogEntry{Time: time.Now(), Level: level, Message: msg})
}

type fakeLogger struct {
	sys *fakeSystem
}

func (l *fakeLogger) Info(msg string, _ ...zap.Field)  { l.sys.addLog("INFO", msg) }
func (l *fakeLogger) Warn(msg string, _ ...zap.Field)  { l.sys.addLog("WARN", msg) }
func (l *fakeLogger) Error(msg string, _ ...zap.Field) { l.sys.addLog("ERROR", msg) }

func step(inst app.Instance, n uint64, pressed ...keycode.Code) app.Signal {
	sig, err := inst.Step(context.Background(), app.Snapshot{Step: n, Pressed: app.NewKeySet(pressed...)})
	if err != nil {
		panic(err)
	}
	return sig
}
