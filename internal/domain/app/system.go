package app

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

// System is the capability-restricted kernel facade lent to one instance.
// Coordinates are relative to the app area below the toolbar.
type System interface {
	Width() int
	Height() int
	DeviceName() string

	Clear(c types.Color)
	DrawRect(x, y, w, h int, c types.Color)
	DrawLine(x1, y1, x2, y2 int, c types.Color)
	DrawPixel(x, y int, c types.Color)
	DrawText(text string, x, y, scale int, c types.Color)
	MeasureText(text string, scale int) int
	Update() error

	KeyPressed(code keycode.Code) bool
	KeysPressed(codes ...keycode.Code) map[keycode.Code]bool

	MemoryInfo() MemoryInfo
	Log() Logger
	RecentLogs(n int) []LogEntry
	Settings() Settings
}

// Logger is the log surface apps get: info, warn, and error only
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// Settings is persistent key/value configuration
type Settings interface {
	Int(key string, def int) int
	Set(key string, value any)
	Save() error
}

// MemoryInfo is the kernel's current heap estimate
type MemoryInfo struct {
	Free        uint64  `json:"free"`
	Allocated   uint64  `json:"allocated"`
	Total       uint64  `json:"total"`
	PercentUsed float64 `json:"percent_used"`
}

// LogEntry is one buffered log line
type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Logger  string    `json:"logger,omitempty"`
	Message string    `json:"message"`
}

// KeySet is a set of pressed keys
type KeySet map[keycode.Code]struct{}

// NewKeySet builds a set from codes
func NewKeySet(codes ...keycode.Code) KeySet {
	s := make(KeySet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether code is pressed
func (s KeySet) Has(code keycode.Code) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the pressed keys in ascending order
func (s KeySet) Codes() []keycode.Code {
	out := make([]keycode.Code, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Snapshot is the read-only system state handed to each Step
type Snapshot struct {
	InstanceID string
	Step       uint64
	FreeBytes  uint64
	Pressed    KeySet
}
