package kernel

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/id"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

var nopLogger = zap.NewNop()

// session is the app.System lent to one instance. Once retired every call
// is inert, so an instance that leaked its facade cannot touch the drivers
// after it has been torn down.
type session struct {
	id      id.InstanceID
	desc    app.Descriptor
	screen  *screen
	loader  *Loader
	logger  *zap.Logger
	ring    *logging.Ring
	config  app.Settings
	device  string
	stats   *monitoring.StepStats
	retired atomic.Bool
}

var _ app.System = (*session)(nil)

func (k *Kernel) newSession(desc app.Descriptor) *session {
	sid := id.NewInstanceID()
	return &session{
		id:     sid,
		desc:   desc,
		screen: k.screen,
		loader: k.loader,
		logger: k.logger.Named(desc.ID).With(zap.String("instance", sid.Short())),
		ring:   k.ring,
		config: k.settings,
		device: k.profile.Name(),
		stats:  monitoring.NewStepStats(monitoring.DefaultStepWindow),
	}
}

func (s *session) retire() {
	s.retired.Store(true)
}

func (s *session) live() bool {
	return !s.retired.Load()
}

func (s *session) Width() int {
	if !s.live() {
		return 0
	}
	return s.screen.Width()
}

func (s *session) Height() int {
	if !s.live() {
		return 0
	}
	return s.screen.Height()
}

func (s *session) DeviceName() string {
	return s.device
}

func (s *session) Clear(c types.Color) {
	if s.live() {
		s.screen.Clear(c)
	}
}

func (s *session) DrawRect(x, y, w, h int, c types.Color) {
	if s.live() {
		s.screen.DrawRect(x, y, w, h, c)
	}
}

func (s *session) DrawLine(x1, y1, x2, y2 int, c types.Color) {
	if s.live() {
		s.screen.DrawLine(x1, y1, x2, y2, c)
	}
}

func (s *session) DrawPixel(x, y int, c types.Color) {
	if s.live() {
		s.screen.DrawPixel(x, y, c)
	}
}

func (s *session) DrawText(text string, x, y, scale int, c types.Color) {
	if s.live() {
		s.screen.DrawText(text, x, y, scale, c)
	}
}

func (s *session) MeasureText(text string, scale int) int {
	if !s.live() {
		return 0
	}
	return s.screen.MeasureText(text, scale)
}

func (s *session) Update() error {
	if !s.live() {
		return nil
	}
	return s.screen.Update()
}

func (s *session) KeyPressed(code keycode.Code) bool {
	if !s.live() {
		return false
	}
	in, err := s.loader.Input()
	if err != nil {
		panic(err)
	}
	return in.Key(code)
}

func (s *session) KeysPressed(codes ...keycode.Code) map[keycode.Code]bool {
	if !s.live() {
		return make(map[keycode.Code]bool, len(codes))
	}
	in, err := s.loader.Input()
	if err != nil {
		panic(err)
	}
	return in.Keys(codes)
}

func (s *session) MemoryInfo() app.MemoryInfo {
	return s.loader.Memory()
}

func (s *session) Log() app.Logger {
	if !s.live() {
		return nopLogger
	}
	return s.logger
}

// RecentLogs returns up to n buffered entries, oldest first
func (s *session) RecentLogs(n int) []app.LogEntry {
	if s.ring == nil || !s.live() {
		return nil
	}
	entries := s.ring.Recent(n)
	out := make([]app.LogEntry, len(entries))
	for i, e := range entries {
		msg := e.Message
		if e.Fields != "" {
			msg += " " + e.Fields
		}
		out[i] = app.LogEntry{Time: e.Time, Level: e.Level, Logger: e.Logger, Message: msg}
	}
	return out
}

func (s *session) Settings() app.Settings {
	return s.config
}
