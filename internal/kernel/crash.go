package kernel

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/kernel/watchdog"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/clock"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

const (
	// DefaultCrashHold is how long the crash screen stays up
	DefaultCrashHold = 3 * time.Second
	// FallbackCrashHold is used when the crash screen itself fails
	FallbackCrashHold = time.Second

	crashWrapColumns = 38
	crashMaxLines    = 5
	crashLineHeight  = 12
	unknownFault     = "unknown error"
)

var (
	crashText   = types.White
	crashDetail = types.Color{R: 255, G: 200, B: 200}
)

// CrashReport records one crash screen
type CrashReport struct {
	App      string
	Fault    string
	Lines    []string
	Rendered bool
	Held     time.Duration
}

// CrashHandler shows the fault screen and holds it while feeding the
// watchdog. It never panics.
type CrashHandler struct {
	screen   *screen
	watchdog *watchdog.Supervisor
	clock    clock.Clock
	logger   *zap.Logger
	hold     time.Duration

	mu      sync.Mutex
	reports []CrashReport
}

func newCrashHandler(s *screen, wd *watchdog.Supervisor, c clock.Clock, logger *zap.Logger, hold time.Duration) *CrashHandler {
	if hold <= 0 {
		hold = DefaultCrashHold
	}
	return &CrashHandler{screen: s, watchdog: wd, clock: c, logger: logger, hold: hold}
}

// Handle renders the crash screen for appName and blocks for the hold
// duration. A rendering failure is logged and followed by a shorter hold.
func (h *CrashHandler) Handle(appName, fault string) {
	if strings.TrimSpace(fault) == "" {
		fault = unknownFault
	}
	report := CrashReport{App: appName, Fault: fault, Lines: wrapFault(fault)}

	hold := h.hold
	if err := h.render(report); err != nil {
		h.logger.Error("Failed to show crash screen", zap.String("app", appName), zap.Error(err))
		hold = FallbackCrashHold
	} else {
		report.Rendered = true
	}
	report.Held = h.wait(hold)

	h.mu.Lock()
	h.reports = append(h.reports, report)
	h.mu.Unlock()
}

// Reports returns every crash screen shown so far
func (h *CrashHandler) Reports() []CrashReport {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]CrashReport, len(h.reports))
	copy(out, h.reports)
	return out
}

func (h *CrashHandler) render(r CrashReport) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if e, ok := v.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("crash screen panic: %v", v)
		}
	}()

	s := h.screen
	s.Reset()
	s.Clear(types.DarkRed)
	s.DrawText("APP CRASHED", 10, 10, 2, crashText)
	s.DrawText("App: "+r.App, 10, 40, 1, crashText)
	s.DrawText("Error:", 10, 60, 1, crashText)

	y := 80
	for _, line := range r.Lines {
		s.DrawText(line, 10, y, 1, crashDetail)
		y += crashLineHeight
	}
	s.DrawText("Returning to launcher...", 10, s.Height()-30, 1, types.Yellow)
	return s.Update()
}

// wait blocks for d, feeding the watchdog before each slice so no single
// sleep outlasts the feed interval
func (h *CrashHandler) wait(d time.Duration) time.Duration {
	start := h.clock.Now()
	deadline := start.Add(d)
	interval := h.watchdog.FeedInterval()
	for {
		h.watchdog.Feed()
		remaining := deadline.Sub(h.clock.Now())
		if remaining <= 0 {
			return h.clock.Now().Sub(start)
		}
		h.clock.Sleep(min(interval, remaining))
	}
}

// wrapFault splits text into lines of at most crashWrapColumns, breaking
// at the last space when there is one, and keeps the first crashMaxLines
func wrapFault(text string) []string {
	var lines []string
	for text != "" && len(lines) < crashMaxLines {
		if len(text) <= crashWrapColumns {
			lines = append(lines, text)
			break
		}
		cut := strings.LastIndexByte(text[:crashWrapColumns], ' ')
		if cut <= 0 {
			cut = crashWrapColumns
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		lines = append(lines, text[:cut])
		text = strings.TrimLeft(text[cut:], " ")
	}
	return lines
}
