package kernel

import (
	"strconv"
	"sync"

	"github.com/GriffinCanCode/SlimeOS/internal/hal"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

const (
	// ToolbarHeight is the strip reserved at the top of the panel
	ToolbarHeight = 16
	// toolbarRefreshFrames is how often the free-memory figure is resampled
	toolbarRefreshFrames = 30
	toolbarTitle         = "SLIME OS"
)

// screen draws into the app area below the toolbar and paints the toolbar
// on every flip. Driver failures surface as a *DriverInitError panic, which
// the step boundary treats as fatal.
type screen struct {
	loader  *Loader
	profile hal.Profile
	toolbar bool

	mu       sync.Mutex
	frame    int
	lastFree uint64
	sampled  bool
}

func newScreen(loader *Loader, profile hal.Profile, toolbar bool) *screen {
	return &screen{loader: loader, profile: profile, toolbar: toolbar}
}

func (s *screen) display() hal.Display {
	d, err := s.loader.Display()
	if err != nil {
		panic(err)
	}
	return d
}

func (s *screen) offset() int {
	if s.toolbar {
		return ToolbarHeight
	}
	return 0
}

// size returns the full panel size, preferring the declared capabilities
func (s *screen) size() (int, int) {
	caps := s.profile.Capabilities()
	if caps.Width > 0 && caps.Height > 0 {
		return caps.Width, caps.Height
	}
	return s.display().Size()
}

func (s *screen) Width() int {
	w, _ := s.size()
	return w
}

// Height excludes the toolbar
func (s *screen) Height() int {
	_, h := s.size()
	return max(h-s.offset(), 0)
}

// Clear fills the app area only
func (s *screen) Clear(c types.Color) {
	w, h := s.size()
	off := s.offset()
	s.display().FillRect(0, off, w, h-off, c)
}

func (s *screen) DrawRect(x, y, w, h int, c types.Color) {
	s.display().FillRect(x, y+s.offset(), w, h, c)
}

func (s *screen) DrawLine(x1, y1, x2, y2 int, c types.Color) {
	off := s.offset()
	s.display().Line(x1, y1+off, x2, y2+off, c)
}

func (s *screen) DrawPixel(x, y int, c types.Color) {
	s.display().Pixel(x, y+s.offset(), c)
}

func (s *screen) DrawText(text string, x, y, scale int, c types.Color) {
	s.display().Text(text, x, y+s.offset(), scale, c)
}

func (s *screen) MeasureText(text string, scale int) int {
	return s.display().MeasureText(text, scale)
}

// Update paints the toolbar and flips
func (s *screen) Update() error {
	d := s.display()
	if s.toolbar {
		s.drawToolbar(d)
	}
	return d.Update()
}

// Reset blanks the panel if the display exists. It never builds the
// display, so resetting before the first app draws costs nothing.
func (s *screen) Reset() {
	if !s.loader.DisplayLoaded() {
		return
	}
	s.display().Reset()
	s.mu.Lock()
	s.frame = 0
	s.mu.Unlock()
}

func (s *screen) drawToolbar(d hal.Display) {
	s.mu.Lock()
	s.frame++
	if !s.sampled || s.frame >= toolbarRefreshFrames {
		s.lastFree = s.loader.Memory().Free
		s.sampled = true
		s.frame = 0
	}
	free := s.lastFree
	s.mu.Unlock()

	w, _ := s.size()
	d.FillRect(0, 0, w, ToolbarHeight, types.DarkGray)
	d.Text(toolbarTitle, 2, 2, 1, types.Yellow)

	mem := strconv.FormatUint(free/1024, 10) + "KB"
	d.Text(mem, w-d.MeasureText(mem, 1)-2, 2, 1, types.Green)
}
