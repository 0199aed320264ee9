// Package framebuffer is an in-memory double-buffered display driver.
//
// It backs the simulator profile and the kernel tests. Drawing goes into a
// back buffer; Update copies it to the front buffer, which is what the
// debug server serves as the current screen. Text is rendered with
// tinyfont's proggy bitmap font, magnified by whole-pixel blocks.
package framebuffer

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

// Display is a hal.Display backed by two RGBA images
type Display struct {
	mu     sync.RWMutex
	width  int
	height int
	back   *image.RGBA
	front  *image.RGBA
	font   *tinyfont.Font
	ascent int
	flips  uint64
	resets uint64
}

// New creates a black width×height display
func New(width, height int) *Display {
	bounds := image.Rect(0, 0, width, height)
	d := &Display{
		width:  width,
		height: height,
		back:   image.NewRGBA(bounds),
		front:  image.NewRGBA(bounds),
		font:   &proggy.TinySZ8pt7b,
	}
	d.ascent = int(d.font.YAdvance) * 3 / 4
	d.fill(d.back, bounds, types.Black)
	d.fill(d.front, bounds, types.Black)
	return d
}

// Size returns the panel dimensions
func (d *Display) Size() (int, int) {
	return d.width, d.height
}

// Clear fills the back buffer
func (d *Display) Clear(c types.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fill(d.back, d.back.Bounds(), c)
}

// FillRect fills a clipped rectangle in the back buffer
func (d *Display) FillRect(x, y, w, h int, c types.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fill(d.back, image.Rect(x, y, x+w, y+h), c)
}

// Line draws a Bresenham line
func (d *Display) Line(x1, y1, x2, y2 int, c types.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rgba := c.RGBA()
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		d.set(x1, y1, rgba)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// Pixel sets one pixel; out-of-bounds writes are dropped
func (d *Display) Pixel(x, y int, c types.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.set(x, y, c.RGBA())
}

// Text renders str with its top-left corner at (x, y)
func (d *Display) Text(str string, x, y, scale int, c types.Color) {
	if scale < 1 {
		scale = 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	target := &scaled{d: d, ox: x, oy: y, scale: scale}
	tinyfont.WriteLine(target, d.font, 0, int16(d.ascent), str, c.RGBA())
}

// MeasureText returns the advance width of str in pixels
func (d *Display) MeasureText(str string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	_, outbox := tinyfont.LineWidth(d.font, str)
	return int(outbox) * scale
}

// LineHeight returns the font's line advance in pixels at scale
func (d *Display) LineHeight(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return int(d.font.YAdvance) * scale
}

// Update copies the back buffer to the front buffer
func (d *Display) Update() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	copy(d.front.Pix, d.back.Pix)
	d.flips++
	return nil
}

// Reset blanks both buffers
func (d *Display) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fill(d.back, d.back.Bounds(), types.Black)
	d.fill(d.front, d.front.Bounds(), types.Black)
	d.resets++
}

// At reads a pixel from the back buffer
func (d *Display) At(x, y int) types.Color {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return types.FromRGBA(d.back.RGBAAt(x, y))
}

// VisibleAt reads a pixel from the front buffer
func (d *Display) VisibleAt(x, y int) types.Color {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return types.FromRGBA(d.front.RGBAAt(x, y))
}

// Snapshot returns a copy of the visible frame
func (d *Display) Snapshot() *image.RGBA {
	d.mu.RLock()
	defer d.mu.RUnlock()
	img := image.NewRGBA(d.front.Bounds())
	copy(img.Pix, d.front.Pix)
	return img
}

// Flips returns how many times Update was called
func (d *Display) Flips() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.flips
}

// Resets returns how many times Reset was called
func (d *Display) Resets() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.resets
}

func (d *Display) fill(img *image.RGBA, r image.Rectangle, c types.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(img, r, &image.Uniform{C: c.RGBA()}, image.Point{}, draw.Src)
}

// set writes to the back buffer; caller holds mu
func (d *Display) set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	d.back.SetRGBA(x, y, c)
}

// scaled adapts the back buffer to tinyfont, magnifying each font pixel
// into a scale×scale block anchored at (ox, oy)
type scaled struct {
	d      *Display
	ox, oy int
	scale  int
}

var _ drivers.Displayer = (*scaled)(nil)

func (s *scaled) Size() (int16, int16) {
	return int16(s.d.width / s.scale), int16(s.d.height / s.scale)
}

func (s *scaled) SetPixel(x, y int16, c color.RGBA) {
	px := s.ox + int(x)*s.scale
	py := s.oy + int(y)*s.scale
	for dy := 0; dy < s.scale; dy++ {
		for dx := 0; dx < s.scale; dx++ {
			s.d.set(px+dx, py+dy, c)
		}
	}
}

func (s *scaled) Display() error {
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
