package hal

import "github.com/GriffinCanCode/SlimeOS/internal/shared/types"

// Display draws into an off-screen buffer. Nothing is visible until Update.
type Display interface {
	// Size returns the panel dimensions in pixels
	Size() (width, height int)
	// Clear fills the whole buffer with c
	Clear(c types.Color)
	// FillRect fills the rectangle at (x, y) with size w×h
	FillRect(x, y, w, h int, c types.Color)
	Line(x1, y1, x2, y2 int, c types.Color)
	Pixel(x, y int, c types.Color)
	// Text draws str with its top-left corner at (x, y), magnified by scale
	Text(str string, x, y, scale int, c types.Color)
	// MeasureText returns the rendered width of str in pixels
	MeasureText(str string, scale int) int
	// Update flips the buffer to the screen
	Update() error
	// Reset blanks both the buffer and the visible frame and drops any
	// cached drawing state
	Reset()
}
