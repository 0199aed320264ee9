package types

import (
	"fmt"
	"image/color"
)

// Color is an RGB triple, each channel in [0,255]
type Color struct {
	R uint8 `json:"r" yaml:"r" toml:"r"`
	G uint8 `json:"g" yaml:"g" toml:"g"`
	B uint8 `json:"b" yaml:"b" toml:"b"`
}

// Common colors
var (
	Black    = Color{0, 0, 0}
	White    = Color{255, 255, 255}
	Red      = Color{255, 0, 0}
	Green    = Color{0, 255, 0}
	Yellow   = Color{255, 255, 0}
	Gray     = Color{128, 128, 128}
	DarkGray = Color{32, 32, 32}
	DarkRed  = Color{128, 0, 0}
	DarkBlue = Color{0, 0, 64}
)

// RGB builds a Color from its channels
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA converts to an opaque image/color value
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// FromRGBA drops the alpha channel
func FromRGBA(c color.RGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// String returns the color as #rrggbb
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
