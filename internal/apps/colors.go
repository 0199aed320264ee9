package apps

import "github.com/GriffinCanCode/SlimeOS/internal/shared/types"

var (
	colorMuted   = types.Color{R: 200, G: 200, B: 200}
	colorDim     = types.Color{R: 150, G: 150, B: 150}
	colorPanel   = types.Color{R: 32, G: 32, B: 64}
	colorNavy    = types.Color{R: 0, G: 0, B: 128}
	colorBlue    = types.Color{R: 0, G: 0, B: 255}
	colorBar     = types.Color{R: 0, G: 128, B: 0}
	colorCyan    = types.Color{R: 0, G: 255, B: 255}
	colorKeysBg  = types.Color{R: 0, G: 16, B: 32}
	colorStatus  = types.Color{R: 0, G: 128, B: 0}
	colorMemBg   = types.Color{R: 0, G: 32, B: 0}
	colorDivider = types.Color{R: 100, G: 100, B: 100}
)
