package framebuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/SlimeOS/internal/shared/types"
)

func TestNewIsBlack(t *testing.T) {
	d := New(16, 8)
	w, h := d.Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, types.Black, d.At(0, 0))
	assert.Equal(t, types.Black, d.VisibleAt(15, 7))
}

func TestDrawingIsInvisibleUntilUpdate(t *testing.T) {
	d := New(8, 8)

	d.Clear(types.White)
	assert.Equal(t, types.White, d.At(3, 3))
	assert.Equal(t, types.Black, d.VisibleAt(3, 3))

	assert.NoError(t, d.Update())
	assert.Equal(t, types.White, d.VisibleAt(3, 3))
	assert.Equal(t, uint64(1), d.Flips())
}

func TestFillRectClips(t *testing.T) {
	d := New(8, 8)

	d.FillRect(6, 6, 10, 10, types.Red)
	d.FillRect(-4, -4, 2, 2, types.Green)

	assert.Equal(t, types.Red, d.At(7, 7))
	assert.Equal(t, types.Black, d.At(5, 5))
	assert.Equal(t, types.Black, d.At(0, 0))
}

func TestLine(t *testing.T) {
	d := New(8, 8)

	d.Line(0, 0, 7, 7, types.Yellow)
	for i := 0; i < 8; i++ {
		assert.Equal(t, types.Yellow, d.At(i, i))
	}
	assert.Equal(t, types.Black, d.At(0, 7))

	d.Line(7, 0, 0, 0, types.Red)
	assert.Equal(t, types.Red, d.At(4, 0))
}

func TestPixelOutOfBounds(t *testing.T) {
	d := New(4, 4)
	assert.NotPanics(t, func() {
		d.Pixel(-1, 0, types.White)
		d.Pixel(4, 4, types.White)
	})
	d.Pixel(2, 1, types.White)
	assert.Equal(t, types.White, d.At(2, 1))
}

func TestTextDrawsPixels(t *testing.T) {
	d := New(64, 32)

	d.Text("HI", 2, 2, 1, types.White)

	lit := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if d.At(x, y) == types.White {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestMeasureTextScales(t *testing.T) {
	d := New(64, 32)

	one := d.MeasureText("HELLO", 1)
	two := d.MeasureText("HELLO", 2)

	assert.Greater(t, one, 0)
	assert.Equal(t, one*2, two)
	assert.Zero(t, d.MeasureText("", 1))
}

func TestResetBlanksBothBuffers(t *testing.T) {
	d := New(4, 4)
	d.Clear(types.White)
	_ = d.Update()

	d.Reset()

	assert.Equal(t, types.Black, d.At(1, 1))
	assert.Equal(t, types.Black, d.VisibleAt(1, 1))
	assert.Equal(t, uint64(1), d.Resets())
}

func TestSnapshotIsACopy(t *testing.T) {
	d := New(4, 4)
	d.Clear(types.White)
	_ = d.Update()

	img := d.Snapshot()
	d.Reset()

	assert.Equal(t, types.White.RGBA(), img.RGBAAt(0, 0))
}
