package kernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/SlimeOS/internal/hal"
)

func TestLoaderBuildsDriversOnce(t *testing.T) {
	profile := newTestProfile()
	l := NewLoader(profile, nil)

	assert.False(t, l.DisplayLoaded())
	assert.False(t, l.InputLoaded())

	d1, err := l.Display()
	require.NoError(t, err)
	d2, err := l.Display()
	require.NoError(t, err)
	assert.Same(t, d1, d2)

	_, err = l.Input()
	require.NoError(t, err)
	_, err = l.Input()
	require.NoError(t, err)

	assert.Equal(t, 1, profile.displays)
	assert.Equal(t, 1, profile.inputs)
	assert.True(t, l.DisplayLoaded())
	assert.True(t, l.InputLoaded())
}

func TestLoaderWrapsFailures(t *testing.T) {
	profile := newTestProfile()
	profile.displayErr = hal.ErrNoDisplay
	profile.inputErr = errors.New("i2c timeout")
	l := NewLoader(profile, nil)

	_, err := l.Display()
	var die *DriverInitError
	require.ErrorAs(t, err, &die)
	assert.Equal(t, "display", die.Driver)
	assert.ErrorIs(t, err, hal.ErrNoDisplay)

	_, err = l.Input()
	require.ErrorAs(t, err, &die)
	assert.Equal(t, "input", die.Driver)
	assert.Contains(t, err.Error(), "i2c timeout")

	assert.False(t, l.DisplayLoaded())
}

func TestLoaderReclaimRefreshesEstimate(t *testing.T) {
	heap := &fakeHeap{allocated: 100, reserved: 400}
	l := NewLoader(newTestProfile(), nil).WithMemory(heap.probe, heap.reclaim)

	before := l.Memory()
	after := l.Reclaim()

	assert.Equal(t, 1, heap.Reclaims())
	assert.Equal(t, uint64(300), before.Free)
	assert.Equal(t, uint64(350), after.Free)
	assert.Equal(t, after, l.LastMemory())
}

func TestLoaderUsesMemoryBudget(t *testing.T) {
	profile := newTestProfile()
	profile.caps.MemoryBudget = 1000
	heap := &fakeHeap{allocated: 250, reserved: 1 << 20}
	l := NewLoader(profile, nil).WithMemory(heap.probe, heap.reclaim)

	info := l.Memory()
	assert.Equal(t, uint64(1000), info.Total)
	assert.Equal(t, uint64(750), info.Free)
	assert.InDelta(t, 25.0, info.PercentUsed, 0.001)
}
