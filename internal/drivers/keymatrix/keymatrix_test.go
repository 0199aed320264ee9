package keymatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
)

func TestHeldKeyStaysPressed(t *testing.T) {
	m := New()
	m.Press(keycode.A)

	assert.True(t, m.Key(keycode.A))
	assert.True(t, m.Key(keycode.A))

	m.Release(keycode.A)
	assert.False(t, m.Key(keycode.A))
}

func TestTapIsConsumedOnce(t *testing.T) {
	m := New()
	m.Tap(keycode.Enter)

	keys := m.Keys([]keycode.Code{keycode.Enter, keycode.Q})
	assert.True(t, keys[keycode.Enter])
	assert.False(t, keys[keycode.Q])

	assert.False(t, m.Key(keycode.Enter))
}

func TestKeysWithDuplicateCodes(t *testing.T) {
	m := New()
	m.Tap(keycode.Q)

	keys := m.Keys([]keycode.Code{keycode.Q, keycode.Q})
	assert.True(t, keys[keycode.Q])
}

func TestPressedDoesNotConsume(t *testing.T) {
	m := New()
	m.Tap(keycode.DownArrow)
	m.Press(keycode.LeftShift)

	assert.Equal(t, []keycode.Code{keycode.DownArrow, keycode.LeftShift}, m.Pressed())
	assert.True(t, m.Key(keycode.DownArrow))
}

func TestClearState(t *testing.T) {
	m := New()
	m.Tap(keycode.Enter)
	m.Press(keycode.A)

	m.ClearState()

	assert.Empty(t, m.Pressed())
	assert.False(t, m.Key(keycode.Enter))
	assert.False(t, m.Key(keycode.A))
}

func TestRepeatedTapsReadAsSeparatePresses(t *testing.T) {
	m := New()
	all := keycode.All()

	m.Tap(keycode.A)
	assert.True(t, m.Keys(all)[keycode.A])
	assert.Empty(t, m.Pressed(), "reading the tap clears it")
	assert.False(t, m.Keys(all)[keycode.A])

	m.Tap(keycode.A)
	assert.True(t, m.Keys(all)[keycode.A])
}
