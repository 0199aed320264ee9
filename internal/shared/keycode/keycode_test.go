package keycode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHIDValues(t *testing.T) {
	assert.Equal(t, Code(0x04), A)
	assert.Equal(t, Code(0x14), Q)
	assert.Equal(t, Code(0x28), Enter)
	assert.Equal(t, Code(0x52), UpArrow)
	assert.Equal(t, Code(0x51), DownArrow)
	assert.Equal(t, Enter, Return)
	assert.Equal(t, LeftGUI, Command)
}

func TestString(t *testing.T) {
	assert.Equal(t, "UP_ARROW", UpArrow.String())
	assert.Equal(t, "LEFT_CONTROL", Control.String())
	assert.Equal(t, "KC_0xA0", Code(0xA0).String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Code
	}{
		{"enter", Enter},
		{"UP_ARROW", UpArrow},
		{"up", UpArrow},
		{"page-down", PageDown},
		{"esc", Escape},
		{" q ", Q},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("hyper")
	assert.Error(t, err)
}

func TestAllSortedAndKnown(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	for i, c := range all {
		assert.True(t, c.Known())
		if i > 0 {
			assert.Less(t, all[i-1], c)
		}
	}
	assert.Contains(t, all, Enter)
}

func TestIsLetter(t *testing.T) {
	assert.True(t, A.IsLetter())
	assert.True(t, Z.IsLetter())
	assert.False(t, One.IsLetter())
}
