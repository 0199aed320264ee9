package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeSleepAdvances(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewFake(start)

	c.Sleep(3 * time.Second)

	assert.Equal(t, start.Add(3*time.Second), c.Now())
	assert.Equal(t, 3*time.Second, c.Slept())
}

func TestFakeAfterFuncFiresOnce(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := 0
	c.AfterFunc(time.Second, func() { fired++ })

	c.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, fired)

	c.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)

	c.Advance(time.Hour)
	assert.Equal(t, 1, fired)
}

func TestFakeTimerReset(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := 0
	timer := c.AfterFunc(time.Second, func() { fired++ })

	c.Advance(800 * time.Millisecond)
	assert.True(t, timer.Reset(time.Second))
	c.Advance(800 * time.Millisecond)
	assert.Equal(t, 0, fired)

	c.Advance(200 * time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestFakeTimerStop(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(2 * time.Second)
	assert.False(t, fired)
}
