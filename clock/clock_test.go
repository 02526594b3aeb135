package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/clock"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/utils/config"
)

func TestClock(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 3598, Total: 3, Interval: 1})
	assert.Equal(t, int32(3598), c.InternalStep)
	assert.Equal(t, 3598., c.T)
	assert.Equal(t, "00:59:58", c.String())
	assert.False(t, c.Done())

	c.Next()
	c.Next()
	assert.Equal(t, "01:00:00", c.String())
	h, m, s := c.GetHourMinuteSecond()
	assert.Equal(t, 1, h)
	assert.Equal(t, 0, m)
	assert.Equal(t, 0., s)
	assert.False(t, c.Done())

	c.Next()
	assert.True(t, c.Done())

	c.Init()
	assert.Equal(t, int32(3598), c.InternalStep)
}

func TestClockInterval(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 2, Total: 1, Interval: 0.5})
	assert.Equal(t, 1., c.T)
	c.Next()
	assert.Equal(t, 1.5, c.T)
	assert.True(t, c.Done())
}
