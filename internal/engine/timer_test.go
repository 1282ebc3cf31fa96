package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_Advance(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	timer := NewTimer(20, clock.Now)

	clock.now = clock.now.Add(125 * time.Millisecond)
	timer.Advance()
	assert.Equal(t, 2, timer.Ticks)
	assert.InDelta(t, 0.5, timer.Partial, 1e-9)

	clock.now = clock.now.Add(25 * time.Millisecond)
	timer.Advance()
	assert.Equal(t, 1, timer.Ticks, "остаток копится между кадрами")
	assert.InDelta(t, 0.0, timer.Partial, 1e-9)
}

func TestTimer_ClampsLongPause(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	timer := NewTimer(20, clock.Now)

	clock.now = clock.now.Add(5 * time.Second)
	timer.Advance()
	assert.Equal(t, 20, timer.Ticks, "учитывается не больше секунды")

	fast := NewTimer(1000, clock.Now)
	clock.now = clock.now.Add(time.Second)
	fast.Advance()
	assert.Equal(t, maxTicksPerUpdate, fast.Ticks)
}

func TestTimer_ClockGoesBack(t *testing.T) {
	clock := &fakeClock{now: time.Unix(10, 0)}
	timer := NewTimer(20, clock.Now)

	clock.now = clock.now.Add(-time.Second)
	timer.Advance()
	assert.Equal(t, 0, timer.Ticks)
	assert.Equal(t, 0.0, timer.Partial)
}

func TestTimer_TimeScale(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	timer := NewTimer(20, clock.Now)
	timer.TimeScale = 2

	clock.now = clock.now.Add(100 * time.Millisecond)
	timer.Advance()
	assert.Equal(t, 4, timer.Ticks)
}
