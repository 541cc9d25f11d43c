package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_Advance(t *testing.T) {
	start := time.Unix(1000, 0)
	fps := 75.0
	g := NewGate(fps, start)
	assert.Equal(t, time.Duration(float64(time.Second)/fps), g.Interval)
	assert.Equal(t, 13333333*time.Nanosecond, g.Interval)

	_, ok := g.Advance(start.Add(5 * time.Millisecond))
	assert.False(t, ok)
	_, ok = g.Advance(start.Add(13 * time.Millisecond))
	assert.False(t, ok)

	dt, ok := g.Advance(start.Add(20 * time.Millisecond))
	assert.True(t, ok)
	assert.InDelta(t, 0.020, dt, 1e-6)

	_, ok = g.Advance(start.Add(25 * time.Millisecond))
	assert.False(t, ok, "gate must measure from the last accepted frame")

	dt, ok = g.Advance(start.Add(120 * time.Millisecond))
	assert.True(t, ok)
	assert.InDelta(t, 0.100, dt, 1e-6)
}

func TestGate_Remaining(t *testing.T) {
	start := time.Unix(1000, 0)
	g := NewGate(50, start)

	assert.Equal(t, 20*time.Millisecond, g.Remaining(start))
	assert.Equal(t, 5*time.Millisecond, g.Remaining(start.Add(15*time.Millisecond)))
	assert.Zero(t, g.Remaining(start.Add(time.Second)))
}

func TestNewGate_DefaultRate(t *testing.T) {
	g := NewGate(0, time.Now())
	assert.Equal(t, NewGate(TARGET_FPS, time.Now()).Interval, g.Interval)
}
