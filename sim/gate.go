package sim

import "time"

// Gate lets a frame through only once Interval has passed since the last one.
type Gate struct {
	Interval time.Duration
	last     time.Time
}

// NewGate starts timing at now. fps <= 0 falls back to TARGET_FPS.
func NewGate(fps float64, now time.Time) *Gate {
	if fps <= 0 {
		fps = TARGET_FPS
	}
	return &Gate{
		Interval: time.Duration(float64(time.Second) / fps),
		last:     now,
	}
}

// Advance reports the seconds elapsed since the last accepted frame, or false
// if the frame is too early and must be skipped.
func (g *Gate) Advance(now time.Time) (float32, bool) {
	elapsed := now.Sub(g.last)
	if elapsed < g.Interval {
		return 0, false
	}
	g.last = now
	return float32(elapsed.Seconds()), true
}

// Remaining is how long to wait before Advance would succeed.
func (g *Gate) Remaining(now time.Time) time.Duration {
	r := g.Interval - now.Sub(g.last)
	if r < 0 {
		return 0
	}
	return r
}
