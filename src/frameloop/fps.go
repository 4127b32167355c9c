package frameloop

import "time"

// FPSCounter counts ticks over the trailing second.
type FPSCounter struct {
	now   func() time.Time
	ticks []time.Time
}

func NewFPSCounter(now func() time.Time) *FPSCounter {
	if now == nil {
		now = time.Now
	}
	return &FPSCounter{now: now}
}

// Tick records a frame and returns how many frames fell within the last second,
// this one included.
func (c *FPSCounter) Tick() int {
	t := c.now()
	cutoff := t.Add(-time.Second)
	keep := 0
	for keep < len(c.ticks) && !c.ticks[keep].After(cutoff) {
		keep++
	}
	c.ticks = append(c.ticks[keep:], t)
	return len(c.ticks)
}
