package tray

import (
	"fmt"
	"time"
)

// Status is what the tray shows about the running overlay.
type Status struct {
	Target  string
	Frames  uint64
	FPS     int
	Elapsed time.Duration
}

func (s Status) String() string {
	target := s.Target
	if target == "" {
		target = "no host window"
	}
	return fmt.Sprintf("%s | %d fps | %d frames | %s", target, s.FPS, s.Frames, s.Elapsed.Truncate(time.Second))
}

// throttle lets one event through per interval.
type throttle struct {
	every time.Duration
	last  time.Time
}

func (t *throttle) allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.every {
		return false
	}
	t.last = now
	return true
}
