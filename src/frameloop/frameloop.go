// Package frameloop drives begin/draw/present cycles on the render thread.
package frameloop

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"host-overlay/src/logutil"
)

// Scene is the part of an overlay the loop drives.
type Scene interface {
	BeginScene() error
	PresentScene() error
}

// Frame describes the frame being drawn.
type Frame struct {
	Index   uint64
	Elapsed time.Duration
	FPS     int
}

// DrawFunc records one frame's draw commands between begin and present.
type DrawFunc func(Frame) error

// StopReason says why Run returned.
type StopReason int

const (
	StoppedByContext StopReason = iota
	StoppedByDuration
	StoppedByRequest
	StoppedByError
)

func (r StopReason) String() string {
	switch r {
	case StoppedByContext:
		return "context"
	case StoppedByDuration:
		return "duration"
	case StoppedByRequest:
		return "request"
	case StoppedByError:
		return "error"
	default:
		return "unknown"
	}
}

// Stats summarizes a finished run.
type Stats struct {
	Frames  uint64
	Elapsed time.Duration
	Reason  StopReason
}

type Option func(*Loop)

// WithDuration stops the loop once d has elapsed. Zero runs until stopped.
func WithDuration(d time.Duration) Option {
	return func(l *Loop) { l.duration = d }
}

// WithFrameLimit caps the frame rate. Zero leaves pacing to the swap interval.
func WithFrameLimit(fps int) Option {
	return func(l *Loop) {
		if fps > 0 {
			l.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// Loop is a single-threaded frame coordinator. It must run on the thread that
// owns the GL context.
type Loop struct {
	scene    Scene
	draw     DrawFunc
	duration time.Duration
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
}

func New(scene Scene, draw DrawFunc, opts ...Option) *Loop {
	l := &Loop{scene: scene, draw: draw, now: time.Now, stop: make(chan struct{}, 1)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Stop asks a running loop to return after the current frame. Safe to call
// from any goroutine.
func (l *Loop) Stop() {
	select {
	case l.stop <- struct{}{}:
	default:
	}
}

// Run renders frames until ctx is done, the duration elapses, Stop is called
// or a frame fails.
func (l *Loop) Run(ctx context.Context) (Stats, error) {
	log := logutil.Logger()
	fps := NewFPSCounter(l.now)
	start := l.now()
	var stats Stats

	var tick <-chan time.Time
	if l.interval > 0 {
		t := time.NewTicker(l.interval)
		defer t.Stop()
		tick = t.C
	}

	finish := func(reason StopReason, err error) (Stats, error) {
		stats.Elapsed = l.now().Sub(start)
		stats.Reason = reason
		log.Info("frame loop stopped", "reason", reason.String(), "frames", stats.Frames, "elapsed", stats.Elapsed)
		return stats, err
	}

	for {
		select {
		case <-ctx.Done():
			return finish(StoppedByContext, nil)
		case <-l.stop:
			return finish(StoppedByRequest, nil)
		default:
		}

		elapsed := l.now().Sub(start)
		if l.duration > 0 && elapsed >= l.duration {
			return finish(StoppedByDuration, nil)
		}

		if err := l.scene.BeginScene(); err != nil {
			return finish(StoppedByError, errors.Wrapf(err, "frameloop: begin frame %d", stats.Frames))
		}
		frame := Frame{Index: stats.Frames, Elapsed: elapsed, FPS: fps.Tick()}
		if l.draw != nil {
			if err := l.draw(frame); err != nil {
				return finish(StoppedByError, errors.Wrapf(err, "frameloop: draw frame %d", frame.Index))
			}
		}
		if err := l.scene.PresentScene(); err != nil {
			return finish(StoppedByError, errors.Wrapf(err, "frameloop: present frame %d", frame.Index))
		}
		stats.Frames++

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}
}
