// Package tray shows a notification area icon for the running overlay with
// its status and a stop command.
package tray

import (
	"sync"
	"time"

	"host-overlay/src/logutil"
)

const tooltipLimit = 127 // NOTIFYICONDATA.szTip holds 128 UTF-16 units

type Options struct {
	Title  string
	OnStop func()
	// UpdateEvery limits how often Update reaches the shell. Default one second.
	UpdateEvery time.Duration
	Now         func() time.Time
}

// Tray is a running notification area icon. Update and Close may be called
// from any goroutine.
type Tray struct {
	opts  Options
	ready chan struct{}
	done  chan struct{}

	mu     sync.Mutex
	th     throttle
	closed bool

	// set by the platform once the icon exists
	show func(tooltip, status string)
	quit func()
}

func newTray(opts Options) *Tray {
	if opts.Title == "" {
		opts.Title = "host-overlay"
	}
	if opts.UpdateEvery <= 0 {
		opts.UpdateEvery = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Tray{
		opts:  opts,
		ready: make(chan struct{}),
		done:  make(chan struct{}),
		th:    throttle{every: opts.UpdateEvery},
		quit:  func() {},
	}
}

func (t *Tray) stop() {
	logutil.Logger().Info("stop requested from tray")
	if t.opts.OnStop != nil {
		t.opts.OnStop()
	}
}

// Update shows s in the tooltip and the status item, at most once per
// UpdateEvery. Calls before the icon is ready are dropped.
func (t *Tray) Update(s Status) {
	select {
	case <-t.ready:
	default:
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || !t.th.allow(t.opts.Now()) {
		return
	}
	text := s.String()
	t.show(truncate(t.opts.Title+"\n"+text, tooltipLimit), text)
}

// Close removes the icon and waits briefly for its loop to end.
func (t *Tray) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()

	t.quit()
	select {
	case <-t.done:
	case <-time.After(2 * time.Second):
		logutil.Logger().Warn("tray loop did not exit")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
