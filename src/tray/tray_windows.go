//go:build windows

package tray

import (
	"runtime"

	"github.com/getlantern/systray"

	"host-overlay/src/logutil"
)

// Start runs the icon's message loop on its own locked OS thread and
// returns immediately.
func Start(opts Options) *Tray {
	t := newTray(opts)
	t.quit = systray.Quit
	go func() {
		runtime.LockOSThread()
		defer close(t.done)
		systray.Run(t.onReady, func() {
			logutil.Logger().Debug("tray exited")
		})
	}()
	return t
}

func (t *Tray) onReady() {
	if icon, err := Icon(); err == nil {
		systray.SetIcon(icon)
	} else {
		logutil.Logger().Warn("tray icon unavailable", "err", err)
	}
	systray.SetTitle(t.opts.Title)
	systray.SetTooltip(t.opts.Title)

	status := systray.AddMenuItem("Starting...", "Overlay status")
	status.Disable()
	systray.AddSeparator()
	stop := systray.AddMenuItem("Stop overlay", "Stop drawing and exit")

	t.show = func(tooltip, text string) {
		systray.SetTooltip(tooltip)
		status.SetTitle(text)
	}
	close(t.ready)

	go func() {
		for {
			select {
			case <-stop.ClickedCh:
				t.stop()
			case <-t.done:
				return
			}
		}
	}()
}
