//go:build !windows

package tray

import "host-overlay/src/logutil"

// Start returns a tray that never becomes ready; the overlay only exists on
// Windows.
func Start(opts Options) *Tray {
	t := newTray(opts)
	close(t.done)
	logutil.Logger().Debug("tray not supported on this platform")
	return t
}
