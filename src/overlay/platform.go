package overlay

import (
	"host-overlay/src/bridge"
	"host-overlay/src/wgl"
	"host-overlay/src/window"
)

// Platform bundles the native layers an Overlay drives.
type Platform struct {
	Windows window.System
	WGL     wgl.Driver
	GL      bridge.GL
}

// NativePlatform returns the platform implementation (Windows in this project).
func NativePlatform() (Platform, error) {
	ws, err := window.Native()
	if err != nil {
		return Platform{}, err
	}
	drv, err := wgl.Native()
	if err != nil {
		return Platform{}, err
	}
	gl, err := bridge.Native()
	if err != nil {
		return Platform{}, err
	}
	return Platform{Windows: ws, WGL: drv, GL: gl}, nil
}
