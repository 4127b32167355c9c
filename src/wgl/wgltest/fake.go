// Package wgltest provides a scriptable wgl.Driver for tests.
package wgltest

import (
	"host-overlay/src/wgl"
	"host-overlay/src/window"
)

// Driver fakes GDI and WGL. Every call is appended to *Trace, which tests
// may share with other fakes to check cross-component ordering.
type Driver struct {
	Trace *[]string

	NoDeviceSurface bool
	NoPixelFormat   bool
	FailSetFormat   bool
	FailCreate      bool
	FailMakeCurrent bool
	FailSwap        bool
	NoDescribe      bool

	// Extensions is returned by ExtensionString; HasExtensionString false
	// simulates a missing wglGetExtensionsStringEXT.
	Extensions         string
	HasExtensionString bool
	// Missing lists entry point names Proc must not resolve.
	Missing map[string]bool
	// RejectInterval makes wglSwapIntervalEXT return FALSE.
	RejectInterval bool
	// StuckInterval, when non-negative, is what wglGetSwapIntervalEXT
	// reports regardless of what was set.
	StuckInterval int

	Interval      int
	IntervalCalls int
	Current       wgl.Handle
	Released      bool
	Deleted       bool
	Swaps         int
}

// New returns a Driver that supports every step, including swap control.
func New() *Driver {
	return &Driver{
		Trace:              new([]string),
		Extensions:         "WGL_ARB_extensions_string WGL_EXT_swap_control WGL_ARB_pixel_format",
		HasExtensionString: true,
		Missing:            map[string]bool{},
		StuckInterval:      -1,
	}
}

// WithoutSwapControl drops WGL_EXT_swap_control from the extension list.
func (d *Driver) WithoutSwapControl() *Driver {
	d.Extensions = "WGL_ARB_extensions_string"
	return d
}

func (d *Driver) record(call string) { *d.Trace = append(*d.Trace, call) }

func (d *Driver) DeviceSurface(window.Handle) wgl.DeviceSurface {
	d.record("GetDC")
	if d.NoDeviceSurface {
		return 0
	}
	return 0xdc
}

func (d *Driver) ReleaseDeviceSurface(window.Handle, wgl.DeviceSurface) bool {
	d.record("ReleaseDC")
	d.Released = true
	return true
}

func (d *Driver) ChoosePixelFormat(wgl.DeviceSurface, wgl.PixelFormat) int {
	d.record("ChoosePixelFormat")
	if d.NoPixelFormat {
		return 0
	}
	return 7
}

func (d *Driver) SetPixelFormat(wgl.DeviceSurface, int, wgl.PixelFormat) bool {
	d.record("SetPixelFormat")
	return !d.FailSetFormat
}

func (d *Driver) DescribePixelFormat(wgl.DeviceSurface) (wgl.PixelFormat, bool) {
	if d.NoDescribe {
		return wgl.PixelFormat{}, false
	}
	pf := wgl.RequestedPixelFormat()
	pf.Index = 7
	pf.DepthBits = 24
	pf.StencilBits = 8
	return pf, true
}

func (d *Driver) CreateContext(wgl.DeviceSurface) wgl.Handle {
	d.record("wglCreateContext")
	if d.FailCreate {
		return 0
	}
	return 0x91
}

func (d *Driver) MakeCurrent(ds wgl.DeviceSurface, ctx wgl.Handle) bool {
	if ctx == 0 {
		d.record("wglMakeCurrent(nil)")
		d.Current = 0
		return true
	}
	d.record("wglMakeCurrent")
	if d.FailMakeCurrent {
		return false
	}
	d.Current = ctx
	return true
}

func (d *Driver) DeleteContext(wgl.Handle) bool {
	d.record("wglDeleteContext")
	d.Deleted = true
	return true
}

func (d *Driver) SwapLayerBuffers(wgl.DeviceSurface) bool {
	d.record("wglSwapLayerBuffers")
	if d.FailSwap {
		return false
	}
	d.Swaps++
	return true
}

func (d *Driver) ExtensionString() (string, bool) {
	return d.Extensions, d.HasExtensionString
}

func (d *Driver) Proc(name string) wgl.Proc {
	if d.Missing[name] {
		return nil
	}
	switch name {
	case "wglSwapIntervalEXT":
		return func(args ...uintptr) uintptr {
			d.IntervalCalls++
			if d.RejectInterval {
				return 0
			}
			d.Interval = int(args[0])
			return 1
		}
	case "wglGetSwapIntervalEXT":
		return func(...uintptr) uintptr {
			if d.StuckInterval >= 0 {
				return uintptr(d.StuckInterval)
			}
			return uintptr(d.Interval)
		}
	}
	return nil
}
