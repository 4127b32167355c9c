package wgl

import (
	"github.com/pkg/errors"

	"host-overlay/src/logutil"
	"host-overlay/src/window"
)

type options struct {
	format       PixelFormat
	requireVSync bool
}

// Option configures NewContext.
type Option func(*options)

// WithPixelFormat overrides the requested pixel format.
func WithPixelFormat(pf PixelFormat) Option {
	return func(o *options) { o.format = pf }
}

// WithRequireVSync makes a missing swap interval capability fatal.
func WithRequireVSync() Option {
	return func(o *options) { o.requireVSync = true }
}

// Context is a WGL rendering context attached to a borrowed window.
type Context struct {
	drv    Driver
	win    window.Handle
	ds     DeviceSurface
	glrc   Handle
	swap   SwapControl
	format PixelFormat
	closed bool
}

// NewContext acquires the window's device context, negotiates a pixel
// format, creates a rendering context and makes it current on the calling
// thread. Resources acquired before a failing step are released.
func NewContext(drv Driver, w window.Handle, opts ...Option) (*Context, error) {
	o := options{format: RequestedPixelFormat()}
	for _, opt := range opts {
		opt(&o)
	}
	log := logutil.Logger()

	ds := drv.DeviceSurface(w)
	if ds == 0 {
		return nil, errors.Wrapf(ErrDeviceSurfaceUnavailable, "hwnd %#x", uintptr(w))
	}

	index := drv.ChoosePixelFormat(ds, o.format)
	if index == 0 {
		drv.ReleaseDeviceSurface(w, ds)
		return nil, ErrNoMatchingPixelFormat
	}
	if !drv.SetPixelFormat(ds, index, o.format) {
		drv.ReleaseDeviceSurface(w, ds)
		return nil, errors.Wrapf(ErrPixelFormatApplyFailed, "format %d", index)
	}

	glrc := drv.CreateContext(ds)
	if glrc == 0 {
		drv.ReleaseDeviceSurface(w, ds)
		return nil, ErrContextCreateFailed
	}
	if !drv.MakeCurrent(ds, glrc) {
		drv.DeleteContext(glrc)
		drv.ReleaseDeviceSurface(w, ds)
		return nil, ErrContextActivationFailed
	}

	c := &Context{drv: drv, win: w, ds: ds, glrc: glrc}

	c.format = o.format
	c.format.Index = index
	if desc, ok := drv.DescribePixelFormat(ds); ok {
		c.format = desc
		log.Debug("pixel format negotiated", "format", desc.String())
	} else {
		log.Debug("pixel format description unavailable", "format", index)
	}

	swap, err := DetectSwapControl(drv)
	if err != nil {
		if o.requireVSync {
			c.Close()
			return nil, err
		}
		log.Warn("swap interval control unavailable, vsync left at driver default", "err", err)
	}
	c.swap = swap

	return c, nil
}

// MakeCurrent binds the context to the calling thread.
func (c *Context) MakeCurrent() error {
	if c.closed || !c.drv.MakeCurrent(c.ds, c.glrc) {
		return ErrContextActivationFailed
	}
	return nil
}

// SwapBuffers presents the back buffer of the main plane.
func (c *Context) SwapBuffers() error {
	if c.closed || !c.drv.SwapLayerBuffers(c.ds) {
		return ErrSwapFailed
	}
	return nil
}

// SetVSync turns vsync on or off. Without swap interval control it fails
// with ErrCapabilityUnsupported and leaves the driver untouched.
func (c *Context) SetVSync(on bool) error {
	if !c.swap.Supported() {
		return ErrCapabilityUnsupported
	}
	return c.swap.SetEnabled(on)
}

// VSync reports the current vsync state; ok is false when unsupported.
func (c *Context) VSync() (on, ok bool) { return c.swap.Current() }

// VSyncSupported reports whether swap interval control is available.
func (c *Context) VSyncSupported() bool { return c.swap.Supported() }

// PixelFormat returns the negotiated pixel format.
func (c *Context) PixelFormat() PixelFormat { return c.format }

// Window returns the window the context renders into.
func (c *Context) Window() window.Handle { return c.win }

// Close unbinds, deletes the rendering context and releases the device
// context, in that order. Failures are logged and otherwise ignored.
// Close is a no-op after the first call.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	log := logutil.Logger()

	if !c.drv.MakeCurrent(0, 0) {
		log.Warn("releasing current rendering context failed")
	}
	if !c.drv.DeleteContext(c.glrc) {
		log.Warn("deleting rendering context failed", "hglrc", uintptr(c.glrc))
	}
	if !c.drv.ReleaseDeviceSurface(c.win, c.ds) {
		log.Warn("releasing device context failed", "hdc", uintptr(c.ds))
	}
	c.glrc, c.ds = 0, 0
}
