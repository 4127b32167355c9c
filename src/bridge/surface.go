package bridge

import (
	"github.com/gogpu/gg"
	"github.com/pkg/errors"

	"host-overlay/src/logutil"
)

// Surface is a gg canvas presented into a wrapped framebuffer.
// It is not safe for concurrent use and must be closed before the GL
// context it was created under.
type Surface struct {
	dev       *Device
	target    BackendRenderTarget
	origin    Origin
	colorType ColorType
	staging   Staging
	pixmap    *gg.Pixmap
	canvas    *gg.Context
	closed    bool
}

// SurfaceOption configures the canvas of a new Surface.
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	renderer gg.Renderer
}

// WithRenderer rasterizes canvas paths with r instead of gg's software renderer.
func WithRenderer(r gg.Renderer) SurfaceOption {
	return func(o *surfaceOptions) { o.renderer = r }
}

// NewSurface wraps the framebuffer bound to the current context as a
// width x height RGBA surface with a bottom-left origin.
func NewSurface(gl GL, width, height int, opts ...SurfaceOption) (*Surface, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(ErrInterfaceCreateFailed, err.Error())
	}

	dev, err := NewDevice(gl)
	if err != nil {
		return nil, err
	}

	fb := FramebufferInfo{
		ID:        gl.FramebufferBinding(),
		Format:    FormatRGBA8,
		Protected: false,
	}

	target, err := NewBackendRenderTarget(dev, width, height, 0, 0, fb)
	if err != nil {
		return nil, err
	}

	return WrapBackendRenderTarget(dev, target, OriginBottomLeft, ColorTypeRGBA8888, opts...)
}

// WrapBackendRenderTarget allocates the staging texture and the canvas for target.
func WrapBackendRenderTarget(dev *Device, target BackendRenderTarget, origin Origin, ct ColorType, opts ...SurfaceOption) (*Surface, error) {
	if ct != ColorTypeRGBA8888 {
		return nil, errors.Wrapf(ErrSurfaceWrapFailed, "color type %d", ct)
	}

	staging, err := dev.gl.CreateStaging(target.Width, target.Height)
	if err != nil {
		return nil, errors.Wrap(ErrSurfaceWrapFailed, err.Error())
	}

	var so surfaceOptions
	for _, opt := range opts {
		opt(&so)
	}
	pm := gg.NewPixmap(target.Width, target.Height)
	ggOpts := []gg.ContextOption{gg.WithPixmap(pm)}
	if so.renderer != nil {
		ggOpts = append(ggOpts, gg.WithRenderer(so.renderer))
	}
	s := &Surface{
		dev:       dev,
		target:    target,
		origin:    origin,
		colorType: ct,
		staging:   staging,
		pixmap:    pm,
		canvas:    gg.NewContext(target.Width, target.Height, ggOpts...),
	}
	logutil.Logger().Debug("surface wrapped",
		"fbo", target.Framebuffer.ID, "width", target.Width, "height", target.Height, "origin", origin)
	return s, nil
}

// Canvas returns the drawing context. Its contents reach the framebuffer on Flush.
func (s *Surface) Canvas() *gg.Context { return s.canvas }

// Target returns the wrapped render target.
func (s *Surface) Target() BackendRenderTarget { return s.target }

// Pixels returns the canvas pixels, premultiplied RGBA, top row first.
func (s *Surface) Pixels() []byte { return s.pixmap.Data() }

// Clear resets every pixel to transparent black.
func (s *Surface) Clear() {
	s.canvas.ClearPath()
	s.canvas.Clear()
}

// Flush uploads the canvas and submits it to the wrapped framebuffer.
func (s *Surface) Flush() error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if err := s.canvas.FlushGPU(); err != nil {
		return errors.Wrap(err, "bridge: canvas flush")
	}
	w, h := s.target.Width, s.target.Height
	if err := s.dev.gl.Upload(s.staging, w, h, s.pixmap.Data()); err != nil {
		return errors.Wrap(err, "bridge: upload")
	}
	// gg rows run top-down, GL rows bottom-up.
	flip := s.origin == OriginBottomLeft
	if err := s.dev.gl.Blit(s.staging, s.target.Framebuffer.ID, w, h, flip); err != nil {
		return errors.Wrap(err, "bridge: blit")
	}
	s.dev.gl.Flush()
	return nil
}

// Close releases the staging texture and the canvas. Later calls do nothing.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.dev.gl.DeleteStaging(s.staging)
	if err := s.canvas.Close(); err != nil {
		logutil.Logger().Warn("closing canvas failed", "err", err)
	}
}
