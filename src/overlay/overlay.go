// Package overlay attaches a drawing surface to a host application's
// overlay window and sequences its frame lifecycle:
//
//	New -> Init -> StartupRenderer -> (BeginScene, draw..., PresentScene)* -> Close
//
// An Overlay is single-threaded. Every call, from StartupRenderer to Close,
// MUST come from the goroutine that started the renderer, locked to its OS
// thread with runtime.LockOSThread.
package overlay

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/pkg/errors"

	"host-overlay/src/bridge"
	"host-overlay/src/fonts"
	"host-overlay/src/logutil"
	"host-overlay/src/wgl"
	"host-overlay/src/window"
)

var (
	ErrNoRenderTarget     = errors.New("overlay: no render target, start the renderer first")
	ErrNoContext          = errors.New("overlay: no rendering context")
	ErrNotAttached        = errors.New("overlay: not attached to a host window")
	ErrRendererActive     = errors.New("overlay: renderer already started")
	ErrTornDown           = errors.New("overlay: closed")
	ErrWindowChanged      = errors.New("overlay: host window changed while rendering")
	ErrWindowGone         = errors.New("overlay: host window no longer exists")
	ErrDrawFailed         = errors.New("overlay: draw failed")
	ErrInvalidStrokeWidth = errors.New("overlay: stroke width must be positive")
	ErrUnsupportedPaint   = errors.New("overlay: paint not supported for shape")
)

// windowGoneError is a swap failure on a host window that no longer exists.
// It matches both ErrWindowGone and the swap error.
type windowGoneError struct {
	hwnd  window.Handle
	cause error
}

func (e *windowGoneError) Error() string {
	return errors.Wrapf(e.cause, "%s (hwnd %#x)", ErrWindowGone, uintptr(e.hwnd)).Error()
}

func (e *windowGoneError) Is(target error) bool { return target == ErrWindowGone }

func (e *windowGoneError) Cause() error { return e.cause }

func (e *windowGoneError) Unwrap() error { return e.cause }

// State is the lifecycle position of an Overlay.
type State int

const (
	StateCreated State = iota
	StateAttached
	StateRendererReady
	StateSceneBegun
	StateScenePresented
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateAttached:
		return "attached"
	case StateRendererReady:
		return "renderer-ready"
	case StateSceneBegun:
		return "scene-begun"
	case StateScenePresented:
		return "scene-presented"
	case StateTornDown:
		return "torn-down"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) rendering() bool {
	return s >= StateRendererReady && s < StateTornDown
}

// VSyncMode selects the swap interval applied when the renderer starts.
type VSyncMode int

const (
	VSyncDefault VSyncMode = iota // leave the driver setting alone
	VSyncOn
	VSyncOff
)

// DefaultWidth and DefaultHeight size the drawing surface.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

type options struct {
	platform     *Platform
	targets      []window.Target
	width        int
	height       int
	vsync        VSyncMode
	requireVSync bool
	loadFont     fonts.Loader
	renderer     gg.Renderer
}

// Option configures New.
type Option func(*options)

// WithPlatform replaces the native platform, mainly for tests.
func WithPlatform(p Platform) Option {
	return func(o *options) { o.platform = &p }
}

// WithTargets replaces the host windows searched by Init.
func WithTargets(targets ...window.Target) Option {
	return func(o *options) { o.targets = targets }
}

// WithSurfaceSize sets the drawing surface size.
func WithSurfaceSize(width, height int) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithVSync sets the swap interval applied by StartupRenderer.
func WithVSync(mode VSyncMode) Option {
	return func(o *options) { o.vsync = mode }
}

// WithRequireVSync makes missing or failing swap interval control fatal.
func WithRequireVSync() Option {
	return func(o *options) { o.requireVSync = true }
}

// WithFontLoader replaces how the font family is resolved.
func WithFontLoader(l fonts.Loader) Option {
	return func(o *options) { o.loadFont = l }
}

// WithCanvasRenderer rasterizes shapes with r instead of gg's software renderer.
func WithCanvasRenderer(r gg.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// Overlay draws onto a borrowed host window.
type Overlay struct {
	opts    options
	face    text.Face
	state   State
	hwnd    window.Handle
	target  window.Target
	ctx     *wgl.Context
	surface *bridge.Surface
}

// New loads the font and returns an Overlay in StateCreated. No native
// resources are touched.
func New(family string, size float64, opts ...Option) (*Overlay, error) {
	o := options{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loadFont == nil {
		o.loadFont = fonts.NewResolver("").Load
	}
	face, err := o.loadFont(family, size)
	if err != nil {
		return nil, errors.Wrapf(err, "overlay: loading font %q", family)
	}
	return &Overlay{opts: o, face: face}, nil
}

func (o *Overlay) platform() (*Platform, error) {
	if o.opts.platform == nil {
		p, err := NativePlatform()
		if err != nil {
			return nil, err
		}
		o.opts.platform = &p
	}
	return o.opts.platform, nil
}

// State returns the lifecycle state.
func (o *Overlay) State() State { return o.state }

// Window returns the attached host window, or 0.
func (o *Overlay) Window() window.Handle { return o.hwnd }

// Target returns how the attached host window was found.
func (o *Overlay) Target() window.Target { return o.target }

// Init finds the host window and styles it for transparent, topmost
// compositing. On failure the Overlay keeps its previous state and window.
func (o *Overlay) Init() error {
	if o.state == StateTornDown {
		return ErrTornDown
	}
	p, err := o.platform()
	if err != nil {
		return err
	}

	h, target, err := window.NewLocator(p.Windows, o.opts.targets...).Locate()
	if err != nil {
		return err
	}
	if o.state.rendering() && h != o.hwnd {
		return errors.Wrapf(ErrWindowChanged, "hwnd %#x -> %#x", uintptr(o.hwnd), uintptr(h))
	}
	if err := window.Style(p.Windows, h); err != nil {
		return err
	}

	o.hwnd, o.target = h, target
	if o.state == StateCreated {
		o.state = StateAttached
	}
	logutil.Logger().Info("attached to host overlay", "target", target.String(), "hwnd", uintptr(h))
	return nil
}

// StartupRenderer creates the rendering context on the attached window and
// wraps its framebuffer as the drawing surface. On failure nothing is left
// allocated and the Overlay stays attached.
func (o *Overlay) StartupRenderer() error {
	switch o.state {
	case StateCreated:
		return ErrNotAttached
	case StateTornDown:
		return ErrTornDown
	case StateAttached:
	default:
		return ErrRendererActive
	}
	p, err := o.platform()
	if err != nil {
		return err
	}
	log := logutil.Logger()

	var ctxOpts []wgl.Option
	if o.opts.requireVSync {
		ctxOpts = append(ctxOpts, wgl.WithRequireVSync())
	}
	ctx, err := wgl.NewContext(p.WGL, o.hwnd, ctxOpts...)
	if err != nil {
		return err
	}
	log.Info("rendering context ready", "pixel_format", ctx.PixelFormat().String())

	if o.opts.vsync != VSyncDefault {
		if err := ctx.SetVSync(o.opts.vsync == VSyncOn); err != nil {
			if o.opts.requireVSync {
				ctx.Close()
				return err
			}
			log.Warn("applying vsync setting failed", "err", err)
		}
	}

	var surfOpts []bridge.SurfaceOption
	if o.opts.renderer != nil {
		surfOpts = append(surfOpts, bridge.WithRenderer(o.opts.renderer))
	}
	surface, err := bridge.NewSurface(p.GL, o.opts.width, o.opts.height, surfOpts...)
	if err != nil {
		ctx.Close()
		return err
	}
	surface.Canvas().SetFont(o.face)

	o.ctx, o.surface = ctx, surface
	o.state = StateRendererReady
	return nil
}

// BeginScene clears the surface to fully transparent.
func (o *Overlay) BeginScene() error {
	if !o.state.rendering() || o.surface == nil {
		return ErrNoRenderTarget
	}
	o.surface.Clear()
	o.state = StateSceneBegun
	return nil
}

// PresentScene flushes the surface into the framebuffer and swaps buffers.
func (o *Overlay) PresentScene() error {
	if o.surface == nil {
		return ErrNoRenderTarget
	}
	if o.ctx == nil {
		return ErrNoContext
	}
	if err := o.surface.Flush(); err != nil {
		return err
	}
	if err := o.ctx.SwapBuffers(); err != nil {
		if p := o.opts.platform; p != nil && !p.Windows.IsWindow(o.hwnd) {
			return &windowGoneError{hwnd: o.hwnd, cause: err}
		}
		return err
	}
	o.state = StateScenePresented
	return nil
}

// SetVSync turns vsync on or off on the running context.
func (o *Overlay) SetVSync(on bool) error {
	if o.ctx == nil {
		return ErrNoContext
	}
	return o.ctx.SetVSync(on)
}

// VSync reports the vsync state; ok is false without a context or without
// swap interval control.
func (o *Overlay) VSync() (on, ok bool) {
	if o.ctx == nil {
		return false, false
	}
	return o.ctx.VSync()
}

// VSyncSupported reports whether the running context controls its swap interval.
func (o *Overlay) VSyncSupported() bool {
	return o.ctx != nil && o.ctx.VSyncSupported()
}

// Close presents one last empty frame so nothing stale stays on the host
// window, then closes the surface and after it the context. The final frame
// is skipped when the context cannot be made current. The host window itself
// is left alone. Close always returns nil.
func (o *Overlay) Close() error {
	if o.state == StateTornDown {
		return nil
	}
	if o.ctx != nil && o.surface != nil {
		if err := o.ctx.MakeCurrent(); err == nil {
			o.surface.Clear()
			_ = o.surface.Flush()
			_ = o.ctx.SwapBuffers()
		} else {
			logutil.Logger().Warn("skipping final frame", "err", err)
		}
	}
	if o.surface != nil {
		o.surface.Close()
		o.surface = nil
	}
	if o.ctx != nil {
		o.ctx.Close()
		o.ctx = nil
	}
	o.state = StateTornDown
	logutil.Logger().Info("overlay closed", "hwnd", uintptr(o.hwnd))
	return nil
}
