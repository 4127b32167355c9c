// Package bridge wraps the framebuffer bound to the current GL context as a
// 2D drawing surface. Drawing happens on a gg canvas; Flush uploads the
// canvas into a staging texture and blits it into the wrapped framebuffer.
package bridge

import (
	"github.com/pkg/errors"

	"host-overlay/src/logutil"
)

var (
	ErrInterfaceCreateFailed  = errors.New("bridge: loading GL interface failed")
	ErrContextBridgeFailed    = errors.New("bridge: binding GPU device to the current context failed")
	ErrRenderTargetWrapFailed = errors.New("bridge: wrapping framebuffer as render target failed")
	ErrSurfaceWrapFailed      = errors.New("bridge: wrapping render target as surface failed")
	ErrSurfaceClosed          = errors.New("bridge: surface closed")
	ErrUnsupportedPlatform    = errors.New("bridge: platform has no GL")
)

// Staging is a texture with a read framebuffer attached to it.
type Staging struct {
	Texture     uint32
	Framebuffer uint32
}

// GL is the slice of OpenGL the bridge needs. Every call requires a
// current context on the calling thread.
type GL interface {
	// Init loads GL entry points for the current context.
	Init() error
	Version() string
	MaxTextureSize() int
	// FramebufferBinding returns the id of the currently bound framebuffer.
	FramebufferBinding() uint32
	CreateStaging(width, height int) (Staging, error)
	Upload(s Staging, width, height int, pixels []byte) error
	// Blit copies the staging framebuffer into dst, flipping rows when flipY is set.
	Blit(s Staging, dst uint32, width, height int, flipY bool) error
	Flush()
	DeleteStaging(s Staging)
}

// Format is a framebuffer color format.
type Format uint32

// FormatRGBA8 is GL_RGBA8.
const FormatRGBA8 Format = 0x8058

// Origin is the corner pixel (0, 0) of a render target maps to.
type Origin int

const (
	OriginBottomLeft Origin = iota
	OriginTopLeft
)

// ColorType is the surface pixel layout.
type ColorType int

const (
	ColorTypeRGBA8888 ColorType = iota
	ColorTypeBGRA8888
)

// FramebufferInfo describes an existing GL framebuffer object.
type FramebufferInfo struct {
	ID        uint32
	Format    Format
	Protected bool
}

// BackendRenderTarget is a framebuffer of a fixed size that a surface can
// draw into.
type BackendRenderTarget struct {
	Width       int
	Height      int
	SampleCount int
	StencilBits int
	Framebuffer FramebufferInfo
}

// Device is the GPU side of the bridge, bound to the context that was
// current when it was created.
type Device struct {
	gl             GL
	version        string
	maxTextureSize int
}

// NewDevice binds to the current context. It fails when no context answers
// GL queries.
func NewDevice(gl GL) (*Device, error) {
	version := gl.Version()
	if version == "" {
		return nil, errors.Wrap(ErrContextBridgeFailed, "no GL version reported")
	}
	d := &Device{gl: gl, version: version, maxTextureSize: gl.MaxTextureSize()}
	logutil.Logger().Debug("GL device bound", "version", version, "max_texture_size", d.maxTextureSize)
	return d, nil
}

// Version returns the GL version string of the bound context.
func (d *Device) Version() string { return d.version }

// NewBackendRenderTarget validates the dimensions against the device and
// describes the render target.
func NewBackendRenderTarget(d *Device, width, height, samples, stencil int, fb FramebufferInfo) (BackendRenderTarget, error) {
	if width <= 0 || height <= 0 {
		return BackendRenderTarget{}, errors.Wrapf(ErrRenderTargetWrapFailed, "size %dx%d", width, height)
	}
	if d.maxTextureSize > 0 && (width > d.maxTextureSize || height > d.maxTextureSize) {
		return BackendRenderTarget{}, errors.Wrapf(ErrRenderTargetWrapFailed, "size %dx%d exceeds %d", width, height, d.maxTextureSize)
	}
	if fb.Format != FormatRGBA8 {
		return BackendRenderTarget{}, errors.Wrapf(ErrRenderTargetWrapFailed, "format %#x", uint32(fb.Format))
	}
	return BackendRenderTarget{
		Width:       width,
		Height:      height,
		SampleCount: samples,
		StencilBits: stencil,
		Framebuffer: fb,
	}, nil
}
