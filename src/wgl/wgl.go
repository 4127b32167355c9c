// Package wgl owns the legacy WGL rendering context bound to a borrowed
// window: pixel-format negotiation, current-context management, swap
// interval control and ordered teardown.
//
// A Context is thread-affine. Create it, use it and close it from a single
// goroutine locked to its OS thread.
package wgl

import (
	"fmt"

	"github.com/pkg/errors"

	"host-overlay/src/window"
)

var (
	ErrDeviceSurfaceUnavailable   = errors.New("wgl: device context unavailable")
	ErrNoMatchingPixelFormat      = errors.New("wgl: no matching pixel format")
	ErrPixelFormatApplyFailed     = errors.New("wgl: setting pixel format failed")
	ErrContextCreateFailed        = errors.New("wgl: creating rendering context failed")
	ErrContextActivationFailed    = errors.New("wgl: making rendering context current failed")
	ErrSwapFailed                 = errors.New("wgl: swapping buffers failed")
	ErrCapabilityUnsupported      = errors.New("wgl: swap interval control unsupported")
	ErrEntryPointResolutionFailed = errors.New("wgl: swap interval entry points unresolved")
	ErrRejectedByDriver           = errors.New("wgl: driver rejected swap interval")
	ErrVerificationFailed         = errors.New("wgl: swap interval read-back mismatch")
	ErrUnsupportedPlatform        = errors.New("wgl: platform has no WGL")
)

// DeviceSurface is a native device context handle (HDC).
type DeviceSurface uintptr

// Handle is a native rendering context handle (HGLRC).
type Handle uintptr

// Proc is a resolved driver entry point. Arguments and the result are
// passed as machine words.
type Proc func(args ...uintptr) uintptr

// Driver is the slice of GDI and WGL the context needs. Methods mirror the
// native calls and report failure the same way: zero handles, zero indices
// and false.
type Driver interface {
	DeviceSurface(w window.Handle) DeviceSurface
	ReleaseDeviceSurface(w window.Handle, ds DeviceSurface) bool
	ChoosePixelFormat(ds DeviceSurface, pf PixelFormat) int
	SetPixelFormat(ds DeviceSurface, index int, pf PixelFormat) bool
	DescribePixelFormat(ds DeviceSurface) (PixelFormat, bool)
	CreateContext(ds DeviceSurface) Handle
	MakeCurrent(ds DeviceSurface, ctx Handle) bool
	DeleteContext(ctx Handle) bool
	SwapLayerBuffers(ds DeviceSurface) bool

	// ExtensionString returns the WGL extension list from
	// wglGetExtensionsStringEXT; ok is false when that entry point is missing.
	ExtensionString() (s string, ok bool)
	// Proc resolves a driver entry point for the current context, or nil.
	Proc(name string) Proc
}

// PixelFlags are PIXELFORMATDESCRIPTOR dwFlags bits.
type PixelFlags uint32

const (
	DoubleBuffer  PixelFlags = 0x00000001
	DrawToWindow  PixelFlags = 0x00000004
	SupportOpenGL PixelFlags = 0x00000020
)

// PixelType is the PIXELFORMATDESCRIPTOR iPixelType.
type PixelType uint8

const (
	TypeRGBA       PixelType = 0
	TypeColorIndex PixelType = 1
)

// PixelFormat is the portable part of a PIXELFORMATDESCRIPTOR.
type PixelFormat struct {
	Index       int
	Flags       PixelFlags
	Type        PixelType
	ColorBits   uint8
	AlphaBits   uint8
	DepthBits   uint8
	StencilBits uint8
}

// RequestedPixelFormat is a double-buffered, window-drawable, hardware
// accelerated RGBA format with 32 color bits and 8 alpha bits.
func RequestedPixelFormat() PixelFormat {
	return PixelFormat{
		Flags:     DrawToWindow | SupportOpenGL | DoubleBuffer,
		Type:      TypeRGBA,
		ColorBits: 32,
		AlphaBits: 8,
	}
}

func (f PixelFormat) Has(flags PixelFlags) bool { return f.Flags&flags == flags }

func (f PixelFormat) String() string {
	return fmt.Sprintf("#%d color=%d alpha=%d depth=%d stencil=%d doublebuffer=%t opengl=%t window=%t",
		f.Index, f.ColorBits, f.AlphaBits, f.DepthBits, f.StencilBits,
		f.Has(DoubleBuffer), f.Has(SupportOpenGL), f.Has(DrawToWindow))
}
