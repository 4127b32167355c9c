//go:build windows

package wgl

import (
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"host-overlay/src/window"
)

var (
	gdi32 = windows.NewLazySystemDLL("gdi32.dll")

	procGetPixelFormat      = gdi32.NewProc("GetPixelFormat")
	procDescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
)

type win32Driver struct{}

// Native returns the GDI/WGL driver.
func Native() (Driver, error) {
	return win32Driver{}, nil
}

func (win32Driver) DeviceSurface(w window.Handle) DeviceSurface {
	return DeviceSurface(win.GetDC(win.HWND(w)))
}

func (win32Driver) ReleaseDeviceSurface(w window.Handle, ds DeviceSurface) bool {
	return win.ReleaseDC(win.HWND(w), win.HDC(ds))
}

func (win32Driver) ChoosePixelFormat(ds DeviceSurface, pf PixelFormat) int {
	pfd := toDescriptor(pf)
	return int(win.ChoosePixelFormat(win.HDC(ds), &pfd))
}

func (win32Driver) SetPixelFormat(ds DeviceSurface, index int, pf PixelFormat) bool {
	pfd := toDescriptor(pf)
	return win.SetPixelFormat(win.HDC(ds), int32(index), &pfd)
}

func (win32Driver) DescribePixelFormat(ds DeviceSurface) (PixelFormat, bool) {
	index, _, _ := procGetPixelFormat.Call(uintptr(ds))
	if index == 0 {
		return PixelFormat{}, false
	}
	var pfd win.PIXELFORMATDESCRIPTOR
	r, _, _ := procDescribePixelFormat.Call(uintptr(ds), index, unsafe.Sizeof(pfd), uintptr(unsafe.Pointer(&pfd)))
	if r == 0 {
		return PixelFormat{}, false
	}
	return PixelFormat{
		Index:       int(index),
		Flags:       PixelFlags(pfd.DwFlags),
		Type:        PixelType(pfd.IPixelType),
		ColorBits:   pfd.CColorBits,
		AlphaBits:   pfd.CAlphaBits,
		DepthBits:   pfd.CDepthBits,
		StencilBits: pfd.CStencilBits,
	}, true
}

func (win32Driver) CreateContext(ds DeviceSurface) Handle {
	return Handle(win.WglCreateContext(win.HDC(ds)))
}

func (win32Driver) MakeCurrent(ds DeviceSurface, ctx Handle) bool {
	return win.WglMakeCurrent(win.HDC(ds), win.HGLRC(ctx))
}

func (win32Driver) DeleteContext(ctx Handle) bool {
	return win.WglDeleteContext(win.HGLRC(ctx))
}

func (win32Driver) SwapLayerBuffers(ds DeviceSurface) bool {
	return win.WglSwapLayerBuffers(win.HDC(ds), win.WGL_SWAP_MAIN_PLANE)
}

func (d win32Driver) ExtensionString() (string, bool) {
	get := d.Proc("wglGetExtensionsStringEXT")
	if get == nil {
		return "", false
	}
	p := get()
	if p == 0 {
		return "", false
	}
	return windows.BytePtrToString((*byte)(unsafe.Pointer(p))), true
}

func (win32Driver) Proc(name string) Proc {
	cname, err := windows.BytePtrFromString(name)
	if err != nil {
		return nil
	}
	addr := win.WglGetProcAddress(cname)
	// Some ICDs report failure as 1, 2, 3 or -1 instead of NULL.
	switch addr {
	case 0, 1, 2, 3, ^uintptr(0):
		return nil
	}
	return func(args ...uintptr) uintptr {
		r, _, _ := syscall.SyscallN(addr, args...)
		return r
	}
}

func toDescriptor(pf PixelFormat) win.PIXELFORMATDESCRIPTOR {
	var pfd win.PIXELFORMATDESCRIPTOR
	pfd.NSize = uint16(unsafe.Sizeof(pfd))
	pfd.NVersion = 1
	pfd.DwFlags = uint32(pf.Flags)
	pfd.IPixelType = byte(pf.Type)
	pfd.CColorBits = pf.ColorBits
	pfd.CAlphaBits = pf.AlphaBits
	pfd.CDepthBits = pf.DepthBits
	pfd.CStencilBits = pf.StencilBits
	pfd.ILayerType = win.PFD_MAIN_PLANE
	return pfd
}
