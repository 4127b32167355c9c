//go:build windows

package window

import (
	"unsafe"

	"github.com/lxn/win"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const lwaAlpha = 0x2

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	procIsWindow                   = user32.NewProc("IsWindow")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procDwmExtendFrameIntoClient   = dwmapi.NewProc("DwmExtendFrameIntoClientArea")
)

type win32System struct{}

// Native returns the Win32 window system.
func Native() (System, error) {
	return win32System{}, nil
}

func (win32System) FindWindow(class, title string) Handle {
	c, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0
	}
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0
	}
	return Handle(win.FindWindow(c, t))
}

func (win32System) IsWindow(h Handle) bool {
	r, _, _ := procIsWindow.Call(uintptr(h))
	return r != 0
}

func (win32System) ExStyle(h Handle) uint32 {
	return uint32(win.GetWindowLong(win.HWND(h), win.GWL_EXSTYLE))
}

func (win32System) SetExStyle(h Handle, style uint32) uint32 {
	return uint32(win.SetWindowLongPtr(win.HWND(h), win.GWL_EXSTYLE, uintptr(style)))
}

func (win32System) SetLayeredAlpha(h Handle, alpha uint8) error {
	r, _, e := procSetLayeredWindowAttributes.Call(uintptr(h), 0, uintptr(alpha), lwaAlpha)
	if r == 0 {
		return errnoOrInval(e)
	}
	return nil
}

func (win32System) ExtendFrame(h Handle, m Margins) error {
	if err := procDwmExtendFrameIntoClient.Find(); err != nil {
		return err
	}
	hr, _, _ := procDwmExtendFrameIntoClient.Call(uintptr(h), uintptr(unsafe.Pointer(&m)))
	if hr != 0 {
		return errors.Errorf("HRESULT %#x", uint32(hr))
	}
	return nil
}

func (win32System) SetTopmost(h Handle) error {
	if !win.SetWindowPos(win.HWND(h), win.HWND_TOPMOST, 0, 0, 0, 0, win.SWP_NOMOVE|win.SWP_NOSIZE) {
		return errnoOrInval(windows.GetLastError())
	}
	return nil
}

func errnoOrInval(err error) error {
	if errno, ok := err.(windows.Errno); ok && errno != 0 {
		return errno
	}
	return windows.ERROR_INVALID_PARAMETER
}
