// Package window finds a host application's overlay window and prepares it
// for transparent, always-on-top compositing. The window is borrowed: this
// package never creates, closes or destroys it.
package window

import (
	"github.com/pkg/errors"

	"host-overlay/src/logutil"
)

var (
	ErrNotFound                = errors.New("window: host overlay window not found")
	ErrStyleReadFailed         = errors.New("window: reading extended style failed")
	ErrStyleWriteFailed        = errors.New("window: writing extended style failed")
	ErrLayeredAttributesFailed = errors.New("window: setting layered attributes failed")
	ErrFrameExtendFailed       = errors.New("window: extending frame into client area failed")
	ErrPositionFailed          = errors.New("window: raising window to topmost failed")
	ErrUnsupportedPlatform     = errors.New("window: platform has no overlay windows")
)

// Handle is an opaque native window handle. Zero is never a valid window.
type Handle uintptr

// Target names a window by its registered class and title.
type Target struct {
	Class string
	Title string
}

func (t Target) String() string { return t.Class + "/" + t.Title }

// Extended style bits written by Style.
const (
	ExTransparent uint32 = 0x00000020
	ExLayered     uint32 = 0x00080000
)

// Margins describes how far the compositor frame extends into the client
// area. -1 on every side makes the whole window a glass surface.
type Margins struct {
	Left, Right, Top, Bottom int32
}

// FullGlass extends the frame over the entire client area.
var FullGlass = Margins{-1, -1, -1, -1}

// System is the slice of the native window API the overlay needs.
//
// ExStyle and SetExStyle mirror the native calls: both return 0 on failure.
// SetExStyle returns the previous style.
type System interface {
	FindWindow(class, title string) Handle
	IsWindow(h Handle) bool
	ExStyle(h Handle) uint32
	SetExStyle(h Handle, style uint32) uint32
	SetLayeredAlpha(h Handle, alpha uint8) error
	ExtendFrame(h Handle, m Margins) error
	SetTopmost(h Handle) error
}

// DefaultTargets returns the known overlay windows in preference order.
func DefaultTargets() []Target {
	return []Target{
		{Class: "CEF-OSC-WIDGET", Title: "NVIDIA GeForce Overlay"},
		{Class: "AMDDVROVERLAYWINDOWCLASS", Title: "amd dvr overlay"},
	}
}

// Locator resolves the first existing window out of an ordered target list.
type Locator struct {
	sys     System
	targets []Target
}

// NewLocator returns a Locator over targets, or DefaultTargets when none are given.
func NewLocator(sys System, targets ...Target) *Locator {
	if len(targets) == 0 {
		targets = DefaultTargets()
	}
	return &Locator{sys: sys, targets: targets}
}

// Locate queries every target once and returns the earliest one present.
func (l *Locator) Locate() (Handle, Target, error) {
	found := make([]Handle, len(l.targets))
	for i, t := range l.targets {
		found[i] = l.sys.FindWindow(t.Class, t.Title)
	}
	for i, h := range found {
		if h != 0 {
			logutil.Logger().Debug("host window located", "target", l.targets[i].String(), "hwnd", uintptr(h))
			return h, l.targets[i], nil
		}
	}
	return 0, Target{}, ErrNotFound
}
