package wgl

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	swapControlExtension = "WGL_EXT_swap_control"
	procSwapInterval     = "wglSwapIntervalEXT"
	procGetSwapInterval  = "wglGetSwapIntervalEXT"
)

type swapProcs struct {
	set Proc
	get Proc
}

// SwapControl is the optional swap interval capability of a context.
// It is either supported, with both entry points resolved, or unsupported.
// The zero value is unsupported.
type SwapControl struct {
	procs *swapProcs
}

// DetectSwapControl looks for WGL_EXT_swap_control on the current context.
// The returned SwapControl is always usable; the error says why it is
// unsupported.
func DetectSwapControl(drv Driver) (SwapControl, error) {
	ext, ok := drv.ExtensionString()
	if !ok || !strings.Contains(ext, swapControlExtension) {
		return SwapControl{}, ErrCapabilityUnsupported
	}

	set := drv.Proc(procSwapInterval)
	get := drv.Proc(procGetSwapInterval)
	if set == nil || get == nil {
		return SwapControl{}, errors.Wrapf(ErrEntryPointResolutionFailed, "%s=%t %s=%t",
			procSwapInterval, set != nil, procGetSwapInterval, get != nil)
	}
	return SwapControl{procs: &swapProcs{set: set, get: get}}, nil
}

// Supported reports whether both entry points were resolved.
func (s SwapControl) Supported() bool { return s.procs != nil }

// SetEnabled sets the swap interval to 1 or 0 and verifies it by reading it back.
func (s SwapControl) SetEnabled(on bool) error {
	if s.procs == nil {
		return ErrCapabilityUnsupported
	}
	var interval uintptr
	if on {
		interval = 1
	}
	if s.procs.set(interval) == 0 {
		return ErrRejectedByDriver
	}
	if got, _ := s.Current(); got != on {
		return errors.Wrapf(ErrVerificationFailed, "requested %t, driver reports %t", on, got)
	}
	return nil
}

// Current reports whether vsync is on (interval exactly 1). ok is false
// when the capability is unsupported.
func (s SwapControl) Current() (on, ok bool) {
	if s.procs == nil {
		return false, false
	}
	return int32(s.procs.get()) == 1, true
}
