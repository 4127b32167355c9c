package window

import (
	"github.com/pkg/errors"

	"host-overlay/src/logutil"
)

// Style turns h into a click-through, per-pixel-alpha, topmost glass window.
// Steps that already succeeded are not rolled back when a later one fails.
func Style(sys System, h Handle) error {
	style := sys.ExStyle(h)
	if style == 0 {
		return errors.Wrapf(ErrStyleReadFailed, "hwnd %#x", uintptr(h))
	}

	next := style | ExLayered | ExTransparent
	if sys.SetExStyle(h, next) == 0 {
		return errors.Wrapf(ErrStyleWriteFailed, "hwnd %#x", uintptr(h))
	}

	if err := sys.SetLayeredAlpha(h, 255); err != nil {
		return errors.Wrap(ErrLayeredAttributesFailed, err.Error())
	}
	if err := sys.ExtendFrame(h, FullGlass); err != nil {
		return errors.Wrap(ErrFrameExtendFailed, err.Error())
	}
	if err := sys.SetTopmost(h); err != nil {
		return errors.Wrap(ErrPositionFailed, err.Error())
	}

	logutil.Logger().Debug("host window styled", "hwnd", uintptr(h), "exstyle_before", style, "exstyle_after", next)
	return nil
}
