package main

import (
	"fmt"

	"host-overlay/src/frameloop"
	"host-overlay/src/overlay"
)

var (
	white  = overlay.RGBA(255, 255, 255, 255)
	red    = overlay.RGBA(255, 51, 0, 255)
	green  = overlay.RGBA(0, 255, 51, 255)
	blue   = overlay.RGBA(0, 51, 255, 255)
	yellow = overlay.RGBA(255, 255, 0, 255)
	purple = overlay.RGBA(255, 0, 255, 255)
	cyan   = overlay.RGBA(0, 255, 255, 255)
)

type showcase struct {
	ov *overlay.Overlay
}

func newShowcase(ov *overlay.Overlay) *showcase {
	return &showcase{ov: ov}
}

func (s *showcase) draw(f frameloop.Frame) error {
	pt := overlay.Pt
	ov := s.ov
	steps := []func() error{
		func() error { return ov.DrawOutlinedText(pt(10, 30), "host-overlay", white) },
		func() error {
			return ov.DrawText(pt(10, 50), fmt.Sprintf("Shape Showcase -> FPS: %d", f.FPS), white)
		},

		func() error { return ov.DrawRect(pt(10, 100), pt(100, 80), 2, yellow) },
		func() error { return ov.DrawFilledRect(pt(120, 100), pt(100, 80), green) },
		func() error { return ov.DrawGradientRect(pt(230, 100), pt(100, 80), red, blue, true) },

		func() error { return ov.DrawRoundedRect(pt(10, 200), pt(100, 80), 10, 2, purple) },
		func() error { return ov.DrawFilledRoundedRect(pt(120, 200), pt(100, 80), 10, cyan) },
		func() error { return ov.DrawGradientRoundedRect(pt(230, 200), pt(100, 80), 10, green, purple, false) },

		func() error { return ov.DrawCircle(pt(60, 350), 30, 2, yellow) },
		func() error { return ov.DrawFilledCircle(pt(170, 350), 30, blue) },
		func() error { return ov.DrawGradientCircle(pt(280, 350), 30, red, blue, true) },

		func() error { return ov.DrawEllipse(pt(60, 450), pt(40, 25), 2, green) },
		func() error { return ov.DrawFilledEllipse(pt(170, 450), pt(40, 25), cyan) },
		func() error { return ov.DrawGradientEllipse(pt(280, 450), pt(40, 25), red, blue, false) },

		func() error { return ov.DrawLine(pt(400, 100), pt(500, 150), 2, yellow) },
		func() error { return ov.DrawGradientLine(pt(400, 200), pt(500, 250), 3, red, blue) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
