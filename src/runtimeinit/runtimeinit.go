package runtimeinit

import (
	"fmt"
	"io"
	"log/slog"

	"host-overlay/src/config"
	"host-overlay/src/fonts"
	"host-overlay/src/logutil"
	"host-overlay/src/overlay"
)

type Options struct {
	LoadOptions    config.LoadOptions
	SetupLogging   func(enableFileLogging bool, level slog.Level) io.Closer
	OverlayOptions []overlay.Option
}

// Runtime is a started overlay plus the configuration it was built from.
type Runtime struct {
	Config  *config.Config
	Overlay *overlay.Overlay
	logs    io.Closer
}

// Close tears the overlay down and then closes the log output.
func (r *Runtime) Close() error {
	err := r.Overlay.Close()
	if r.logs != nil {
		r.logs.Close()
	}
	return err
}

// Bootstrap loads configuration, routes logging and brings the overlay up to
// the renderer-ready state.
func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var logs io.Closer
	if opts.SetupLogging != nil {
		logs = opts.SetupLogging(cfg.EnableFileLogging, logutil.ParseLevel(cfg.LogLevel))
	}
	fail := func(err error) (*Runtime, error) {
		if logs != nil {
			logs.Close()
		}
		return nil, err
	}

	ovOpts := append(OverlayOptions(cfg), opts.OverlayOptions...)
	ov, err := overlay.New(cfg.FontFamily, cfg.FontSize, ovOpts...)
	if err != nil {
		return fail(fmt.Errorf("failed to create overlay: %w", err))
	}

	if err := ov.Init(); err != nil {
		return fail(fmt.Errorf("failed to attach to host window: %w", err))
	}
	logutil.Logger().Info("attached to host window", "target", ov.Target().String(), "hwnd", fmt.Sprintf("%#x", ov.Window()))

	if err := ov.StartupRenderer(); err != nil {
		ov.Close()
		return fail(fmt.Errorf("failed to start renderer: %w", err))
	}

	return &Runtime{Config: cfg, Overlay: ov, logs: logs}, nil
}

// OverlayOptions maps configuration onto overlay options.
func OverlayOptions(cfg *config.Config) []overlay.Option {
	opts := []overlay.Option{
		overlay.WithSurfaceSize(cfg.SurfaceWidth, cfg.SurfaceHeight),
		overlay.WithFontLoader(fonts.NewResolver(cfg.FontCacheDir).Load),
	}
	switch cfg.VSync {
	case config.VSyncOn:
		opts = append(opts, overlay.WithVSync(overlay.VSyncOn))
	case config.VSyncOff:
		opts = append(opts, overlay.WithVSync(overlay.VSyncOff))
	}
	if cfg.RequireVSync {
		opts = append(opts, overlay.WithRequireVSync())
	}
	return opts
}
