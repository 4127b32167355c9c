package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"host-overlay/src/config"
	"host-overlay/src/frameloop"
	"host-overlay/src/hotkey"
	"host-overlay/src/logutil"
	"host-overlay/src/overlay"
	"host-overlay/src/runtimeinit"
	"host-overlay/src/singleinstance"
	"host-overlay/src/tray"
)

func init() {
	// WGL contexts are bound to the thread that made them current.
	runtime.LockOSThread()
}

type demoOptions struct {
	envPath    string
	font       string
	fontSize   float64
	vsync      string
	duration   int
	frameLimit int
	noHotkey   bool
	noTray     bool
	verbose    bool
}

func main() {
	if err := newRootCmd(&demoOptions{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *demoOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "overlay-demo",
		Short:         "Draw a shape showcase on the NVIDIA or AMD overlay window",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWithOptions(ctx, *opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.envPath, "env", "", "Path to a .env file (highest precedence)")
	cmd.Flags().StringVar(&opts.font, "font", "", "Font family (default from FONT_FAMILY)")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "Font size in points (default from FONT_SIZE)")
	cmd.Flags().StringVar(&opts.vsync, "vsync", "", "Swap interval: default, on or off")
	cmd.Flags().IntVarP(&opts.duration, "duration", "d", 0, "Seconds to render (default from DEMO_DURATION_SEC)")
	cmd.Flags().IntVar(&opts.frameLimit, "fps", 0, "Frame rate cap, 0 for none")
	cmd.Flags().BoolVar(&opts.noHotkey, "no-hotkey", false, "Do not install the global stop hotkey")
	cmd.Flags().BoolVar(&opts.noTray, "no-tray", false, "Do not show the notification area icon")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")

	return cmd
}

func setupLogging(verbose bool) func(bool, slog.Level) io.Closer {
	return func(file bool, level slog.Level) io.Closer {
		if verbose {
			level = slog.LevelDebug
			if !file {
				logutil.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
				return nil
			}
		}
		return logutil.Setup(file, level)
	}
}

func loadOptions(opts demoOptions) config.LoadOptions {
	return config.LoadOptions{
		EnvPathOverride:  opts.envPath,
		FontFamily:       opts.font,
		FontSize:         opts.fontSize,
		VSyncOverride:    opts.vsync,
		DurationOverride: opts.duration,
	}
}

func runWithOptions(ctx context.Context, opts demoOptions, extra []overlay.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lock, err := singleinstance.Acquire(singleinstance.DefaultName)
	if err != nil {
		return err
	}
	defer lock.Release()

	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions:    loadOptions(opts),
		SetupLogging:   setupLogging(opts.verbose),
		OverlayOptions: extra,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	log := logutil.Logger()
	if on, ok := rt.Overlay.VSync(); ok {
		log.Info("renderer started", "vsync", on)
	} else {
		log.Info("renderer started", "vsync", "unknown")
	}

	show := newShowcase(rt.Overlay)
	target := rt.Overlay.Target().String()
	var icon *tray.Tray
	draw := func(f frameloop.Frame) error {
		if icon != nil {
			icon.Update(tray.Status{Target: target, Frames: f.Index, FPS: f.FPS, Elapsed: f.Elapsed})
		}
		return show.draw(f)
	}
	loop := frameloop.New(rt.Overlay, draw,
		frameloop.WithDuration(time.Duration(rt.Config.DemoDurationSec)*time.Second),
		frameloop.WithFrameLimit(opts.frameLimit),
	)

	if !opts.noTray {
		icon = tray.Start(tray.Options{Title: "host-overlay", OnStop: loop.Stop})
		defer icon.Close()
	}

	if !opts.noHotkey && rt.Config.StopHotkey != "" {
		if err := hotkey.Listen(ctx, rt.Config.StopHotkey, loop.Stop); err != nil {
			log.Warn("stop hotkey unavailable", "combo", rt.Config.StopHotkey, "err", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Rendering for %d seconds on %s\n", rt.Config.DemoDurationSec, rt.Overlay.Target())

	stats, err := loop.Run(ctx)
	if err != nil {
		return err
	}
	if stats.Elapsed > 0 {
		fmt.Fprintf(os.Stderr, "Rendered %d frames in %s (%.1f fps)\n",
			stats.Frames, stats.Elapsed.Round(time.Millisecond), float64(stats.Frames)/stats.Elapsed.Seconds())
	}
	return nil
}
