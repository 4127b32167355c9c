package runtimeinit

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"host-overlay/src/bridge/bridgetest"
	"host-overlay/src/config"
	"host-overlay/src/fonts"
	"host-overlay/src/overlay"
	"host-overlay/src/wgl/wgltest"
	"host-overlay/src/window"
	"host-overlay/src/window/windowtest"
)

type closeCounter struct{ n int }

func (c *closeCounter) Close() error {
	c.n++
	return nil
}

func fakes(wins map[window.Target]window.Handle) (*wgltest.Driver, []overlay.Option) {
	drv := wgltest.New()
	p := overlay.Platform{Windows: windowtest.New(wins), WGL: drv, GL: bridgetest.New(0)}
	return drv, []overlay.Option{
		overlay.WithPlatform(p),
		overlay.WithFontLoader(fonts.FallbackLoader),
		overlay.WithSurfaceSize(32, 32),
	}
}

func TestBootstrapStartsRenderer(t *testing.T) {
	t.Setenv("VSYNC", "on")
	t.Setenv("ENABLE_FILE_LOGGING", "")
	drv, opts := fakes(map[window.Target]window.Handle{window.DefaultTargets()[0]: 0x10})

	logs := &closeCounter{}
	var gotFileLogging bool
	rt, err := Bootstrap(Options{
		SetupLogging: func(file bool, _ slog.Level) io.Closer {
			gotFileLogging = file
			return logs
		},
		OverlayOptions: opts,
	})
	require.NoError(t, err)
	assert.False(t, gotFileLogging)
	assert.Equal(t, overlay.StateRendererReady, rt.Overlay.State())
	assert.Equal(t, 1, drv.Interval)

	require.NoError(t, rt.Close())
	assert.Equal(t, overlay.StateTornDown, rt.Overlay.State())
	assert.Equal(t, 1, logs.n)
}

func TestBootstrapNoHostWindow(t *testing.T) {
	_, opts := fakes(nil)
	logs := &closeCounter{}

	_, err := Bootstrap(Options{
		SetupLogging:   func(bool, slog.Level) io.Closer { return logs },
		OverlayOptions: opts,
	})
	assert.True(t, errors.Is(err, window.ErrNotFound))
	assert.ErrorContains(t, err, "failed to attach to host window")
	assert.Equal(t, 1, logs.n)
}

func TestBootstrapRendererFailure(t *testing.T) {
	drv, opts := fakes(map[window.Target]window.Handle{window.DefaultTargets()[1]: 0x20})
	drv.FailCreate = true

	_, err := Bootstrap(Options{OverlayOptions: opts})
	assert.ErrorContains(t, err, "failed to start renderer")
}

func TestOverlayOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{SurfaceWidth: 100, SurfaceHeight: 50, VSync: config.VSyncOff, RequireVSync: true}
	assert.Len(t, OverlayOptions(cfg), 4)

	cfg.VSync = config.VSyncDefault
	cfg.RequireVSync = false
	assert.Len(t, OverlayOptions(cfg), 2)
}
