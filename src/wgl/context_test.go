package wgl_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"host-overlay/src/wgl"
	"host-overlay/src/wgl/wgltest"
)

const hwnd = 0x10

func TestNewContext(t *testing.T) {
	drv := wgltest.New()

	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)
	assert.Equal(t, []string{"GetDC", "ChoosePixelFormat", "SetPixelFormat", "wglCreateContext", "wglMakeCurrent"}, *drv.Trace)
	assert.Equal(t, wgl.Handle(0x91), drv.Current)
	assert.True(t, c.VSyncSupported())

	pf := c.PixelFormat()
	assert.Equal(t, 7, pf.Index)
	assert.Equal(t, uint8(32), pf.ColorBits)
	assert.Equal(t, uint8(8), pf.AlphaBits)
	assert.True(t, pf.Has(wgl.DoubleBuffer|wgl.SupportOpenGL|wgl.DrawToWindow))
}

func TestNewContextWithoutDescription(t *testing.T) {
	drv := wgltest.New()
	drv.NoDescribe = true

	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)
	assert.Equal(t, 7, c.PixelFormat().Index)
	assert.Equal(t, uint8(32), c.PixelFormat().ColorBits)
}

func TestRequestedPixelFormat(t *testing.T) {
	pf := wgl.RequestedPixelFormat()
	assert.Equal(t, wgl.TypeRGBA, pf.Type)
	assert.Equal(t, wgl.DrawToWindow|wgl.SupportOpenGL|wgl.DoubleBuffer, pf.Flags)
	assert.Equal(t, uint8(32), pf.ColorBits)
	assert.Equal(t, uint8(8), pf.AlphaBits)
	assert.Contains(t, pf.String(), "doublebuffer=true")
}

func TestNewContextFailures(t *testing.T) {
	tests := []struct {
		name        string
		fail        func(*wgltest.Driver)
		want        error
		wantRelease bool
		wantDelete  bool
	}{
		{"device surface", func(d *wgltest.Driver) { d.NoDeviceSurface = true }, wgl.ErrDeviceSurfaceUnavailable, false, false},
		{"choose format", func(d *wgltest.Driver) { d.NoPixelFormat = true }, wgl.ErrNoMatchingPixelFormat, true, false},
		{"set format", func(d *wgltest.Driver) { d.FailSetFormat = true }, wgl.ErrPixelFormatApplyFailed, true, false},
		{"create", func(d *wgltest.Driver) { d.FailCreate = true }, wgl.ErrContextCreateFailed, true, false},
		{"make current", func(d *wgltest.Driver) { d.FailMakeCurrent = true }, wgl.ErrContextActivationFailed, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := wgltest.New()
			tt.fail(drv)

			c, err := wgl.NewContext(drv, hwnd)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, tt.wantRelease, drv.Released)
			assert.Equal(t, tt.wantDelete, drv.Deleted)
		})
	}
}

func TestNewContextMissingSwapControlIsNotFatal(t *testing.T) {
	drv := wgltest.New().WithoutSwapControl()

	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)
	assert.False(t, c.VSyncSupported())
}

func TestNewContextRequireVSync(t *testing.T) {
	drv := wgltest.New().WithoutSwapControl()

	c, err := wgl.NewContext(drv, hwnd, wgl.WithRequireVSync())
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, wgl.ErrCapabilityUnsupported))
	assert.True(t, drv.Deleted)
	assert.True(t, drv.Released)
}

func TestSetVSync(t *testing.T) {
	drv := wgltest.New()
	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)

	require.NoError(t, c.SetVSync(true))
	on, ok := c.VSync()
	assert.True(t, ok)
	assert.True(t, on)

	require.NoError(t, c.SetVSync(false))
	on, _ = c.VSync()
	assert.False(t, on)
}

func TestSetVSyncUnsupportedSkipsDriver(t *testing.T) {
	drv := wgltest.New().WithoutSwapControl()
	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)

	err = c.SetVSync(true)
	assert.True(t, errors.Is(err, wgl.ErrCapabilityUnsupported))
	assert.Zero(t, drv.IntervalCalls)
	_, ok := c.VSync()
	assert.False(t, ok)
}

func TestSetVSyncRejected(t *testing.T) {
	drv := wgltest.New()
	drv.RejectInterval = true
	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)

	assert.True(t, errors.Is(c.SetVSync(true), wgl.ErrRejectedByDriver))
}

func TestSetVSyncVerificationFailed(t *testing.T) {
	drv := wgltest.New()
	drv.StuckInterval = 0
	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)

	assert.True(t, errors.Is(c.SetVSync(true), wgl.ErrVerificationFailed))
}

func TestSwapBuffers(t *testing.T) {
	drv := wgltest.New()
	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)

	require.NoError(t, c.SwapBuffers())
	assert.Equal(t, 1, drv.Swaps)

	drv.FailSwap = true
	assert.True(t, errors.Is(c.SwapBuffers(), wgl.ErrSwapFailed))
}

func TestMakeCurrentFailure(t *testing.T) {
	drv := wgltest.New()
	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)

	drv.FailMakeCurrent = true
	assert.True(t, errors.Is(c.MakeCurrent(), wgl.ErrContextActivationFailed))
}

func TestCloseOrder(t *testing.T) {
	drv := wgltest.New()
	c, err := wgl.NewContext(drv, hwnd)
	require.NoError(t, err)
	*drv.Trace = nil

	c.Close()
	c.Close()
	assert.Equal(t, []string{"wglMakeCurrent(nil)", "wglDeleteContext", "ReleaseDC"}, *drv.Trace)
	assert.Zero(t, drv.Current)

	assert.Error(t, c.SwapBuffers())
	assert.Error(t, c.MakeCurrent())
}
