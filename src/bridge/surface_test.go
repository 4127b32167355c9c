package bridge_test

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"host-overlay/src/bridge"
	"host-overlay/src/bridge/bridgetest"
)

func TestNewSurfaceQueriesBoundFramebuffer(t *testing.T) {
	gl := bridgetest.New(42)

	s, err := bridge.NewSurface(gl, 64, 32)
	require.NoError(t, err)
	defer s.Close()

	target := s.Target()
	assert.Equal(t, 64, target.Width)
	assert.Equal(t, 32, target.Height)
	assert.Equal(t, 0, target.SampleCount)
	assert.Equal(t, 0, target.StencilBits)
	assert.Equal(t, bridge.FramebufferInfo{ID: 42, Format: bridge.FormatRGBA8, Protected: false}, target.Framebuffer)
	assert.Equal(t, "gl.Init", (*gl.Trace)[0])
	assert.Contains(t, *gl.Trace, "glGetIntegerv(FRAMEBUFFER_BINDING)")
}

func TestNewSurfaceFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*bridgetest.GL)
		width  int
		height int
		want   error
	}{
		{"init", func(g *bridgetest.GL) { g.FailInit = true }, 8, 8, bridge.ErrInterfaceCreateFailed},
		{"device", func(g *bridgetest.GL) { g.NoVersion = true }, 8, 8, bridge.ErrContextBridgeFailed},
		{"zero size", func(*bridgetest.GL) {}, 0, 8, bridge.ErrRenderTargetWrapFailed},
		{"too large", func(g *bridgetest.GL) { g.MaxTexture = 4 }, 8, 8, bridge.ErrRenderTargetWrapFailed},
		{"staging", func(g *bridgetest.GL) { g.FailStaging = true }, 8, 8, bridge.ErrSurfaceWrapFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl := bridgetest.New(0)
			tt.setup(gl)

			s, err := bridge.NewSurface(gl, tt.width, tt.height)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, gl.Live)
		})
	}
}

func TestWrapRejectsColorType(t *testing.T) {
	gl := bridgetest.New(0)
	dev, err := bridge.NewDevice(gl)
	require.NoError(t, err)
	target, err := bridge.NewBackendRenderTarget(dev, 4, 4, 0, 0, bridge.FramebufferInfo{Format: bridge.FormatRGBA8})
	require.NoError(t, err)

	_, err = bridge.WrapBackendRenderTarget(dev, target, bridge.OriginBottomLeft, bridge.ColorTypeBGRA8888)
	assert.True(t, errors.Is(err, bridge.ErrSurfaceWrapFailed))
}

func TestRenderTargetRejectsFormat(t *testing.T) {
	dev, err := bridge.NewDevice(bridgetest.New(0))
	require.NoError(t, err)

	_, err = bridge.NewBackendRenderTarget(dev, 4, 4, 0, 0, bridge.FramebufferInfo{Format: 0x1908})
	assert.True(t, errors.Is(err, bridge.ErrRenderTargetWrapFailed))
}

func TestClearThenFlushIsTransparent(t *testing.T) {
	gl := bridgetest.New(7)
	s, err := bridge.NewSurface(gl, 16, 16)
	require.NoError(t, err)
	defer s.Close()

	dc := s.Canvas()
	dc.SetColor(gg.RGB(1, 0, 0).Color())
	dc.DrawRectangle(0, 0, 16, 16)
	require.NoError(t, dc.Fill())

	s.Clear()
	require.NoError(t, s.Flush())

	require.Len(t, gl.LastUpload, 16*16*4)
	for i, b := range gl.LastUpload {
		if b != 0 {
			t.Fatalf("byte %d = %d, want transparent frame", i, b)
		}
	}
	assert.Equal(t, uint32(7), gl.LastBlit.Dst)
	assert.True(t, gl.LastBlit.FlipY)
	assert.Equal(t, 1, gl.Flushes)
}

func TestFlushUploadsDrawing(t *testing.T) {
	gl := bridgetest.New(0)
	s, err := bridge.NewSurface(gl, 8, 8)
	require.NoError(t, err)
	defer s.Close()

	dc := s.Canvas()
	dc.SetColor(gg.RGB(0, 1, 0).Color())
	dc.DrawRectangle(0, 0, 8, 8)
	require.NoError(t, dc.Fill())
	require.NoError(t, s.Flush())

	// center pixel, green channel
	i := (4*8 + 4) * 4
	assert.Equal(t, byte(255), gl.LastUpload[i+1])
	assert.Equal(t, byte(255), gl.LastUpload[i+3])
}

func TestFlushErrors(t *testing.T) {
	gl := bridgetest.New(0)
	s, err := bridge.NewSurface(gl, 4, 4)
	require.NoError(t, err)

	gl.FailBlit = true
	assert.Error(t, s.Flush())
	assert.Zero(t, gl.Flushes)

	s.Close()
	assert.True(t, errors.Is(s.Flush(), bridge.ErrSurfaceClosed))
}

func TestCloseReleasesStagingOnce(t *testing.T) {
	gl := bridgetest.New(0)
	s, err := bridge.NewSurface(gl, 4, 4)
	require.NoError(t, err)
	require.Len(t, gl.Live, 1)

	s.Close()
	s.Close()
	assert.Empty(t, gl.Live)

	deletes := 0
	for _, c := range *gl.Trace {
		if c == "DeleteStaging" {
			deletes++
		}
	}
	assert.Equal(t, 1, deletes)
}

// batchAccelerator queues nothing and fails or succeeds on Flush.
type batchAccelerator struct {
	flushErr error
	flushes  int
}

func (a *batchAccelerator) Name() string { return "batch" }
func (a *batchAccelerator) Init() error { return nil }
func (a *batchAccelerator) Close() {}
func (a *batchAccelerator) CanAccelerate(gg.AcceleratedOp) bool { return false }
func (a *batchAccelerator) FillPath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *batchAccelerator) StrokePath(gg.GPURenderTarget, *gg.Path, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *batchAccelerator) FillShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *batchAccelerator) StrokeShape(gg.GPURenderTarget, gg.DetectedShape, *gg.Paint) error {
	return gg.ErrFallbackToCPU
}
func (a *batchAccelerator) Flush(gg.GPURenderTarget) error {
	a.flushes++
	return a.flushErr
}

func TestFlushDrainsAcceleratorBeforeUpload(t *testing.T) {
	accel := &batchAccelerator{}
	require.NoError(t, gg.RegisterAccelerator(accel))
	t.Cleanup(func() { _ = gg.RegisterAccelerator(&batchAccelerator{}) })

	gl := bridgetest.New(0)
	s, err := bridge.NewSurface(gl, 4, 4)
	require.NoError(t, err)
	defer s.Close()

	before := accel.flushes
	require.NoError(t, s.Flush())
	assert.Greater(t, accel.flushes, before)
	assert.NotNil(t, gl.LastUpload)

	gl.LastUpload = nil
	accel.flushErr = errors.New("device lost")
	err = s.Flush()
	assert.ErrorContains(t, err, "device lost")
	assert.Nil(t, gl.LastUpload)
}

type failingRenderer struct{}

func (failingRenderer) Fill(*gg.Pixmap, *gg.Path, *gg.Paint) error { return errors.New("raster fill") }
func (failingRenderer) Stroke(*gg.Pixmap, *gg.Path, *gg.Paint) error { return errors.New("raster stroke") }

func TestWithRendererReplacesRasterizer(t *testing.T) {
	s, err := bridge.NewSurface(bridgetest.New(0), 4, 4, bridge.WithRenderer(failingRenderer{}))
	require.NoError(t, err)
	defer s.Close()

	dc := s.Canvas()
	dc.DrawRectangle(0, 0, 4, 4)
	assert.ErrorContains(t, dc.Fill(), "raster fill")
}
