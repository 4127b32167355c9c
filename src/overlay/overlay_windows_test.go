//go:build windows

package overlay

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// Draws a few frames into the real NVIDIA or AMD overlay window.
func TestNativeOverlayFrames(t *testing.T) {
	if os.Getenv("HOST_OVERLAY_INTERACTIVE_TESTS") != "1" {
		t.Skip("set HOST_OVERLAY_INTERACTIVE_TESTS=1 to draw into the live overlay window")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	o, err := New("Tahoma", 18, WithVSync(VSyncOn))
	require.NoError(t, err)
	defer o.Close()

	require.NoError(t, o.Init())
	require.NoError(t, o.StartupRenderer())
	t.Logf("attached to %s (%#x)", o.Target(), o.Window())

	for i := 0; i < 120; i++ {
		require.NoError(t, o.BeginScene())
		require.NoError(t, o.DrawOutlinedText(Pt(10, 30), "host-overlay test", RGBA(255, 255, 255, 255)))
		require.NoError(t, o.DrawFilledRect(Pt(10, 50), Pt(float64(i), 10), RGBA(0, 255, 51, 255)))
		require.NoError(t, o.PresentScene())
	}
}
