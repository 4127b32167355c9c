package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	face, err := Fallback(18)
	require.NoError(t, err)
	assert.Greater(t, face.Advance("overlay"), 0.0)
	assert.True(t, face.HasGlyph('A'))
}

func TestFallbackLoaderIgnoresFamily(t *testing.T) {
	a, err := FallbackLoader("Tahoma", 12)
	require.NoError(t, err)
	b, err := Fallback(12)
	require.NoError(t, err)
	assert.Equal(t, b.Advance("abc"), a.Advance("abc"))
}

func TestLoadUnknownFamilyFallsBack(t *testing.T) {
	r := NewResolver(t.TempDir())

	face, err := r.Load("No Such Family 9b1f", 14)
	require.NoError(t, err)
	assert.NotNil(t, face)
}

func TestSourceUnknownFamily(t *testing.T) {
	r := NewResolver(t.TempDir())

	_, err := r.Source("No Such Family 9b1f")
	assert.Error(t, err)
}
