package singleinstance

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireExcludesSecondHolder(t *testing.T) {
	name := `Local\host-overlay-test-exclusive`
	first, err := Acquire(name)
	require.NoError(t, err)
	defer first.Release()

	_, err = Acquire(name)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
	assert.ErrorContains(t, err, name)
}

func TestReleaseFreesName(t *testing.T) {
	name := `Local\host-overlay-test-release`
	for i := 0; i < 3; i++ {
		l, err := Acquire(name)
		require.NoError(t, err, "round %d", i)
		assert.Equal(t, name, l.Name())
		require.NoError(t, l.Release())
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	l, err := Acquire(`Local\host-overlay-test-idempotent`)
	require.NoError(t, err)
	require.NoError(t, l.Release())
	require.NoError(t, l.Release())

	// the second release must not free a lock taken by someone else
	other, err := Acquire(l.Name())
	require.NoError(t, err)
	defer other.Release()
	require.NoError(t, l.Release())
	_, err = Acquire(l.Name())
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
}

func TestDistinctNames(t *testing.T) {
	a, err := Acquire(`Local\host-overlay-test-a`)
	require.NoError(t, err)
	defer a.Release()
	b, err := Acquire(`Local\host-overlay-test-b`)
	require.NoError(t, err)
	defer b.Release()
}

func TestEmptyName(t *testing.T) {
	_, err := Acquire("")
	assert.True(t, errors.Is(err, ErrEmptyName))
}
