// Package singleinstance keeps one overlay process per session. Two
// processes drawing into the same host window would overwrite each other's
// frames.
package singleinstance

import (
	"sync"

	"github.com/pkg/errors"

	"host-overlay/src/logutil"
)

// DefaultName is the session-local lock held by the demo.
const DefaultName = `Local\host-overlay`

var (
	ErrAlreadyRunning = errors.New("singleinstance: another overlay process is running")
	ErrEmptyName      = errors.New("singleinstance: empty lock name")
)

// Lock is a held instance lock.
type Lock struct {
	name    string
	once    sync.Once
	release func() error
	err     error
}

// Acquire takes the lock called name, or returns ErrAlreadyRunning when
// another holder has it.
func Acquire(name string) (*Lock, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	release, err := acquire(name)
	if err != nil {
		return nil, err
	}
	logutil.Logger().Debug("instance lock acquired", "name", name)
	return &Lock{name: name, release: release}, nil
}

// Name returns the lock name.
func (l *Lock) Name() string { return l.name }

// Release gives the lock up. Later calls return the first result.
func (l *Lock) Release() error {
	l.once.Do(func() {
		l.err = l.release()
		logutil.Logger().Debug("instance lock released", "name", l.name)
	})
	return l.err
}
