//go:build windows

package singleinstance

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// acquire creates a named kernel mutex. The mutex disappears with the last
// handle, so a crashed holder never leaves a stale lock.
func acquire(name string) (func() error, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, errors.Wrapf(err, "singleinstance: lock name %q", name)
	}
	h, err := windows.CreateMutex(nil, false, p)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		windows.CloseHandle(h)
		return nil, errors.Wrap(ErrAlreadyRunning, name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "singleinstance: CreateMutex %q", name)
	}
	return func() error { return windows.CloseHandle(h) }, nil
}
