//go:build !windows

package singleinstance

import (
	"sync"

	"github.com/pkg/errors"
)

// Without a host overlay there is nothing to share, so the lock only
// excludes holders within this process.
var (
	heldMu sync.Mutex
	held   = map[string]bool{}
)

func acquire(name string) (func() error, error) {
	heldMu.Lock()
	defer heldMu.Unlock()
	if held[name] {
		return nil, errors.Wrap(ErrAlreadyRunning, name)
	}
	held[name] = true
	return func() error {
		heldMu.Lock()
		delete(held, name)
		heldMu.Unlock()
		return nil
	}, nil
}
