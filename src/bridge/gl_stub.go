//go:build !windows

package bridge

// Native is a stub for non-Windows platforms.
func Native() (GL, error) {
	return nil, ErrUnsupportedPlatform
}
