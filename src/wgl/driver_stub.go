//go:build !windows

package wgl

// Native is a stub for non-Windows platforms.
func Native() (Driver, error) {
	return nil, ErrUnsupportedPlatform
}
