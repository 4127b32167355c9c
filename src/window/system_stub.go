//go:build !windows

package window

// Native is a stub for non-Windows platforms.
func Native() (System, error) {
	return nil, ErrUnsupportedPlatform
}
