//go:build !linux

package volume

import (
	"fmt"

	"clearfatdirty/dirtybit"
)

// OpenBlockDevice is Linux only.
func OpenBlockDevice(path string) (dirtybit.Volume, error) {
	return nil, fmt.Errorf("block device %s: %w", path, ErrNotSupported)
}
