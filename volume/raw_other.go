//go:build !windows

package volume

import (
	"fmt"

	"clearfatdirty/dirtybit"
)

// OpenRaw is Windows only; use OpenImage or OpenBlockDevice elsewhere.
func OpenRaw(path string) (dirtybit.Volume, error) {
	return nil, fmt.Errorf("raw volume %s: %w", path, ErrNotSupported)
}
