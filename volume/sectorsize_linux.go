//go:build linux

package volume

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// physicalSectorSize returns the physical sector size of a block device.
// BLKSSZGET would only give the logical size, 512 on 512e drives.
func physicalSectorSize(f *os.File) (int, error) {
	size, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKPBSZGET)
	if err != nil {
		return 0, fmt.Errorf("unable to get device physical sector size: %w", err)
	}

	return size, nil
}
