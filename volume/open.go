package volume

import (
	"os"

	"clearfatdirty/dirtybit"
)

// IsBlockDevice reports whether path is a block device node.
func IsBlockDevice(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		return false
	}

	mode := st.Mode()

	return mode&os.ModeDevice != 0 && mode&os.ModeCharDevice == 0
}

// PathOpener opens block device nodes with OpenBlockDevice and anything else
// as an image with the given sector size.
func PathOpener(imageSectorSize int) dirtybit.Opener {
	return func(path string) (dirtybit.Volume, error) {
		if IsBlockDevice(path) {
			return OpenBlockDevice(path)
		}

		img, err := OpenImage(path, imageSectorSize)
		if err != nil {
			return nil, err
		}

		return img, nil
	}
}
