package volume

import (
	"fmt"
	"os"
)

// DefaultImageSectorSize is the physical sector size assumed for image files.
const DefaultImageSectorSize = 512

// Image is a volume stored in a regular file, e.g. a dd copy of a card.
type Image struct {
	f          *os.File
	sectorSize int
}

// OpenImage opens the image at path for reading and writing. sectorSize is
// what PhysicalSectorSize reports, since a file has none of its own.
func OpenImage(path string, sectorSize int) (*Image, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close() //nolint:errcheck

		return nil, fmt.Errorf("stat image: %w", err)
	}

	if !st.Mode().IsRegular() {
		f.Close() //nolint:errcheck

		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	return &Image{f: f, sectorSize: sectorSize}, nil
}

// Lock takes a non-blocking exclusive flock on the image. Close releases it.
func (i *Image) Lock() bool {
	return tryLockFile(i.f) == nil
}

// FilesystemLabel probes the boot sector; read errors give "".
func (i *Image) FilesystemLabel() string {
	label, err := ProbeLabel(i.f)
	if err != nil {
		return ""
	}

	return label
}

// PhysicalSectorSize returns the configured sector size.
func (i *Image) PhysicalSectorSize() (int, error) {
	if i.sectorSize <= 0 {
		return 0, fmt.Errorf("invalid sector size %d", i.sectorSize)
	}

	return i.sectorSize, nil
}

func (i *Image) ReadAt(p []byte, off int64) (int, error) {
	return i.f.ReadAt(p, off)
}

// WriteAt writes and syncs, so a nil error means the data reached the file.
func (i *Image) WriteAt(p []byte, off int64) (int, error) {
	n, err := i.f.WriteAt(p, off)
	if err != nil {
		return n, err
	}

	return n, i.f.Sync()
}

// Dismount is not supported: an image has nothing mounted to refresh.
func (i *Image) Dismount() error {
	return ErrNotSupported
}

func (i *Image) Close() error {
	return i.f.Close()
}
