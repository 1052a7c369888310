package dirtybit

// Volume is an open raw volume. The pipeline owns it from Open until Close
// and never shares it.
type Volume interface {
	// Lock asks for exclusive access to the volume. Failure is expected
	// while files on the volume are open, so it is only reported as false.
	Lock() bool
	// FilesystemLabel returns the filesystem name, e.g. "FAT32". A failed
	// query returns a label that matches nothing.
	FilesystemLabel() string
	// PhysicalSectorSize returns the atomic write granularity of the storage.
	PhysicalSectorSize() (int, error)
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	// Dismount makes the environment re-read the volume on next access.
	Dismount() error
	// Close releases the volume and any lock held on it.
	Close() error
}

// Opener opens the volume at a device path.
type Opener func(path string) (Volume, error)
