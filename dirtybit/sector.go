package dirtybit

import (
	"errors"
	"fmt"
	"io"
)

// SectorBufferSize is the largest physical sector size handled. 4K is common
// on current media, 512 on older ones.
const SectorBufferSize = 4096

// Sector holds sector 0 of a volume, exactly one physical sector long.
type Sector struct {
	buf  [SectorBufferSize]byte
	size int
}

// Bytes returns the sector contents. Changes to the slice change the sector.
func (s *Sector) Bytes() []byte {
	return s.buf[:s.size]
}

// Size returns the physical sector size the sector was read with.
func (s *Sector) Size() int {
	return s.size
}

// ReadSector reads sector 0 of v. The size is checked against the buffer and
// against d before anything is read, so a rejected size never touches the
// device.
func ReadSector(v Volume, d Descriptor) (*Sector, error) {
	size, err := v.PhysicalSectorSize()
	if err != nil {
		return nil, ErrRead.Wrap(fmt.Errorf("physical sector size: %w", err))
	}

	if size <= d.Offset || size > SectorBufferSize {
		return nil, ErrRead.WithMessage(fmt.Sprintf("physical sector size %d outside (%d, %d]", size, d.Offset, SectorBufferSize))
	}

	s := &Sector{size: size}

	n, err := v.ReadAt(s.buf[:size], 0)
	if n < size {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, ErrRead.Wrap(fmt.Errorf("read %d of %d bytes: %w", n, size, err))
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrRead.Wrap(err)
	}

	return s, nil
}

// WriteSector writes s back to offset 0 of v.
func WriteSector(v Volume, s *Sector) error {
	n, err := v.WriteAt(s.Bytes(), 0)
	if err != nil {
		return ErrWrite.Wrap(err)
	}

	if n < s.size {
		return ErrWrite.Wrap(fmt.Errorf("wrote %d of %d bytes: %w", n, s.size, io.ErrShortWrite))
	}

	return nil
}
