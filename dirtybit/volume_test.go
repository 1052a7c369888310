package dirtybit_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"clearfatdirty/dirtybit"
)

// memVolume is a Volume over an in-memory image that records every call.
type memVolume struct {
	image       io.ReadWriteSeeker
	label       string
	sectorSize  int
	sizeErr     error
	lockOK      bool
	writeErr    error
	dismountErr error

	locks, reads, writes, dismounts, closes int
}

func newMemVolume(t *testing.T, label string, sector0 []byte, sectorSize int) *memVolume {
	t.Helper()

	image := make([]byte, 4*dirtybit.SectorBufferSize)
	copy(image, sector0)

	return &memVolume{
		image:      bytesextra.NewReadWriteSeeker(image),
		label:      label,
		sectorSize: sectorSize,
		lockOK:     true,
	}
}

func (m *memVolume) Lock() bool {
	m.locks++

	return m.lockOK
}

func (m *memVolume) FilesystemLabel() string {
	return m.label
}

func (m *memVolume) PhysicalSectorSize() (int, error) {
	if m.sizeErr != nil {
		return 0, m.sizeErr
	}

	return m.sectorSize, nil
}

func (m *memVolume) ReadAt(p []byte, off int64) (int, error) {
	m.reads++

	if _, err := m.image.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	return io.ReadFull(m.image, p)
}

func (m *memVolume) WriteAt(p []byte, off int64) (int, error) {
	m.writes++

	if m.writeErr != nil {
		return 0, m.writeErr
	}

	if _, err := m.image.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	return m.image.Write(p)
}

func (m *memVolume) Dismount() error {
	m.dismounts++

	return m.dismountErr
}

func (m *memVolume) Close() error {
	m.closes++

	return nil
}

// contents returns the first n bytes of the image without counting a read.
func (m *memVolume) contents(t *testing.T, n int) []byte {
	t.Helper()

	_, err := m.image.Seek(0, io.SeekStart)
	require.NoError(t, err)

	buf := make([]byte, n)
	_, err = io.ReadFull(m.image, buf)
	require.NoError(t, err)

	return buf
}

func openerFor(vol *memVolume) dirtybit.Opener {
	return func(string) (dirtybit.Volume, error) {
		return vol, nil
	}
}

var errBoom = errors.New("boom")
