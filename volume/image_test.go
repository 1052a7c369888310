package volume_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"clearfatdirty/dirtybit"
	"clearfatdirty/volume"
)

func writeImage(t *testing.T, sector0 []byte) string {
	t.Helper()

	image := make([]byte, 64*1024)
	copy(image, sector0)

	path := filepath.Join(t.TempDir(), "card.img")
	require.NoError(t, os.WriteFile(path, image, 0o644))

	return path
}

func TestImageVolume(t *testing.T) {
	path := writeImage(t, bootSector(exFATBoot))

	img, err := volume.OpenImage(path, 4096)
	require.NoError(t, err)

	defer img.Close() //nolint:errcheck

	assert.Equal(t, volume.LabelExFAT, img.FilesystemLabel())

	size, err := img.PhysicalSectorSize()
	require.NoError(t, err)
	assert.Equal(t, 4096, size)

	assert.ErrorIs(t, img.Dismount(), volume.ErrNotSupported)

	if runtime.GOOS != "windows" {
		assert.True(t, img.Lock())
	}
}

func TestImageRejectsBadSectorSize(t *testing.T) {
	img, err := volume.OpenImage(writeImage(t, nil), 0)
	require.NoError(t, err)

	defer img.Close() //nolint:errcheck

	_, err = img.PhysicalSectorSize()
	assert.Error(t, err)
	assert.Empty(t, img.FilesystemLabel())
}

func TestOpenImageErrors(t *testing.T) {
	_, err := volume.OpenImage(filepath.Join(t.TempDir(), "missing.img"), 512)
	assert.Error(t, err)

	_, err = volume.OpenImage(t.TempDir(), 512)
	assert.Error(t, err)
}

func TestPathOpenerClearsImage(t *testing.T) {
	sector0 := bootSector(fat32Boot)
	sector0[0x41] = 0x01
	path := writeImage(t, sector0)

	clearer := dirtybit.NewClearer(volume.PathOpener(512), dirtybit.WithLogger(zaptest.NewLogger(t)))

	res, err := clearer.Run(path)
	require.NoError(t, err)
	assert.Equal(t, dirtybit.Cleared, res.Outcome)
	assert.Equal(t, dirtybit.FAT32, res.FSType)
	assert.False(t, res.Dismounted)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), data[0x41])
	assert.Equal(t, sector0[:0x41], data[:0x41])
	assert.Equal(t, sector0[0x42:], data[0x42:512])

	res, err = clearer.Run(path)
	require.NoError(t, err)
	assert.Equal(t, dirtybit.Clean, res.Outcome)
}

func TestOpenRawIsWindowsOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("opens a real volume on windows")
	}

	_, err := volume.OpenRaw(`\\.\E:`)
	assert.ErrorIs(t, err, volume.ErrNotSupported)
}
