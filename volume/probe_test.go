package volume_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clearfatdirty/volume"
)

func bootSector(mutate func(sec []byte)) []byte {
	sec := make([]byte, 512)
	sec[510], sec[511] = 0x55, 0xAA
	mutate(sec)

	return sec
}

func fat32Boot(sec []byte) {
	sec[0], sec[1], sec[2] = 0xEB, 0x58, 0x90
	copy(sec[3:11], "MSWIN4.1")
	binary.LittleEndian.PutUint16(sec[11:], 512)
	binary.LittleEndian.PutUint16(sec[22:], 0)
	copy(sec[82:90], "FAT32   ")
}

func exFATBoot(sec []byte) {
	sec[0], sec[1], sec[2] = 0xEB, 0x76, 0x90
	copy(sec[3:11], "EXFAT   ")
}

func TestProbeLabel(t *testing.T) {
	for _, tc := range []struct {
		name  string
		sec   []byte
		label string
	}{
		{"fat32", bootSector(fat32Boot), volume.LabelFAT32},
		{"exfat", bootSector(exFATBoot), volume.LabelExFAT},
		{"fat16", bootSector(func(sec []byte) {
			binary.LittleEndian.PutUint16(sec[22:], 32)
			copy(sec[54:62], "FAT16   ")
		}), ""},
		{"fat32 name with fat16 layout", bootSector(func(sec []byte) {
			fat32Boot(sec)
			binary.LittleEndian.PutUint16(sec[22:], 9)
		}), ""},
		{"ntfs", bootSector(func(sec []byte) {
			copy(sec[3:11], "NTFS    ")
		}), ""},
		{"no signature", func() []byte {
			sec := bootSector(fat32Boot)
			sec[510] = 0

			return sec
		}(), ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			label, err := volume.ProbeLabel(bytes.NewReader(tc.sec))
			require.NoError(t, err)
			assert.Equal(t, tc.label, label)
		})
	}
}

func TestProbeLabelShortInput(t *testing.T) {
	_, err := volume.ProbeLabel(bytes.NewReader(make([]byte, 100)))
	assert.Error(t, err)
}
