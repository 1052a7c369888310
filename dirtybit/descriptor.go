package dirtybit

import "fmt"

// FSType is the filesystem of a volume as far as the dirty bit is concerned.
type FSType int

// Supported filesystems.
const (
	Unsupported FSType = iota
	FAT32
	ExFAT
)

func (t FSType) String() string {
	switch t {
	case FAT32:
		return "FAT32"
	case ExFAT:
		return "exFAT"
	default:
		return "unsupported"
	}
}

// Descriptor locates the dirty flag inside sector 0.
type Descriptor struct {
	Offset int
	Mask   byte
}

var (
	// FAT32 keeps the flag in the BPB CurrentHead byte. Not documented, but
	// it is what the NT family FAT driver reads and writes.
	fat32Descriptor = Descriptor{Offset: 0x41, Mask: 0x01}
	// exFAT keeps it in VolumeFlags.VolumeDirty.
	exFATDescriptor = Descriptor{Offset: 0x6A, Mask: 0x02}
)

// Keys are the filesystem names Windows reports, compared byte for byte.
var descriptorsByLabel = map[string]struct {
	fsType     FSType
	descriptor Descriptor
}{
	"FAT32": {FAT32, fat32Descriptor},
	"exFAT": {ExFAT, exFATDescriptor},
}

// Identify maps a filesystem label to its dirty flag location. Any label other
// than exactly "FAT32" or "exFAT" is ErrUnsupportedFilesystem, including the
// empty label a failed query leaves behind.
func Identify(label string) (FSType, Descriptor, error) {
	entry, ok := descriptorsByLabel[label]
	if !ok {
		return Unsupported, Descriptor{}, ErrUnsupportedFilesystem.WithMessage(fmt.Sprintf("label %q", label))
	}

	return entry.fsType, entry.descriptor, nil
}

// Dirty reports whether the flag is set in sector.
func (d Descriptor) Dirty(sector []byte) bool {
	return sector[d.Offset]&d.Mask != 0
}

// Clear clears the flag in sector and reports whether anything changed. No
// other bit of sector is touched.
func (d Descriptor) Clear(sector []byte) bool {
	if !d.Dirty(sector) {
		return false
	}

	sector[d.Offset] &^= d.Mask

	return true
}
