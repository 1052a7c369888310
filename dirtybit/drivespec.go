package dirtybit

import "fmt"

// DriveSpec is a drive letter, always upper case.
type DriveSpec byte

// ParseDriveSpec accepts exactly "<Letter>:" with an ASCII letter in either
// case.
func ParseDriveSpec(arg string) (DriveSpec, error) {
	if len(arg) != 2 || arg[1] != ':' {
		return 0, ErrSyntax.WithMessage(fmt.Sprintf("%q is not a drive spec", arg))
	}

	letter := arg[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return 0, ErrSyntax.WithMessage(fmt.Sprintf("%q is not a drive letter", arg[:1]))
	}

	return DriveSpec(letter), nil
}

func (d DriveSpec) String() string {
	return string([]byte{byte(d), ':'})
}

// DevicePath returns the raw device path of the volume, e.g. \\.\E:.
func (d DriveSpec) DevicePath() string {
	return `\\.\` + d.String()
}
