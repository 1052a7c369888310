// Package dirtybit clears the dirty flag of FAT32 and exFAT volumes by
// rewriting sector 0, without checking or repairing anything else.
//
// A run is a single pass: open, lock (best effort), identify, read sector 0,
// test the flag, write sector 0 back, dismount if locked. The first failing
// step ends the run and the volume is always closed.
package dirtybit

import (
	"go.uber.org/zap"
)

// Outcome is the terminal state of a successful run.
type Outcome int

// Outcomes.
const (
	// Clean means the flag was already clear; nothing was written.
	Clean Outcome = iota
	// Cleared means the flag was set and sector 0 was rewritten.
	Cleared
	// Dirty means the flag is set and the run was check-only.
	Dirty
)

func (o Outcome) String() string {
	switch o {
	case Clean:
		return "clean"
	case Cleared:
		return "cleared"
	case Dirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// Message returns the line printed for the operator.
func (o Outcome) Message() string {
	switch o {
	case Cleared:
		return "Dirty bit successfully cleared."
	case Dirty:
		return "Drive is dirty."
	default:
		return "Drive is clean."
	}
}

// Result describes a successful run.
type Result struct {
	Outcome    Outcome
	FSType     FSType
	SectorSize int
	// Locked is false when another process kept the volume busy. A cleared
	// volume may then look dirty until it is removed or the system restarts.
	Locked     bool
	Dismounted bool
}

// Clearer runs the dirty bit pipeline against volumes from an Opener.
type Clearer struct {
	open      Opener
	logger    *zap.Logger
	checkOnly bool
}

// Option configures a Clearer.
type Option func(*Clearer)

// WithLogger sets the logger for step by step debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Clearer) {
		c.logger = logger
	}
}

// WithCheckOnly stops the run after the flag is tested.
func WithCheckOnly(checkOnly bool) Option {
	return func(c *Clearer) {
		c.checkOnly = checkOnly
	}
}

// NewClearer returns a Clearer opening volumes with open.
func NewClearer(open Opener, opts ...Option) *Clearer {
	c := &Clearer{
		open:   open,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run clears the dirty flag of the volume at path.
func (c *Clearer) Run(path string) (Result, error) {
	var res Result

	logger := c.logger.With(zap.String("volume", path))

	vol, err := c.open(path)
	if err != nil {
		return res, ErrAccess.Wrap(err)
	}

	defer func() {
		if err := vol.Close(); err != nil {
			logger.Warn("close failed", zap.Error(err))
		}
	}()

	res.Locked = vol.Lock()
	logger.Debug("lock", zap.Bool("locked", res.Locked))

	label := vol.FilesystemLabel()

	fsType, descriptor, err := Identify(label)
	if err != nil {
		logger.Debug("filesystem rejected", zap.String("label", label))

		return res, err
	}

	res.FSType = fsType
	logger.Debug("filesystem", zap.Stringer("type", fsType), zap.Int("offset", descriptor.Offset), zap.Uint8("mask", descriptor.Mask))

	sector, err := ReadSector(vol, descriptor)
	if err != nil {
		return res, err
	}

	res.SectorSize = sector.Size()
	logger.Debug("sector 0 read", zap.Int("size", sector.Size()))

	if !descriptor.Dirty(sector.Bytes()) {
		res.Outcome = Clean

		return res, nil
	}

	if c.checkOnly {
		res.Outcome = Dirty

		return res, nil
	}

	descriptor.Clear(sector.Bytes())

	if err = WriteSector(vol, sector); err != nil {
		return res, err
	}

	res.Outcome = Cleared
	logger.Debug("sector 0 written")

	if !res.Locked {
		logger.Debug("dismount skipped, volume not locked")

		return res, nil
	}

	// The flag is already on disk; a failed dismount only delays when the
	// environment notices.
	if err = vol.Dismount(); err != nil {
		logger.Debug("dismount failed", zap.Error(err))

		return res, nil
	}

	res.Dismounted = true

	return res, nil
}
