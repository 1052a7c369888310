// clearfatdirty.go
// Clears the dirty bit on FAT32 or exFAT drives without checking or fixing
// anything else on the disk.
//
// Only sector 0 is read and written back. Windows may refuse the write if
// controlled folder access is on; allow the binary with e.g.
//
//	Add-MpPreference -ControlledFolderAccessAllowedApplications 'D:\path\to\clearfatdirty.exe'
//
// in an elevated PowerShell.
//
// The volume is locked if possible. Locking fails while files are open; the
// dirty bit is still cleared but the drive may look dirty until it is removed
// or the system restarts.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clearfatdirty/dirtybit"
	"clearfatdirty/logging"
	"clearfatdirty/volume"
)

const usage = `Syntax error. Usage:
clearfatdirty <driveSpec>
  <driveSpec>   Drive letter followed by a colon (e.g. E:).
`

const unlockedNotice = "Volume was not locked; it may appear dirty until it is removed or the system restarts."

// openDrive opens drive letters; tests swap it for an in-memory volume.
var openDrive dirtybit.Opener = volume.OpenRaw

type config struct {
	verbose    bool
	checkOnly  bool
	sectorSize int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:   "clearfatdirty <driveSpec>",
		Short: "Clear the dirty bit on FAT32 or exFAT drives",
		Long:  "Clear the dirty bit on FAT32 or exFAT formatted drives without fixing errors on the disk. Use at your own risk.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return dirtybit.ErrSyntax.WithMessage(fmt.Sprintf("expected 1 argument, got %d", len(args)))
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := dirtybit.ParseDriveSpec(args[0])
			if err != nil {
				return err
			}

			return clearVolume(cmd, cfg, openDrive, spec.DevicePath())
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "log each step to stderr")
	root.PersistentFlags().BoolVar(&cfg.checkOnly, "check", false, "only report whether the dirty bit is set, never write")
	// Subcommands inherit this; only the drive-letter form prints its usage.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if cmd != root {
			return err
		}

		return dirtybit.ErrSyntax.Wrap(err)
	})
	root.SetHelpCommand(&cobra.Command{
		Use:    "help",
		Hidden: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return dirtybit.ErrSyntax.WithMessage("help is not a drive")
		},
	})
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)

	imageCmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Clear the dirty bit in a disk image file or Linux block device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearVolume(cmd, cfg, volume.PathOpener(cfg.sectorSize), args[0])
		},
	}
	imageCmd.Flags().IntVar(&cfg.sectorSize, "sector-size", volume.DefaultImageSectorSize, "physical sector size of image files (bytes)")

	root.AddCommand(imageCmd, newListCmd())

	return root
}

func clearVolume(cmd *cobra.Command, cfg *config, open dirtybit.Opener, path string) error {
	logger := logging.NewLogger(cmd.ErrOrStderr(), logging.LevelFor(cfg.verbose)).With(logging.Component("clearfatdirty"))
	defer logger.Sync() //nolint:errcheck

	clearer := dirtybit.NewClearer(open, dirtybit.WithLogger(logger), dirtybit.WithCheckOnly(cfg.checkOnly))

	res, err := clearer.Run(path)
	if err != nil {
		logger.Debug("run failed", zap.Error(err))

		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Outcome.Message())

	if res.Outcome == dirtybit.Cleared && !res.Locked {
		fmt.Fprintln(cmd.ErrOrStderr(), unlockedNotice)
	}

	return nil
}

func reportError(w io.Writer, err error) {
	if errors.Is(err, dirtybit.ErrSyntax) {
		fmt.Fprint(w, usage)

		return
	}

	fmt.Fprintln(w, dirtybit.Message(err))

	if errors.Is(err, dirtybit.ErrWrite) {
		color.New(color.FgYellow).Fprintln(w, dirtybit.WriteRemediation) //nolint:errcheck
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		reportError(stderr, err)

		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
