package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/setanarut/spritesplit"
	"github.com/setanarut/spritesplit/utils"
)

type flags struct {
	outDir      string
	manifest    bool
	paletteName string
	paletteSize int
	workers     int
	verbose     bool
	quiet       bool
}

func (f *flags) level() slog.Level {
	switch {
	case f.verbose:
		return slog.LevelDebug
	case f.quiet:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// newRootCmd builds the command with its own flag state.
func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "spritesplit [sheet.png]",
		Short: "Split a sprite sheet into one PNG per sprite",
		Long: `Detects sprite rows and columns from the alpha channel of a sheet,
crops every cell of the grid and writes the non-empty ones to a directory.
Without an argument the sheet defaults to ` + spritesplit.DefaultInputPath + `.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := spritesplit.DefaultOptions()
			if len(args) == 1 {
				opt.InputPath = args[0]
			}
			opt.OutputDir = f.outDir
			opt.Manifest = f.manifest
			opt.PaletteSize = f.paletteSize
			opt.Workers = f.workers
			method, err := utils.ParsePaletteMethod(f.paletteName)
			if err != nil {
				return err
			}
			opt.PaletteMethod = method

			logger := newLogger(f.level())
			report, err := spritesplit.Run(cmd.Context(), opt, logger)
			if report != nil {
				if perr := report.Print(cmd.OutOrStdout()); perr != nil {
					logger.Error("print report", "err", perr)
				}
			}
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.outDir, "out", "o", spritesplit.DefaultOutputDir, "Output directory for the sprites")
	fl.BoolVarP(&f.manifest, "manifest", "m", false, "Also write "+spritesplit.ManifestName)
	fl.StringVar(&f.paletteName, "palette", "dominantcolor", "Manifest palette method: dominantcolor or kmeans")
	fl.IntVar(&f.paletteSize, "palette-size", 3, "Colors per sprite in the manifest")
	fl.IntVarP(&f.workers, "workers", "j", 1, "Concurrent sprite writers")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Log every band and candidate")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "Only log errors")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spritesplit:", err)
		os.Exit(1)
	}
}
