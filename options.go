package spritesplit

import (
	"fmt"

	"github.com/setanarut/spritesplit/utils"
)

const (
	DefaultInputPath = "cards_sprite_sheet.png"
	DefaultOutputDir = "card_sprites"
)

// Padding is added around every band pair before cropping, per edge in pixels.
type Padding struct {
	Left, Top, Right, Bottom int
}

type Options struct {
	// Sheet to read. Used by Run only; NewExtractor takes a decoded image.
	InputPath string
	// Directory the sprites are written to. Created on the first save.
	OutputDir string
	// A row or column is occupied when its max alpha is strictly above this.
	// Default 10 rejects antialiasing halos but keeps low-opacity art.
	// Too high drops faint sprites, too low merges halos into bands.
	DetectThreshold uint8
	// Longest transparent run (px) absorbed inside one band.
	// Default 2: thin seams in one sprite do not split it, a 3px gutter does.
	GapTolerance int
	// Expansion around each band pair. Default 1 on left/top, 2 on right/bottom
	// to keep the trailing antialiased edge the detector tends to clip.
	Padding Padding
	// A crop is saved only when some pixel alpha is strictly above this.
	// Kept separate from DetectThreshold; default 0 only flags fully
	// transparent crops.
	ContentThreshold uint8
	// Grid position -> filename table.
	Layout Layout
	// Write manifest.json next to the sprites.
	Manifest bool
	// Colors per sprite recorded in the manifest.
	PaletteSize   int
	PaletteMethod utils.PaletteMethod
	// Concurrent writers. 1 keeps export sequential.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		InputPath:        DefaultInputPath,
		OutputDir:        DefaultOutputDir,
		DetectThreshold:  10,
		GapTolerance:     2,
		Padding:          Padding{Left: 1, Top: 1, Right: 2, Bottom: 2},
		ContentThreshold: 0,
		Layout:           DefaultLayout(),
		PaletteSize:      3,
		PaletteMethod:    utils.PaletteMethodDominantColor,
		Workers:          1,
	}
}

// Validate rejects negative geometry and fills empty paths, layout, palette
// size and worker count. Zero thresholds, gap and padding are valid settings
// and are kept; start from DefaultOptions for the documented defaults.
func (o *Options) Validate() error {
	if o.GapTolerance < 0 {
		return fmt.Errorf("invalid options: gap tolerance %d < 0", o.GapTolerance)
	}
	p := o.Padding
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
		return fmt.Errorf("invalid options: negative padding %+v", p)
	}
	if o.InputPath == "" {
		o.InputPath = DefaultInputPath
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if len(o.Layout.Values) == 0 && len(o.Layout.Suits) == 0 {
		o.Layout = DefaultLayout()
	}
	if o.Layout.Special == "" {
		o.Layout.Special = defaultSpecial
	}
	if o.PaletteSize <= 0 {
		o.PaletteSize = 3
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return nil
}
