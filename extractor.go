package spritesplit

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/setanarut/spritesplit/utils"
)

const ManifestName = "manifest.json"

// Extractor splits one decoded sheet. Detect fills the bands and candidates,
// Export crops, verifies and writes them.
type Extractor struct {
	Image      *image.NRGBA
	Options    Options
	RowBands   []Band
	ColBands   []Band
	Candidates []Candidate

	log *slog.Logger
}

// NewExtractor normalises input to NRGBA. A nil logger discards output.
func NewExtractor(input image.Image, opt Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{
		Image:   utils.ToNRGBA(input),
		Options: opt,
		log:     logger,
	}
}

func (e *Extractor) Detect() error {
	if err := e.Options.Validate(); err != nil {
		return err
	}
	rows, cols, err := DetectBands(e.Image, e.Options.DetectThreshold, e.Options.GapTolerance)
	if err != nil {
		return err
	}
	e.RowBands, e.ColBands = rows, cols
	e.log.Info("bands detected", "rows", len(rows), "cols", len(cols))
	if l := e.Options.Layout; l.Rows() > 0 && l.Cols() > 0 && !l.Covers(len(rows), len(cols)) {
		e.log.Warn("grid smaller than layout, using special names",
			"rows", len(rows), "cols", len(cols), "layout_rows", l.Rows(), "layout_cols", l.Cols())
	}

	size := e.Image.Bounds().Size()
	e.Candidates = make([]Candidate, 0, len(rows)*len(cols))
	for r, rb := range rows {
		for c, cb := range cols {
			cand := Candidate{
				Row:  r,
				Col:  c,
				Rect: BuildRect(rb, cb, size.X, size.Y, e.Options.Padding),
				Name: e.Options.Layout.Name(r, c, len(rows), len(cols)),
			}
			e.log.Debug("candidate", "name", cand.Name, "rect", cand.Rect)
			e.Candidates = append(e.Candidates, cand)
		}
	}
	return nil
}

// Export processes every candidate. Empty crops are recorded and skipped.
// Write failures are recorded too; export continues and returns them joined.
func (e *Extractor) Export(ctx context.Context) (*Report, error) {
	if e.Candidates == nil {
		if err := e.Detect(); err != nil {
			return nil, err
		}
	}
	report := &Report{
		Rows:    len(e.RowBands),
		Cols:    len(e.ColBands),
		Results: make([]SpriteResult, len(e.Candidates)),
	}

	var g errgroup.Group
	g.SetLimit(e.Options.Workers)
	for i, cand := range e.Candidates {
		if err := ctx.Err(); err != nil {
			g.Wait()
			// Only the scheduled prefix has results.
			report.Results = report.Results[:i]
			return report, err
		}
		i, cand := i, cand
		g.Go(func() error {
			report.Results[i] = e.exportOne(cand)
			return nil
		})
	}
	g.Wait()

	var errs []error
	for _, res := range report.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if e.Options.Manifest && len(report.Saved()) > 0 {
		path := filepath.Join(e.Options.OutputDir, ManifestName)
		if err := utils.SaveManifest(manifestEntries(report), path); err != nil {
			errs = append(errs, &WriteError{Name: ManifestName, Path: path, Err: err})
		} else {
			report.Manifest = path
		}
	}
	return report, errors.Join(errs...)
}

func (e *Extractor) exportOne(cand Candidate) SpriteResult {
	res := SpriteResult{Candidate: cand}
	sprite := imaging.Crop(e.Image, cand.Rect)
	if !HasContent(sprite, e.Options.ContentThreshold) {
		res.Status = StatusEmpty
		e.log.Warn("empty sprite", "name", cand.Name, "rect", cand.Rect)
		return res
	}

	path := filepath.Join(e.Options.OutputDir, cand.Name)
	err := os.MkdirAll(e.Options.OutputDir, 0o755)
	if err == nil {
		err = utils.SaveImage(sprite, path)
	}
	if err != nil {
		res.Status = StatusFailed
		res.Err = &WriteError{Name: cand.Name, Path: path, Err: err}
		e.log.Error("write sprite", "name", cand.Name, "err", err)
		return res
	}

	res.Status = StatusSaved
	res.Path = path
	if e.Options.Manifest {
		res.Palette = utils.ExtractPalette(sprite, e.Options.PaletteSize, e.Options.PaletteMethod)
	}
	e.log.Info("saved sprite", "name", cand.Name, "w", cand.Rect.Dx(), "h", cand.Rect.Dy())
	return res
}

func manifestEntries(r *Report) map[string]utils.ManifestEntry {
	entries := make(map[string]utils.ManifestEntry)
	for _, res := range r.Saved() {
		entries[res.Name] = utils.ManifestEntry{
			X:       res.Rect.Min.X,
			Y:       res.Rect.Min.Y,
			W:       res.Width(),
			H:       res.Height(),
			Row:     res.Row,
			Col:     res.Col,
			Palette: utils.HexPalette(res.Palette),
		}
	}
	return entries
}

// Run decodes opt.InputPath and splits it into opt.OutputDir. Decode and
// empty-axis failures abort before anything is written.
func Run(ctx context.Context, opt Options, logger *slog.Logger) (*Report, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	img, err := utils.ReadImage(opt.InputPath)
	if err != nil {
		return nil, &DecodeError{Path: opt.InputPath, Err: err}
	}
	ex := NewExtractor(img, opt, logger)
	if err := ex.Detect(); err != nil {
		return nil, err
	}
	return ex.Export(ctx)
}
