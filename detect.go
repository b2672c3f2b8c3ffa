package spritesplit

import (
	"errors"
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Axis int

const (
	AxisRows Axis = iota
	AxisColumns
)

func (a Axis) String() string {
	switch a {
	case AxisColumns:
		return "columns"
	default:
		return "rows"
	}
}

// Band is a closed interval [Start, End] of row or column indices.
type Band struct {
	Start, End int
}

func (b Band) Len() int { return b.End - b.Start + 1 }

// alphaMatrix copies the alpha channel into a height x width matrix.
func alphaMatrix(img *image.NRGBA) *mat.Dense {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	a := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		row := a.RawRowView(y)
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < w; x++ {
			row[x] = float64(img.Pix[off+x*4+3])
		}
	}
	return a
}

// AlphaProfiles returns the max alpha of every row and every column.
// Both are nil for an empty image.
func AlphaProfiles(img *image.NRGBA) (rows, cols []float64) {
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, nil
	}
	a := alphaMatrix(img)

	rows = make([]float64, size.Y)
	for y := 0; y < size.Y; y++ {
		rows[y] = floats.Max(a.RawRowView(y))
	}
	cols = make([]float64, size.X)
	col := make([]float64, size.Y)
	for x := 0; x < size.X; x++ {
		mat.Col(col, x, a)
		cols[x] = floats.Max(col)
	}
	return rows, cols
}

// Occupied returns the ascending indices whose profile value is strictly
// above threshold.
func Occupied(profile []float64, threshold uint8) []int {
	var idx []int
	t := float64(threshold)
	for i, v := range profile {
		if v > t {
			idx = append(idx, i)
		}
	}
	return idx
}

// GroupBands merges ascending indices into bands. Two neighbours stay in the
// same band while the transparent run between them is at most maxGap.
func GroupBands(indices []int, maxGap int) []Band {
	if len(indices) == 0 {
		return nil
	}
	var bands []Band
	cur := Band{Start: indices[0], End: indices[0]}
	for _, i := range indices[1:] {
		// Counts transparent pixels, not the index difference: a 2px seam
		// merges at maxGap 2, where the legacy splitter needed a 1px seam.
		if i-cur.End-1 <= maxGap {
			cur.End = i
			continue
		}
		bands = append(bands, cur)
		cur = Band{Start: i, End: i}
	}
	return append(bands, cur)
}

// DetectBands thresholds both alpha profiles and groups them into row and
// column bands. An axis with nothing occupied yields an *AxisError; when both
// axes are empty the two errors are joined.
func DetectBands(img *image.NRGBA, threshold uint8, maxGap int) (rows, cols []Band, err error) {
	rowProfile, colProfile := AlphaProfiles(img)
	rows = GroupBands(Occupied(rowProfile, threshold), maxGap)
	cols = GroupBands(Occupied(colProfile, threshold), maxGap)

	var errs []error
	if len(rows) == 0 {
		errs = append(errs, &AxisError{Axis: AxisRows})
	}
	if len(cols) == 0 {
		errs = append(errs, &AxisError{Axis: AxisColumns})
	}
	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return rows, cols, nil
}

// BuildRect pads a band pair and clamps it to a width x height image.
// The result is half-open: Max is End + Right/Bottom padding.
func BuildRect(row, col Band, width, height int, pad Padding) image.Rectangle {
	return image.Rect(
		max(0, col.Start-pad.Left),
		max(0, row.Start-pad.Top),
		min(width, col.End+pad.Right),
		min(height, row.End+pad.Bottom),
	)
}

// HasContent reports whether any pixel alpha is strictly above threshold.
func HasContent(img *image.NRGBA, threshold uint8) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x, n := 0, b.Dx(); x < n; x++ {
			if img.Pix[off+x*4+3] > threshold {
				return true
			}
		}
	}
	return false
}
