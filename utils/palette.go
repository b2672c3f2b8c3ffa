package utils

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

// Sprites are mostly transparent; samples are capped to keep kmeans cheap.
const maxPaletteSamples = 12000

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "dominantcolor", "dominant", "":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

func HexPalette(palette []colorful.Color) []string {
	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = c.Clamped().Hex()
	}
	return out
}

// visiblePixels collects up to maxPaletteSamples pixels with non-zero alpha
// into a single-row image. Transparent padding would otherwise dominate.
func visiblePixels(img image.Image) *image.NRGBA {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return nil
	}
	step := 1
	if n > maxPaletteSamples {
		step = int(math.Sqrt(float64(n)/float64(maxPaletteSamples))) + 1
	}
	var pix []color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			c.A = 255
			pix = append(pix, c)
		}
	}
	if len(pix) == 0 {
		return nil
	}
	out := image.NewNRGBA(image.Rect(0, 0, len(pix), 1))
	for i, c := range pix {
		out.SetNRGBA(i, 0, c)
	}
	return out
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	sample := visiblePixels(img)
	if sample == nil {
		return nil
	}
	candidates := dominantcolor.FindWeight(sample, max(8, k*4))
	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	sample := visiblePixels(img)
	if sample == nil {
		return nil
	}
	w := sample.Bounds().Dx()
	dataset := make(clusters.Observations, 0, w)
	for x := 0; x < w; x++ {
		c := sample.NRGBAAt(x, 0)
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255.0,
			float64(c.G) / 255.0,
			float64(c.B) / 255.0,
		})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(k, len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}
	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colors far apart in Lab,
// seeded with the heaviest candidate.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	seed := 0
	for i, c := range cands {
		if c.Weight > maxW {
			maxW = c.Weight
			seed = i
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	selected := make([]bool, len(cands))
	selected[seed] = true
	out := []colorful.Color{cands[seed].Col}
	for len(out) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if selected[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, s := range out {
				minD = min(minD, c.Col.DistanceLab(s))
			}
			score := minD * (0.55 + 0.45*math.Sqrt(c.Weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		selected[best] = true
		out = append(out, cands[best].Col)
	}
	return out
}

// meanColor averages the visible pixels. Last resort for tiny or flat sprites.
func meanColor(img image.Image) (colorful.Color, bool) {
	sample := visiblePixels(img)
	if sample == nil {
		return colorful.Color{}, false
	}
	var r, g, b float64
	n := sample.Bounds().Dx()
	for x := 0; x < n; x++ {
		c := sample.NRGBAAt(x, 0)
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
	}
	d := 255.0 * float64(n)
	return colorful.Color{R: r / d, G: g / d, B: b / d}, true
}

// ExtractPalette returns up to k colors of the visible pixels, darkest
// first. KMeans falls back to dominantcolor when it yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if k <= 0 {
		return nil
	}
	var p []colorful.Color
	if method == PaletteMethodKMeans {
		p = ExtractKMeansPalette(img, k)
	}
	if len(p) == 0 {
		p = ExtractDominantPalette(img, k)
	}
	if len(p) == 0 {
		if c, ok := meanColor(img); ok {
			p = []colorful.Color{c}
		}
	}
	SortPaletteByBrightness(p)
	return p
}
