package spritesplit

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"
)

func newSheet(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func fill(img *image.NRGBA, r image.Rectangle, a uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: a})
		}
	}
}

// 30x30 canvas, four 10x10 squares, 5px gutters.
func gridSheet() *image.NRGBA {
	img := newSheet(30, 30)
	for _, y := range []int{2, 17} {
		for _, x := range []int{2, 17} {
			fill(img, image.Rect(x, y, x+10, y+10), 255)
		}
	}
	return img
}

func TestAlphaProfiles(t *testing.T) {
	img := newSheet(4, 3)
	img.SetNRGBA(1, 2, color.NRGBA{A: 7})
	img.SetNRGBA(3, 2, color.NRGBA{A: 90})
	rows, cols := AlphaProfiles(img)
	if !slices.Equal(rows, []float64{0, 0, 90}) {
		t.Fatalf("rows = %v", rows)
	}
	if !slices.Equal(cols, []float64{0, 7, 0, 90}) {
		t.Fatalf("cols = %v", cols)
	}
}

func TestAlphaProfiles_EmptyImage(t *testing.T) {
	rows, cols := AlphaProfiles(newSheet(0, 0))
	if rows != nil || cols != nil {
		t.Fatalf("expected nil profiles, got %v %v", rows, cols)
	}
}

func TestOccupied_StrictThreshold(t *testing.T) {
	got := Occupied([]float64{0, 10, 11, 255, 3}, 10)
	if !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestGroupBands_GapTolerance(t *testing.T) {
	cases := []struct {
		name    string
		indices []int
		want    []Band
	}{
		{"contiguous", []int{3, 4, 5}, []Band{{3, 5}}},
		{"1px gap merges", []int{1, 2, 4, 5}, []Band{{1, 5}}},
		{"2px gap merges", []int{1, 2, 5, 6}, []Band{{1, 6}}},
		{"3px gap splits", []int{1, 2, 6, 7}, []Band{{1, 2}, {6, 7}}},
		{"single", []int{9}, []Band{{9, 9}}},
		{"empty", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GroupBands(tc.indices, 2)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestGroupBands_Idempotent(t *testing.T) {
	bands := GroupBands([]int{0, 1, 3, 9, 10, 11, 20, 22, 30}, 2)
	var all []int
	for _, b := range bands {
		for i := b.Start; i <= b.End; i++ {
			all = append(all, i)
		}
	}
	again := GroupBands(all, 2)
	if !slices.Equal(bands, again) {
		t.Fatalf("regrouping changed bands: %v -> %v", bands, again)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Start <= bands[i-1].End {
			t.Fatalf("bands overlap or unordered: %v", bands)
		}
	}
}

func TestDetectBands_Grid(t *testing.T) {
	rows, cols, err := DetectBands(gridSheet(), 10, 2)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	want := []Band{{2, 11}, {17, 26}}
	if !slices.Equal(rows, want) || !slices.Equal(cols, want) {
		t.Fatalf("rows=%v cols=%v", rows, cols)
	}
	for _, b := range append(rows, cols...) {
		if b.Start > b.End || b.Start < 0 || b.End >= 30 {
			t.Fatalf("band out of range: %v", b)
		}
	}
}

func TestDetectBands_SeamWidth(t *testing.T) {
	merged := newSheet(30, 10)
	fill(merged, image.Rect(2, 2, 10, 8), 255)
	fill(merged, image.Rect(12, 2, 20, 8), 255) // x=10,11 transparent
	_, cols, err := DetectBands(merged, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cols, []Band{{2, 19}}) {
		t.Fatalf("2px gap: cols = %v", cols)
	}

	split := newSheet(30, 10)
	fill(split, image.Rect(2, 2, 10, 8), 255)
	fill(split, image.Rect(13, 2, 21, 8), 255) // x=10..12 transparent
	_, cols, err = DetectBands(split, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cols, []Band{{2, 9}, {13, 20}}) {
		t.Fatalf("3px gap: cols = %v", cols)
	}
}

func TestDetectBands_IgnoresFaintHalo(t *testing.T) {
	img := newSheet(20, 20)
	fill(img, image.Rect(5, 5, 10, 10), 255)
	fill(img, image.Rect(14, 0, 20, 20), 10)
	rows, cols, err := DetectBands(img, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(rows, []Band{{5, 9}}) || !slices.Equal(cols, []Band{{5, 9}}) {
		t.Fatalf("rows=%v cols=%v", rows, cols)
	}
}

func TestDetectBands_TransparentImage(t *testing.T) {
	_, _, err := DetectBands(newSheet(16, 16), 10, 2)
	if !errors.Is(err, ErrEmptyAxis) {
		t.Fatalf("expected ErrEmptyAxis, got %v", err)
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined errors, got %T", err)
	}
	var axes []Axis
	for _, e := range joined.Unwrap() {
		var ae *AxisError
		if errors.As(e, &ae) {
			axes = append(axes, ae.Axis)
		}
	}
	if !slices.Equal(axes, []Axis{AxisRows, AxisColumns}) {
		t.Fatalf("axes = %v", axes)
	}
}

func TestBuildRect_PadsAndClamps(t *testing.T) {
	pad := DefaultOptions().Padding
	r := BuildRect(Band{2, 11}, Band{17, 26}, 30, 30, pad)
	if r != image.Rect(16, 1, 28, 13) {
		t.Fatalf("got %v", r)
	}
	edge := BuildRect(Band{0, 29}, Band{0, 29}, 30, 30, pad)
	if edge != image.Rect(0, 0, 30, 30) {
		t.Fatalf("edge rect %v not clamped", edge)
	}
	big := BuildRect(Band{0, 4}, Band{3, 5}, 6, 5, Padding{Left: 9, Top: 9, Right: 9, Bottom: 9})
	if !big.In(image.Rect(0, 0, 6, 5)) {
		t.Fatalf("rect %v exceeds bounds", big)
	}
}

func TestHasContent(t *testing.T) {
	img := newSheet(5, 5)
	if HasContent(img, 0) {
		t.Fatal("transparent image reported content")
	}
	img.SetNRGBA(4, 4, color.NRGBA{A: 1})
	if !HasContent(img, 0) {
		t.Fatal("alpha 1 pixel not reported")
	}
	if HasContent(img, 1) {
		t.Fatal("threshold must be strict")
	}
	sub := img.SubImage(image.Rect(0, 0, 3, 3)).(*image.NRGBA)
	if HasContent(sub, 0) {
		t.Fatal("sub image leaked pixel outside its bounds")
	}
}
