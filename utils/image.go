package utils

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// ReadImage decodes the file at path. Any registered format is accepted.
func ReadImage(path string) (image.Image, error) {
	return imaging.Open(path)
}

// ToNRGBA returns img as a zero-origin *image.NRGBA, copying pixels.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// SaveImage writes img as PNG, replacing any existing file.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
