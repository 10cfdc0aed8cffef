package quality

import (
	"image"

	"github.com/disintegration/imaging"
)

// Grayscale converts img to 8-bit luma (0.299 R + 0.587 G + 0.114 B).
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	lum := imaging.Grayscale(img)
	out := image.NewGray(lum.Bounds())
	for i, j := 0, 0; j < len(out.Pix); i, j = i+4, j+1 {
		out.Pix[j] = lum.Pix[i]
	}
	return out
}
