package quality

import (
	"errors"
	"fmt"
	"image"
)

const (
	windowSize = 7
	k1         = 0.01
	k2         = 0.03
	dataRange  = 255.0
)

var (
	// ErrDimensionMismatch is returned when the compared images differ in size.
	ErrDimensionMismatch = errors.New("images differ in size")
	// ErrImageTooSmall is returned when an image cannot hold a single window.
	ErrImageTooSmall = errors.New("image smaller than the ssim window")
)

// SSIM returns the mean structural similarity of a and b, in [-1, 1].
func SSIM(a, b *image.Gray) (float64, error) {
	ra, rb := a.Bounds(), b.Bounds()
	if ra.Dx() != rb.Dx() || ra.Dy() != rb.Dy() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, ra.Dx(), ra.Dy(), rb.Dx(), rb.Dy())
	}
	w, h := ra.Dx(), ra.Dy()
	if w < windowSize || h < windowSize {
		return 0, fmt.Errorf("%w: %dx%d", ErrImageTooSmall, w, h)
	}

	// Running per-column sums over the current band of windowSize rows. All
	// sums are integers so equal inputs produce bit-identical statistics.
	cols := newColumnSums(w)
	for y := 0; y < windowSize; y++ {
		cols.add(row(a, y), row(b, y), 1)
	}

	var total float64
	var count int
	for top := 0; ; top++ {
		var win windowSums
		for x := 0; x < windowSize; x++ {
			win.add(cols, x, 1)
		}
		for left := 0; ; left++ {
			total += win.ssim()
			count++
			if left+windowSize >= w {
				break
			}
			win.add(cols, left+windowSize, 1)
			win.add(cols, left, -1)
		}
		if top+windowSize >= h {
			break
		}
		cols.add(row(a, top+windowSize), row(b, top+windowSize), 1)
		cols.add(row(a, top), row(b, top), -1)
	}
	return total / float64(count), nil
}

// Preserved returns SSIM(original, converted) as a percentage.
func Preserved(original, converted image.Image) (float64, error) {
	score, err := SSIM(Grayscale(original), Grayscale(converted))
	if err != nil {
		return 0, err
	}
	return score * 100, nil
}

func row(img *image.Gray, y int) []uint8 {
	r := img.Bounds()
	off := img.PixOffset(r.Min.X, r.Min.Y+y)
	return img.Pix[off : off+r.Dx()]
}

type columnSums struct {
	x, y, xx, yy, xy []int64
}

func newColumnSums(w int) *columnSums {
	return &columnSums{
		x:  make([]int64, w),
		y:  make([]int64, w),
		xx: make([]int64, w),
		yy: make([]int64, w),
		xy: make([]int64, w),
	}
}

func (c *columnSums) add(ra, rb []uint8, sign int64) {
	for i := range ra {
		va, vb := int64(ra[i]), int64(rb[i])
		c.x[i] += sign * va
		c.y[i] += sign * vb
		c.xx[i] += sign * va * va
		c.yy[i] += sign * vb * vb
		c.xy[i] += sign * va * vb
	}
}

type windowSums struct {
	x, y, xx, yy, xy int64
}

func (s *windowSums) add(c *columnSums, col int, sign int64) {
	s.x += sign * c.x[col]
	s.y += sign * c.y[col]
	s.xx += sign * c.xx[col]
	s.yy += sign * c.yy[col]
	s.xy += sign * c.xy[col]
}

func (s *windowSums) ssim() float64 {
	const (
		n       = float64(windowSize * windowSize)
		covNorm = n / (n - 1)
		c1      = (k1 * dataRange) * (k1 * dataRange)
		c2      = (k2 * dataRange) * (k2 * dataRange)
	)
	ux := float64(s.x) / n
	uy := float64(s.y) / n
	// Explicit float64 conversions keep each product rounded on its own so the
	// compiler cannot fuse them into multiply-adds.
	vx := covNorm * (float64(s.xx)/n - float64(ux*ux))
	vy := covNorm * (float64(s.yy)/n - float64(uy*uy))
	vxy := covNorm * (float64(s.xy)/n - float64(ux*uy))

	num := (2*float64(ux*uy) + c1) * (2*vxy + c2)
	den := (float64(ux*ux) + float64(uy*uy) + c1) * (vx + vy + c2)
	return num / den
}
