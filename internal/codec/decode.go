package codec

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"
)

// DecodeFunc decodes a single image from r.
type DecodeFunc func(r io.Reader) (image.Image, error)

// DecodeHEIF decodes the primary image of a HEIF/HEIC container. Malformed
// containers can panic inside the decoder; those panics surface as errors.
func DecodeHEIF(r io.Reader) (img image.Image, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("heif decoder: %v", rec)
		}
	}()
	return goheif.Decode(r)
}

// DecodeAny decodes any format registered with the image package (PNG and
// JPEG among them).
func DecodeAny(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

// DecodeFile opens path and decodes it with decode.
func DecodeFile(path string, decode DecodeFunc) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ExtractExif returns the raw EXIF payload stored in a HEIF file, or nil when
// the file carries none.
func ExtractExif(path string) (exif []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			exif = nil
			err = fmt.Errorf("extract exif from %s: %v", path, rec)
		}
	}()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	exif, err = goheif.ExtractExif(f)
	if err != nil {
		return nil, fmt.Errorf("extract exif from %s: %w", path, err)
	}
	return exif, nil
}

// ToRGB returns img in an opaque three-channel representation. Images that
// already are (YCbCr, opaque RGBA) are returned as is; anything else is
// cloned and its alpha channel discarded.
func ToRGB(img image.Image) image.Image {
	switch v := img.(type) {
	case *image.YCbCr:
		return v
	case *image.RGBA:
		if v.Opaque() {
			return v
		}
	}
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
