package codec

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is the highest quality the JPEG encoder accepts.
const DefaultJPEGQuality = 100

// EncodeOptions tunes EncodeFile.
type EncodeOptions struct {
	JPEGQuality int
	// Exif is written as an APP1 segment into JPEG output. Ignored for PNG.
	Exif []byte
}

// EncodeFile writes img to path in the target format. A file left behind by a
// failed encode is removed before the error is returned.
func EncodeFile(path string, img image.Image, target Target, opts EncodeOptions) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, img, target, opts); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the target format.
func Encode(w io.Writer, img image.Image, target Target, opts EncodeOptions) error {
	switch target.Format {
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		if len(opts.Exif) > 0 {
			ew, err := newExifWriter(w, opts.Exif)
			if err != nil {
				return err
			}
			w = ew
		}
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	default:
		return fmt.Errorf("unsupported output format %q", target.Format)
	}
}
