package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// maxApp1Bytes is the largest payload a single APP1 segment can carry.
const maxApp1Bytes = 0xffff - 2

var (
	exifHeader = []byte("Exif\x00\x00")
	tiffLittle = []byte("II*\x00")
	tiffBig    = []byte("MM\x00*")
	jpegSOI    = []byte{0xff, 0xd8}
)

var (
	// ErrExifTooLarge is returned when an EXIF payload does not fit a single APP1 segment.
	ErrExifTooLarge = errors.New("exif payload exceeds one APP1 segment")
	// ErrExifHeader is returned when no EXIF or TIFF header can be located.
	ErrExifHeader = errors.New("exif payload has no recognizable header")
)

// NormalizeExif returns payload as an APP1-ready block starting with the
// "Exif\0\0" identifier. HEIF stores the block behind a 4-byte offset header,
// and some writers omit the identifier entirely.
func NormalizeExif(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var out []byte
	switch {
	case bytes.HasPrefix(payload, exifHeader):
		out = payload
	case bytes.HasPrefix(payload, tiffLittle), bytes.HasPrefix(payload, tiffBig):
		out = append(append([]byte{}, exifHeader...), payload...)
	default:
		idx := bytes.Index(payload[:min(len(payload), 16)], exifHeader)
		if idx < 0 {
			return nil, ErrExifHeader
		}
		out = payload[idx:]
	}
	if len(out) > maxApp1Bytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrExifTooLarge, len(out))
	}
	return out, nil
}

// exifWriter emits SOI plus an APP1 segment up front, then forwards the
// encoder's stream minus its own SOI marker.
type exifWriter struct {
	w    io.Writer
	skip int
}

func newExifWriter(w io.Writer, exif []byte) (io.Writer, error) {
	block, err := NormalizeExif(exif)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(jpegSOI); err != nil {
		return nil, err
	}
	segmentLen := len(block) + 2
	marker := []byte{0xff, 0xe1, byte(segmentLen >> 8), byte(segmentLen & 0xff)}
	if _, err := w.Write(marker); err != nil {
		return nil, err
	}
	if _, err := w.Write(block); err != nil {
		return nil, err
	}
	return &exifWriter{w: w, skip: len(jpegSOI)}, nil
}

func (e *exifWriter) Write(data []byte) (int, error) {
	if e.skip <= 0 {
		return e.w.Write(data)
	}
	if len(data) <= e.skip {
		e.skip -= len(data)
		return len(data), nil
	}
	skipped := e.skip
	e.skip = 0
	n, err := e.w.Write(data[skipped:])
	return n + skipped, err
}
