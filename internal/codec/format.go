package codec

import (
	"fmt"
	"strings"
)

// Format identifies the encoder used for an output file.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ValidTokens lists the accepted output format tokens in display order.
var ValidTokens = []string{"png", "jpg", "jpeg"}

// Target is the requested output: the token as given plus its encoder.
type Target struct {
	Token  string
	Format Format
}

// ParseTarget maps a format token onto a Target. Tokens are matched exactly.
func ParseTarget(token string) (Target, error) {
	switch token {
	case "png":
		return Target{Token: token, Format: FormatPNG}, nil
	case "jpg", "jpeg":
		return Target{Token: token, Format: FormatJPEG}, nil
	default:
		return Target{}, fmt.Errorf("invalid format %q (choose from %s)", token, strings.Join(ValidTokens, ", "))
	}
}

// Extension returns the output file extension including the leading dot.
func (t Target) Extension() string {
	return "." + t.Token
}

// Lossless reports whether the encoder preserves pixels exactly.
func (t Target) Lossless() bool {
	return t.Format == FormatPNG
}
