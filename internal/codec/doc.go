// Package codec decodes HEIF/HEIC sources and encodes PNG or JPEG output.
//
// The format token a user types (png, jpg, jpeg) is kept verbatim as the
// output extension while the encoder is chosen from its normalized Format.
// Encoding removes any partially written file when it fails, so callers can
// rely on "no error" meaning "complete file on disk".
package codec
