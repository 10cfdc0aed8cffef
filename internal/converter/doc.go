// Package converter runs a batch conversion of the HEIF/HEIC files in one
// directory.
//
// Files are processed one after another in discovery order. Each file ends
// either converted (one output file, one report block) or failed (no output
// file, one error line); a failure never stops the batch. The output
// directory sits inside the input directory and is named after it:
// {inputDir}/{basename(inputDir)}-{format}. It is only created once at least
// one HEIF file has been found.
package converter
