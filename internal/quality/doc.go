// Package quality measures how much of an image survives a lossy re-encode.
//
// Both images are reduced to 8-bit luma and compared with the structural
// similarity index (SSIM) using the conventional parameters: a 7x7 uniform
// window, K1 = 0.01, K2 = 0.03, a data range of 255, and sample covariance.
// The mean is taken over every window lying entirely inside the image. The
// reported "quality preserved" figure is SSIM scaled to a percentage.
package quality
