// Package demosaic reconstructs full-color or monochrome images from raw
// RGGB Bayer-pattern frames using Malvar-He-Cutler linear interpolation.
//
// The Bayer input is a flat row-major slice of 8-bit or 16-bit samples where
// the top-left sample is red. Row and whole-image operations are provided for
// six output variants: same-depth RGB (RowRGB/ImageRGB over uint8 or uint16),
// 16-to-8-bit narrowed RGB, same-depth mono, and 16-to-8-bit narrowed mono.
// The engine never allocates; all buffers are owned by the caller, and the
// output must not alias the input.
//
// Rows on the image border are demosaiced through edge-safe accessors that
// reflect out-of-range coordinates to the nearest in-bounds sample of the
// same Bayer color. Interior rows take a fast path with direct indexing that
// produces bit-identical results.
//
// Precondition violations (bad dimensions, nil buffers, out-of-range rows or
// coefficients) are reported to the installed FailureSink and never return a
// usable result; see SetFailureSink.
//
// Based on:
// H. S. Malvar, Li-wei He and R. Cutler, "High-quality linear interpolation
// for demosaicing of Bayer-patterned color images," 2004 IEEE International
// Conference on Acoustics, Speech, and Signal Processing, Montreal, 2004.
package demosaic
