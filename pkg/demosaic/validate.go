package demosaic

import "math"

// coefEpsilon guards the coefficient normalization against division by zero
// when all three weights are zero.
const coefEpsilon = 0.000001

// checkDimensions verifies the image is at least 2x2 with even rows and
// columns, so every 2x2 RGGB cell is complete.
func checkDimensions(args *Args) {
	check(args.Cols >= 2, "cols >= 2", args.Cols)
	check(args.Rows >= 2, "rows >= 2", args.Rows)
	check(args.Cols%2 == 0, "cols even", args.Cols)
	check(args.Rows%2 == 0, "rows even", args.Rows)
}

// checkRow verifies the row index lies within the image.
func checkRow(args *Args, row int) {
	check(0 <= row && row < args.Rows, "row within image", row, args.Rows)
}

// checkBuffers verifies the input covers the whole image and the output
// covers n output samples.
func checkBuffers[S Sample, P any](bayer []S, out []P, args *Args, n int) {
	check(bayer != nil, "bayer != nil")
	check(out != nil, "output != nil")
	check(len(bayer) >= args.Rows*args.Cols, "bayer covers image",
		len(bayer), args.Rows*args.Cols)
	check(len(out) >= n, "output covers written range", len(out), n)
}

// checkSampleRange verifies MaxVal is representable in the output sample
// type. Trivially true for 16-bit outputs; for 8-bit outputs this is the
// max_val <= 255 precondition.
func checkSampleRange[S Sample](args *Args) {
	check(int(args.MaxVal) <= sampleMax[S](), "max_val fits output sample", args.MaxVal)
}

// checkShift verifies the narrowing shift maps MaxVal into 8-bit range.
func checkShift(args *Args) {
	check(args.RShift >= 0, "rshift >= 0", args.RShift)
	check(int(args.MaxVal)>>args.RShift <= math.MaxUint8,
		"max_val >> rshift fits 8 bits", args.MaxVal, args.RShift)
}

// checkCoefs verifies each luma weight lies in [0, 1].
func checkCoefs(c LumaCoefs) {
	check(0 <= c.Red && c.Red <= 1, "red coef in [0,1]", c.Red)
	check(0 <= c.Green && c.Green <= 1, "green coef in [0,1]", c.Green)
	check(0 <= c.Blue && c.Blue <= 1, "blue coef in [0,1]", c.Blue)
}

// normalizeCoefs scales the weights so they sum to (just under) 1. The
// epsilon keeps the division defined when all weights are zero, and also
// makes the normalized sum strictly less than 1, which the final check
// confirms.
func normalizeCoefs(c LumaCoefs) LumaCoefs {
	sum := c.Red + c.Green + c.Blue + coefEpsilon
	normed := LumaCoefs{
		Red:   c.Red / sum,
		Green: c.Green / sum,
		Blue:  c.Blue / sum,
	}
	check(normed.Red+normed.Green+normed.Blue < 1.0, "normalized coef sum < 1",
		normed.Red+normed.Green+normed.Blue)
	return normed
}
