package demosaic

// Monochrome output: each pixel is fully demosaiced and the three channels
// are folded into a single luma sample with caller-supplied weights. The
// weights are normalized per call, so passing unnormalized coefficients
// (say 1/1/1 for a plain average) is fine. For the narrowing variant the
// channels are shifted into 8-bit range first and the mix happens on the
// 8-bit values, matching what a mix of the separately narrowed RGB output
// would give.

// mixLuma folds an RGB triple into one sample. The weights must already be
// normalized; rounding is to nearest.
func mixLuma[S Sample](c LumaCoefs, r, g, b int) S {
	return S(c.Red*float64(r) + c.Green*float64(g) + c.Blue*float64(b) + 0.5)
}

// RowMono demosaics one row of a Bayer image into luma samples at the same
// bit depth.
func RowMono[S Sample](bayer []S, args *Args, row int, out []S) {
	check(args != nil, "args != nil")

	if row < 2 || row >= args.Rows-2 {
		rowMonoSafe(bayer, args, row, out)
		return
	}

	checkDimensions(args)
	checkRow(args, row)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Cols)
	checkCoefs(args.Coefs)
	coefs := normalizeCoefs(args.Coefs)

	ncol := args.Cols
	maxVal := int(args.MaxVal)
	o := offsetsAt(row, ncol)

	if row%2 == 0 { // red-green row
		out[0] = monoAtRed(bayer, args, coefs, row, 0)
		out[1] = monoAtGreenRG(bayer, args, coefs, row, 1)

		for col := 2; col < ncol-2; {
			out[col] = mixLuma[S](coefs,
				int(bayer[o.r0+col]),
				greenFast(bayer, o, col, maxVal),
				oppositeFast(bayer, o, col, maxVal))
			col++
			out[col] = mixLuma[S](coefs,
				alongRowFast(bayer, o, col, maxVal),
				int(bayer[o.r0+col]),
				alongColumnFast(bayer, o, col, maxVal))
			col++
		}

		out[ncol-2] = monoAtRed(bayer, args, coefs, row, ncol-2)
		out[ncol-1] = monoAtGreenRG(bayer, args, coefs, row, ncol-1)
	} else { // green-blue row
		out[0] = monoAtGreenGB(bayer, args, coefs, row, 0)
		out[1] = monoAtBlue(bayer, args, coefs, row, 1)

		for col := 2; col < ncol-2; {
			out[col] = mixLuma[S](coefs,
				alongColumnFast(bayer, o, col, maxVal),
				int(bayer[o.r0+col]),
				alongRowFast(bayer, o, col, maxVal))
			col++
			out[col] = mixLuma[S](coefs,
				oppositeFast(bayer, o, col, maxVal),
				greenFast(bayer, o, col, maxVal),
				int(bayer[o.r0+col]))
			col++
		}

		out[ncol-2] = monoAtGreenGB(bayer, args, coefs, row, ncol-2)
		out[ncol-1] = monoAtBlue(bayer, args, coefs, row, ncol-1)
	}
}

func rowMonoSafe[S Sample](bayer []S, args *Args, row int, out []S) {
	checkDimensions(args)
	checkRow(args, row)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Cols)
	checkCoefs(args.Coefs)
	coefs := normalizeCoefs(args.Coefs)

	ncol := args.Cols
	if row%2 == 0 { // red-green row
		for col := 0; col < ncol; col += 2 {
			out[col] = monoAtRed(bayer, args, coefs, row, col)
			out[col+1] = monoAtGreenRG(bayer, args, coefs, row, col+1)
		}
	} else { // green-blue row
		for col := 0; col < ncol; col += 2 {
			out[col] = monoAtGreenGB(bayer, args, coefs, row, col)
			out[col+1] = monoAtBlue(bayer, args, coefs, row, col+1)
		}
	}
}

// Edge-safe per-phase luma assembly.

func monoAtRed[S Sample](bayer []S, args *Args, coefs LumaCoefs, row, col int) S {
	p := rgbAtRed(bayer, args, row, col)
	return mixLuma[S](coefs, int(p.Red), int(p.Green), int(p.Blue))
}

func monoAtGreenRG[S Sample](bayer []S, args *Args, coefs LumaCoefs, row, col int) S {
	p := rgbAtGreenRG(bayer, args, row, col)
	return mixLuma[S](coefs, int(p.Red), int(p.Green), int(p.Blue))
}

func monoAtGreenGB[S Sample](bayer []S, args *Args, coefs LumaCoefs, row, col int) S {
	p := rgbAtGreenGB(bayer, args, row, col)
	return mixLuma[S](coefs, int(p.Red), int(p.Green), int(p.Blue))
}

func monoAtBlue[S Sample](bayer []S, args *Args, coefs LumaCoefs, row, col int) S {
	p := rgbAtBlue(bayer, args, row, col)
	return mixLuma[S](coefs, int(p.Red), int(p.Green), int(p.Blue))
}

// RowMono16To8 demosaics one row of a 16-bit Bayer image into 8-bit luma.
// Each channel is clamped and shifted into 8-bit range before the mix, so
// the result agrees with mixing the RowRGB16To8 output.
func RowMono16To8(bayer []uint16, args *Args, row int, out []uint8) {
	check(args != nil, "args != nil")

	if row < 2 || row >= args.Rows-2 {
		rowMono16To8Safe(bayer, args, row, out)
		return
	}

	checkDimensions(args)
	checkRow(args, row)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Cols)
	checkCoefs(args.Coefs)
	coefs := normalizeCoefs(args.Coefs)

	ncol := args.Cols
	maxVal := int(args.MaxVal)
	shift := uint(args.RShift)
	o := offsetsAt(row, ncol)

	if row%2 == 0 { // red-green row
		out[0] = mono16To8At(bayer, args, coefs, row, 0, narrowRGBAtRed)
		out[1] = mono16To8At(bayer, args, coefs, row, 1, narrowRGBAtGreenRG)

		for col := 2; col < ncol-2; {
			out[col] = mixLuma[uint8](coefs,
				int(bayer[o.r0+col]>>shift),
				int(narrow(greenFast(bayer, o, col, maxVal), maxVal, shift)),
				int(narrow(oppositeFast(bayer, o, col, maxVal), maxVal, shift)))
			col++
			out[col] = mixLuma[uint8](coefs,
				int(narrow(alongRowFast(bayer, o, col, maxVal), maxVal, shift)),
				int(bayer[o.r0+col]>>shift),
				int(narrow(alongColumnFast(bayer, o, col, maxVal), maxVal, shift)))
			col++
		}

		out[ncol-2] = mono16To8At(bayer, args, coefs, row, ncol-2, narrowRGBAtRed)
		out[ncol-1] = mono16To8At(bayer, args, coefs, row, ncol-1, narrowRGBAtGreenRG)
	} else { // green-blue row
		out[0] = mono16To8At(bayer, args, coefs, row, 0, narrowRGBAtGreenGB)
		out[1] = mono16To8At(bayer, args, coefs, row, 1, narrowRGBAtBlue)

		for col := 2; col < ncol-2; {
			out[col] = mixLuma[uint8](coefs,
				int(narrow(alongColumnFast(bayer, o, col, maxVal), maxVal, shift)),
				int(bayer[o.r0+col]>>shift),
				int(narrow(alongRowFast(bayer, o, col, maxVal), maxVal, shift)))
			col++
			out[col] = mixLuma[uint8](coefs,
				int(narrow(oppositeFast(bayer, o, col, maxVal), maxVal, shift)),
				int(narrow(greenFast(bayer, o, col, maxVal), maxVal, shift)),
				int(bayer[o.r0+col]>>shift))
			col++
		}

		out[ncol-2] = mono16To8At(bayer, args, coefs, row, ncol-2, narrowRGBAtGreenGB)
		out[ncol-1] = mono16To8At(bayer, args, coefs, row, ncol-1, narrowRGBAtBlue)
	}
}

func rowMono16To8Safe(bayer []uint16, args *Args, row int, out []uint8) {
	checkDimensions(args)
	checkRow(args, row)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Cols)
	checkCoefs(args.Coefs)
	coefs := normalizeCoefs(args.Coefs)

	ncol := args.Cols
	if row%2 == 0 { // red-green row
		for col := 0; col < ncol; col += 2 {
			out[col] = mono16To8At(bayer, args, coefs, row, col, narrowRGBAtRed)
			out[col+1] = mono16To8At(bayer, args, coefs, row, col+1, narrowRGBAtGreenRG)
		}
	} else { // green-blue row
		for col := 0; col < ncol; col += 2 {
			out[col] = mono16To8At(bayer, args, coefs, row, col, narrowRGBAtGreenGB)
			out[col+1] = mono16To8At(bayer, args, coefs, row, col+1, narrowRGBAtBlue)
		}
	}
}

func mono16To8At(bayer []uint16, args *Args, coefs LumaCoefs, row, col int,
	assemble func([]uint16, *Args, int, int) RGB[uint8]) uint8 {
	p := assemble(bayer, args, row, col)
	return mixLuma[uint8](coefs, int(p.Red), int(p.Green), int(p.Blue))
}
