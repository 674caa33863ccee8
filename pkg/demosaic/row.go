package demosaic

// Row operations. Each public function dispatches the two rows nearest the
// top and bottom edges to the edge-safe path, which reflects every sample
// fetch. Interior rows take the fast path: the two columns at each side
// still go through the safe assemblers, while the interior columns use the
// direct-index evaluators with precomputed row offsets. A coordinate two
// pixels away from an interior pixel never leaves the buffer, so no
// per-sample checks are needed, and the fast path produces bit-identical
// results to the safe one.

// RowRGB demosaics one row of a Bayer image into RGB pixels at the same bit
// depth. The row index selects red-green (even) or green-blue (odd) phase.
// Exposed so that pipelines working row by row can demosaic incrementally;
// ImageRGB calls it for every row.
func RowRGB[S Sample](bayer []S, args *Args, row int, out []RGB[S]) {
	check(args != nil, "args != nil")

	if row < 2 || row >= args.Rows-2 {
		rowRGBSafe(bayer, args, row, out)
		return
	}

	checkDimensions(args)
	checkRow(args, row)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Cols)

	ncol := args.Cols
	maxVal := int(args.MaxVal)
	o := offsetsAt(row, ncol)

	if row%2 == 0 { // red-green row
		out[0] = rgbAtRed(bayer, args, row, 0)
		out[1] = rgbAtGreenRG(bayer, args, row, 1)

		for col := 2; col < ncol-2; {
			out[col] = RGB[S]{
				Red:   bayer[o.r0+col],
				Green: S(greenFast(bayer, o, col, maxVal)),
				Blue:  S(oppositeFast(bayer, o, col, maxVal)),
			}
			col++
			out[col] = RGB[S]{
				Red:   S(alongRowFast(bayer, o, col, maxVal)),
				Green: bayer[o.r0+col],
				Blue:  S(alongColumnFast(bayer, o, col, maxVal)),
			}
			col++
		}

		out[ncol-2] = rgbAtRed(bayer, args, row, ncol-2)
		out[ncol-1] = rgbAtGreenRG(bayer, args, row, ncol-1)
	} else { // green-blue row
		out[0] = rgbAtGreenGB(bayer, args, row, 0)
		out[1] = rgbAtBlue(bayer, args, row, 1)

		for col := 2; col < ncol-2; {
			out[col] = RGB[S]{
				Red:   S(alongColumnFast(bayer, o, col, maxVal)),
				Green: bayer[o.r0+col],
				Blue:  S(alongRowFast(bayer, o, col, maxVal)),
			}
			col++
			out[col] = RGB[S]{
				Red:   S(oppositeFast(bayer, o, col, maxVal)),
				Green: S(greenFast(bayer, o, col, maxVal)),
				Blue:  bayer[o.r0+col],
			}
			col++
		}

		out[ncol-2] = rgbAtGreenGB(bayer, args, row, ncol-2)
		out[ncol-1] = rgbAtBlue(bayer, args, row, ncol-1)
	}
}

// rowRGBSafe demosaics one row entirely through the edge-safe assemblers.
// Correct for any valid image size and any row, at a performance cost.
func rowRGBSafe[S Sample](bayer []S, args *Args, row int, out []RGB[S]) {
	checkDimensions(args)
	checkRow(args, row)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Cols)

	ncol := args.Cols
	if row%2 == 0 { // red-green row
		for col := 0; col < ncol; col += 2 {
			out[col] = rgbAtRed(bayer, args, row, col)
			out[col+1] = rgbAtGreenRG(bayer, args, row, col+1)
		}
	} else { // green-blue row
		for col := 0; col < ncol; col += 2 {
			out[col] = rgbAtGreenGB(bayer, args, row, col)
			out[col+1] = rgbAtBlue(bayer, args, row, col+1)
		}
	}
}

// RowRGB16To8 demosaics one row of a 16-bit Bayer image into 8-bit RGB,
// right-shifting each clamped channel by args.RShift.
func RowRGB16To8(bayer []uint16, args *Args, row int, out []RGB[uint8]) {
	check(args != nil, "args != nil")

	if row < 2 || row >= args.Rows-2 {
		rowRGB16To8Safe(bayer, args, row, out)
		return
	}

	checkDimensions(args)
	checkRow(args, row)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Cols)

	ncol := args.Cols
	maxVal := int(args.MaxVal)
	shift := uint(args.RShift)
	o := offsetsAt(row, ncol)

	if row%2 == 0 { // red-green row
		out[0] = narrowRGBAtRed(bayer, args, row, 0)
		out[1] = narrowRGBAtGreenRG(bayer, args, row, 1)

		for col := 2; col < ncol-2; {
			out[col] = RGB[uint8]{
				Red:   uint8(bayer[o.r0+col] >> shift),
				Green: narrow(greenFast(bayer, o, col, maxVal), maxVal, shift),
				Blue:  narrow(oppositeFast(bayer, o, col, maxVal), maxVal, shift),
			}
			col++
			out[col] = RGB[uint8]{
				Red:   narrow(alongRowFast(bayer, o, col, maxVal), maxVal, shift),
				Green: uint8(bayer[o.r0+col] >> shift),
				Blue:  narrow(alongColumnFast(bayer, o, col, maxVal), maxVal, shift),
			}
			col++
		}

		out[ncol-2] = narrowRGBAtRed(bayer, args, row, ncol-2)
		out[ncol-1] = narrowRGBAtGreenRG(bayer, args, row, ncol-1)
	} else { // green-blue row
		out[0] = narrowRGBAtGreenGB(bayer, args, row, 0)
		out[1] = narrowRGBAtBlue(bayer, args, row, 1)

		for col := 2; col < ncol-2; {
			out[col] = RGB[uint8]{
				Red:   narrow(alongColumnFast(bayer, o, col, maxVal), maxVal, shift),
				Green: uint8(bayer[o.r0+col] >> shift),
				Blue:  narrow(alongRowFast(bayer, o, col, maxVal), maxVal, shift),
			}
			col++
			out[col] = RGB[uint8]{
				Red:   narrow(oppositeFast(bayer, o, col, maxVal), maxVal, shift),
				Green: narrow(greenFast(bayer, o, col, maxVal), maxVal, shift),
				Blue:  uint8(bayer[o.r0+col] >> shift),
			}
			col++
		}

		out[ncol-2] = narrowRGBAtGreenGB(bayer, args, row, ncol-2)
		out[ncol-1] = narrowRGBAtBlue(bayer, args, row, ncol-1)
	}
}

func rowRGB16To8Safe(bayer []uint16, args *Args, row int, out []RGB[uint8]) {
	checkDimensions(args)
	checkRow(args, row)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Cols)

	ncol := args.Cols
	if row%2 == 0 { // red-green row
		for col := 0; col < ncol; col += 2 {
			out[col] = narrowRGBAtRed(bayer, args, row, col)
			out[col+1] = narrowRGBAtGreenRG(bayer, args, row, col+1)
		}
	} else { // green-blue row
		for col := 0; col < ncol; col += 2 {
			out[col] = narrowRGBAtGreenGB(bayer, args, row, col)
			out[col+1] = narrowRGBAtBlue(bayer, args, row, col+1)
		}
	}
}
