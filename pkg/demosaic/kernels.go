package demosaic

// sampleReflect fetches the Bayer sample at (row, col), which may lie up to
// two pixels outside the image (the maximum stencil radius). Out-of-range
// coordinates are reflected to the nearest in-bounds pixel of the same Bayer
// color: the parity of the coordinate is preserved, which a plain clamp
// would not do (clamping would sample the wrong color plane at the border).
func sampleReflect[S Sample](bayer []S, rows, cols, row, col int) S {
	if row < 0 {
		row = (-row) % 2
	}
	if row >= rows {
		row = rows - 2 + row%2
	}
	if col < 0 {
		col = (-col) % 2
	}
	if col >= cols {
		col = cols - 2 + col%2
	}
	return bayer[cols*row+col]
}

// clamp constrains v to [0, max], inclusive.
func clamp(v, max int) int {
	if v >= max {
		return max
	}
	if v <= 0 {
		return 0
	}
	return v
}

// narrow clamps v to [0, max] and right-shifts the clamped value into 8-bit
// range. The shift is applied after clamping, so the ceiling of the result
// is max>>shift.
func narrow(v, max int, shift uint) uint8 {
	if v >= max {
		return uint8(max >> shift)
	}
	if v <= 0 {
		return 0
	}
	return uint8(v >> shift)
}

// greenAt interpolates green at a red or blue Bayer pixel.
// Malvar paper, Fig 2, G at R (and B) locations:
//
//	      -1
//	       2
//	-1  2  4  2 -1
//	       2
//	      -1
func greenAt[S Sample](bayer []S, args *Args, row, col int) int {
	rows := args.Rows
	cols := args.Cols

	val := (int(sampleReflect(bayer, rows, cols, row-2, col))*-1 +
		int(sampleReflect(bayer, rows, cols, row-1, col))*2 +
		int(sampleReflect(bayer, rows, cols, row, col-2))*-1 +
		int(sampleReflect(bayer, rows, cols, row, col-1))*2 +
		int(sampleReflect(bayer, rows, cols, row, col))*4 +
		int(sampleReflect(bayer, rows, cols, row, col+1))*2 +
		int(sampleReflect(bayer, rows, cols, row, col+2))*-1 +
		int(sampleReflect(bayer, rows, cols, row+1, col))*2 +
		int(sampleReflect(bayer, rows, cols, row+2, col))*-1) / 8

	return clamp(val, int(args.MaxVal))
}

// redBlueAlongRowAt interpolates red or blue at a green pixel whose missing
// color sits in the same row. Malvar paper, Fig 2, R at green in R row
// (identical to B at green in B row, so one function serves both):
//
//	       1
//	   -2    -2
//	-2  8 10  8 -2
//	   -2    -2
//	       1
func redBlueAlongRowAt[S Sample](bayer []S, args *Args, row, col int) int {
	rows := args.Rows
	cols := args.Cols

	val := (int(sampleReflect(bayer, rows, cols, row-2, col))*1 +
		int(sampleReflect(bayer, rows, cols, row-1, col-1))*-2 +
		int(sampleReflect(bayer, rows, cols, row-1, col+1))*-2 +
		int(sampleReflect(bayer, rows, cols, row, col-2))*-2 +
		int(sampleReflect(bayer, rows, cols, row, col-1))*8 +
		int(sampleReflect(bayer, rows, cols, row, col))*10 +
		int(sampleReflect(bayer, rows, cols, row, col+1))*8 +
		int(sampleReflect(bayer, rows, cols, row, col+2))*-2 +
		int(sampleReflect(bayer, rows, cols, row+1, col-1))*-2 +
		int(sampleReflect(bayer, rows, cols, row+1, col+1))*-2 +
		int(sampleReflect(bayer, rows, cols, row+2, col))*1) / 16

	return clamp(val, int(args.MaxVal))
}

// redBlueAlongColumnAt interpolates red or blue at a green pixel whose
// missing color sits in the same column. Malvar paper, Fig 2, R at green in
// B row (identical to B at green in R row):
//
//	      -2
//	   -2  8 -2
//	 1    10     1
//	   -2  8 -2
//	      -2
func redBlueAlongColumnAt[S Sample](bayer []S, args *Args, row, col int) int {
	rows := args.Rows
	cols := args.Cols

	val := (int(sampleReflect(bayer, rows, cols, row-2, col))*-2 +
		int(sampleReflect(bayer, rows, cols, row-1, col-1))*-2 +
		int(sampleReflect(bayer, rows, cols, row-1, col))*8 +
		int(sampleReflect(bayer, rows, cols, row-1, col+1))*-2 +
		int(sampleReflect(bayer, rows, cols, row, col-2))*1 +
		int(sampleReflect(bayer, rows, cols, row, col))*10 +
		int(sampleReflect(bayer, rows, cols, row, col+2))*1 +
		int(sampleReflect(bayer, rows, cols, row+1, col-1))*-2 +
		int(sampleReflect(bayer, rows, cols, row+1, col))*8 +
		int(sampleReflect(bayer, rows, cols, row+1, col+1))*-2 +
		int(sampleReflect(bayer, rows, cols, row+2, col))*-2) / 16

	return clamp(val, int(args.MaxVal))
}

// redBlueOppositeAt interpolates red at a blue pixel or blue at a red pixel
// from the diagonal neighbors. Malvar paper, Fig 2, R at blue (identical to
// B at red):
//
//	      -3
//	    4     4
//	-3    12    -3
//	    4     4
//	      -3
func redBlueOppositeAt[S Sample](bayer []S, args *Args, row, col int) int {
	rows := args.Rows
	cols := args.Cols

	val := (int(sampleReflect(bayer, rows, cols, row-2, col))*-3 +
		int(sampleReflect(bayer, rows, cols, row-1, col-1))*4 +
		int(sampleReflect(bayer, rows, cols, row-1, col+1))*4 +
		int(sampleReflect(bayer, rows, cols, row, col-2))*-3 +
		int(sampleReflect(bayer, rows, cols, row, col))*12 +
		int(sampleReflect(bayer, rows, cols, row, col+2))*-3 +
		int(sampleReflect(bayer, rows, cols, row+1, col-1))*4 +
		int(sampleReflect(bayer, rows, cols, row+1, col+1))*4 +
		int(sampleReflect(bayer, rows, cols, row+2, col))*-3) / 16

	return clamp(val, int(args.MaxVal))
}

// Direct-index kernel evaluators for interior pixels. The caller guarantees
// the pixel lies at least two rows and two columns inside the image, so the
// stencil never leaves the buffer and the reflect logic can be skipped.
// Each evaluates the same stencil as its edge-safe counterpart above and is
// bit-identical to it on interior pixels.

// rowOffs holds the precomputed buffer offsets of the five rows a stencil
// touches.
type rowOffs struct {
	rm2, rm1, r0, rp1, rp2 int
}

func offsetsAt(row, cols int) rowOffs {
	return rowOffs{
		rm2: (row - 2) * cols,
		rm1: (row - 1) * cols,
		r0:  row * cols,
		rp1: (row + 1) * cols,
		rp2: (row + 2) * cols,
	}
}

func greenFast[S Sample](bayer []S, o rowOffs, col, maxVal int) int {
	val := (int(bayer[o.rm2+col])*-1 +
		int(bayer[o.rm1+col])*2 +
		int(bayer[o.r0+col-2])*-1 +
		int(bayer[o.r0+col-1])*2 +
		int(bayer[o.r0+col])*4 +
		int(bayer[o.r0+col+1])*2 +
		int(bayer[o.r0+col+2])*-1 +
		int(bayer[o.rp1+col])*2 +
		int(bayer[o.rp2+col])*-1) / 8

	return clamp(val, maxVal)
}

func alongRowFast[S Sample](bayer []S, o rowOffs, col, maxVal int) int {
	val := (int(bayer[o.rm2+col])*1 +
		int(bayer[o.rm1+col-1])*-2 +
		int(bayer[o.rm1+col+1])*-2 +
		int(bayer[o.r0+col-2])*-2 +
		int(bayer[o.r0+col-1])*8 +
		int(bayer[o.r0+col])*10 +
		int(bayer[o.r0+col+1])*8 +
		int(bayer[o.r0+col+2])*-2 +
		int(bayer[o.rp1+col-1])*-2 +
		int(bayer[o.rp1+col+1])*-2 +
		int(bayer[o.rp2+col])*1) / 16

	return clamp(val, maxVal)
}

func alongColumnFast[S Sample](bayer []S, o rowOffs, col, maxVal int) int {
	val := (int(bayer[o.rm2+col])*-2 +
		int(bayer[o.rm1+col-1])*-2 +
		int(bayer[o.rm1+col])*8 +
		int(bayer[o.rm1+col+1])*-2 +
		int(bayer[o.r0+col-2])*1 +
		int(bayer[o.r0+col])*10 +
		int(bayer[o.r0+col+2])*1 +
		int(bayer[o.rp1+col-1])*-2 +
		int(bayer[o.rp1+col])*8 +
		int(bayer[o.rp1+col+1])*-2 +
		int(bayer[o.rp2+col])*-2) / 16

	return clamp(val, maxVal)
}

func oppositeFast[S Sample](bayer []S, o rowOffs, col, maxVal int) int {
	val := (int(bayer[o.rm2+col])*-3 +
		int(bayer[o.rm1+col-1])*4 +
		int(bayer[o.rm1+col+1])*4 +
		int(bayer[o.r0+col-2])*-3 +
		int(bayer[o.r0+col])*12 +
		int(bayer[o.r0+col+2])*-3 +
		int(bayer[o.rp1+col-1])*4 +
		int(bayer[o.rp1+col+1])*4 +
		int(bayer[o.rp2+col])*-3) / 16

	return clamp(val, maxVal)
}
