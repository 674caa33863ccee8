package demosaic

// Per-phase pixel assembly for the edge-safe path. Each function takes the
// native sample for the pixel's own color plane and interpolates the other
// two. The narrow* variants additionally right-shift each already-clamped
// channel into 8-bit range.

// rgbAtRed assembles an RGB pixel at a red Bayer location.
func rgbAtRed[S Sample](bayer []S, args *Args, row, col int) RGB[S] {
	return RGB[S]{
		Red:   sampleReflect(bayer, args.Rows, args.Cols, row, col),
		Green: S(greenAt(bayer, args, row, col)),
		Blue:  S(redBlueOppositeAt(bayer, args, row, col)),
	}
}

// rgbAtGreenRG assembles an RGB pixel at a green location in a red-green
// row: red neighbors share the row, blue neighbors share the column.
func rgbAtGreenRG[S Sample](bayer []S, args *Args, row, col int) RGB[S] {
	return RGB[S]{
		Red:   S(redBlueAlongRowAt(bayer, args, row, col)),
		Green: sampleReflect(bayer, args.Rows, args.Cols, row, col),
		Blue:  S(redBlueAlongColumnAt(bayer, args, row, col)),
	}
}

// rgbAtGreenGB assembles an RGB pixel at a green location in a green-blue
// row: red neighbors share the column, blue neighbors share the row.
func rgbAtGreenGB[S Sample](bayer []S, args *Args, row, col int) RGB[S] {
	return RGB[S]{
		Red:   S(redBlueAlongColumnAt(bayer, args, row, col)),
		Green: sampleReflect(bayer, args.Rows, args.Cols, row, col),
		Blue:  S(redBlueAlongRowAt(bayer, args, row, col)),
	}
}

// rgbAtBlue assembles an RGB pixel at a blue Bayer location.
func rgbAtBlue[S Sample](bayer []S, args *Args, row, col int) RGB[S] {
	return RGB[S]{
		Red:   S(redBlueOppositeAt(bayer, args, row, col)),
		Green: S(greenAt(bayer, args, row, col)),
		Blue:  sampleReflect(bayer, args.Rows, args.Cols, row, col),
	}
}

func narrowRGBAtRed(bayer []uint16, args *Args, row, col int) RGB[uint8] {
	shift := uint(args.RShift)
	return RGB[uint8]{
		Red:   uint8(sampleReflect(bayer, args.Rows, args.Cols, row, col) >> shift),
		Green: uint8(greenAt(bayer, args, row, col) >> shift),
		Blue:  uint8(redBlueOppositeAt(bayer, args, row, col) >> shift),
	}
}

func narrowRGBAtGreenRG(bayer []uint16, args *Args, row, col int) RGB[uint8] {
	shift := uint(args.RShift)
	return RGB[uint8]{
		Red:   uint8(redBlueAlongRowAt(bayer, args, row, col) >> shift),
		Green: uint8(sampleReflect(bayer, args.Rows, args.Cols, row, col) >> shift),
		Blue:  uint8(redBlueAlongColumnAt(bayer, args, row, col) >> shift),
	}
}

func narrowRGBAtGreenGB(bayer []uint16, args *Args, row, col int) RGB[uint8] {
	shift := uint(args.RShift)
	return RGB[uint8]{
		Red:   uint8(redBlueAlongColumnAt(bayer, args, row, col) >> shift),
		Green: uint8(sampleReflect(bayer, args.Rows, args.Cols, row, col) >> shift),
		Blue:  uint8(redBlueAlongRowAt(bayer, args, row, col) >> shift),
	}
}

func narrowRGBAtBlue(bayer []uint16, args *Args, row, col int) RGB[uint8] {
	shift := uint(args.RShift)
	return RGB[uint8]{
		Red:   uint8(redBlueOppositeAt(bayer, args, row, col) >> shift),
		Green: uint8(greenAt(bayer, args, row, col) >> shift),
		Blue:  uint8(sampleReflect(bayer, args.Rows, args.Cols, row, col) >> shift),
	}
}
