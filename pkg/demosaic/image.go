package demosaic

import (
	"runtime"
	"sync"
)

// Whole-image operations. Each validates the arguments once and then hands
// the rows to the corresponding row function, which dispatches between the
// edge-safe and fast paths itself. The Parallel variants stride the rows
// across a fixed set of goroutines; rows are independent (the input is
// read-only and each row writes a disjoint output range), so no locking is
// needed. Sequential and parallel variants produce identical output.

// ImageRGB demosaics a full Bayer image into RGB at the same bit depth.
// out must hold Rows*Cols pixels.
func ImageRGB[S Sample](bayer []S, args *Args, out []RGB[S]) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)

	for row := 0; row < args.Rows; row++ {
		RowRGB(bayer, args, row, out[row*args.Cols:])
	}
}

// ImageRGB16To8 demosaics a full 16-bit Bayer image into 8-bit RGB.
func ImageRGB16To8(bayer []uint16, args *Args, out []RGB[uint8]) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)

	for row := 0; row < args.Rows; row++ {
		RowRGB16To8(bayer, args, row, out[row*args.Cols:])
	}
}

// ImageMono demosaics a full Bayer image into luma at the same bit depth.
func ImageMono[S Sample](bayer []S, args *Args, out []S) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)
	checkCoefs(args.Coefs)

	for row := 0; row < args.Rows; row++ {
		RowMono(bayer, args, row, out[row*args.Cols:])
	}
}

// ImageMono16To8 demosaics a full 16-bit Bayer image into 8-bit luma.
func ImageMono16To8(bayer []uint16, args *Args, out []uint8) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)
	checkCoefs(args.Coefs)

	for row := 0; row < args.Rows; row++ {
		RowMono16To8(bayer, args, row, out[row*args.Cols:])
	}
}

// forEachRow runs fn(row) for every row, striding rows across workers
// goroutines. workers <= 0 selects GOMAXPROCS-many.
func forEachRow(rows, workers int, fn func(row int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for row := start; row < rows; row += workers {
				fn(row)
			}
		}(w)
	}
	wg.Wait()
}

// ImageRGBParallel is ImageRGB with the rows spread over workers
// goroutines.
func ImageRGBParallel[S Sample](bayer []S, args *Args, out []RGB[S], workers int) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)

	forEachRow(args.Rows, workers, func(row int) {
		RowRGB(bayer, args, row, out[row*args.Cols:])
	})
}

// ImageRGB16To8Parallel is ImageRGB16To8 with the rows spread over workers
// goroutines.
func ImageRGB16To8Parallel(bayer []uint16, args *Args, out []RGB[uint8], workers int) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)

	forEachRow(args.Rows, workers, func(row int) {
		RowRGB16To8(bayer, args, row, out[row*args.Cols:])
	})
}

// ImageMonoParallel is ImageMono with the rows spread over workers
// goroutines.
func ImageMonoParallel[S Sample](bayer []S, args *Args, out []S, workers int) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkSampleRange[S](args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)
	checkCoefs(args.Coefs)

	forEachRow(args.Rows, workers, func(row int) {
		RowMono(bayer, args, row, out[row*args.Cols:])
	})
}

// ImageMono16To8Parallel is ImageMono16To8 with the rows spread over
// workers goroutines.
func ImageMono16To8Parallel(bayer []uint16, args *Args, out []uint8, workers int) {
	check(args != nil, "args != nil")
	checkDimensions(args)
	checkShift(args)
	checkBuffers(bayer, out, args, args.Rows*args.Cols)
	checkCoefs(args.Coefs)

	forEachRow(args.Rows, workers, func(row int) {
		RowMono16To8(bayer, args, row, out[row*args.Cols:])
	})
}
