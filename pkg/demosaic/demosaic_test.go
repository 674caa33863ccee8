package demosaic

import (
	"math"
	"math/rand"
	"testing"
)

const testMaxVal12 = 0x0FFF

// mosaic16 reduces a full RGB image to its Bayer mosaic, keeping the native
// channel at every site.
func mosaic16(rgb []RGB[uint16], rows, cols int) []uint16 {
	bayer := make([]uint16, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := rgb[row*cols+col]
			switch {
			case row%2 == 0 && col%2 == 0:
				bayer[row*cols+col] = p.Red
			case row%2 == 1 && col%2 == 1:
				bayer[row*cols+col] = p.Blue
			default:
				bayer[row*cols+col] = p.Green
			}
		}
	}
	return bayer
}

func randBayer16(rng *rand.Rand, n int, maxVal uint16) []uint16 {
	bayer := make([]uint16, n)
	for i := range bayer {
		bayer[i] = uint16(rng.Intn(int(maxVal) + 1))
	}
	return bayer
}

func randRGB16(rng *rand.Rand, n int, maxVal uint16) []RGB[uint16] {
	rgb := make([]RGB[uint16], n)
	for i := range rgb {
		rgb[i] = RGB[uint16]{
			Red:   uint16(rng.Intn(int(maxVal) + 1)),
			Green: uint16(rng.Intn(int(maxVal) + 1)),
			Blue:  uint16(rng.Intn(int(maxVal) + 1)),
		}
	}
	return rgb
}

var testSizes = []struct {
	rows, cols int
}{
	{4, 4},
	{4, 10},
	{6, 8},
	{10, 6},
	{16, 16},
}

func TestSampleReflect(t *testing.T) {
	rows, cols := 6, 8
	bayer := make([]uint16, rows*cols)
	for i := range bayer {
		bayer[i] = uint16(i)
	}

	cases := []struct {
		row, col     int
		wantR, wantC int
	}{
		{0, 0, 0, 0},
		{-1, 3, 1, 3},
		{-2, 3, 0, 3},
		{3, -1, 3, 1},
		{3, -2, 3, 0},
		{rows, 3, rows - 2, 3},
		{rows + 1, 3, rows - 1, 3},
		{3, cols, 3, cols - 2},
		{3, cols + 1, 3, cols - 1},
	}
	for _, tc := range cases {
		got := sampleReflect(bayer, rows, cols, tc.row, tc.col)
		want := bayer[tc.wantR*cols+tc.wantC]
		if got != want {
			t.Errorf("sampleReflect(%d, %d) = %d, want sample at (%d, %d) = %d",
				tc.row, tc.col, got, tc.wantR, tc.wantC, want)
		}
		// Reflection must land on the same Bayer color plane.
		if tc.wantR%2 != ((tc.row%2)+2)%2 || tc.wantC%2 != ((tc.col%2)+2)%2 {
			t.Errorf("reflect of (%d, %d) changed parity", tc.row, tc.col)
		}
	}
}

// The interior fast path must reproduce the edge-safe path sample for
// sample: on interior pixels the reflect logic is a no-op, so any
// difference is a stencil transcription error.
func TestRowRGBFastMatchesSafe(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range testSizes {
		args := &Args{Rows: size.rows, Cols: size.cols, MaxVal: testMaxVal12}
		bayer := randBayer16(rng, size.rows*size.cols, args.MaxVal)

		fast := make([]RGB[uint16], size.cols)
		safe := make([]RGB[uint16], size.cols)
		for row := 0; row < size.rows; row++ {
			RowRGB(bayer, args, row, fast)
			rowRGBSafe(bayer, args, row, safe)
			for col := range fast {
				if fast[col] != safe[col] {
					t.Fatalf("%dx%d row %d col %d: fast %v != safe %v",
						size.rows, size.cols, row, col, fast[col], safe[col])
				}
			}
		}
	}
}

func TestRowRGB16To8FastMatchesSafe(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, size := range testSizes {
		args := &Args{Rows: size.rows, Cols: size.cols, MaxVal: testMaxVal12, RShift: 4}
		bayer := randBayer16(rng, size.rows*size.cols, args.MaxVal)

		fast := make([]RGB[uint8], size.cols)
		safe := make([]RGB[uint8], size.cols)
		for row := 0; row < size.rows; row++ {
			RowRGB16To8(bayer, args, row, fast)
			rowRGB16To8Safe(bayer, args, row, safe)
			for col := range fast {
				if fast[col] != safe[col] {
					t.Fatalf("%dx%d row %d col %d: fast %v != safe %v",
						size.rows, size.cols, row, col, fast[col], safe[col])
				}
			}
		}
	}
}

func TestRowMonoFastMatchesSafe(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, size := range testSizes {
		args := &Args{Rows: size.rows, Cols: size.cols, MaxVal: testMaxVal12, Coefs: CCIR601}
		bayer := randBayer16(rng, size.rows*size.cols, args.MaxVal)

		fast := make([]uint16, size.cols)
		safe := make([]uint16, size.cols)
		for row := 0; row < size.rows; row++ {
			RowMono(bayer, args, row, fast)
			rowMonoSafe(bayer, args, row, safe)
			for col := range fast {
				if fast[col] != safe[col] {
					t.Fatalf("%dx%d row %d col %d: fast %d != safe %d",
						size.rows, size.cols, row, col, fast[col], safe[col])
				}
			}
		}
	}
}

func TestRowMono16To8FastMatchesSafe(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, size := range testSizes {
		args := &Args{Rows: size.rows, Cols: size.cols, MaxVal: testMaxVal12, RShift: 4, Coefs: CCIR601}
		bayer := randBayer16(rng, size.rows*size.cols, args.MaxVal)

		fast := make([]uint8, size.cols)
		safe := make([]uint8, size.cols)
		for row := 0; row < size.rows; row++ {
			RowMono16To8(bayer, args, row, fast)
			rowMono16To8Safe(bayer, args, row, safe)
			for col := range fast {
				if fast[col] != safe[col] {
					t.Fatalf("%dx%d row %d col %d: fast %d != safe %d",
						size.rows, size.cols, row, col, fast[col], safe[col])
				}
			}
		}
	}
}

// A uniform gray frame must be reconstructed exactly: every stencil is a
// normalized weighted average, so a constant input is a fixed point.
func TestUniformGrayExact(t *testing.T) {
	const rows, cols = 8, 10
	for _, v := range []uint16{0, 1, 100, 2048, testMaxVal12} {
		args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, Coefs: CCIR601}
		bayer := make([]uint16, rows*cols)
		for i := range bayer {
			bayer[i] = v
		}

		rgb := make([]RGB[uint16], rows*cols)
		ImageRGB(bayer, args, rgb)
		for i, p := range rgb {
			if p.Red != v || p.Green != v || p.Blue != v {
				t.Fatalf("v=%d pixel %d: got %v", v, i, p)
			}
		}

		mono := make([]uint16, rows*cols)
		ImageMono(bayer, args, mono)
		for i, m := range mono {
			if m != v {
				t.Fatalf("v=%d mono pixel %d: got %d", v, i, m)
			}
		}
	}
}

// An image whose every 2x2 cell encodes the same (R, G, B) triple is
// 2x2-periodic, so each stencil sees a constant per color plane and
// reconstructs the triple exactly. Reflection preserves plane parity, so
// this holds at the borders too.
func TestSingleColorExact(t *testing.T) {
	const rows, cols = 8, 10
	want := RGB[uint16]{Red: 3000, Green: 1500, Blue: 700}
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, RShift: 4}

	truth := make([]RGB[uint16], rows*cols)
	for i := range truth {
		truth[i] = want
	}
	bayer := mosaic16(truth, rows, cols)

	rgb := make([]RGB[uint16], rows*cols)
	ImageRGB(bayer, args, rgb)
	for i, p := range rgb {
		if p != want {
			t.Fatalf("pixel %d: got %v, want %v", i, p, want)
		}
	}

	rgb8 := make([]RGB[uint8], rows*cols)
	ImageRGB16To8(bayer, args, rgb8)
	want8 := RGB[uint8]{Red: uint8(want.Red >> 4), Green: uint8(want.Green >> 4), Blue: uint8(want.Blue >> 4)}
	for i, p := range rgb8 {
		if p != want8 {
			t.Fatalf("narrowed pixel %d: got %v, want %v", i, p, want8)
		}
	}
}

// Mono output is exactly the luma mix of the RGB engine's own outputs: the
// mono paths compute the same channel values before mixing.
func TestLumaMatchesRGBEngine(t *testing.T) {
	const rows, cols = 10, 12
	rng := rand.New(rand.NewSource(12))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, Coefs: CCIR601}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)

	rgb := make([]RGB[uint16], rows*cols)
	ImageRGB(bayer, args, rgb)
	mono := make([]uint16, rows*cols)
	ImageMono(bayer, args, mono)

	coefs := normalizeCoefs(args.Coefs)
	for i := range mono {
		want := mixLuma[uint16](coefs, int(rgb[i].Red), int(rgb[i].Green), int(rgb[i].Blue))
		if mono[i] != want {
			t.Fatalf("pixel %d: mono %d != mix(%v) = %d", i, mono[i], rgb[i], want)
		}
	}
}

// The engine is stateless: repeating a call with identical arguments gives
// identical output.
func TestRepeatedCallsIdentical(t *testing.T) {
	const rows, cols = 6, 8
	rng := rand.New(rand.NewSource(13))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, Coefs: CCIR601}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)

	a := make([]RGB[uint16], rows*cols)
	b := make([]RGB[uint16], rows*cols)
	ImageRGB(bayer, args, a)
	ImageRGB(bayer, args, b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d drifted between calls: %v then %v", i, a[i], b[i])
		}
	}
}

// Native samples must pass through untouched in every variant.
func TestNativeChannelPassthrough(t *testing.T) {
	const rows, cols = 8, 10
	rng := rand.New(rand.NewSource(5))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, RShift: 4}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)

	rgb := make([]RGB[uint16], rows*cols)
	ImageRGB(bayer, args, rgb)
	rgb8 := make([]RGB[uint8], rows*cols)
	ImageRGB16To8(bayer, args, rgb8)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			var native uint16
			switch {
			case row%2 == 0 && col%2 == 0:
				native = rgb[i].Red
			case row%2 == 1 && col%2 == 1:
				native = rgb[i].Blue
			default:
				native = rgb[i].Green
			}
			if native != bayer[i] {
				t.Fatalf("pixel (%d, %d): native channel %d != sample %d",
					row, col, native, bayer[i])
			}

			var native8 uint8
			switch {
			case row%2 == 0 && col%2 == 0:
				native8 = rgb8[i].Red
			case row%2 == 1 && col%2 == 1:
				native8 = rgb8[i].Blue
			default:
				native8 = rgb8[i].Green
			}
			if native8 != uint8(bayer[i]>>4) {
				t.Fatalf("pixel (%d, %d): narrowed native channel %d != sample>>4 %d",
					row, col, native8, bayer[i]>>4)
			}
		}
	}
}

// Demosaicing a mosaic of a random image must stay within a loose RMS
// bound of the original per channel. Interpolation cannot recover
// uncorrelated noise, but the estimators are unbiased, which keeps the
// error well under half the sample range.
func TestMosaicRoundTripRMS(t *testing.T) {
	const rows, cols = 32, 32
	rng := rand.New(rand.NewSource(6))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12}

	truth := randRGB16(rng, rows*cols, args.MaxVal)
	bayer := mosaic16(truth, rows, cols)

	rgb := make([]RGB[uint16], rows*cols)
	ImageRGB(bayer, args, rgb)

	var sumSq [3]float64
	for i := range rgb {
		dr := float64(rgb[i].Red) - float64(truth[i].Red)
		dg := float64(rgb[i].Green) - float64(truth[i].Green)
		db := float64(rgb[i].Blue) - float64(truth[i].Blue)
		sumSq[0] += dr * dr
		sumSq[1] += dg * dg
		sumSq[2] += db * db
	}
	bound := float64(args.MaxVal) / 2
	for ch, s := range sumSq {
		rms := math.Sqrt(s / float64(rows*cols))
		if rms > bound {
			t.Errorf("channel %d: RMS %.1f exceeds %.1f", ch, rms, bound)
		}
	}

	// The narrowed output obeys the same bound scaled into 8-bit units.
	args.RShift = 4
	rgb8 := make([]RGB[uint8], rows*cols)
	ImageRGB16To8(bayer, args, rgb8)
	var sumSq8 [3]float64
	for i := range rgb8 {
		dr := float64(rgb8[i].Red) - float64(truth[i].Red>>4)
		dg := float64(rgb8[i].Green) - float64(truth[i].Green>>4)
		db := float64(rgb8[i].Blue) - float64(truth[i].Blue>>4)
		sumSq8[0] += dr * dr
		sumSq8[1] += dg * dg
		sumSq8[2] += db * db
	}
	bound8 := bound / 16
	for ch, s := range sumSq8 {
		rms := math.Sqrt(s / float64(rows*cols))
		if rms > bound8 {
			t.Errorf("narrowed channel %d: RMS %.1f exceeds %.1f", ch, rms, bound8)
		}
	}
}

// With a zero shift the narrowing variants reduce to plain clamping, so on
// 8-bit-range data they must agree exactly with the 8-bit engine.
func TestNarrowZeroShiftMatches8Bit(t *testing.T) {
	const rows, cols = 10, 12
	rng := rand.New(rand.NewSource(7))
	args := &Args{Rows: rows, Cols: cols, MaxVal: math.MaxUint8, RShift: 0, Coefs: CCIR601}

	bayer16 := randBayer16(rng, rows*cols, math.MaxUint8)
	bayer8 := make([]uint8, rows*cols)
	for i, v := range bayer16 {
		bayer8[i] = uint8(v)
	}

	narrowed := make([]RGB[uint8], rows*cols)
	ImageRGB16To8(bayer16, args, narrowed)
	direct := make([]RGB[uint8], rows*cols)
	ImageRGB(bayer8, args, direct)
	for i := range narrowed {
		if narrowed[i] != direct[i] {
			t.Fatalf("pixel %d: narrowed %v != direct %v", i, narrowed[i], direct[i])
		}
	}

	narrowedMono := make([]uint8, rows*cols)
	ImageMono16To8(bayer16, args, narrowedMono)
	directMono := make([]uint8, rows*cols)
	ImageMono(bayer8, args, directMono)
	for i := range narrowedMono {
		if narrowedMono[i] != directMono[i] {
			t.Fatalf("mono pixel %d: narrowed %d != direct %d", i, narrowedMono[i], directMono[i])
		}
	}
}

// Scaling 8-bit data into the top of a 12-bit range and narrowing back down
// with a 4-bit shift must also agree with the 8-bit engine: the stencils
// are linear, so the scale factor passes through the integer divisions
// without loss.
func TestNarrowShiftMatches8Bit(t *testing.T) {
	const rows, cols = 10, 12
	rng := rand.New(rand.NewSource(8))

	bayer8 := make([]uint8, rows*cols)
	bayer16 := make([]uint16, rows*cols)
	for i := range bayer8 {
		v := uint8(rng.Intn(256))
		bayer8[i] = v
		bayer16[i] = uint16(v) << 4
	}

	args16 := &Args{Rows: rows, Cols: cols, MaxVal: math.MaxUint8 << 4, RShift: 4, Coefs: CCIR601}
	args8 := &Args{Rows: rows, Cols: cols, MaxVal: math.MaxUint8, Coefs: CCIR601}

	narrowed := make([]RGB[uint8], rows*cols)
	ImageRGB16To8(bayer16, args16, narrowed)
	direct := make([]RGB[uint8], rows*cols)
	ImageRGB(bayer8, args8, direct)
	for i := range narrowed {
		if narrowed[i] != direct[i] {
			t.Fatalf("pixel %d: narrowed %v != direct %v", i, narrowed[i], direct[i])
		}
	}

	narrowedMono := make([]uint8, rows*cols)
	ImageMono16To8(bayer16, args16, narrowedMono)
	directMono := make([]uint8, rows*cols)
	ImageMono(bayer8, args8, directMono)
	for i := range narrowedMono {
		if narrowedMono[i] != directMono[i] {
			t.Fatalf("mono pixel %d: narrowed %d != direct %d", i, narrowedMono[i], directMono[i])
		}
	}
}

// Luma never exceeds the largest of the three channels it was mixed from:
// the normalized weights sum to just under one.
func TestLumaBoundedByChannels(t *testing.T) {
	const rows, cols = 12, 14
	rng := rand.New(rand.NewSource(9))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, Coefs: CCIR601}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)

	rgb := make([]RGB[uint16], rows*cols)
	ImageRGB(bayer, args, rgb)
	mono := make([]uint16, rows*cols)
	ImageMono(bayer, args, mono)

	for i := range mono {
		maxc := rgb[i].Red
		if rgb[i].Green > maxc {
			maxc = rgb[i].Green
		}
		if rgb[i].Blue > maxc {
			maxc = rgb[i].Blue
		}
		if mono[i] > maxc {
			t.Fatalf("pixel %d: luma %d exceeds max channel %d of %v", i, mono[i], maxc, rgb[i])
		}
		if mono[i] > args.MaxVal {
			t.Fatalf("pixel %d: luma %d exceeds max_val", i, mono[i])
		}
	}
}

// Weights are normalized per call, so scaling all three by a constant
// changes the result by at most one count (the normalization epsilon is
// applied after scaling, so the quotients are not bit-identical).
func TestLumaWeightNormalization(t *testing.T) {
	const rows, cols = 6, 8
	rng := rand.New(rand.NewSource(10))
	bayer := randBayer16(rng, rows*cols, testMaxVal12)

	average := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12,
		Coefs: LumaCoefs{Red: 1, Green: 1, Blue: 1}}
	scaled := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12,
		Coefs: LumaCoefs{Red: 0.25, Green: 0.25, Blue: 0.25}}

	a := make([]uint16, rows*cols)
	b := make([]uint16, rows*cols)
	ImageMono(bayer, average, a)
	ImageMono(bayer, scaled, b)
	for i := range a {
		diff := int(a[i]) - int(b[i])
		if diff < -1 || diff > 1 {
			t.Fatalf("pixel %d: weights 1/1/1 gave %d, 0.25/0.25/0.25 gave %d", i, a[i], b[i])
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	const rows, cols = 24, 16
	rng := rand.New(rand.NewSource(11))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, RShift: 4, Coefs: CCIR601}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)

	for _, workers := range []int{0, 1, 3, 64} {
		rgbSeq := make([]RGB[uint16], rows*cols)
		rgbPar := make([]RGB[uint16], rows*cols)
		ImageRGB(bayer, args, rgbSeq)
		ImageRGBParallel(bayer, args, rgbPar, workers)
		for i := range rgbSeq {
			if rgbSeq[i] != rgbPar[i] {
				t.Fatalf("workers=%d pixel %d: %v != %v", workers, i, rgbPar[i], rgbSeq[i])
			}
		}

		rgb8Seq := make([]RGB[uint8], rows*cols)
		rgb8Par := make([]RGB[uint8], rows*cols)
		ImageRGB16To8(bayer, args, rgb8Seq)
		ImageRGB16To8Parallel(bayer, args, rgb8Par, workers)
		for i := range rgb8Seq {
			if rgb8Seq[i] != rgb8Par[i] {
				t.Fatalf("workers=%d pixel %d: %v != %v", workers, i, rgb8Par[i], rgb8Seq[i])
			}
		}

		monoSeq := make([]uint16, rows*cols)
		monoPar := make([]uint16, rows*cols)
		ImageMono(bayer, args, monoSeq)
		ImageMonoParallel(bayer, args, monoPar, workers)
		for i := range monoSeq {
			if monoSeq[i] != monoPar[i] {
				t.Fatalf("workers=%d mono pixel %d: %d != %d", workers, i, monoPar[i], monoSeq[i])
			}
		}

		mono8Seq := make([]uint8, rows*cols)
		mono8Par := make([]uint8, rows*cols)
		ImageMono16To8(bayer, args, mono8Seq)
		ImageMono16To8Parallel(bayer, args, mono8Par, workers)
		for i := range mono8Seq {
			if mono8Seq[i] != mono8Par[i] {
				t.Fatalf("workers=%d mono8 pixel %d: %d != %d", workers, i, mono8Par[i], mono8Seq[i])
			}
		}
	}
}

// The smallest legal image is a single RGGB cell; every row is then an edge
// row and the whole image runs on the safe path.
func TestMinimalImage(t *testing.T) {
	args := &Args{Rows: 2, Cols: 2, MaxVal: math.MaxUint8, Coefs: CCIR601}
	bayer := []uint8{200, 150, 150, 100}

	rgb := make([]RGB[uint8], 4)
	ImageRGB(bayer, args, rgb)
	// Reflection makes each color plane constant, so interpolation is
	// exact for every pixel.
	want := RGB[uint8]{Red: 200, Green: 150, Blue: 100}
	for i, p := range rgb {
		if p != want {
			t.Errorf("pixel %d: got %v, want %v", i, p, want)
		}
	}

	mono := make([]uint8, 4)
	ImageMono(bayer, args, mono)
	for i, m := range mono {
		if m > 200 {
			t.Errorf("mono pixel %d: %d out of range", i, m)
		}
	}
}

func BenchmarkRowRGBInterior(b *testing.B) {
	const rows, cols = 64, 1024
	rng := rand.New(rand.NewSource(20))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)
	out := make([]RGB[uint16], cols)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RowRGB(bayer, args, rows/2, out)
	}
}

func BenchmarkRowRGBSafe(b *testing.B) {
	const rows, cols = 64, 1024
	rng := rand.New(rand.NewSource(21))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)
	out := make([]RGB[uint16], cols)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rowRGBSafe(bayer, args, rows/2, out)
	}
}

func BenchmarkImageRGB16To8(b *testing.B) {
	const rows, cols = 256, 256
	rng := rand.New(rand.NewSource(22))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, RShift: 4}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)
	out := make([]RGB[uint8], rows*cols)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ImageRGB16To8(bayer, args, out)
	}
}

func BenchmarkImageMono16To8(b *testing.B) {
	const rows, cols = 256, 256
	rng := rand.New(rand.NewSource(23))
	args := &Args{Rows: rows, Cols: cols, MaxVal: testMaxVal12, RShift: 4, Coefs: CCIR601}
	bayer := randBayer16(rng, rows*cols, args.MaxVal)
	out := make([]uint8, rows*cols)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ImageMono16To8(bayer, args, out)
	}
}
