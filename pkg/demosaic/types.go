package demosaic

// Sample is a Bayer or output sample: 8-bit or 16-bit unsigned.
type Sample interface {
	~uint8 | ~uint16
}

// RGB is one demosaiced pixel at the same bit depth as the input.
type RGB[S Sample] struct {
	Red   S
	Green S
	Blue  S
}

// LumaCoefs are the per-channel weights for reducing RGB to monochrome.
// Each must lie in [0, 1]; they are normalized to sum to 1 before use, so
// the raw sum does not need to equal 1.
type LumaCoefs struct {
	Red   float64
	Green float64
	Blue  float64
}

// CCIR601 is the standard-definition luma formula.
var CCIR601 = LumaCoefs{Red: 0.299, Green: 0.587, Blue: 0.114}

// Args describes one Bayer frame and how to demosaic it. Construct one per
// image format and pass it to every call; the engine only reads it and
// re-validates it on every entry point.
type Args struct {
	// Rows and Cols are the Bayer image dimensions. Both must be even and
	// at least 2 so that every 2x2 RGGB cell is complete.
	Rows int
	Cols int

	// MaxVal is the maximum permissible input sample value, e.g. 0x0FFF for
	// 12-bit pixels. Demosaicing never produces values above MaxVal (or
	// above MaxVal>>RShift for the narrowing variants).
	MaxVal uint16

	// RShift is the right shift applied by the 16-to-8-bit variants,
	// e.g. 4 for 12-bit input. MaxVal>>RShift must fit in 8 bits.
	RShift int

	// Coefs are the luma weights used by the mono variants.
	Coefs LumaCoefs
}

// sampleMax is the largest value representable by S.
func sampleMax[S Sample]() int {
	return int(^S(0))
}
