package demosaic

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// FITS loading for raw Bayer frames. Astro cameras commonly write the
// undemosaiced sensor readout as a single-plane FITS image with the mosaic
// layout recorded in the BAYERPAT header. Only the primary HDU is read;
// pixel values are mapped to physical units via BZERO/BSCALE and stored as
// uint16 regardless of the on-disk BITPIX.

// Frame is a raw Bayer frame: one sample per sensor pixel, row-major.
type Frame struct {
	Pixels   []uint16
	Rows     int
	Cols     int
	BitDepth int // effective sample depth, 8 or 16
	Headers  map[string]string
}

// Header returns the raw value of a FITS header keyword, if present.
func (f *Frame) Header(key string) (string, bool) {
	v, ok := f.Headers[strings.ToUpper(key)]
	return v, ok
}

func (f *Frame) headerInt(key string) (int, bool) {
	v, ok := f.Header(key)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// Pattern returns the Bayer layout recorded in the BAYERPAT header, folded
// to upper case ("RGGB", "GBRG", ...), or "" when the frame carries none.
// XBAYROFF/YBAYROFF offsets rotate the pattern accordingly, so the returned
// string always describes the layout of pixel (0, 0).
func (f *Frame) Pattern() string {
	v, ok := f.Header("BAYERPAT")
	if !ok {
		return ""
	}
	pat := strings.ToUpper(strings.TrimSpace(v))
	if len(pat) != 4 {
		return pat
	}

	xoff, _ := f.headerInt("XBAYROFF")
	yoff, _ := f.headerInt("YBAYROFF")
	xoff = ((xoff % 2) + 2) % 2
	yoff = ((yoff % 2) + 2) % 2
	if xoff == 0 && yoff == 0 {
		return pat
	}

	// The pattern string lists the 2x2 cell row-major; an offset swaps
	// columns, rows, or both.
	cell := [2][2]byte{{pat[0], pat[1]}, {pat[2], pat[3]}}
	return string([]byte{
		cell[yoff][xoff], cell[yoff][1-xoff],
		cell[1-yoff][xoff], cell[1-yoff][1-xoff],
	})
}

// MaxVal returns the saturation level of the frame: the DATAMAX header when
// present, otherwise the ceiling of the effective bit depth.
func (f *Frame) MaxVal() uint16 {
	if v, ok := f.Header("DATAMAX"); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && d >= 1 && d <= 65535 {
			return uint16(d)
		}
	}
	if f.BitDepth == 8 {
		return math.MaxUint8
	}
	return math.MaxUint16
}

// Args builds demosaicing arguments for the frame, with CCIR 601 luma
// weights and a shift that maps MaxVal into 8-bit range for the narrowing
// variants.
func (f *Frame) Args() Args {
	maxVal := f.MaxVal()
	shift := 0
	for maxVal>>shift > math.MaxUint8 {
		shift++
	}
	return Args{
		Rows:   f.Rows,
		Cols:   f.Cols,
		MaxVal: maxVal,
		RShift: shift,
		Coefs:  CCIR601,
	}
}

// ReadFITS loads a raw Bayer frame from a FITS file.
func ReadFITS(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FITS file: %w", err)
	}
	defer f.Close()
	return readFrame(f)
}

// ReadFITSFromBytes loads a raw Bayer frame from FITS data in memory.
func ReadFITSFromBytes(data []byte) (*Frame, error) {
	return readFrame(bytes.NewReader(data))
}

func readFrame(r io.Reader) (*Frame, error) {
	var bitpix, naxis, width, height int
	bzero := 0.0
	bscale := 1.0
	headerDone := false
	headers := make(map[string]string)

	recordBuf := make([]byte, 80)

	for !headerDone {
		for i := 0; i < 36; i++ {
			if _, err := io.ReadFull(r, recordBuf); err != nil {
				return nil, fmt.Errorf("reading FITS header record: %w", err)
			}
			record := string(recordBuf)
			keyword := strings.TrimSpace(record[:8])

			if keyword == "END" {
				headerDone = true
				remaining := 35 - i
				if remaining > 0 {
					skipBuf := make([]byte, remaining*80)
					io.ReadFull(r, skipBuf)
				}
				break
			}

			if len(record) > 10 && record[8] == '=' && record[9] == ' ' {
				rawValue := strings.TrimSpace(strings.SplitN(record[10:], "/", 2)[0])
				parsedValue := parseHeaderValue(rawValue)

				if keyword != "" && parsedValue != "" {
					headers[strings.ToUpper(keyword)] = parsedValue
				}

				switch keyword {
				case "BITPIX":
					bitpix, _ = strconv.Atoi(strings.TrimSpace(rawValue))
				case "NAXIS":
					naxis, _ = strconv.Atoi(strings.TrimSpace(rawValue))
				case "NAXIS1":
					width, _ = strconv.Atoi(strings.TrimSpace(rawValue))
				case "NAXIS2":
					height, _ = strconv.Atoi(strings.TrimSpace(rawValue))
				case "BZERO":
					bzero, _ = strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
				case "BSCALE":
					bscale, _ = strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
				}
			}
		}
	}

	if naxis < 2 || width == 0 || height == 0 {
		return nil, fmt.Errorf("invalid FITS: NAXIS=%d, NAXIS1=%d, NAXIS2=%d", naxis, width, height)
	}

	numPixels := width * height
	pixels := make([]uint16, numPixels)

	switch bitpix {
	case 16:
		rawBytes := make([]byte, numPixels*2)
		if _, err := io.ReadFull(r, rawBytes); err != nil {
			return nil, fmt.Errorf("reading 16-bit pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			signedVal := int16(binary.BigEndian.Uint16(rawBytes[i*2:]))
			physicalVal := float64(signedVal)*bscale + bzero
			pixels[i] = uint16(clampFloat64(physicalVal, 0, 65535))
		}

	case -32:
		rawBytes := make([]byte, numPixels*4)
		if _, err := io.ReadFull(r, rawBytes); err != nil {
			return nil, fmt.Errorf("reading -32 float pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			intBits := binary.BigEndian.Uint32(rawBytes[i*4:])
			floatVal := math.Float32frombits(intBits)
			physicalVal := float64(floatVal)*bscale + bzero
			pixels[i] = uint16(clampFloat64(physicalVal, 0, 65535))
		}

	case 8:
		rawBytes := make([]byte, numPixels)
		if _, err := io.ReadFull(r, rawBytes); err != nil {
			return nil, fmt.Errorf("reading 8-bit pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			physicalVal := float64(rawBytes[i])*bscale + bzero
			pixels[i] = uint16(clampFloat64(physicalVal, 0, 65535))
		}

	case 32:
		rawBytes := make([]byte, numPixels*4)
		if _, err := io.ReadFull(r, rawBytes); err != nil {
			return nil, fmt.Errorf("reading 32-bit pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			intVal := int32(binary.BigEndian.Uint32(rawBytes[i*4:]))
			physicalVal := float64(intVal)*bscale + bzero
			pixels[i] = uint16(clampFloat64(physicalVal, 0, 65535))
		}

	default:
		return nil, fmt.Errorf("unsupported BITPIX: %d", bitpix)
	}

	effectiveBpp := 16
	if bitpix == 8 {
		effectiveBpp = 8
	}

	return &Frame{
		Pixels:   pixels,
		Rows:     height,
		Cols:     width,
		BitDepth: effectiveBpp,
		Headers:  headers,
	}, nil
}

func clampFloat64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseHeaderValue(rawValue string) string {
	if rawValue == "" {
		return ""
	}
	if rawValue == "T" {
		return "True"
	}
	if rawValue == "F" {
		return "False"
	}
	if strings.HasPrefix(rawValue, "'") {
		endQuote := strings.LastIndex(rawValue, "'")
		if endQuote > 0 {
			return strings.TrimRight(rawValue[1:endQuote], " ")
		}
		return strings.TrimLeft(strings.TrimRight(rawValue, " "), "'")
	}
	return rawValue
}
