package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"

	dm "demosaic/pkg/demosaic"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	fs := flag.NewFlagSet("demosaic", flag.ContinueOnError)
	mode := fs.String("mode", "rgb", "output variant: rgb or mono")
	workers := fs.Int("workers", 0, "demosaic goroutines (0 = all CPUs)")
	maxVal := fs.Int("max-val", 0, "saturation level override (0 = derive from input)")
	shift := fs.Int("shift", -1, "narrowing right shift override (-1 = derive from max-val)")
	if err := fs.Parse(argv); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: demosaic [flags] <input> [output]")
	}
	if *mode != "rgb" && *mode != "mono" {
		return fmt.Errorf("unknown mode %q, want rgb or mono", *mode)
	}
	input := fs.Arg(0)
	output := ""
	if fs.NArg() > 1 {
		output = fs.Arg(1)
	}

	lower := strings.ToLower(input)
	if strings.HasSuffix(lower, ".fits") || strings.HasSuffix(lower, ".fit") {
		return demosaicFITS(input, output, *mode, *workers, *maxVal, *shift)
	}
	return mosaicRoundTrip(input, output, *mode, *workers)
}

// demosaicFITS loads a raw Bayer FITS frame, demosaics it and writes an
// 8-bit PNG or BMP.
func demosaicFITS(input, output, mode string, workers, maxValOverride, shiftOverride int) error {
	frame, err := dm.ReadFITS(input)
	if err != nil {
		return fmt.Errorf("reading FITS: %w", err)
	}
	fmt.Printf("FITS loaded: %dx%d, %d-bit, pattern %q\n",
		frame.Cols, frame.Rows, frame.BitDepth, frame.Pattern())

	if pat := frame.Pattern(); pat != "" && pat != "RGGB" {
		return fmt.Errorf("unsupported Bayer pattern %q", pat)
	}
	if frame.Rows%2 != 0 || frame.Cols%2 != 0 {
		return fmt.Errorf("frame is %dx%d, need even dimensions", frame.Cols, frame.Rows)
	}

	args := frame.Args()
	if maxValOverride > 0 {
		if maxValOverride > math.MaxUint16 {
			return fmt.Errorf("max-val %d out of range", maxValOverride)
		}
		args.MaxVal = uint16(maxValOverride)
		args.RShift = 0
		for int(args.MaxVal)>>args.RShift > math.MaxUint8 {
			args.RShift++
		}
	}
	if shiftOverride >= 0 {
		args.RShift = shiftOverride
	}
	if int(args.MaxVal)>>args.RShift > math.MaxUint8 {
		return fmt.Errorf("max-val %d with shift %d does not fit 8 bits", args.MaxVal, args.RShift)
	}

	n := args.Rows * args.Cols
	start := time.Now()
	var img image.Image
	switch mode {
	case "rgb":
		out := make([]dm.RGB[uint8], n)
		dm.ImageRGB16To8Parallel(frame.Pixels, &args, out, workers)
		img = rgbImage(out, args.Cols, args.Rows)
	case "mono":
		out := make([]uint8, n)
		dm.ImageMono16To8Parallel(frame.Pixels, &args, out, workers)
		img = grayImage(out, args.Cols, args.Rows)
	}
	fmt.Printf("Demosaiced %s in %.1fms (max_val=%d, shift=%d)\n",
		mode, float64(time.Since(start).Microseconds())/1000, args.MaxVal, args.RShift)

	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "_" + mode + ".png"
	}
	if err := writeImage(output, img); err != nil {
		return err
	}
	fmt.Printf("Wrote: %s\n", output)
	return nil
}

// mosaicRoundTrip treats the input as a full-color reference: it reduces
// the image to its RGGB mosaic, demosaics the mosaic, and reports the
// per-channel RMS error of the reconstruction.
func mosaicRoundTrip(input, output, mode string, workers int) error {
	rgb, w, h, err := loadRGBImage(input)
	if err != nil {
		return err
	}
	fmt.Printf("Image loaded: %dx%d\n", w, h)

	// The engine wants even dimensions; trim a trailing row/column.
	ew, eh := w&^1, h&^1
	if ew < 2 || eh < 2 {
		return fmt.Errorf("image is %dx%d, too small to mosaic", w, h)
	}
	if ew != w || eh != h {
		trimmed := make([]dm.RGB[uint16], ew*eh)
		for row := 0; row < eh; row++ {
			copy(trimmed[row*ew:(row+1)*ew], rgb[row*w:row*w+ew])
		}
		rgb, w, h = trimmed, ew, eh
		fmt.Printf("Trimmed to: %dx%d\n", w, h)
	}

	bayer := make([]uint16, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			p := rgb[row*w+col]
			switch {
			case row%2 == 0 && col%2 == 0:
				bayer[row*w+col] = p.Red
			case row%2 == 1 && col%2 == 1:
				bayer[row*w+col] = p.Blue
			default:
				bayer[row*w+col] = p.Green
			}
		}
	}

	args := dm.Args{Rows: h, Cols: w, MaxVal: math.MaxUint16, RShift: 8, Coefs: dm.CCIR601}
	out := make([]dm.RGB[uint16], w*h)
	start := time.Now()
	dm.ImageRGBParallel(bayer, &args, out, workers)
	elapsed := time.Since(start)

	var sumSq [3]float64
	for i := range out {
		dr := float64(out[i].Red) - float64(rgb[i].Red)
		dg := float64(out[i].Green) - float64(rgb[i].Green)
		db := float64(out[i].Blue) - float64(rgb[i].Blue)
		sumSq[0] += dr * dr
		sumSq[1] += dg * dg
		sumSq[2] += db * db
	}
	n := float64(w * h)
	fmt.Printf("Demosaiced in %.1fms\n", float64(elapsed.Microseconds())/1000)
	fmt.Println()
	fmt.Println("=== Mosaic Round Trip ===")
	fmt.Printf("  RMS red:    %8.2f / %d\n", math.Sqrt(sumSq[0]/n), args.MaxVal)
	fmt.Printf("  RMS green:  %8.2f / %d\n", math.Sqrt(sumSq[1]/n), args.MaxVal)
	fmt.Printf("  RMS blue:   %8.2f / %d\n", math.Sqrt(sumSq[2]/n), args.MaxVal)
	fmt.Println("=========================")

	if output == "" {
		return nil
	}
	var img image.Image
	switch mode {
	case "rgb":
		out8 := make([]dm.RGB[uint8], w*h)
		dm.ImageRGB16To8Parallel(bayer, &args, out8, workers)
		img = rgbImage(out8, w, h)
	case "mono":
		out8 := make([]uint8, w*h)
		dm.ImageMono16To8Parallel(bayer, &args, out8, workers)
		img = grayImage(out8, w, h)
	}
	if err := writeImage(output, img); err != nil {
		return err
	}
	fmt.Printf("Wrote: %s\n", output)
	return nil
}

func rgbImage(pixels []dm.RGB[uint8], w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixels[y*w+x]
			img.SetRGBA(x, y, color.RGBA{R: p.Red, G: p.Green, B: p.Blue, A: 255})
		}
	}
	return img
}

func grayImage(pixels []uint8, w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	return img
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		if err := bmp.Encode(f, img); err != nil {
			return fmt.Errorf("encoding BMP: %w", err)
		}
	default:
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}
