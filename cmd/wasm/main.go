//go:build js && wasm

package main

import (
	"math"
	"syscall/js"

	dm "demosaic/pkg/demosaic"
)

func main() {
	js.Global().Set("demosaicFITS", js.FuncOf(demosaicFITS))
	select {} // block forever
}

// demosaicFITS(fileBytes, options) parses a raw Bayer FITS frame and
// demosaics it. options may carry mode ("rgb" or "mono"), maxVal and shift
// overrides. The result holds width, height and an RGBA Uint8Array ready
// for a canvas ImageData.
func demosaicFITS(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: demosaicFITS(fileBytes, options)")
	}

	jsBytes := args[0]
	length := jsBytes.Get("length").Int()
	fileBytes := make([]byte, length)
	js.CopyBytesToGo(fileBytes, jsBytes)

	mode := "rgb"
	maxValOverride := 0
	shiftOverride := -1
	if len(args) >= 2 && args[1].Type() == js.TypeObject {
		if v := args[1].Get("mode"); v.Type() == js.TypeString {
			mode = v.String()
		}
		if v := args[1].Get("maxVal"); v.Type() == js.TypeNumber {
			maxValOverride = v.Int()
		}
		if v := args[1].Get("shift"); v.Type() == js.TypeNumber {
			shiftOverride = v.Int()
		}
	}
	if mode != "rgb" && mode != "mono" {
		return errorResult("unknown mode: " + mode)
	}

	frame, err := dm.ReadFITSFromBytes(fileBytes)
	if err != nil {
		return errorResult("FITS parse error: " + err.Error())
	}
	if pat := frame.Pattern(); pat != "" && pat != "RGGB" {
		return errorResult("unsupported Bayer pattern: " + pat)
	}
	if frame.Rows%2 != 0 || frame.Cols%2 != 0 {
		return errorResult("frame dimensions must be even")
	}

	dmArgs := frame.Args()
	if maxValOverride > 0 && maxValOverride <= math.MaxUint16 {
		dmArgs.MaxVal = uint16(maxValOverride)
		dmArgs.RShift = 0
		for int(dmArgs.MaxVal)>>dmArgs.RShift > math.MaxUint8 {
			dmArgs.RShift++
		}
	}
	if shiftOverride >= 0 {
		dmArgs.RShift = shiftOverride
	}
	if int(dmArgs.MaxVal)>>dmArgs.RShift > math.MaxUint8 {
		return errorResult("maxVal/shift do not fit 8 bits")
	}

	n := dmArgs.Rows * dmArgs.Cols
	rgba := make([]byte, n*4)
	switch mode {
	case "rgb":
		out := make([]dm.RGB[uint8], n)
		dm.ImageRGB16To8Parallel(frame.Pixels, &dmArgs, out, 0)
		for i, p := range out {
			rgba[i*4] = p.Red
			rgba[i*4+1] = p.Green
			rgba[i*4+2] = p.Blue
			rgba[i*4+3] = 255
		}
	case "mono":
		out := make([]uint8, n)
		dm.ImageMono16To8Parallel(frame.Pixels, &dmArgs, out, 0)
		for i, v := range out {
			rgba[i*4] = v
			rgba[i*4+1] = v
			rgba[i*4+2] = v
			rgba[i*4+3] = 255
		}
	}

	uint8Array := js.Global().Get("Uint8Array").New(len(rgba))
	js.CopyBytesToJS(uint8Array, rgba)

	return js.ValueOf(map[string]interface{}{
		"width":   dmArgs.Cols,
		"height":  dmArgs.Rows,
		"maxVal":  int(dmArgs.MaxVal),
		"shift":   dmArgs.RShift,
		"pattern": frame.Pattern(),
		"rgba":    uint8Array,
	})
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
