//go:build !purego && !js

package main

import (
	"fmt"

	"gocv.io/x/gocv"

	dm "demosaic/pkg/demosaic"
)

func loadRGBImage(path string) ([]dm.RGB[uint16], int, int, error) {
	src := gocv.IMRead(path, gocv.IMReadColor)
	if src.Empty() {
		return nil, 0, 0, fmt.Errorf("could not load image: %s", path)
	}
	defer src.Close()

	w, h := src.Cols(), src.Rows()
	data, err := src.DataPtrUint8()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading image data: %w", err)
	}

	// IMReadColor yields 8-bit BGR; widen each channel to the full 16-bit
	// range the engine works in.
	pixels := make([]dm.RGB[uint16], w*h)
	for i := range pixels {
		pixels[i] = dm.RGB[uint16]{
			Red:   uint16(data[i*3+2]) << 8,
			Green: uint16(data[i*3+1]) << 8,
			Blue:  uint16(data[i*3]) << 8,
		}
	}

	return pixels, w, h, nil
}
