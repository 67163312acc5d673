package illustration

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // the OpenAI API returns PNG payloads
	"os"

	"golang.org/x/image/draw"
)

const (
	maxDimension = 512
	jpegQuality  = 85
)

// decodeAndScale decodes raw image bytes and scales the result down so that
// neither side exceeds maxDim. Images already within bounds are returned
// unchanged.
func decodeAndScale(data []byte, maxDim int) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return scaleToFit(src, maxDim), nil
}

func scaleToFit(src image.Image, maxDim int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func writeJPEG(img image.Image, path string, quality int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: quality}); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
