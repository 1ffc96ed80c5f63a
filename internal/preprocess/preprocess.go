package preprocess

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// maxDimension bounds the longest image side sent upstream. Blueprint
	// photos are frequently 4000px+ from phone cameras; the reasoning
	// service does not benefit past this.
	maxDimension = 2048

	// contrastBoost lifts faded pencil/blueline drawings toward legibility.
	contrastBoost = 15
)

// Image downscales and contrast-normalizes one blueprint image, returning
// PNG-encoded bytes and the new content type. Callers fall back to the
// original bytes on error; a single bad image must never sink the request.
// Library used: github.com/disintegration/imaging.
func Image(data []byte) ([]byte, string, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("preprocess decode: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		src = imaging.Fit(src, maxDimension, maxDimension, imaging.Lanczos)
	}
	src = imaging.AdjustContrast(src, contrastBoost)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.PNG); err != nil {
		return nil, "", fmt.Errorf("preprocess encode: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}
