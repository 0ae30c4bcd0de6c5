// Package photo converts image files into the data-URI string form stored
// on a record. Images larger than the configured maximum dimension are
// downscaled before encoding so a single photo cannot bloat the database.
package photo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"

	"github.com/hansollee/matzip/internal/constants"
)

const dataURIPrefix = "data:image/jpeg;base64,"

const jpegQuality = 80

// EncodeFile reads an image file and returns its stored data-URI form.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo %s: %w", path, err)
	}
	return Encode(data)
}

// Encode decodes an image (JPEG, PNG, or GIF), downscales it to fit the
// maximum dimension, and returns a JPEG data URI.
func Encode(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode photo: %w", err)
	}

	img = fit(img, constants.PhotoMaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode, returning the raw JPEG bytes of a stored photo.
func Decode(dataURI string) ([]byte, error) {
	_, encoded, ok := strings.Cut(dataURI, ";base64,")
	if !ok {
		return nil, fmt.Errorf("not a base64 data URI")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored photo: %w", err)
	}
	return data, nil
}

// fit returns img scaled down so neither side exceeds maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var nw, nh int
	if w > h {
		nw = maxDim
		nh = h * maxDim / w
	} else {
		nh = maxDim
		nw = w * maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
