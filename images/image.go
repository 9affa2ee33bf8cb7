// Package images - decoded image handling for OCR pre-processing.
package images

import (
	"fmt"
	"image"
)

// Image is a decoded, in-memory image together with the format it was
// decoded from.
type Image struct {
	// The format detected when the image was decoded.
	Format ImageFormat `json:"format" yaml:"format"`
	// The decoded pixel buffer.
	Pixels image.Image `json:"-" yaml:"-"`
}

// Width returns the width of the pixel buffer, or 0 for an empty image.
func (i *Image) Width() int {
	if i == nil || i.Pixels == nil {
		return 0
	}
	return i.Pixels.Bounds().Dx()
}

// Height returns the height of the pixel buffer, or 0 for an empty image.
func (i *Image) Height() int {
	if i == nil || i.Pixels == nil {
		return 0
	}
	return i.Pixels.Bounds().Dy()
}

// Size formats the dimensions as "{width}x{height}", e.g. "1920x1080".
func (i *Image) Size() string {
	return fmt.Sprintf("%dx%d", i.Width(), i.Height())
}
