package images

import (
	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
)

// FitWithin computes the dimensions of a width x height image scaled down to
// fit inside a maxWidth x maxHeight bounding box with its aspect ratio kept.
//
// The binding axis is set to its maximum exactly and the other axis is
// floored. Width binds when width >= height unless that would push the height
// past maxHeight, in which case the height binds instead. Images already
// inside the box, and non-positive bounds, are returned unchanged with
// changed set to false. Images are never upscaled.
//
// Arguments:
// - width, height: The current image dimensions.
// - maxWidth, maxHeight: The bounding box.
//
// Returns:
// - The new width and height.
// - changed: Whether the image needs resampling.
//
// @example
// w, h, changed := FitWithin(4000, 2000, 1000, 1000) // 1000, 500, true
func FitWithin(width, height, maxWidth, maxHeight int) (int, int, bool) {
	if width <= 0 || height <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return width, height, false
	}
	if width <= maxWidth && height <= maxHeight {
		return width, height, false
	}

	widthBinds := width >= height
	if widthBinds && scaleAxis(height, maxWidth, width) > maxHeight {
		widthBinds = false
	} else if !widthBinds && scaleAxis(width, maxHeight, height) > maxWidth {
		widthBinds = true
	}

	if widthBinds {
		return maxWidth, scaleAxis(height, maxWidth, width), true
	}
	return scaleAxis(width, maxHeight, height), maxHeight, true
}

// scaleAxis scales dim by bound/binding in float32 and floors the result,
// never returning less than one pixel.
func scaleAxis(dim, bound, binding int) int {
	ratio := float32(bound) / float32(binding)
	n := int(math32.Floor(float32(dim) * ratio))
	if n < 1 {
		return 1
	}
	return n
}

// Resize resamples img to exactly width x height with a Lanczos-3 filter. Both
// dimensions must be positive; a zero would make the resampler infer it from
// the aspect ratio.
//
// Arguments:
// - img: The image to resample.
// - width, height: The exact output dimensions.
//
// Returns:
// - A new Image with the same format and the resampled pixels.
func (c *LanczosCodec) Resize(img *Image, width, height int) *Image {
	resized := resize.Resize(uint(width), uint(height), img.Pixels, resize.Lanczos3)
	return &Image{Format: img.Format, Pixels: resized}
}
