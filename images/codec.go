package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"sync"

	// Decoders registered with image.Decode for format sniffing.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pkg/errors"
)

// Codec is the imaging capability the batch processor depends on: decode
// with format detection, exact-size resampling and JPEG encoding.
type Codec interface {
	// Decode decodes encoded image bytes, detecting the format from content.
	Decode(data []byte) (*Image, error)
	// Resize resamples img to exactly width x height.
	Resize(img *Image, width, height int) *Image
	// EncodeJPEG encodes img as JPEG at the given quality (1-100).
	EncodeJPEG(img *Image, quality int) ([]byte, error)
}

var _ Codec = (*LanczosCodec)(nil)

// LanczosCodec is the default Codec. It decodes through the image package
// registry, resamples with a Lanczos-3 filter and encodes with image/jpeg.
type LanczosCodec struct {
	bufferPool *sync.Pool
}

// NewLanczosCodec creates the default codec.
//
// Returns:
// - A LanczosCodec ready for use.
//
// @example
// codec := images.NewLanczosCodec()
// img, err := codec.Decode(pngBytes)
func NewLanczosCodec() *LanczosCodec {
	return &LanczosCodec{
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// Decode decodes data into an Image. PNG, JPEG, GIF, WebP, BMP and TIFF are
// recognized.
//
// Arguments:
// - data: The encoded image bytes.
//
// Returns:
// - The decoded image.
// - error if the bytes are empty, of an unknown format or corrupt.
func (c *LanczosCodec) Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, errors.New("image data is empty")
	}

	decoded, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	format, ok := ParseFormat(name)
	if !ok {
		format = ImageFormat(name)
	}

	return &Image{Format: format, Pixels: decoded}, nil
}

// EncodeJPEG encodes img as baseline JPEG.
//
// Arguments:
// - img: The image to encode.
// - quality: JPEG quality; image/jpeg clamps values outside 1-100.
//
// Returns:
// - The JPEG bytes.
// - error if the image is empty or the encoder rejects it.
func (c *LanczosCodec) EncodeJPEG(img *Image, quality int) ([]byte, error) {
	if img == nil || img.Pixels == nil {
		return nil, errors.New("image is nil")
	}

	buf := c.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		c.bufferPool.Put(buf)
	}()

	if err := jpeg.Encode(buf, img.Pixels, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}

	// The pooled buffer is reused, so hand back a copy.
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
