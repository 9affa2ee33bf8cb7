package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func getTestImage() image.Image {
	return getSizedTestImage(100, 100)
}

// getSizedTestImage creates a red image with a dark band so resampling has
// an edge to work on.
func getSizedTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{R: 255, G: 0, B: 0, A: 255}
			if y > height/3 && y < height/2 {
				c = color.RGBA{R: 20, G: 20, B: 20, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func getJPEGBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, getTestImage(), nil)
	require.NoError(t, err)
	return buf.Bytes()
}

func getPNGBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := png.Encode(&buf, getTestImage())
	require.NoError(t, err)
	return buf.Bytes()
}

func getBMPBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := bmp.Encode(&buf, getTestImage())
	require.NoError(t, err)
	return buf.Bytes()
}

func getTIFFBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := tiff.Encode(&buf, getTestImage(), nil)
	require.NoError(t, err)
	return buf.Bytes()
}

// TestLanczosDecode validates format detection across registered decoders.
func TestLanczosDecode(t *testing.T) {
	tests := []struct {
		name     string
		getBytes func(t *testing.T) []byte
		format   ImageFormat
	}{
		{"JPEG", getJPEGBytes, FormatJPEG},
		{"PNG", getPNGBytes, FormatPNG},
		{"BMP", getBMPBytes, FormatBMP},
		{"TIFF", getTIFFBytes, FormatTIFF},
	}

	codec := NewLanczosCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := codec.Decode(tt.getBytes(t))
			require.NoError(t, err)
			assert.Equal(t, tt.format, img.Format)
			assert.Equal(t, 100, img.Width())
			assert.Equal(t, 100, img.Height())
			assert.Equal(t, "100x100", img.Size())
		})
	}
}

// TestLanczosDecodeErrors validates rejection of empty and unknown data.
func TestLanczosDecodeErrors(t *testing.T) {
	codec := NewLanczosCodec()

	img, err := codec.Decode(nil)
	assert.Error(t, err, "Should error with empty image data")
	assert.Nil(t, img)
	assert.Contains(t, err.Error(), "image data is empty")

	img, err = codec.Decode([]byte("not an image"))
	assert.Error(t, err, "Should error with unknown format")
	assert.Nil(t, img)
	assert.ErrorIs(t, err, image.ErrFormat)

	truncated := getPNGBytes(t)[:40]
	img, err = codec.Decode(truncated)
	assert.Error(t, err, "Should error with truncated PNG")
	assert.Nil(t, img)
}

// TestLanczosEncodeJPEG validates the JPEG round trip keeps dimensions.
func TestLanczosEncodeJPEG(t *testing.T) {
	codec := NewLanczosCodec()
	src := &Image{Format: FormatPNG, Pixels: getSizedTestImage(64, 48)}

	out, err := codec.EncodeJPEG(src, 90)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 48, decoded.Bounds().Dy())

	// A second encode must not share the pooled buffer with the first result.
	again, err := codec.EncodeJPEG(&Image{Format: FormatPNG, Pixels: getTestImage()}, 10)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err, "First result should survive buffer reuse")
	assert.NotEqual(t, out, again)
}

// TestLanczosEncodeJPEGQuality checks that lower quality yields fewer bytes.
func TestLanczosEncodeJPEGQuality(t *testing.T) {
	codec := NewLanczosCodec()
	src := &Image{Format: FormatPNG, Pixels: getSizedTestImage(256, 256)}

	high, err := codec.EncodeJPEG(src, 100)
	require.NoError(t, err)
	low, err := codec.EncodeJPEG(src, 5)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

func TestLanczosEncodeJPEGNil(t *testing.T) {
	codec := NewLanczosCodec()

	out, err := codec.EncodeJPEG(nil, 90)
	assert.Error(t, err)
	assert.Nil(t, out)

	out, err = codec.EncodeJPEG(&Image{}, 90)
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]ImageFormat{
		"jpeg": FormatJPEG,
		".JPG": FormatJPEG,
		"png":  FormatPNG,
		".gif": FormatGIF,
		"webp": FormatWebP,
		"bmp":  FormatBMP,
		".tif": FormatTIFF,
		"tiff": FormatTIFF,
	}
	for name, want := range tests {
		got, ok := ParseFormat(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := ParseFormat(".heic")
	assert.False(t, ok)
}

func TestImageFormatMIMEType(t *testing.T) {
	assert.Equal(t, "image/jpeg", FormatJPEG.MIMEType())
	assert.Equal(t, "image/png", FormatPNG.MIMEType())
	assert.Equal(t, "image/webp", FormatWebP.MIMEType())
	assert.Equal(t, "application/octet-stream", ImageFormat("heic").MIMEType())
}

func TestImageSizeEmpty(t *testing.T) {
	var img *Image
	assert.Equal(t, 0, img.Width())
	assert.Equal(t, "0x0", img.Size())
}
