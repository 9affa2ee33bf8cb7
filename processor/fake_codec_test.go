package processor

import (
	"image"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/ocr-prep/images"
)

// fakeCodec decodes payloads of the form "WxH" into blank images and records
// every resize and encode call.
type fakeCodec struct {
	resizes   []image.Point
	encodes   int
	qualities []int
	failAt    int
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{failAt: -1}
}

func (f *fakeCodec) Decode(data []byte) (*images.Image, error) {
	var w, h int
	for i, c := range data {
		if c == 'x' {
			var err error
			if w, err = strconv.Atoi(string(data[:i])); err != nil {
				return nil, err
			}
			if h, err = strconv.Atoi(string(data[i+1:])); err != nil {
				return nil, err
			}
			return &images.Image{Format: images.FormatPNG, Pixels: image.NewGray(image.Rect(0, 0, w, h))}, nil
		}
	}
	return nil, errors.New("fake: unknown format")
}

func (f *fakeCodec) Resize(img *images.Image, width, height int) *images.Image {
	f.resizes = append(f.resizes, image.Pt(width, height))
	return &images.Image{Format: img.Format, Pixels: image.NewGray(image.Rect(0, 0, width, height))}
}

func (f *fakeCodec) EncodeJPEG(img *images.Image, quality int) ([]byte, error) {
	defer func() { f.encodes++ }()
	f.qualities = append(f.qualities, quality)
	if f.encodes == f.failAt {
		return nil, errors.New("unsupported pixel format")
	}
	return []byte(img.Size()), nil
}

func addFake(t *testing.T, p *Processor, size string) {
	t.Helper()
	require.NoError(t, p.AddBase64(toBase64([]byte(size))))
}

func TestResizeOnlyTouchesOversizedImages(t *testing.T) {
	codec := newFakeCodec()
	p := New(nil, codec)
	addFake(t, p, "4000x2000")
	addFake(t, p, "500x500")
	addFake(t, p, "2000x4000")

	p.Resize(1000, 1000)
	assert.Equal(t, []image.Point{{1000, 500}, {500, 1000}}, codec.resizes)
	assert.Equal(t, []string{"1000x500", "500x500", "500x1000"}, p.Sizes())

	p.Resize(1000, 1000)
	assert.Len(t, codec.resizes, 2, "Second resize with the same bounds must not resample")
}

func TestResizeZeroBoundsIsNoop(t *testing.T) {
	codec := newFakeCodec()
	p := New(nil, codec)
	addFake(t, p, "4000x2000")

	p.Resize(0, 0)
	assert.Empty(t, codec.resizes)
	assert.Equal(t, []string{"4000x2000"}, p.Sizes())
}

// TestEncodeFailFast validates that the first encoder failure aborts the
// whole batch without partial results.
func TestEncodeFailFast(t *testing.T) {
	codec := newFakeCodec()
	codec.failAt = 1
	p := New(nil, codec)
	addFake(t, p, "10x10")
	addFake(t, p, "20x20")
	addFake(t, p, "30x30")

	out, err := p.EncodeJPEG(90)
	require.Error(t, err)
	assert.Nil(t, out, "No partial results on failure")
	assert.True(t, IsKind(err, KindEncode))
	assert.Equal(t, "failed to encode JPEG: unsupported pixel format", err.Error())
	assert.Equal(t, 2, codec.encodes, "Encoding stops at the first failure")
	assert.Equal(t, 3, p.Count(), "Images are kept after a failed encode")
}

func TestEncodeOutputFormat(t *testing.T) {
	codec := newFakeCodec()
	p := New(nil, codec)
	addFake(t, p, "10x20")
	addFake(t, p, "30x40")

	out, err := p.EncodeJPEG(300)
	require.NoError(t, err)
	assert.Equal(t, []string{
		JPEGDataURIPrefix + toBase64([]byte("10x20")),
		JPEGDataURIPrefix + toBase64([]byte("30x40")),
	}, out)
	assert.Equal(t, []int{100, 100}, codec.qualities, "Quality is clamped before the encoder")
}

func TestDecodeErrorFromCodec(t *testing.T) {
	p := New(nil, newFakeCodec())
	err := p.AddBase64(toBase64([]byte("garbage")))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDecode))
	assert.Equal(t, "failed to load image: fake: unknown format", err.Error())
}
