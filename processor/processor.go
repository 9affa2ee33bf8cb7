// Package processor implements the image batch processor that prepares
// captured images for OCR: ingest base64 or data-URI text, downscale into a
// bounding box and re-encode as JPEG data URIs.
//
// A Processor is not safe for concurrent use; callers that share one across
// goroutines must synchronize access themselves.
package processor

import (
	"encoding/base64"
	"fmt"

	"github.com/pkg/errors"

	"github.com/nvr-ai/ocr-prep/config"
	"github.com/nvr-ai/ocr-prep/images"
)

// Processor holds an ordered batch of decoded images. Every operation
// applies index-for-index in insertion order.
type Processor struct {
	codec     images.Codec
	config    config.Config
	batch     []*images.Image
	debugMode bool
}

// New creates an empty processor.
//
// Arguments:
// - cfg: Bounding box and quality used by Optimize. nil selects config.Default().
// - codec: The imaging backend. nil selects images.NewLanczosCodec().
//
// Returns:
// - An empty Processor.
//
// @example
// p := processor.New(nil, nil)
// err := p.AddBase64("data:image/png;base64,iVBORw0KGgo...")
func New(cfg *config.Config, codec images.Codec) *Processor {
	c := config.Default()
	if cfg != nil {
		c = *cfg
	}
	if codec == nil {
		codec = images.NewLanczosCodec()
	}
	return &Processor{
		codec:     codec,
		config:    c,
		debugMode: c.Debug,
	}
}

// SetDebugMode enables or disables debug logging.
func (p *Processor) SetDebugMode(enabled bool) {
	p.debugMode = enabled
}

func (p *Processor) debugf(format string, args ...interface{}) {
	if p.debugMode {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// AddBase64 decodes an image from base64 text or a data URI and appends it
// to the batch. Nothing is appended on failure.
//
// Arguments:
// - data: Raw base64 image bytes, or "data:<mime>;base64,<payload>".
//
// Returns:
// - KindMalformedInput if a data URI has no comma.
// - KindDecode if the payload is not valid base64 or not a decodable image.
func (p *Processor) AddBase64(data string) error {
	payload, err := ExtractPayload(data)
	if err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return newError(KindDecode, errors.Wrap(err, "failed to decode base64"))
	}

	img, err := p.codec.Decode(raw)
	if err != nil {
		return newError(KindDecode, errors.Wrap(err, "failed to load image"))
	}

	p.batch = append(p.batch, img)
	p.debugf("Added image %d: %s, format: %s", len(p.batch)-1, img.Size(), img.Format)
	return nil
}

// Resize downscales every image that does not fit inside maxWidth x
// maxHeight, keeping its aspect ratio. Images already inside the box are left
// untouched, so repeating the call with the same bounds changes nothing.
//
// Arguments:
// - maxWidth: The bounding box width in pixels.
// - maxHeight: The bounding box height in pixels.
func (p *Processor) Resize(maxWidth, maxHeight uint32) {
	for i, img := range p.batch {
		width, height, changed := images.FitWithin(img.Width(), img.Height(), int(maxWidth), int(maxHeight))
		if !changed {
			continue
		}

		p.debugf("Resizing image %d: %s -> %dx%d", i, img.Size(), width, height)
		p.batch[i] = p.codec.Resize(img, width, height)
	}
}

// EncodeJPEG encodes every image as a JPEG data URI, in insertion order. The
// first failure aborts the call and no partial results are returned.
//
// Arguments:
// - quality: JPEG quality, clamped to 1-100.
//
// Returns:
// - One "data:image/jpeg;base64,..." string per image.
// - KindEncode if any image fails to encode.
func (p *Processor) EncodeJPEG(quality int) ([]string, error) {
	quality = ClampQuality(quality)
	results := make([]string, 0, len(p.batch))

	for i, img := range p.batch {
		data, err := p.codec.EncodeJPEG(img, quality)
		if err != nil {
			p.debugf("Encoding image %d failed: %v", i, err)
			return nil, newError(KindEncode, errors.Wrap(err, "failed to encode JPEG"))
		}
		p.debugf("Encoded image %d: %s, %d bytes at quality %d", i, img.Size(), len(data), quality)
		results = append(results, JPEGDataURI(data))
	}

	return results, nil
}

// Optimize resizes to the configured bounding box and encodes at the
// configured quality.
func (p *Processor) Optimize() ([]string, error) {
	p.Resize(toBound(p.config.MaxWidth), toBound(p.config.MaxHeight))
	return p.EncodeJPEG(p.config.Quality)
}

// Count returns the number of images held.
func (p *Processor) Count() int {
	return len(p.batch)
}

// Sizes returns "{width}x{height}" for every image, in insertion order.
func (p *Processor) Sizes() []string {
	sizes := make([]string, 0, len(p.batch))
	for _, img := range p.batch {
		sizes = append(sizes, img.Size())
	}
	return sizes
}

// Clear drops every held image.
func (p *Processor) Clear() {
	p.debugf("Clearing %d images", len(p.batch))
	p.batch = nil
}

// ClampQuality limits a JPEG quality to the 1-100 range accepted by the
// encoder.
func ClampQuality(quality int) int {
	switch {
	case quality < 1:
		return 1
	case quality > 100:
		return 100
	default:
		return quality
	}
}

func toBound(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
