package processor

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

const (
	// dataURIScheme marks input that carries a media type before the payload.
	dataURIScheme = "data:"
	// JPEGDataURIPrefix prefixes every encoded output.
	JPEGDataURIPrefix = "data:image/jpeg;base64,"
)

// ExtractPayload returns the base64 payload of s. Input starting with "data:"
// is split on its first comma; anything else is treated as a bare payload.
//
// Arguments:
// - s: Raw base64 text or a data URI such as "data:image/png;base64,iVBOR...".
//
// Returns:
// - The payload text.
// - A KindMalformedInput error if a data URI has no comma.
func ExtractPayload(s string) (string, error) {
	if !strings.HasPrefix(s, dataURIScheme) {
		return s, nil
	}
	_, payload, ok := strings.Cut(s, ",")
	if !ok {
		return "", newError(KindMalformedInput, errors.New("invalid base64 data"))
	}
	return payload, nil
}

// JPEGDataURI formats JPEG bytes as a data URI.
func JPEGDataURI(data []byte) string {
	return JPEGDataURIPrefix + base64.StdEncoding.EncodeToString(data)
}
