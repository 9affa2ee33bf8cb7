package processor

import (
	"github.com/pkg/errors"
)

// Kind classifies recoverable processor errors.
type Kind int

const (
	// KindMalformedInput marks a data URI without a payload separator.
	KindMalformedInput Kind = iota + 1
	// KindDecode marks invalid base64 or image bytes that cannot be decoded.
	KindDecode
	// KindEncode marks a held image the JPEG encoder rejected.
	KindEncode
)

// String returns the kind name reported to hosts.
func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "MalformedInput"
	case KindDecode:
		return "DecodeError"
	case KindEncode:
		return "EncodeError"
	default:
		return "Unknown"
	}
}

// Error is a recoverable processor error. The message embeds the underlying
// cause, e.g. "failed to decode base64: illegal base64 data at input byte 3".
type Error struct {
	Kind Kind
	err  error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, err: err}
}

func (e *Error) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.err
}

// Cause returns the root cause, for use with errors.Cause.
func (e *Error) Cause() error {
	return errors.Cause(e.err)
}

// IsKind reports whether err is, or wraps, a processor Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Kind == kind
}
