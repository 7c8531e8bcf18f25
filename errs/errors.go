// Package errs defines the sentinel errors returned by porygon packages.
//
// Errors are wrapped with call-site context using fmt.Errorf and "%w", so callers
// should match them with errors.Is rather than comparing values directly:
//
//	points, err := encoding.Decode(2, text, 5)
//	if errors.Is(err, errs.ErrMalformedEncoding) {
//	    // reject the input
//	}
package errs

import "errors"

// Codec errors.
var (
	// ErrInvalidInput is returned when the caller supplies arguments the codec cannot
	// represent: a non-positive axis count, a precision outside [0, MaxPrecision], a point
	// whose axis count differs from the declared one, a non-finite axis value, or a
	// value whose fixed-point magnitude does not fit the working integer width.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedEncoding is returned when an encoded string cannot be decoded: it ends
	// in the middle of an integer, contains a character outside [63, 126], holds an
	// integer wider than 64 bits, or stops before a full point's worth of axes.
	ErrMalformedEncoding = errors.New("malformed encoding")
)

// Track blob errors.
var (
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidMagicNumber  = errors.New("invalid magic number")
	ErrInvalidHeaderFlags  = errors.New("invalid header flags")
	ErrInvalidIndexOffsets = errors.New("invalid index offsets")
	ErrInvalidTrackName    = errors.New("invalid track name")
	ErrInvalidNamesPayload = errors.New("invalid track names payload")
	ErrChecksumMismatch    = errors.New("payload checksum mismatch")
	ErrHashCollision       = errors.New("track ID hash collision")
	ErrTrackAlreadyAdded   = errors.New("track already added")
	ErrTrackNotFound       = errors.New("track not found")
	ErrEncoderFinished     = errors.New("encoder already finished")
	ErrNoTracks            = errors.New("no tracks added")
)
