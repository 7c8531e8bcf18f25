// Package porygon encodes sequences of N-dimensional points into compact, printable
// polyline strings and back.
//
// The format generalizes the Google encoded polyline algorithm from latitude and
// longitude pairs to tuples of any width: each axis value is scaled to a fixed number
// of decimal places, delta-encoded against the previous point and written as a
// zigzag varint in 5-bit groups of printable ASCII characters.
//
// # Basic Usage
//
//	import "github.com/tirja/porygon"
//
//	text, _ := porygon.Encode(2, []porygon.Point{
//	    {38.5, -120.2},
//	    {40.7, -120.95},
//	    {43.252, -126.453},
//	})
//	// text == "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
//
//	points, _ := porygon.Decode(2, text)
//
// The axis count and precision are not stored in the string. Decode must be called
// with the values used to encode, or the result is silently wrong. Use
// WithPrecision to change the default of 5 decimal places:
//
//	text, _ := porygon.Encode(4, points, porygon.WithPrecision(6))
//
// # Track Blobs
//
// To store several polylines together with their axis count and precision, pack them
// into a track blob:
//
//	encoder, _ := porygon.NewTrackEncoder(2)
//	encoder.AddTrack("morning-run", points)
//	data, _ := encoder.Finish()
//
//	tracks, _ := porygon.DecodeTrackBlob(data)
//	points, _ = tracks.Points("morning-run")
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The encoding package holds the
// codec with incremental encoders and streaming decoders; the blob package holds the
// track container.
package porygon

import (
	"github.com/tirja/porygon/blob"
	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/format"
	"github.com/tirja/porygon/internal/hash"
	"github.com/tirja/porygon/internal/options"
)

// Point is one N-dimensional tuple of axis values.
type Point = encoding.Point

// DefaultPrecision is the number of decimal places kept when no precision is given.
const DefaultPrecision = encoding.DefaultPrecision

// MaxPrecision is the largest supported precision.
const MaxPrecision = encoding.MaxPrecision

type codecConfig struct {
	precision int
}

// CodecOption configures Encode and Decode.
type CodecOption = options.Option[*codecConfig]

// WithPrecision sets the number of decimal places kept per axis, in [0, MaxPrecision].
func WithPrecision(precision int) CodecOption {
	return options.NoError(func(cfg *codecConfig) {
		cfg.precision = precision
	})
}

func newCodecConfig(opts []CodecOption) (*codecConfig, error) {
	cfg := &codecConfig{precision: DefaultPrecision}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Encode encodes points, each with exactly items axes, into a polyline string.
//
// An empty slice encodes to the empty string.
//
// Returns:
//   - string: Printable polyline text
//   - error: errs.ErrInvalidInput if items or precision is out of range, a point has
//     the wrong axis count, or a value is not finite or too large for the precision
func Encode(items int, points []Point, opts ...CodecOption) (string, error) {
	cfg, err := newCodecConfig(opts)
	if err != nil {
		return "", err
	}

	return encoding.Encode(items, points, cfg.precision)
}

// Decode decodes a polyline string produced by Encode with the same items and precision.
//
// The empty string decodes to an empty, non-nil slice.
//
// Returns:
//   - []Point: Decoded points
//   - error: errs.ErrInvalidInput for out-of-range parameters, errs.ErrMalformedEncoding
//     if text is not a valid polyline for items axes
func Decode(items int, text string, opts ...CodecOption) ([]Point, error) {
	cfg, err := newCodecConfig(opts)
	if err != nil {
		return nil, err
	}

	return encoding.Decode(items, text, cfg.precision)
}

// NewTrackEncoder creates a track blob encoder with custom options.
//
// Available options:
//   - blob.WithPrecision(p)
//   - blob.WithCompression(format.CompressionNone|Zstd|S2|LZ4|Snappy)
//   - blob.WithLittleEndian() / blob.WithBigEndian()
//
// Example:
//
//	encoder, err := porygon.NewTrackEncoder(3,
//	    blob.WithPrecision(6),
//	    blob.WithCompression(format.CompressionS2),
//	)
func NewTrackEncoder(items int, opts ...blob.TrackEncoderOption) (*blob.TrackEncoder, error) {
	return blob.NewTrackEncoder(items, opts...)
}

// NewUncompressedTrackEncoder creates a track blob encoder that stores the payload
// without compression, for blobs that are compressed by an outer layer.
func NewUncompressedTrackEncoder(items int, opts ...blob.TrackEncoderOption) (*blob.TrackEncoder, error) {
	allOpts := append([]blob.TrackEncoderOption{blob.WithCompression(format.CompressionNone)}, opts...)

	return blob.NewTrackEncoder(items, allOpts...)
}

// DecodeTrackBlob decodes and validates a track blob.
func DecodeTrackBlob(data []byte) (blob.TrackBlob, error) {
	return blob.DecodeTrackBlob(data)
}

// TrackID returns the 64-bit identifier a track blob index stores for name.
//
// It is the xxHash64 of the name's bytes.
func TrackID(name string) uint64 {
	return hash.ID(name)
}
