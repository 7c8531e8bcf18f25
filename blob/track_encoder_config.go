package blob

import (
	"fmt"

	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/endian"
	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/format"
	"github.com/tirja/porygon/internal/options"
	"github.com/tirja/porygon/section"
)

// DefaultCompression is the payload compression used when none is configured.
const DefaultCompression = format.CompressionZstd

// TrackEncoderConfig holds the header under construction and the byte order of a
// TrackEncoder.
type TrackEncoderConfig struct {
	header *section.TrackHeader
	engine endian.EndianEngine
}

// NewTrackEncoderConfig creates a little-endian, Zstd-compressed configuration for the
// given axis count with DefaultPrecision.
func NewTrackEncoderConfig(items int) (*TrackEncoderConfig, error) {
	header, err := section.NewTrackHeader(items, encoding.DefaultPrecision)
	if err != nil {
		return nil, err
	}
	header.Flag.SetCompressionType(DefaultCompression)

	return &TrackEncoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}, nil
}

// Items returns the axis count shared by every track.
func (c *TrackEncoderConfig) Items() int {
	return int(c.header.Items)
}

// Precision returns the decimal precision shared by every track.
func (c *TrackEncoderConfig) Precision() int {
	return int(c.header.Precision)
}

// Compression returns the payload compression.
func (c *TrackEncoderConfig) Compression() format.CompressionType {
	return c.header.Flag.CompressionType()
}

func (c *TrackEncoderConfig) setPrecision(precision int) error {
	if precision < 0 || precision > encoding.MaxPrecision {
		return fmt.Errorf("%w: precision %d outside [0, %d]", errs.ErrInvalidInput, precision, encoding.MaxPrecision)
	}
	c.header.Precision = uint8(precision) //nolint:gosec

	return nil
}

func (c *TrackEncoderConfig) setCompression(comp format.CompressionType) error {
	if !comp.Valid() {
		return fmt.Errorf("%w: invalid payload compression: %s", errs.ErrInvalidInput, comp)
	}
	c.header.Flag.SetCompressionType(comp)

	return nil
}

func (c *TrackEncoderConfig) setBigEndian(big bool) {
	if big {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.Flag.GetEndianEngine()
}

// TrackEncoderOption is a functional option for configuring TrackEncoder.
type TrackEncoderOption = options.Option[*TrackEncoderConfig]

// WithPrecision sets the decimal precision of every track. Default is 5.
func WithPrecision(precision int) TrackEncoderOption {
	return options.New(func(cfg *TrackEncoderConfig) error {
		return cfg.setPrecision(precision)
	})
}

// WithCompression sets the payload compression. Default is format.CompressionZstd.
func WithCompression(comp format.CompressionType) TrackEncoderOption {
	return options.New(func(cfg *TrackEncoderConfig) error {
		return cfg.setCompression(comp)
	})
}

// WithLittleEndian stores header fields and index entries little-endian. This is the default.
func WithLittleEndian() TrackEncoderOption {
	return options.NoError(func(cfg *TrackEncoderConfig) {
		cfg.setBigEndian(false)
	})
}

// WithBigEndian stores header fields and index entries big-endian.
func WithBigEndian() TrackEncoderOption {
	return options.NoError(func(cfg *TrackEncoderConfig) {
		cfg.setBigEndian(true)
	})
}
