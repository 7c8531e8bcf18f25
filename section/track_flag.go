package section

import (
	"fmt"

	"github.com/tirja/porygon/endian"
	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/format"
)

// TrackFlag holds the packed option bits and the payload compression of a track blob.
type TrackFlag struct {
	// Options packs the magic number (bits 4-15) and the endianness bit (bit 1).
	Options uint16

	// Compression is the format.CompressionType applied to the payload.
	Compression uint8
}

// NewTrackFlag returns a little-endian, uncompressed flag.
func NewTrackFlag() TrackFlag {
	return TrackFlag{
		Options:     MagicTrackV1Opt,
		Compression: uint8(format.CompressionNone),
	}
}

// IsLittleEndian reports whether the blob uses little-endian byte order.
func (f TrackFlag) IsLittleEndian() bool {
	return f.Options&EndiannessMask == 0
}

// WithLittleEndian selects little-endian byte order.
func (f *TrackFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order.
func (f *TrackFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f TrackFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// GetMagicNumber returns the magic number bits of Options.
func (f TrackFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// CompressionType returns the payload compression.
func (f TrackFlag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// SetCompressionType sets the payload compression.
func (f *TrackFlag) SetCompressionType(c format.CompressionType) {
	f.Compression = uint8(c)
}

// Validate checks the magic number, reserved bits and compression type.
func (f TrackFlag) Validate() error {
	if f.GetMagicNumber() != MagicTrackV1Opt {
		return fmt.Errorf("%w: %#04x", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits set (%#04x)", errs.ErrInvalidHeaderFlags, f.Options)
	}

	if !f.CompressionType().Valid() {
		return fmt.Errorf("%w: unknown compression %d", errs.ErrInvalidHeaderFlags, f.Compression)
	}

	return nil
}
