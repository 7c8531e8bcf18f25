package section

import (
	"fmt"

	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/errs"
)

// TrackHeader is the fixed-size header at the start of a track blob.
type TrackHeader struct {
	Flag TrackFlag // byte offset 0-2

	// Items is the axis count shared by every track. Byte offset 3.
	Items uint8
	// Precision is the decimal precision shared by every track. Byte offset 4.
	Precision uint8

	// TrackCount is the number of tracks (index entries). Byte offset 8-11.
	TrackCount uint32
	// IndexOffset is the byte offset of the index section. Byte offset 12-15.
	IndexOffset uint32
	// NamesOffset is the byte offset of the names section. Byte offset 16-19.
	NamesOffset uint32
	// PayloadOffset is the byte offset of the compressed payload. Byte offset 20-23.
	PayloadOffset uint32
	// Checksum is the xxHash64 of the uncompressed payload. Byte offset 24-31.
	Checksum uint64
}

// NewTrackHeader creates a header for tracks with the given axis count and precision.
// Counts, offsets and the checksum are filled in when the encoder finishes.
func NewTrackHeader(items, precision int) (*TrackHeader, error) {
	if items < 1 || items > MaxItems {
		return nil, fmt.Errorf("%w: items %d outside [1, %d]", errs.ErrInvalidInput, items, MaxItems)
	}
	if precision < 0 || precision > encoding.MaxPrecision {
		return nil, fmt.Errorf("%w: precision %d outside [0, %d]", errs.ErrInvalidInput, precision, encoding.MaxPrecision)
	}

	return &TrackHeader{
		Flag:        NewTrackFlag(),
		Items:       uint8(items),     //nolint:gosec
		Precision:   uint8(precision), //nolint:gosec
		IndexOffset: IndexOffsetOffset,
	}, nil
}

// Parse parses the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, ErrInvalidMagicNumber or
//     ErrInvalidHeaderFlags if the header fields are invalid
func (h *TrackHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian so the endianness bit can be read first.
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Compression = data[2]
	h.Items = data[3]
	h.Precision = data[4]

	if data[5] != 0 || data[6] != 0 || data[7] != 0 {
		return fmt.Errorf("%w: reserved header bytes set", errs.ErrInvalidHeaderFlags)
	}

	engine := h.Flag.GetEndianEngine()
	h.TrackCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.NamesOffset = engine.Uint32(data[16:20])
	h.PayloadOffset = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Validate()
}

// Validate checks flags, items and precision.
func (h *TrackHeader) Validate() error {
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	if h.Items == 0 {
		return fmt.Errorf("%w: items must be positive", errs.ErrInvalidHeaderFlags)
	}

	if int(h.Precision) > encoding.MaxPrecision {
		return fmt.Errorf("%w: precision %d exceeds %d", errs.ErrInvalidHeaderFlags, h.Precision, encoding.MaxPrecision)
	}

	return nil
}

// Bytes serializes the header.
func (h *TrackHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Compression
	b[3] = h.Items
	b[4] = h.Precision

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[8:12], h.TrackCount)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.NamesOffset)
	engine.PutUint32(b[20:24], h.PayloadOffset)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseTrackHeader parses a TrackHeader from the start of data.
func ParseTrackHeader(data []byte) (TrackHeader, error) {
	if len(data) < HeaderSize {
		return TrackHeader{}, errs.ErrInvalidHeaderSize
	}

	h := TrackHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return TrackHeader{}, err
	}

	return h, nil
}
