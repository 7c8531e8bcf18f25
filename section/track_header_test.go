package section

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/format"
)

func TestNewTrackHeader(t *testing.T) {
	header, err := NewTrackHeader(2, 5)

	require.NoError(t, err)
	require.Equal(t, uint8(2), header.Items)
	require.Equal(t, uint8(5), header.Precision)
	require.Equal(t, uint32(IndexOffsetOffset), header.IndexOffset)
	require.Equal(t, uint32(0), header.TrackCount)
	require.Equal(t, uint16(MagicTrackV1Opt), header.Flag.GetMagicNumber())
	require.True(t, header.Flag.IsLittleEndian())
	require.Equal(t, format.CompressionNone, header.Flag.CompressionType())

	t.Run("Invalid items", func(t *testing.T) {
		_, err := NewTrackHeader(0, 5)
		require.ErrorIs(t, err, errs.ErrInvalidInput)

		_, err = NewTrackHeader(MaxItems+1, 5)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Invalid precision", func(t *testing.T) {
		_, err := NewTrackHeader(2, -1)
		require.ErrorIs(t, err, errs.ErrInvalidInput)

		_, err = NewTrackHeader(2, encoding.MaxPrecision+1)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestTrackHeader_Parse(t *testing.T) {
	t.Run("Valid header little-endian", func(t *testing.T) {
		original, err := NewTrackHeader(3, 6)
		require.NoError(t, err)
		original.Flag.SetCompressionType(format.CompressionZstd)
		original.TrackCount = 4
		original.NamesOffset = 96
		original.PayloadOffset = 130
		original.Checksum = 0xDEADBEEFCAFEF00D

		parsed := &TrackHeader{}
		require.NoError(t, parsed.Parse(original.Bytes()))
		require.Equal(t, *original, *parsed)
	})

	t.Run("Valid header big-endian", func(t *testing.T) {
		original, err := NewTrackHeader(2, 5)
		require.NoError(t, err)
		original.Flag.WithBigEndian()
		original.TrackCount = 1
		original.NamesOffset = 48
		original.PayloadOffset = 52
		original.Checksum = 42

		data := original.Bytes()
		require.Equal(t, uint32(1), binary.BigEndian.Uint32(data[8:12]))

		parsed, err := ParseTrackHeader(data)
		require.NoError(t, err)
		require.False(t, parsed.Flag.IsLittleEndian())
		require.Equal(t, *original, parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &TrackHeader{}
		require.ErrorIs(t, header.Parse([]byte{1, 2, 3}), errs.ErrInvalidHeaderSize)

		_, err := ParseTrackHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid magic number", func(t *testing.T) {
		data := make([]byte, HeaderSize)
		data[3] = 2

		_, err := ParseTrackHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("Reserved option bits", func(t *testing.T) {
		header, err := NewTrackHeader(2, 5)
		require.NoError(t, err)
		data := header.Bytes()
		data[0] |= 0x01

		_, err = ParseTrackHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Reserved bytes", func(t *testing.T) {
		header, err := NewTrackHeader(2, 5)
		require.NoError(t, err)
		data := header.Bytes()
		data[6] = 1

		_, err = ParseTrackHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Unknown compression", func(t *testing.T) {
		header, err := NewTrackHeader(2, 5)
		require.NoError(t, err)
		data := header.Bytes()
		data[2] = 0x7F

		_, err = ParseTrackHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Zero items", func(t *testing.T) {
		header, err := NewTrackHeader(2, 5)
		require.NoError(t, err)
		data := header.Bytes()
		data[3] = 0

		_, err = ParseTrackHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Precision too large", func(t *testing.T) {
		header, err := NewTrackHeader(2, 5)
		require.NoError(t, err)
		data := header.Bytes()
		data[4] = encoding.MaxPrecision + 1

		_, err = ParseTrackHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}

func TestTrackHeader_BytesLayout(t *testing.T) {
	header, err := NewTrackHeader(2, 5)
	require.NoError(t, err)
	header.Flag.SetCompressionType(format.CompressionS2)
	header.TrackCount = 7
	header.NamesOffset = 144
	header.PayloadOffset = 200
	header.Checksum = 0x0102030405060708

	data := header.Bytes()

	require.Len(t, data, HeaderSize)
	require.Equal(t, uint16(MagicTrackV1Opt), binary.LittleEndian.Uint16(data[0:2]))
	require.Equal(t, byte(format.CompressionS2), data[2])
	require.Equal(t, byte(2), data[3])
	require.Equal(t, byte(5), data[4])
	require.Equal(t, []byte{0, 0, 0}, data[5:8])
	require.Equal(t, uint32(7), binary.LittleEndian.Uint32(data[8:12]))
	require.Equal(t, uint32(HeaderSize), binary.LittleEndian.Uint32(data[12:16]))
	require.Equal(t, uint32(144), binary.LittleEndian.Uint32(data[16:20]))
	require.Equal(t, uint32(200), binary.LittleEndian.Uint32(data[20:24]))
	require.Equal(t, uint64(0x0102030405060708), binary.LittleEndian.Uint64(data[24:32]))
}

func TestTrackFlag_Endianness(t *testing.T) {
	flag := NewTrackFlag()
	require.True(t, flag.IsLittleEndian())
	require.Equal(t, binary.LittleEndian, flag.GetEndianEngine())

	flag.WithBigEndian()
	require.False(t, flag.IsLittleEndian())
	require.Equal(t, binary.BigEndian, flag.GetEndianEngine())
	require.Equal(t, uint16(MagicTrackV1Opt), flag.GetMagicNumber())
	require.NoError(t, flag.Validate())

	flag.WithLittleEndian()
	require.True(t, flag.IsLittleEndian())
}
