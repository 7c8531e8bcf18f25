package blob

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/format"
	"github.com/tirja/porygon/internal/hash"
	"github.com/tirja/porygon/section"
)

const referenceText = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referencePoints = []encoding.Point{
	{38.5, -120.2},
	{40.7, -120.95},
	{43.252, -126.453},
}

func TestNewTrackEncoder(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		encoder, err := NewTrackEncoder(2)
		require.NoError(t, err)

		require.Equal(t, 2, encoder.Items())
		require.Equal(t, encoding.DefaultPrecision, encoder.Precision())
		require.Equal(t, DefaultCompression, encoder.Compression())
		require.Equal(t, 0, encoder.Len())
	})

	t.Run("Options", func(t *testing.T) {
		encoder, err := NewTrackEncoder(3,
			WithPrecision(7),
			WithCompression(format.CompressionLZ4),
			WithBigEndian(),
		)
		require.NoError(t, err)

		require.Equal(t, 3, encoder.Items())
		require.Equal(t, 7, encoder.Precision())
		require.Equal(t, format.CompressionLZ4, encoder.Compression())
		require.False(t, encoder.header.Flag.IsLittleEndian())
	})

	t.Run("Invalid", func(t *testing.T) {
		tests := []struct {
			name  string
			items int
			opts  []TrackEncoderOption
		}{
			{"zero items", 0, nil},
			{"too many items", section.MaxItems + 1, nil},
			{"negative precision", 2, []TrackEncoderOption{WithPrecision(-1)}},
			{"precision too large", 2, []TrackEncoderOption{WithPrecision(encoding.MaxPrecision + 1)}},
			{"unknown compression", 2, []TrackEncoderOption{WithCompression(format.CompressionType(0x7F))}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewTrackEncoder(tt.items, tt.opts...)
				require.ErrorIs(t, err, errs.ErrInvalidInput)
			})
		}
	})
}

func TestTrackEncoder_AddTrack_NameErrors(t *testing.T) {
	encoder, err := NewTrackEncoder(2)
	require.NoError(t, err)
	require.NoError(t, encoder.AddTrack("route", referencePoints))

	require.ErrorIs(t, encoder.AddTrack("", referencePoints), errs.ErrInvalidTrackName)
	require.ErrorIs(t, encoder.AddTrack(strings.Repeat("r", 256), referencePoints), errs.ErrInvalidTrackName)
	require.ErrorIs(t, encoder.AddTrack("route", referencePoints), errs.ErrTrackAlreadyAdded)
	require.ErrorIs(t, encoder.AddEncodedTrack("route", referenceText), errs.ErrTrackAlreadyAdded)

	require.Equal(t, 1, encoder.Len())
}

func TestTrackEncoder_AddTrack_RejectedPointsLeaveNameAvailable(t *testing.T) {
	encoder, err := NewTrackEncoder(2, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	err = encoder.AddTrack("route", []encoding.Point{{1, 2}, {3}})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	require.Equal(t, 0, encoder.Len())

	err = encoder.AddEncodedTrack("route", "?")
	require.ErrorIs(t, err, errs.ErrMalformedEncoding)
	require.Equal(t, 0, encoder.Len())

	require.NoError(t, encoder.AddTrack("route", referencePoints))

	data, err := encoder.Finish()
	require.NoError(t, err)

	tracks, err := DecodeTrackBlob(data)
	require.NoError(t, err)
	text, err := tracks.Encoded("route")
	require.NoError(t, err)
	require.Equal(t, referenceText, text)
}

func TestTrackEncoder_Finish(t *testing.T) {
	t.Run("No tracks", func(t *testing.T) {
		encoder, err := NewTrackEncoder(2)
		require.NoError(t, err)

		_, err = encoder.Finish()
		require.ErrorIs(t, err, errs.ErrNoTracks)
	})

	t.Run("Finished encoder", func(t *testing.T) {
		encoder, err := NewTrackEncoder(2)
		require.NoError(t, err)
		require.NoError(t, encoder.AddTrack("route", referencePoints))

		_, err = encoder.Finish()
		require.NoError(t, err)

		_, err = encoder.Finish()
		require.ErrorIs(t, err, errs.ErrEncoderFinished)
		require.ErrorIs(t, encoder.AddTrack("other", referencePoints), errs.ErrEncoderFinished)
		require.ErrorIs(t, encoder.AddEncodedTrack("other", referenceText), errs.ErrEncoderFinished)
	})

	t.Run("Stats", func(t *testing.T) {
		encoder, err := NewTrackEncoder(2, WithCompression(format.CompressionS2))
		require.NoError(t, err)
		require.NoError(t, encoder.AddTrack("route", referencePoints))

		data, err := encoder.Finish()
		require.NoError(t, err)

		stats := encoder.Stats()
		require.Equal(t, format.CompressionS2, stats.Algorithm)
		require.Equal(t, int64(len(referenceText)), stats.OriginalSize)
		require.Equal(t, int64(len(data)-section.HeaderSize-section.TrackIndexEntrySize-len("route")-1), stats.CompressedSize)
	})
}

func TestTrackEncoder_Layout(t *testing.T) {
	encoder, err := NewTrackEncoder(2, WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.NoError(t, encoder.AddTrack("a", referencePoints))
	require.NoError(t, encoder.AddEncodedTrack("bb", "??"))

	data, err := encoder.Finish()
	require.NoError(t, err)

	le := binary.LittleEndian
	namesOffset := section.HeaderSize + 2*section.TrackIndexEntrySize
	payloadOffset := namesOffset + 2 + 3

	require.Len(t, data, payloadOffset+len(referenceText)+2)

	// Header
	require.Equal(t, uint16(section.MagicTrackV1Opt), le.Uint16(data[0:2]))
	require.Equal(t, byte(format.CompressionNone), data[2])
	require.Equal(t, byte(2), data[3])
	require.Equal(t, byte(encoding.DefaultPrecision), data[4])
	require.Equal(t, uint32(2), le.Uint32(data[8:12]))
	require.Equal(t, uint32(section.HeaderSize), le.Uint32(data[12:16]))
	require.Equal(t, uint32(namesOffset), le.Uint32(data[16:20]))
	require.Equal(t, uint32(payloadOffset), le.Uint32(data[20:24]))
	require.Equal(t, hash.Checksum([]byte(referenceText+"??")), le.Uint64(data[24:32]))

	// Index
	require.Equal(t, hash.ID("a"), le.Uint64(data[32:40]))
	require.Equal(t, uint32(0), le.Uint32(data[40:44]))
	require.Equal(t, uint32(3), le.Uint32(data[44:48]))
	require.Equal(t, hash.ID("bb"), le.Uint64(data[48:56]))
	require.Equal(t, uint32(len(referenceText)), le.Uint32(data[56:60]))
	require.Equal(t, uint32(1), le.Uint32(data[60:64]))

	// Names and payload
	require.Equal(t, []byte{1, 'a', 2, 'b', 'b'}, data[namesOffset:payloadOffset])
	require.Equal(t, referenceText+"??", string(data[payloadOffset:]))
}

func TestTrackEncoder_BigEndianLayout(t *testing.T) {
	encoder, err := NewTrackEncoder(2, WithCompression(format.CompressionNone), WithBigEndian())
	require.NoError(t, err)
	require.NoError(t, encoder.AddTrack("a", referencePoints))

	data, err := encoder.Finish()
	require.NoError(t, err)

	require.Equal(t, uint16(section.MagicTrackV1Opt|section.EndiannessMask), binary.LittleEndian.Uint16(data[0:2]))
	require.Equal(t, uint32(1), binary.BigEndian.Uint32(data[8:12]))
	require.Equal(t, hash.ID("a"), binary.BigEndian.Uint64(data[32:40]))
	require.Equal(t, uint32(3), binary.BigEndian.Uint32(data[44:48]))
}
