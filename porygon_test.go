package porygon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tirja/porygon/blob"
	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/format"
)

const referenceText = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referencePoints = []Point{
	{38.5, -120.2},
	{40.7, -120.95},
	{43.252, -126.453},
}

func TestEncode_DefaultPrecision(t *testing.T) {
	text, err := Encode(2, referencePoints)
	require.NoError(t, err)
	require.Equal(t, referenceText, text)

	explicit, err := Encode(2, referencePoints, WithPrecision(DefaultPrecision))
	require.NoError(t, err)
	require.Equal(t, text, explicit)
}

func TestEncodeDecode_WithPrecision(t *testing.T) {
	points := []Point{{1.5, -0.25, 12}, {1.75, -0.5, 12.5}}

	text, err := Encode(3, points, WithPrecision(1))
	require.NoError(t, err)
	require.Equal(t, "]DoFEBI", text)

	decoded, err := Decode(3, text, WithPrecision(1))
	require.NoError(t, err)
	require.Equal(t, []Point{{1.5, -0.3, 12}, {1.8, -0.5, 12.5}}, decoded)
}

func TestDecode_Reference(t *testing.T) {
	points, err := Decode(2, referenceText)
	require.NoError(t, err)
	require.Equal(t, referencePoints, points)
}

func TestEncodeDecode_Errors(t *testing.T) {
	_, err := Encode(2, referencePoints, WithPrecision(MaxPrecision+1))
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = Encode(0, nil)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = Decode(2, referenceText, WithPrecision(-1))
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = Decode(2, "?")
	require.ErrorIs(t, err, errs.ErrMalformedEncoding)
}

func TestTrackEncoders(t *testing.T) {
	encoder, err := NewTrackEncoder(2, blob.WithCompression(format.CompressionSnappy))
	require.NoError(t, err)
	require.Equal(t, format.CompressionSnappy, encoder.Compression())
	require.NoError(t, encoder.AddTrack("reference", referencePoints))

	data, err := encoder.Finish()
	require.NoError(t, err)

	tracks, err := DecodeTrackBlob(data)
	require.NoError(t, err)

	id, err := tracks.TrackID("reference")
	require.NoError(t, err)
	require.Equal(t, TrackID("reference"), id)

	uncompressed, err := NewUncompressedTrackEncoder(2, blob.WithPrecision(6))
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, uncompressed.Compression())
	require.Equal(t, 6, uncompressed.Precision())
}

func TestTrackID(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	require.Equal(t, uint64(0xef46db3751d8e999), TrackID(""))
	require.NotEqual(t, TrackID("a"), TrackID("b"))
}
