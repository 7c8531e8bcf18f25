package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/internal/hash"
)

func TestAppendDecodeTrackNames(t *testing.T) {
	names := []string{"morning-run", "commute", "ridge.loop", strings.Repeat("x", MaxTrackNameLength)}

	encoded, err := AppendTrackNames(nil, names)
	require.NoError(t, err)
	require.Len(t, encoded, TrackNamesSize(names))
	require.Equal(t, byte(len("morning-run")), encoded[0])

	decoded, n, err := DecodeTrackNames(encoded, len(names))
	require.NoError(t, err)
	require.Equal(t, len(encoded), n)
	require.Equal(t, names, decoded)
}

func TestAppendTrackNames_Prefix(t *testing.T) {
	encoded, err := AppendTrackNames([]byte{0xAA}, []string{"a"})
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 1, 'a'}, encoded)
}

func TestAppendTrackNames_Invalid(t *testing.T) {
	_, err := AppendTrackNames(nil, []string{""})
	require.ErrorIs(t, err, errs.ErrInvalidTrackName)

	_, err = AppendTrackNames(nil, []string{strings.Repeat("x", MaxTrackNameLength+1)})
	require.ErrorIs(t, err, errs.ErrInvalidTrackName)
}

func TestDecodeTrackNames_Truncated(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		count int
	}{
		{"missing length", []byte{}, 1},
		{"short name", []byte{5, 'a', 'b'}, 1},
		{"second name missing", []byte{1, 'a'}, 2},
		{"empty name", []byte{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeTrackNames(tt.data, tt.count)
			require.ErrorIs(t, err, errs.ErrInvalidNamesPayload)
		})
	}
}

func TestDecodeTrackNames_Zero(t *testing.T) {
	names, n, err := DecodeTrackNames(nil, 0)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Empty(t, names)
}

func TestVerifyTrackNameHashes(t *testing.T) {
	names := []string{"a", "b"}
	ids := []uint64{hash.ID("a"), hash.ID("b")}

	require.NoError(t, VerifyTrackNameHashes(names, ids, hash.ID))

	ids[1] = 42
	require.ErrorIs(t, VerifyTrackNameHashes(names, ids, hash.ID), errs.ErrInvalidNamesPayload)
	require.ErrorIs(t, VerifyTrackNameHashes(names, ids[:1], hash.ID), errs.ErrInvalidNamesPayload)
}
