package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestChecksum_MatchesID(t *testing.T) {
	for _, s := range []string{"", "test", "_p~iF~ps|U_ulLnnqC_mqNvxq`@"} {
		require.Equal(t, ID(s), Checksum([]byte(s)), "checksum of %q", s)
	}
}

func TestChecksum_DetectsChange(t *testing.T) {
	a := Checksum([]byte("_p~iF~ps|U"))
	b := Checksum([]byte("_p~iF~ps|V"))

	require.NotEqual(t, a, b)
}

func BenchmarkChecksum(b *testing.B) {
	payload := []byte("_p~iF~ps|U_ulLnnqC_mqNvxq`@_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	b.ResetTimer()
	for b.Loop() {
		Checksum(payload)
	}
}
