package compress

import (
	"testing"
)

func BenchmarkCodecs(b *testing.B) {
	payload := polylinePayload(600) // ~16KB of track text

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(payload)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name+"/Compress", func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				_, _ = codec.Compress(payload)
			}
		})

		b.Run(name+"/Decompress", func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
