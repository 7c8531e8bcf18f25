package compress

import (
	"fmt"

	"github.com/golang/snappy"
)

// SnappyCompressor compresses payloads with the Snappy block format.
//
// Unlike S2, the output can be read by any Snappy implementation, which matters when
// blobs are shipped to services outside this module.
type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

// NewSnappyCompressor creates a Snappy codec.
func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

// Compress compresses data using Snappy block encoding.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Encode(nil, data), nil
}

// Decompress decompresses a Snappy block after checking the length it declares.
func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}
	//nolint:gosec
	if err := checkDecodedLen(uint64(n)); err != nil {
		return nil, err
	}

	decoded, err := snappy.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}

	return decoded, nil
}
