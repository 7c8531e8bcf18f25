// Package compress provides the payload codecs applied to track blobs.
//
// Polyline text is already compact, but a blob holding many tracks still repeats a lot
// of structure (similar deltas, shared prefixes of nearby routes). A general-purpose
// codec removes that redundancy after encoding:
//
//  1. Encoding: points become polyline text (package encoding)
//  2. Compression: the concatenated text of all tracks is compressed (this package)
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): payload stored as-is
//   - Zstd (format.CompressionZstd): best ratio, pooled klauspost/compress encoders
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression, block format
//   - Snappy (format.CompressionSnappy): block format readable by any snappy client
//
// Build with the gozstd tag (and cgo) to switch the Zstd codec to the cgo-based
// valyala/gozstd implementation.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use.
package compress
