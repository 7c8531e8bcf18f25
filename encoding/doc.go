// Package encoding implements the polyline codec for sequences of N-dimensional points.
//
// The codec generalizes the classic two-axis polyline algorithm to any caller-chosen
// axis count. Each point is a fixed-length tuple of float64 axes (for example
// latitude, longitude, altitude and time). A sequence is encoded into printable ASCII
// in the range [63, 126] and decoded back within the declared decimal precision.
//
// # Layers
//
// The codec has two layers:
//
//  1. Varint/ZigZag: a signed integer is zigzag-mapped to an unsigned value and emitted
//     five bits at a time, least-significant group first. Every group except the last
//     carries the 0x20 continuation flag, and each group is offset by 63 so the output
//     stays printable.
//  2. Tuple delta codec: each axis is scaled by 10^precision and rounded half away from
//     zero. The first point is encoded relative to the origin and every following point
//     relative to its predecessor, with axes interleaved point by point.
//
// # Out-of-band parameters
//
// The encoded string carries no length, axis count or precision. Callers must supply
// the same items and precision to Decode that were used with Encode. The blob package
// provides a container that records both.
//
// # Basic Usage
//
//	text, err := encoding.Encode(2, []encoding.Point{{38.5, -120.2}, {40.7, -120.95}}, 5)
//	if err != nil {
//	    return err
//	}
//	// text == "_p~iF~ps|U_ulLnnqC"
//
//	points, err := encoding.Decode(2, text, 5)
//
// # Thread Safety
//
// Encode, Decode and the PolylineDecoder methods are safe for concurrent use. A
// PolylineEncoder holds per-sequence state and must not be shared between goroutines.
package encoding
