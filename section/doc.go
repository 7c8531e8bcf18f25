// Package section defines the binary layout of track blobs.
//
// A track blob stores several named polylines that share one axis count and one
// precision, so the out-of-band parameters of the polyline codec travel with the data.
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                 │
//	│  - Options (2), Compression (1), Items (1), Precision (1)│
//	│  - Reserved (3)                                          │
//	│  - TrackCount (4)                                        │
//	│  - IndexOffset, NamesOffset, PayloadOffset (4 each)      │
//	│  - Checksum (8): xxHash64 of the uncompressed payload    │
//	├──────────────────────────────────────────────────────────┤
//	│ Index (TrackCount × 16 bytes)                            │
//	│  - TrackID (8), Offset (4), PointCount (4)               │
//	├──────────────────────────────────────────────────────────┤
//	│ Names (uint8 length-prefixed strings, index order)       │
//	├──────────────────────────────────────────────────────────┤
//	│ Payload (polyline text of all tracks, compressed)        │
//	└──────────────────────────────────────────────────────────┘
//
// The Options field is always little-endian so the endianness bit can be read before
// the remaining fields; everything else follows the selected byte order.
package section
