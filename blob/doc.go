// Package blob packs named polylines into a self-describing binary container.
//
// A polyline string does not record its axis count or precision; a decoder has to be
// told both. A track blob stores them once in its header, together with an index of
// named tracks and a single compressed payload holding every track's polyline text.
//
// # Encoding Workflow
//
//	encoder, err := blob.NewTrackEncoder(2,
//	    blob.WithPrecision(5),
//	    blob.WithCompression(format.CompressionZstd),
//	)
//
//	err = encoder.AddTrack("morning-run", points)
//	err = encoder.AddEncodedTrack("commute", "_p~iF~ps|U_ulLnnqC_mqNvxq`@")
//
//	data, err := encoder.Finish()
//
// # Decoding Workflow
//
//	tracks, err := blob.DecodeTrackBlob(data)
//
//	points, err := tracks.Points("morning-run")
//
//	for name, text := range tracks.All() {
//	    fmt.Println(name, text)
//	}
//
// # Integrity
//
// DecodeTrackBlob validates the header, every section offset, the name hashes in the
// index, the xxHash64 checksum of the decompressed payload and the polyline text of
// every track before returning, so the accessors of a decoded TrackBlob only fail for
// unknown names.
//
// # Thread Safety
//
// TrackEncoder is not safe for concurrent use and cannot be reused after Finish.
// TrackBlob is immutable and safe for concurrent reads.
package blob
