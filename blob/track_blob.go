package blob

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/format"
)

// track locates one track's text in the decompressed payload.
type track struct {
	id     uint64
	start  int
	end    int
	points int
}

// TrackBlob is a decoded, validated track blob.
//
// It is immutable and safe for concurrent reads. Tracks keep the order in which they
// were added to the encoder.
type TrackBlob struct {
	compression format.CompressionType
	decoder     encoding.PolylineDecoder
	payload     string
	names       []string
	tracks      []track
	byName      map[string]int
}

// Items returns the axis count shared by every track.
func (b TrackBlob) Items() int {
	return b.decoder.Items()
}

// Precision returns the decimal precision shared by every track.
func (b TrackBlob) Precision() int {
	return b.decoder.Precision()
}

// Compression returns the compression the payload was stored with.
func (b TrackBlob) Compression() format.CompressionType {
	return b.compression
}

// Len returns the number of tracks.
func (b TrackBlob) Len() int {
	return len(b.tracks)
}

// Names returns the track names in blob order.
func (b TrackBlob) Names() []string {
	return slices.Clone(b.names)
}

// Has reports whether the blob contains a track called name.
func (b TrackBlob) Has(name string) bool {
	_, ok := b.byName[name]
	return ok
}

// TrackID returns the index ID of the named track.
func (b TrackBlob) TrackID(name string) (uint64, error) {
	t, err := b.lookup(name)
	if err != nil {
		return 0, err
	}

	return t.id, nil
}

// Encoded returns the polyline text of the named track.
func (b TrackBlob) Encoded(name string) (string, error) {
	t, err := b.lookup(name)
	if err != nil {
		return "", err
	}

	return b.payload[t.start:t.end], nil
}

// PointCount returns the number of points in the named track.
func (b TrackBlob) PointCount(name string) (int, error) {
	t, err := b.lookup(name)
	if err != nil {
		return 0, err
	}

	return t.points, nil
}

// Points decodes the named track.
func (b TrackBlob) Points(name string) ([]encoding.Point, error) {
	t, err := b.lookup(name)
	if err != nil {
		return nil, err
	}

	return b.decoder.Decode(b.payload[t.start:t.end])
}

// AllPoints returns an iterator over the points of the named track.
// Returns an empty iterator if the track doesn't exist.
func (b TrackBlob) AllPoints(name string) iter.Seq2[encoding.Point, error] {
	t, err := b.lookup(name)
	if err != nil {
		return func(yield func(encoding.Point, error) bool) {}
	}

	return b.decoder.All(b.payload[t.start:t.end])
}

// All returns an iterator over (name, polyline text) pairs in blob order.
//
// Example:
//
//	for name, text := range tracks.All() {
//	    fmt.Printf("%s: %s\n", name, text)
//	}
func (b TrackBlob) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i, t := range b.tracks {
			if !yield(b.names[i], b.payload[t.start:t.end]) {
				return
			}
		}
	}
}

func (b TrackBlob) lookup(name string) (track, error) {
	i, ok := b.byName[name]
	if !ok {
		return track{}, fmt.Errorf("%w: %q", errs.ErrTrackNotFound, name)
	}

	return b.tracks[i], nil
}
