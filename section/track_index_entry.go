package section

import (
	"fmt"

	"github.com/tirja/porygon/endian"
	"github.com/tirja/porygon/errs"
)

// TrackIndexEntry describes one track in the index section. It is 16 bytes on disk.
//
// Offsets are absolute positions in the uncompressed payload and never decrease from
// one entry to the next. A track's text ends where the next track's begins; the last
// track ends at the end of the payload.
type TrackIndexEntry struct {
	// TrackID is the xxHash64 of the track name. Offset 0, 8 bytes.
	TrackID uint64
	// Offset is the start of the track's text in the payload. Offset 8, 4 bytes.
	Offset uint32
	// PointCount is the number of points in the track. Offset 12, 4 bytes.
	PointCount uint32
}

// AppendTo appends the serialized entry to dst.
func (e TrackIndexEntry) AppendTo(engine endian.EndianEngine, dst []byte) []byte {
	dst = engine.AppendUint64(dst, e.TrackID)
	dst = engine.AppendUint32(dst, e.Offset)

	return engine.AppendUint32(dst, e.PointCount)
}

// ParseTrackIndexEntry parses an entry from exactly TrackIndexEntrySize bytes.
func ParseTrackIndexEntry(engine endian.EndianEngine, data []byte) (TrackIndexEntry, error) {
	if len(data) != TrackIndexEntrySize {
		return TrackIndexEntry{}, fmt.Errorf("%w: index entry is %d bytes, expected %d",
			errs.ErrInvalidIndexOffsets, len(data), TrackIndexEntrySize)
	}

	return TrackIndexEntry{
		TrackID:    engine.Uint64(data[0:8]),
		Offset:     engine.Uint32(data[8:12]),
		PointCount: engine.Uint32(data[12:16]),
	}, nil
}
