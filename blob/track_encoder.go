package blob

import (
	"fmt"
	"math"

	"github.com/tirja/porygon/compress"
	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/internal/collision"
	ienc "github.com/tirja/porygon/internal/encoding"
	"github.com/tirja/porygon/internal/hash"
	"github.com/tirja/porygon/internal/options"
	"github.com/tirja/porygon/internal/pool"
	"github.com/tirja/porygon/section"
)

const initialIndexCapacity = 16

// TrackEncoder builds a track blob from named point sequences.
//
// Every track is encoded into one shared payload; each track starts a new
// origin-relative polyline sequence. Index entries record where each track's text
// starts and how many points it holds.
//
// Note: The TrackEncoder is NOT thread-safe and NOT reusable. After calling Finish, a
// new encoder must be created.
type TrackEncoder struct {
	*TrackEncoderConfig

	text    *encoding.PolylineEncoder
	tracker *collision.Tracker
	entries []section.TrackIndexEntry
	stats   compress.CompressionStats
}

// NewTrackEncoder creates an encoder for tracks with the given axis count.
//
// Parameters:
//   - items: Number of axes per point, in [1, 255]
//   - opts: Optional precision, compression and byte order settings
//
// Returns:
//   - *TrackEncoder: New encoder ready for AddTrack calls
//   - error: ErrInvalidInput for an out-of-range axis count or option value
func NewTrackEncoder(items int, opts ...TrackEncoderOption) (*TrackEncoder, error) {
	config, err := NewTrackEncoderConfig(items)
	if err != nil {
		return nil, err
	}

	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	text, err := encoding.NewPolylineEncoder(config.Items(), config.Precision())
	if err != nil {
		return nil, err
	}

	return &TrackEncoder{
		TrackEncoderConfig: config,
		text:               text,
		tracker:            collision.NewTracker(),
		entries:            make([]section.TrackIndexEntry, 0, initialIndexCapacity),
	}, nil
}

// AddTrack encodes points as a new track called name.
//
// The track is added atomically: if any point is rejected, nothing is recorded and the
// name stays available. An empty points slice adds a track with no points.
//
// Returns:
//   - error: ErrInvalidTrackName, ErrTrackAlreadyAdded or ErrHashCollision for a bad
//     name, ErrInvalidInput for a bad point, ErrEncoderFinished after Finish
func (e *TrackEncoder) AddTrack(name string, points []encoding.Point) error {
	id, offset, err := e.prepareTrack(name)
	if err != nil {
		return err
	}

	e.text.Reset()
	if err := e.text.WriteSlice(points); err != nil {
		return fmt.Errorf("track %q: %w", name, err)
	}

	return e.commitTrack(name, id, offset, len(points))
}

// AddEncodedTrack adds already encoded polyline text as a new track called name.
//
// text must have been produced with the encoder's axis count and precision. Only its
// structure can be checked; a text encoded with another precision is accepted but
// decodes to scaled values.
//
// Returns:
//   - error: same name errors as AddTrack, ErrMalformedEncoding for invalid text
func (e *TrackEncoder) AddEncodedTrack(name string, text string) error {
	id, offset, err := e.prepareTrack(name)
	if err != nil {
		return err
	}

	points, err := e.text.WriteEncoded(text)
	if err != nil {
		return fmt.Errorf("track %q: %w", name, err)
	}

	return e.commitTrack(name, id, offset, points)
}

// prepareTrack validates name and returns its ID and the payload offset of the new track.
func (e *TrackEncoder) prepareTrack(name string) (uint64, int, error) {
	if e.text == nil {
		return 0, 0, errs.ErrEncoderFinished
	}

	if err := ienc.ValidateTrackName(name); err != nil {
		return 0, 0, err
	}

	if uint64(len(e.entries)) >= math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: track count exceeds %d", errs.ErrInvalidInput, uint32(math.MaxUint32))
	}

	id := hash.ID(name)
	if err := e.tracker.Check(name, id); err != nil {
		return 0, 0, err
	}

	offset := e.text.Size()
	if uint64(offset) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: payload exceeds %d bytes", errs.ErrInvalidInput, uint32(math.MaxUint32))
	}

	return id, offset, nil
}

func (e *TrackEncoder) commitTrack(name string, id uint64, offset int, points int) error {
	if uint64(points) > math.MaxUint32 {
		return fmt.Errorf("%w: track %q has %d points, max %d", errs.ErrInvalidInput, name, points, uint32(math.MaxUint32))
	}

	if err := e.tracker.Track(name, id); err != nil {
		return err
	}

	//nolint:gosec
	e.entries = append(e.entries, section.TrackIndexEntry{
		TrackID:    id,
		Offset:     uint32(offset),
		PointCount: uint32(points),
	})

	return nil
}

// Len returns the number of tracks added so far.
func (e *TrackEncoder) Len() int {
	return len(e.entries)
}

// Stats returns the payload compression statistics. It is zero before Finish succeeds.
func (e *TrackEncoder) Stats() compress.CompressionStats {
	return e.stats
}

// Finish assembles the blob and releases the encoder's buffers.
//
// Returns:
//   - []byte: The encoded track blob, owned by the caller
//   - error: ErrNoTracks if no track was added, ErrEncoderFinished on a second call,
//     or a compression error
func (e *TrackEncoder) Finish() ([]byte, error) {
	if e.text == nil {
		return nil, errs.ErrEncoderFinished
	}

	defer func() {
		e.text.Finish()
		e.text = nil
	}()

	if len(e.entries) == 0 {
		return nil, errs.ErrNoTracks
	}

	payload := e.text.Bytes()
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", errs.ErrInvalidInput, uint32(math.MaxUint32))
	}

	compressed, stats, err := compress.CompressWithStats(e.Compression(), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}

	// Index and names are assembled in a pooled buffer before the final copy.
	meta := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(meta)

	meta.Grow(len(e.entries)*section.TrackIndexEntrySize + ienc.TrackNamesSize(e.tracker.Names()))
	for _, entry := range e.entries {
		meta.B = entry.AppendTo(e.engine, meta.B)
	}
	indexSize := meta.Len()

	meta.B, err = ienc.AppendTrackNames(meta.B, e.tracker.Names())
	if err != nil {
		return nil, fmt.Errorf("failed to encode track names: %w", err)
	}

	header := *e.header
	header.TrackCount = uint32(len(e.entries)) //nolint:gosec
	header.IndexOffset = section.IndexOffsetOffset
	header.NamesOffset = header.IndexOffset + uint32(indexSize) //nolint:gosec
	header.PayloadOffset = uint32(section.HeaderSize + meta.Len()) //nolint:gosec
	header.Checksum = hash.Checksum(payload)

	blob := make([]byte, 0, section.HeaderSize+meta.Len()+len(compressed))
	blob = append(blob, header.Bytes()...)
	blob = append(blob, meta.Bytes()...)
	blob = append(blob, compressed...)

	e.stats = stats

	return blob, nil
}
