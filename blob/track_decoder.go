package blob

import (
	"fmt"

	"github.com/tirja/porygon/compress"
	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/endian"
	"github.com/tirja/porygon/errs"
	ienc "github.com/tirja/porygon/internal/encoding"
	"github.com/tirja/porygon/internal/hash"
	"github.com/tirja/porygon/section"
)

// TrackDecoder validates an encoded track blob and reconstructs a TrackBlob.
//
// Note: The TrackDecoder is NOT thread-safe. Use DecodeTrackBlob for one-shot decoding.
type TrackDecoder struct {
	data       []byte
	header     section.TrackHeader
	engine     endian.EndianEngine
	trackCount int
}

// NewTrackDecoder parses and validates the header of data.
//
// The payload is not decompressed until Decode is called.
//
// Returns:
//   - *TrackDecoder: Decoder ready for Decode
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber or ErrInvalidHeaderFlags
func NewTrackDecoder(data []byte) (*TrackDecoder, error) {
	header, err := section.ParseTrackHeader(data)
	if err != nil {
		return nil, err
	}

	return &TrackDecoder{
		data:       data,
		header:     header,
		engine:     header.Flag.GetEndianEngine(),
		trackCount: int(header.TrackCount),
	}, nil
}

// Header returns the parsed blob header.
func (d *TrackDecoder) Header() section.TrackHeader {
	return d.header
}

// Decode decodes and validates the whole blob.
//
// Returns:
//   - TrackBlob: The decoded tracks
//   - error: ErrInvalidIndexOffsets for inconsistent section or track offsets,
//     ErrInvalidNamesPayload for a bad names section, ErrChecksumMismatch if the
//     payload was altered, ErrMalformedEncoding if a track's text is invalid
func (d *TrackDecoder) Decode() (TrackBlob, error) {
	if err := d.validateOffsets(); err != nil {
		return TrackBlob{}, err
	}

	entries, ids, err := d.parseIndexEntries()
	if err != nil {
		return TrackBlob{}, err
	}

	names, err := d.parseTrackNames(ids)
	if err != nil {
		return TrackBlob{}, err
	}

	payload, err := d.decompressPayload()
	if err != nil {
		return TrackBlob{}, err
	}

	decoder, err := encoding.NewPolylineDecoder(int(d.header.Items), int(d.header.Precision))
	if err != nil {
		return TrackBlob{}, fmt.Errorf("%w: %w", errs.ErrInvalidHeaderFlags, err)
	}

	tracks := TrackBlob{
		compression: d.header.Flag.CompressionType(),
		decoder:     decoder,
		payload:     payload,
		names:       names,
		tracks:      make([]track, d.trackCount),
		byName:      make(map[string]int, d.trackCount),
	}

	if len(entries) > 0 && entries[0].Offset != 0 {
		return TrackBlob{}, fmt.Errorf("%w: first track starts at %d", errs.ErrInvalidIndexOffsets, entries[0].Offset)
	}

	for i, entry := range entries {
		start := int(entry.Offset)
		end := len(payload)
		if i+1 < len(entries) {
			end = int(entries[i+1].Offset)
		}

		if start > end || end > len(payload) {
			return TrackBlob{}, fmt.Errorf("%w: track %q spans [%d, %d) in a %d byte payload",
				errs.ErrInvalidIndexOffsets, names[i], start, end, len(payload))
		}

		count, err := decoder.Count(payload[start:end])
		if err != nil {
			return TrackBlob{}, fmt.Errorf("track %q: %w", names[i], err)
		}

		if count != int(entry.PointCount) {
			return TrackBlob{}, fmt.Errorf("%w: track %q holds %d points, index says %d",
				errs.ErrMalformedEncoding, names[i], count, entry.PointCount)
		}

		tracks.tracks[i] = track{id: entry.TrackID, start: start, end: end, points: count}
		tracks.byName[names[i]] = i
	}

	return tracks, nil
}

// validateOffsets checks the section layout recorded in the header.
func (d *TrackDecoder) validateOffsets() error {
	h := d.header

	if h.IndexOffset != section.IndexOffsetOffset {
		return fmt.Errorf("%w: index offset %d, expected %d", errs.ErrInvalidIndexOffsets, h.IndexOffset, section.IndexOffsetOffset)
	}

	namesOffset := uint64(h.IndexOffset) + uint64(h.TrackCount)*section.TrackIndexEntrySize
	if uint64(h.NamesOffset) != namesOffset {
		return fmt.Errorf("%w: names offset %d, expected %d", errs.ErrInvalidIndexOffsets, h.NamesOffset, namesOffset)
	}

	if h.PayloadOffset < h.NamesOffset || int(h.PayloadOffset) > len(d.data) {
		return fmt.Errorf("%w: payload offset %d outside [%d, %d]",
			errs.ErrInvalidIndexOffsets, h.PayloadOffset, h.NamesOffset, len(d.data))
	}

	return nil
}

// parseIndexEntries parses the index section and returns the entries and their IDs in
// the same order.
func (d *TrackDecoder) parseIndexEntries() ([]section.TrackIndexEntry, []uint64, error) {
	entries := make([]section.TrackIndexEntry, d.trackCount)
	ids := make([]uint64, d.trackCount)

	for i := range d.trackCount {
		offset := int(d.header.IndexOffset) + i*section.TrackIndexEntrySize
		entry, err := section.ParseTrackIndexEntry(d.engine, d.data[offset:offset+section.TrackIndexEntrySize])
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse index entry %d: %w", i, err)
		}

		if i > 0 && entry.Offset < entries[i-1].Offset {
			return nil, nil, fmt.Errorf("%w: entry %d offset %d precedes entry %d offset %d",
				errs.ErrInvalidIndexOffsets, i, entry.Offset, i-1, entries[i-1].Offset)
		}

		entries[i] = entry
		ids[i] = entry.TrackID
	}

	return entries, ids, nil
}

// parseTrackNames decodes the names section and checks each name against its index entry.
func (d *TrackDecoder) parseTrackNames(ids []uint64) ([]string, error) {
	data := d.data[d.header.NamesOffset:d.header.PayloadOffset]

	names, n, err := ienc.DecodeTrackNames(data, d.trackCount)
	if err != nil {
		return nil, err
	}

	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after track names", errs.ErrInvalidNamesPayload, len(data)-n)
	}

	if err := ienc.VerifyTrackNameHashes(names, ids, hash.ID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate track name %q", errs.ErrInvalidNamesPayload, name)
		}
		seen[name] = struct{}{}
	}

	return names, nil
}

// decompressPayload decompresses the payload section and verifies its checksum.
func (d *TrackDecoder) decompressPayload() (string, error) {
	comp := d.header.Flag.CompressionType()

	codec, err := compress.CreateCodec(comp, "payload")
	if err != nil {
		return "", err
	}

	raw, err := codec.Decompress(d.data[d.header.PayloadOffset:])
	if err != nil {
		return "", fmt.Errorf("failed to decompress payload: %w", err)
	}

	if sum := hash.Checksum(raw); sum != d.header.Checksum {
		return "", fmt.Errorf("%w: expected %#016x, got %#016x", errs.ErrChecksumMismatch, d.header.Checksum, sum)
	}

	return string(raw), nil
}

// DecodeTrackBlob decodes and validates an encoded track blob.
//
// The returned TrackBlob does not reference data.
func DecodeTrackBlob(data []byte) (TrackBlob, error) {
	decoder, err := NewTrackDecoder(data)
	if err != nil {
		return TrackBlob{}, err
	}

	return decoder.Decode()
}
