package encoding

import (
	"fmt"

	"github.com/tirja/porygon/errs"
)

// MaxTrackNameLength is the longest name a uint8 length prefix can describe.
const MaxTrackNameLength = 255

// TrackNamesSize returns the encoded size of names.
func TrackNamesSize(names []string) int {
	size := 0
	for _, name := range names {
		size += 1 + len(name)
	}

	return size
}

// AppendTrackNames appends names as uint8 length-prefixed strings.
// Format: [Len1: uint8][Name1: UTF-8] [Len2: uint8][Name2: UTF-8] ...
//
// The count is not stored; decoders take it from the blob header.
//
// Returns:
//   - []byte: dst with the encoded names appended
//   - error: ErrInvalidTrackName if a name is empty or longer than 255 bytes
func AppendTrackNames(dst []byte, names []string) ([]byte, error) {
	for _, name := range names {
		if err := ValidateTrackName(name); err != nil {
			return dst, err
		}

		dst = append(dst, byte(len(name)))
		dst = append(dst, name...)
	}

	return dst, nil
}

// ValidateTrackName checks that name fits in the names section.
func ValidateTrackName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidTrackName)
	}

	if len(name) > MaxTrackNameLength {
		return fmt.Errorf("%w: name of %d bytes exceeds maximum %d", errs.ErrInvalidTrackName, len(name), MaxTrackNameLength)
	}

	return nil
}

// DecodeTrackNames decodes count length-prefixed names from data.
//
// Returns:
//   - []string: The decoded names in order
//   - int: The number of bytes consumed
//   - error: ErrInvalidNamesPayload if data is truncated or holds an empty name
func DecodeTrackNames(data []byte, count int) ([]string, int, error) {
	names := make([]string, count)
	offset := 0

	for i := range count {
		if offset >= len(data) {
			return nil, 0, fmt.Errorf("%w: cannot read length for track name %d at offset %d",
				errs.ErrInvalidNamesPayload, i, offset)
		}

		nameLen := int(data[offset])
		offset++

		if nameLen == 0 {
			return nil, 0, fmt.Errorf("%w: track name %d is empty", errs.ErrInvalidNamesPayload, i)
		}

		if offset+nameLen > len(data) {
			return nil, 0, fmt.Errorf("%w: cannot read track name %d (need %d bytes at offset %d, have %d total)",
				errs.ErrInvalidNamesPayload, i, nameLen, offset, len(data))
		}

		names[i] = string(data[offset : offset+nameLen])
		offset += nameLen
	}

	return names, offset, nil
}

// VerifyTrackNameHashes checks that hashFunc(names[i]) equals ids[i] for every name.
func VerifyTrackNameHashes(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d index entries", errs.ErrInvalidNamesPayload, len(names), len(ids))
	}

	for i, name := range names {
		if expected := hashFunc(name); expected != ids[i] {
			return fmt.Errorf("%w: track name %q at index %d: expected ID %#016x, got %#016x",
				errs.ErrInvalidNamesPayload, name, i, expected, ids[i])
		}
	}

	return nil
}
