package encoding

import (
	"fmt"

	"github.com/tirja/porygon/errs"
)

const (
	charOffset       = 63   // added to every 6-bit group to keep output printable
	groupBits        = 5    // payload bits per character
	groupMask        = 0x1f // low 5 bits of a group
	continuationFlag = 0x20 // set on every group except the last

	// maxShift is the last shift at which a group still fits a uint64.
	// A group at shift 60 may only use its low 4 bits.
	maxShift = 60

	// MaxVarintLen is the maximum number of characters a single integer encodes to.
	MaxVarintLen = 13
)

// ZigZag maps a signed integer to an unsigned one so that small magnitudes stay small.
//
// Non-negative values map to even numbers and negative values to odd numbers:
//
//	0 -> 0, -1 -> 1, 1 -> 2, -2 -> 3, 2 -> 4
//
// This is the same result as shifting left by one and complementing negatives.
func ZigZag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63)) //nolint:gosec
}

// UnZigZag reverses ZigZag.
func UnZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}

// AppendVarint appends the printable varint encoding of delta to dst and returns the
// extended slice.
//
// The zigzag-mapped value is emitted five bits at a time, least-significant group
// first. Every group except the last is written as (0x20 | group) + 63, and the last
// group as group + 63. Any int64 is encodable; the output is 1 to MaxVarintLen bytes.
func AppendVarint(dst []byte, delta int64) []byte {
	coord := ZigZag(delta)

	for coord >= continuationFlag {
		dst = append(dst, byte((continuationFlag|(coord&groupMask))+charOffset))
		coord >>= groupBits
	}

	return append(dst, byte(coord+charOffset))
}

// VarintLen returns the number of characters AppendVarint writes for delta.
func VarintLen(delta int64) int {
	coord := ZigZag(delta)
	n := 1
	for coord >= continuationFlag {
		coord >>= groupBits
		n++
	}

	return n
}

// ReadVarint decodes one signed integer from text starting at index.
//
// It returns the decoded value and the index immediately after the consumed
// characters. It never reads past len(text).
//
// Returns ErrMalformedEncoding if:
//   - index is out of range
//   - text ends before a character without the continuation flag is found
//   - a character falls outside [63, 126]
//   - the accumulated value would exceed 64 bits
func ReadVarint(text string, index int) (int64, int, error) {
	if index < 0 || index >= len(text) {
		return 0, index, fmt.Errorf("%w: no varint at offset %d (length %d)", errs.ErrMalformedEncoding, index, len(text))
	}

	var (
		result uint64
		shift  uint
	)

	for {
		if index >= len(text) {
			return 0, index, fmt.Errorf("%w: unterminated varint at end of input (length %d)", errs.ErrMalformedEncoding, len(text))
		}

		c := text[index]
		if c < charOffset || c > charOffset+0x3f {
			return 0, index, fmt.Errorf("%w: character %q at offset %d is outside [63, 126]", errs.ErrMalformedEncoding, c, index)
		}
		index++

		group := uint64(c - charOffset)
		if shift > maxShift || (shift == maxShift && (group&groupMask) > 0x0f) {
			return 0, index, fmt.Errorf("%w: varint overflows 64 bits at offset %d", errs.ErrMalformedEncoding, index-1)
		}

		result |= (group & groupMask) << shift
		shift += groupBits

		if group&continuationFlag == 0 {
			break
		}
	}

	return UnZigZag(result), index, nil
}
