package encoding

import (
	"fmt"
	"iter"

	"github.com/tirja/porygon/errs"
	"github.com/tirja/porygon/internal/pool"
)

// PolylineEncoder encodes sequences of points into polyline text.
//
// The encoder keeps the fixed-point values of the previously written point so that
// each new point is emitted as per-axis deltas. The first point of a sequence is
// encoded relative to the origin.
//
// Several sequences can be written into the same buffer: Reset starts a new sequence
// (the next point is again origin-relative) while keeping the accumulated text. This
// is how the blob package packs many tracks into a single payload.
//
// Internal state:
//   - prev: fixed-point values of the last written point, allocated on first write
//   - scratch: fixed-point values of the point being written, allocated with prev
//   - buf: output buffer accumulating encoded text
//   - count: number of points written since creation
//   - seqCount: number of points written in the current sequence
type PolylineEncoder struct {
	items     int
	precision int
	factor    float64
	prev      []int64
	scratch   []int64
	buf       *pool.ByteBuffer
	count     int
	seqCount  int
}

// NewPolylineEncoder creates an encoder for points with the given axis count and
// decimal precision.
//
// Parameters:
//   - items: Number of axes per point (must be positive)
//   - precision: Decimal digits kept per axis, in [0, MaxPrecision]
//
// Returns:
//   - *PolylineEncoder: A new encoder ready for writing
//   - error: ErrInvalidInput if items or precision is out of range
func NewPolylineEncoder(items, precision int) (*PolylineEncoder, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if err := validatePrecision(precision); err != nil {
		return nil, err
	}

	return &PolylineEncoder{
		items:     items,
		precision: precision,
		factor:    scaleFactor(precision),
		buf:       pool.GetTextBuffer(),
	}, nil
}

// ensureState allocates the per-axis state. It is only called once a point of Items()
// axes or a text holding at least Items() integers has been seen, so the allocation
// never exceeds the size of the input.
func (e *PolylineEncoder) ensureState() {
	if e.prev == nil {
		e.prev = make([]int64, e.items)
		e.scratch = make([]int64, e.items)
	}
}

// Items returns the axis count of the encoder.
func (e *PolylineEncoder) Items() int {
	return e.items
}

// Precision returns the decimal precision of the encoder.
func (e *PolylineEncoder) Precision() int {
	return e.precision
}

// Write appends a single point to the current sequence.
//
// The point is validated and scaled before anything is written, so a rejected point
// leaves the encoder unchanged.
//
// Returns:
//   - error: ErrInvalidInput if the axis count differs from Items() or a value cannot
//     be represented; ErrEncoderFinished after Finish()
func (e *PolylineEncoder) Write(point Point) error {
	if e.buf == nil {
		return errs.ErrEncoderFinished
	}

	if err := e.checkAxes(point, e.count); err != nil {
		return err
	}

	e.ensureState()
	if err := e.scale(point, e.count, e.scratch); err != nil {
		return err
	}

	e.buf.Grow(e.items * 4)
	e.emit(e.scratch)

	return nil
}

// WriteSlice appends a slice of points to the current sequence.
//
// All points are validated first. If any point is rejected nothing is written.
func (e *PolylineEncoder) WriteSlice(points []Point) error {
	if e.buf == nil {
		return errs.ErrEncoderFinished
	}

	if len(points) == 0 {
		return nil
	}

	for i, point := range points {
		if err := e.checkAxes(point, e.count+i); err != nil {
			return err
		}
	}

	fixed := make([]int64, len(points)*e.items)
	for i, point := range points {
		if err := e.scale(point, e.count+i, fixed[i*e.items:(i+1)*e.items]); err != nil {
			return err
		}
	}

	e.ensureState()

	// Conservative estimate: about 4 characters per axis for slowly varying data.
	e.buf.Grow(len(fixed) * 4)

	for i := range points {
		e.emit(fixed[i*e.items : (i+1)*e.items])
	}

	return nil
}

// WriteEncoded starts a new sequence from already encoded text.
//
// text must hold whole points for Items() axes. The encoder reconstructs the last
// point of text, so later writes extend the same sequence as if its points had been
// written one by one.
//
// Returns:
//   - int: Number of points in text
//   - error: ErrMalformedEncoding if text is not valid polyline text for Items() axes;
//     ErrEncoderFinished after Finish(). Nothing is written on error.
func (e *PolylineEncoder) WriteEncoded(text string) (int, error) {
	if e.buf == nil {
		return 0, errs.ErrEncoderFinished
	}

	if text == "" {
		e.Reset()
		return 0, nil
	}

	// Every integer takes at least one character.
	if len(text) < e.items {
		return 0, fmt.Errorf("%w: %d characters cannot hold a point of %d axes", errs.ErrMalformedEncoding, len(text), e.items)
	}

	e.ensureState()
	clear(e.scratch)
	index, axis, points := 0, 0, 0
	for index < len(text) {
		delta, next, err := ReadVarint(text, index)
		if err != nil {
			return 0, err
		}
		index = next

		e.scratch[axis] += delta
		axis++
		if axis == e.items {
			axis = 0
			points++
		}
	}

	if axis != 0 {
		return 0, fmt.Errorf("%w: trailing partial point with %d of %d axes", errs.ErrMalformedEncoding, axis, e.items)
	}

	e.buf.B = append(e.buf.B, text...)
	e.Reset()
	if points > 0 {
		e.prev, e.scratch = e.scratch, e.prev
		e.seqCount = points
		e.count += points
	}

	return points, nil
}

// checkAxes rejects a point whose axis count differs from Items().
func (e *PolylineEncoder) checkAxes(point Point, index int) error {
	if len(point) != e.items {
		return fmt.Errorf("%w: point %d has %d axes, expected %d", errs.ErrInvalidInput, index, len(point), e.items)
	}

	return nil
}

// scale converts point, already checked by checkAxes, into fixed-point values in dst.
func (e *PolylineEncoder) scale(point Point, index int, dst []int64) error {
	for axis, value := range point {
		fixed, err := toFixed(value, e.factor)
		if err != nil {
			return fmt.Errorf("point %d axis %d: %w", index, axis, err)
		}
		dst[axis] = fixed
	}

	return nil
}

// emit writes the deltas of the scaled point cur and makes it the previous point.
func (e *PolylineEncoder) emit(cur []int64) {
	if e.seqCount == 0 {
		// First point of a sequence: deltas are taken against the origin.
		for _, value := range cur {
			e.buf.B = AppendVarint(e.buf.B, value)
		}
	} else {
		for axis, value := range cur {
			e.buf.B = AppendVarint(e.buf.B, value-e.prev[axis])
		}
	}

	copy(e.prev, cur)
	e.count++
	e.seqCount++
}

// Bytes returns the encoded text accumulated so far.
//
// The returned slice references the internal buffer and is valid until the next
// write or Finish. The caller must not modify it. It is nil after Finish.
func (e *PolylineEncoder) Bytes() []byte {
	if e.buf == nil {
		return nil
	}

	return e.buf.Bytes()
}

// String returns a copy of the encoded text accumulated so far, or "" after Finish.
func (e *PolylineEncoder) String() string {
	return string(e.Bytes())
}

// Len returns the number of points written since the encoder was created.
func (e *PolylineEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes written so far, or 0 after Finish.
func (e *PolylineEncoder) Size() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

// Reset starts a new sequence. The next point is encoded relative to the origin.
//
// Accumulated text is kept; Len, Size and Bytes are unchanged.
func (e *PolylineEncoder) Reset() {
	clear(e.prev)
	e.seqCount = 0
}

// Finish returns the internal buffer to the pool. The encoder is unusable afterwards.
//
// Retrieve the result with String (or copy Bytes) before calling Finish.
func (e *PolylineEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutTextBuffer(e.buf)
	e.buf = nil
}

// PolylineDecoder decodes polyline text produced with a matching axis count and
// precision. It holds no per-call state and is safe for concurrent use.
type PolylineDecoder struct {
	items     int
	precision int
	factor    float64
}

// NewPolylineDecoder creates a decoder for the given axis count and precision.
//
// Returns:
//   - PolylineDecoder: Decoder ready for use
//   - error: ErrInvalidInput if items or precision is out of range
func NewPolylineDecoder(items, precision int) (PolylineDecoder, error) {
	if err := validateItems(items); err != nil {
		return PolylineDecoder{}, err
	}
	if err := validatePrecision(precision); err != nil {
		return PolylineDecoder{}, err
	}

	return PolylineDecoder{
		items:     items,
		precision: precision,
		factor:    scaleFactor(precision),
	}, nil
}

// Items returns the axis count of the decoder.
func (d PolylineDecoder) Items() int {
	return d.items
}

// Precision returns the decimal precision of the decoder.
func (d PolylineDecoder) Precision() int {
	return d.precision
}

// All returns an iterator over the points encoded in text.
//
// Each point is yielded with a nil error. If text is malformed the iterator yields
// a single (nil, err) pair and stops; points yielded before the error are valid but
// the sequence is incomplete.
//
// Example:
//
//	for point, err := range decoder.All(text) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(point)
//	}
func (d PolylineDecoder) All(text string) iter.Seq2[Point, error] {
	return func(yield func(Point, error) bool) {
		if text == "" {
			return
		}

		// Every integer takes at least one character.
		if len(text) < d.items {
			yield(nil, fmt.Errorf("%w: %d characters cannot hold a point of %d axes", errs.ErrMalformedEncoding, len(text), d.items))
			return
		}

		acc, cleanup := pool.GetInt64Slice(d.items)
		defer cleanup()

		index := 0

		for index < len(text) {
			point := make(Point, d.items)

			for axis := range d.items {
				if index >= len(text) {
					yield(nil, fmt.Errorf("%w: trailing partial point with %d of %d axes", errs.ErrMalformedEncoding, axis, d.items))
					return
				}

				delta, next, err := ReadVarint(text, index)
				if err != nil {
					yield(nil, err)
					return
				}
				index = next

				acc[axis] += delta
				point[axis] = fromFixed(acc[axis], d.factor)
			}

			if !yield(point, nil) {
				return
			}
		}
	}
}

// Decode decodes every point in text.
//
// Returns:
//   - []Point: Decoded points (empty for empty text)
//   - error: ErrMalformedEncoding if text is malformed; no partial result is returned
func (d PolylineDecoder) Decode(text string) ([]Point, error) {
	points := make([]Point, 0, len(text)/d.items/2+1)
	for point, err := range d.All(text) {
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}

// At decodes the point at the given index.
//
// Decoding is sequential, so the cost is proportional to index.
//
// Returns:
//   - Point: The decoded point
//   - error: ErrInvalidInput if index is out of range, ErrMalformedEncoding if text
//     is malformed before the point is reached
func (d PolylineDecoder) At(text string, index int) (Point, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: negative point index %d", errs.ErrInvalidInput, index)
	}

	i := 0
	for point, err := range d.All(text) {
		if err != nil {
			return nil, err
		}
		if i == index {
			return point, nil
		}
		i++
	}

	return nil, fmt.Errorf("%w: point index %d out of range (%d points)", errs.ErrInvalidInput, index, i)
}

// Count returns the number of points encoded in text without scaling any values.
//
// The text is fully validated, so a nil error guarantees Decode succeeds.
func (d PolylineDecoder) Count(text string) (int, error) {
	index, ints := 0, 0
	for index < len(text) {
		_, next, err := ReadVarint(text, index)
		if err != nil {
			return 0, err
		}
		index = next
		ints++
	}

	if ints%d.items != 0 {
		return 0, fmt.Errorf("%w: trailing partial point with %d of %d axes", errs.ErrMalformedEncoding, ints%d.items, d.items)
	}

	return ints / d.items, nil
}

// Encode encodes points with the given axis count and precision.
//
// An empty sequence encodes to the empty string.
//
// Returns:
//   - string: Printable polyline text in [63, 126]
//   - error: ErrInvalidInput if items or precision is out of range, or any point
//     does not have exactly items axes
func Encode(items int, points []Point, precision int) (string, error) {
	encoder, err := NewPolylineEncoder(items, precision)
	if err != nil {
		return "", err
	}
	defer encoder.Finish()

	if err := encoder.WriteSlice(points); err != nil {
		return "", err
	}

	return encoder.String(), nil
}

// Decode decodes polyline text with the given axis count and precision.
//
// items and precision must match the values used to encode text. The empty string
// decodes to an empty sequence.
func Decode(items int, text string, precision int) ([]Point, error) {
	decoder, err := NewPolylineDecoder(items, precision)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(text)
}
