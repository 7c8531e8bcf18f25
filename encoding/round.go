package encoding

import (
	"fmt"
	"math"

	"github.com/tirja/porygon/errs"
)

const (
	// DefaultPrecision is the decimal precision used when none is specified.
	DefaultPrecision = 5

	// MaxPrecision is the largest supported precision. 10^18 is the largest power of
	// ten that fits an int64.
	MaxPrecision = 18

	// maxScaled bounds the magnitude of a scaled axis value (2^62). Keeping both
	// operands below it guarantees the difference of two scaled values fits an int64.
	maxScaled = 1 << 62
)

// validatePrecision checks that precision lies in [0, MaxPrecision].
func validatePrecision(precision int) error {
	if precision < 0 || precision > MaxPrecision {
		return fmt.Errorf("%w: precision %d outside [0, %d]", errs.ErrInvalidInput, precision, MaxPrecision)
	}

	return nil
}

// validateItems checks that the axis count is positive.
func validateItems(items int) error {
	if items <= 0 {
		return fmt.Errorf("%w: items must be positive, got %d", errs.ErrInvalidInput, items)
	}

	return nil
}

// scaleFactor returns 10^precision.
func scaleFactor(precision int) float64 {
	return math.Pow10(precision)
}

// roundHalfAwayFromZero rounds x to the nearest integer, with halves rounding to the
// neighbour of larger magnitude (2.5 -> 3, -2.5 -> -3).
//
// The result is computed as copysign(floor(|x| + 0.5), x). Inputs just below one half
// where the float64 addition itself rounds up therefore round away from zero too, the
// same as other polyline encoders.
func roundHalfAwayFromZero(x float64) float64 {
	return math.Copysign(math.Floor(math.Abs(x)+0.5), x)
}

// toFixed converts an axis value to its fixed-point integer at the given scale factor.
func toFixed(value, factor float64) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: non-finite value %v", errs.ErrInvalidInput, value)
	}

	scaled := roundHalfAwayFromZero(value * factor)
	if math.Abs(scaled) >= maxScaled {
		return 0, fmt.Errorf("%w: value %v exceeds the fixed-point range at scale %v", errs.ErrInvalidInput, value, factor)
	}

	return int64(scaled), nil
}

// fromFixed converts a fixed-point integer back to its real value.
func fromFixed(fixed int64, factor float64) float64 {
	return float64(fixed) / factor
}
