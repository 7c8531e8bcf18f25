package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tirja/porygon/errs"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{-0.5, -1},
		{1.5, 2},
		{2.5, 3},
		{-2.5, -3},
		{3850000.0000000005, 3850000},
		{-12095000.000000002, -12095000},
		// |x| + 0.5 rounds up to 1.0 in float64; the reference encoder does the same.
		{0.49999999999999994, 1},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, roundHalfAwayFromZero(tt.in), "round(%v)", tt.in)
	}
}

func TestToFixed(t *testing.T) {
	v, err := toFixed(38.5, scaleFactor(5))
	require.NoError(t, err)
	require.Equal(t, int64(3850000), v)

	v, err = toFixed(-120.95, scaleFactor(5))
	require.NoError(t, err)
	require.Equal(t, int64(-12095000), v)
}

func TestToFixed_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		prec  int
	}{
		{"NaN", math.NaN(), 5},
		{"positive infinity", math.Inf(1), 5},
		{"negative infinity", math.Inf(-1), 0},
		{"out of fixed-point range", 1e300, 5},
		{"out of range at max precision", 5, MaxPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := toFixed(tt.value, scaleFactor(tt.prec))

			require.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
}

func TestValidatePrecision(t *testing.T) {
	require.NoError(t, validatePrecision(0))
	require.NoError(t, validatePrecision(DefaultPrecision))
	require.NoError(t, validatePrecision(MaxPrecision))
	require.ErrorIs(t, validatePrecision(-1), errs.ErrInvalidInput)
	require.ErrorIs(t, validatePrecision(MaxPrecision+1), errs.ErrInvalidInput)
}

func TestFromFixed(t *testing.T) {
	require.Equal(t, 38.5, fromFixed(3850000, scaleFactor(5)))
	require.Equal(t, -126.453, fromFixed(-12645300, scaleFactor(5)))
	require.Equal(t, 7.0, fromFixed(7, scaleFactor(0)))
}
