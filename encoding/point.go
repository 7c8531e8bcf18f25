package encoding

// Point is an ordered tuple of axis values.
//
// Axis meaning is defined by the caller, for example {latitude, longitude} or
// {timestamp, latitude, longitude, altitude}. Every point in a sequence must have
// the same number of axes.
type Point []float64

// Dims returns the number of axes in the point.
func (p Point) Dims() int {
	return len(p)
}

// Clone returns a copy of the point that does not share storage with p.
func (p Point) Clone() Point {
	if p == nil {
		return nil
	}

	c := make(Point, len(p))
	copy(c, p)

	return c
}
