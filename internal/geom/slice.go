package geom

import "iter"

// Slice samples a line at evenly spaced points, first point at A and last at
// B. It never mutates the line and can be iterated any number of times.
type Slice struct {
	line  Line
	steps int
}

// NewSlice creates a sampler producing steps points along line.
func NewSlice(line Line, steps int) Slice {
	if steps < 0 {
		steps = 0
	}
	return Slice{line: line, steps: steps}
}

// Len returns the number of points the slice produces.
func (s Slice) Len() int {
	return s.steps
}

// At returns the i-th point. Points are interpolated from the endpoints
// rather than accumulated, so At(Len()-1) is exactly line.B.
func (s Slice) At(i int) Point {
	if s.steps <= 1 || i <= 0 {
		return s.line.A
	}
	if i >= s.steps-1 {
		return s.line.B
	}
	t := float64(i) / float64(s.steps-1)
	return Point{
		X: s.line.A.X + (s.line.B.X-s.line.A.X)*t,
		Y: s.line.A.Y + (s.line.B.Y-s.line.A.Y)*t,
	}
}

// All yields (index, point) pairs in order.
func (s Slice) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for i := 0; i < s.steps; i++ {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// Points collects the slice into a new slice of points.
func (s Slice) Points() []Point {
	points := make([]Point, 0, s.steps)
	for _, p := range s.All() {
		points = append(points, p)
	}
	return points
}
