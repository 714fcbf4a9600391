// Package geom provides the 2D geometry used by the raycaster: points, poses,
// segments, line intersection and distances.
package geom

import (
	"fmt"
	"math"
)

// Epsilon widens the bounding box checked by Contained. Intersect does not
// use it: a determinant is degenerate only when it is exactly zero.
const Epsilon = 1e-9

// Point represents a 2D coordinate in map units.
type Point struct {
	X, Y float64
}

// Invalid returns the sentinel point meaning "no geometric result".
func Invalid() Point {
	return Point{X: math.NaN(), Y: math.NaN()}
}

// Valid reports whether neither coordinate is NaN.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y)
}

// String formats the point as (x,y).
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Direction is a position plus a heading in radians.
type Direction struct {
	Point
	Angle float64
}

// Line is an oriented segment from A to B.
type Line struct {
	A, B Point
}

// String formats the line as [(ax,ay),(bx,by)].
func (l Line) String() string {
	return "[" + l.A.String() + "," + l.B.String() + "]"
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return Distance(l.A, l.B)
}

// Perpendicular returns the segment centred on line.B, rotated 90 degrees
// from line and half as long. For a forward ray ending at a vanishing point
// this is the view plane.
func Perpendicular(line Line) Line {
	halfX := (line.B.X - line.A.X) / 2
	halfY := (line.B.Y - line.A.Y) / 2

	return Line{
		A: Point{X: line.B.X - halfY, Y: line.B.Y + halfX},
		B: Point{X: line.B.X + halfY, Y: line.B.Y - halfX},
	}
}

// Intersect returns the intersection of the infinite lines through lhs and
// rhs, or the invalid point when they are parallel or coincident.
func Intersect(lhs, rhs Line) Point {
	// lhs as a1*x + b1*y = c1
	a1 := lhs.B.Y - lhs.A.Y
	b1 := lhs.A.X - lhs.B.X
	c1 := a1*lhs.A.X + b1*lhs.A.Y

	// rhs as a2*x + b2*y = c2
	a2 := rhs.B.Y - rhs.A.Y
	b2 := rhs.A.X - rhs.B.X
	c2 := a2*rhs.A.X + b2*rhs.A.Y

	det := a1*b2 - a2*b1
	if det == 0 {
		return Invalid()
	}

	return Point{
		X: (b2*c1 - b1*c2) / det,
		Y: (a1*c2 - a2*c1) / det,
	}
}

// Contained reports whether p lies inside the bounding box of line. Both
// axes use the same closed interval widened by Epsilon, so a point computed
// on an axis-aligned segment is not rejected for rounding noise.
func Contained(line Line, p Point) bool {
	xMin, xMax := math.Min(line.A.X, line.B.X), math.Max(line.A.X, line.B.X)
	yMin, yMax := math.Min(line.A.Y, line.B.Y), math.Max(line.A.Y, line.B.Y)

	return p.X >= xMin-Epsilon && p.X <= xMax+Epsilon &&
		p.Y >= yMin-Epsilon && p.Y <= yMax+Epsilon
}

// IntersectSegment returns the intersection of two finite segments, or the
// invalid point when the lines do not meet inside both of them.
func IntersectSegment(lhs, rhs Line) Point {
	p := Intersect(lhs, rhs)
	if p.Valid() && Contained(lhs, p) && Contained(rhs, p) {
		return p
	}
	return Invalid()
}

// Distance calculates the Euclidean distance between two points.
func Distance(p, q Point) float64 {
	return math.Sqrt(DistanceSquared(p, q))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(p, q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return dx*dx + dy*dy
}

// Round returns the nearest integer cell coordinates of p.
func Round(p Point) (col, row int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}
