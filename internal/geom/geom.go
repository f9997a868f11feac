// Package geom provides the pure geometry routines used by the annotation
// engine: point/circle classification, circle-segment intersection for the
// eraser, and quadratic Bezier smoothing for export.
//
// All functions operate in a single coordinate space; callers convert
// between screen, document and export space before calling in.
package geom

import "math"

// Point represents a 2D point in document units (origin top-left,
// y increases downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between p and other
func (p Point) Midpoint(other Point) Point {
	return Point{
		X: (p.X + other.X) / 2,
		Y: (p.Y + other.Y) / 2,
	}
}

// PointInCircle reports whether p lies inside the circle, boundary included.
// A point at distance exactly radius counts as inside; the eraser relies on
// this classification.
func PointInCircle(p, center Point, radius float64) bool {
	return p.Distance(center) <= radius
}

// CircleSegmentIntersection returns the point where the segment from p1 to p2
// crosses the circle boundary, preferring the crossing closest to p1. The
// second return value is false when the segment does not reach the boundary
// or the segment is degenerate (p1 == p2).
//
// The segment is parameterized as p1 + t*(p2-p1) with t in [0,1], which
// reduces the intersection to the quadratic a*t^2 + b*t + c = 0. Of the two
// roots the smaller one is tried first so that a stroke entering the circle
// is clipped at its entry point.
func CircleSegmentIntersection(center Point, radius float64, p1, p2 Point) (Point, bool) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	fx := p1.X - center.X
	fy := p1.Y - center.Y

	a := dx*dx + dy*dy
	if a == 0 {
		return Point{}, false
	}

	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Point{}, false
	}

	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	if t1 >= 0 && t1 <= 1 {
		return Point{X: p1.X + t1*dx, Y: p1.Y + t1*dy}, true
	}
	if t2 >= 0 && t2 <= 1 {
		return Point{X: p1.X + t2*dx, Y: p1.Y + t2*dy}, true
	}
	return Point{}, false
}

// DistanceToSegment returns the shortest distance from p to the segment
// between a and b.
func DistanceToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return p.Distance(a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))

	closest := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(closest)
}

// smoothSampleTs are the parameter values sampled per interior segment
// during smoothing. t=0 is omitted because it coincides with the previous
// sample.
var smoothSampleTs = [4]float64{0.25, 0.5, 0.75, 1.0}

// SmoothQuadratic converts a raw mouse-sampled polyline into a denser,
// visually smooth sequence. Each interior point acts as the control point of
// a quadratic Bezier between the midpoints of its neighboring segments. The
// first and last input points are preserved exactly. Sequences of two or
// fewer points are returned unchanged (as a copy).
//
// Smoothing happens only at export time; the eraser always works on the raw
// points.
func SmoothQuadratic(points []Point) []Point {
	if len(points) <= 2 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	smoothed := make([]Point, 0, (len(points)-2)*len(smoothSampleTs)+1)
	smoothed = append(smoothed, points[0])

	start := points[0]
	for i := 1; i < len(points)-1; i++ {
		control := points[i]
		end := control.Midpoint(points[i+1])
		if i == len(points)-2 {
			// The final segment runs all the way to the last raw point.
			end = points[len(points)-1]
		}
		for _, t := range smoothSampleTs {
			smoothed = append(smoothed, quadraticBezierPoint(start, control, end, t))
		}
		start = end
	}

	return smoothed
}

// quadraticBezierPoint evaluates the quadratic Bezier defined by start,
// control and end at parameter t.
func quadraticBezierPoint(start, control, end Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*start.X + 2*u*t*control.X + t*t*end.X,
		Y: u*u*start.Y + 2*u*t*control.Y + t*t*end.Y,
	}
}
