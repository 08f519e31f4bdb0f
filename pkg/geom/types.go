// Package geom provides the 2D primitives shared by the viewport engine and
// the PCB track model. All world coordinates are in millimetres.
package geom

import "math"

// Epsilon is the coincidence tolerance used when matching segment endpoints.
const Epsilon = 1e-9

// Vector2D is a point or displacement in world (mm) or screen (px) space.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by f.
func (v Vector2D) Scale(f float64) Vector2D {
	return Vector2D{X: v.X * f, Y: v.Y * f}
}

// Dot returns the dot product.
func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean norm.
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between two points.
func (v Vector2D) Distance(o Vector2D) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rotate rotates v around the origin by the given angle in radians.
func (v Vector2D) Rotate(radians float64) Vector2D {
	sin, cos := math.Sincos(radians)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vector2D) ApproxEqual(o Vector2D, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// PolyPoint is one corner of a polygon corner buffer. The last corner of each
// closed contour has EndContour set.
type PolyPoint struct {
	X          float64
	Y          float64
	EndContour bool
}

// Vector returns the corner as a Vector2D.
func (p PolyPoint) Vector() Vector2D {
	return Vector2D{X: p.X, Y: p.Y}
}

// Contours splits a corner buffer into its closed contours.
func Contours(buf []PolyPoint) [][]Vector2D {
	var out [][]Vector2D
	var cur []Vector2D
	for _, p := range buf {
		cur = append(cur, p.Vector())
		if p.EndContour {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// DistanceToSegment returns the shortest distance from p to the closed
// segment a-b. A degenerate segment is treated as a point.
func DistanceToSegment(p, a, b Vector2D) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Scale(t)))
}
