// Package contour defines the closed 2D outlines exchanged between the
// gear generator, the geometry kernels and the thumbnail renderer.
// An outline is either an explicit polygon or an exact circle; kernels
// that cannot represent circles natively sample them into polygons.
package contour

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind distinguishes polygon outlines from analytic circles.
type Kind int

const (
	Polygon Kind = iota // explicit vertex list, implicitly closed
	Circle              // center + radius
)

func (k Kind) String() string {
	switch k {
	case Polygon:
		return "polygon"
	case Circle:
		return "circle"
	default:
		return "unknown"
	}
}

// Contour is a closed 2D outline. For polygons the last vertex connects
// back to the first; the first vertex is never repeated at the end.
type Contour struct {
	Kind   Kind
	Points []r2.Vec // Polygon only
	Center r2.Vec   // Circle only
	Radius float64  // Circle only
}

// Profile is a filled region: an outer outline minus zero or more holes.
type Profile struct {
	Outer Contour
	Holes []Contour
}

// NewPolygon returns a polygon contour over points. The slice is not copied.
func NewPolygon(points []r2.Vec) Contour {
	return Contour{Kind: Polygon, Points: points}
}

// NewCircle returns a circle contour.
func NewCircle(center r2.Vec, radius float64) Contour {
	return Contour{Kind: Circle, Center: center, Radius: radius}
}

// Len returns the number of explicit vertices. Circles report zero.
func (c Contour) Len() int {
	if c.Kind != Polygon {
		return 0
	}
	return len(c.Points)
}

// Sample returns the outline as a vertex loop. Polygons return a copy of
// their vertices; circles are sampled at the given number of evenly spaced
// points, counter-clockwise from angle 0. segments below 3 is raised to 3.
func (c Contour) Sample(segments int) []r2.Vec {
	if c.Kind == Polygon {
		out := make([]r2.Vec, len(c.Points))
		copy(out, c.Points)
		return out
	}
	if segments < 3 {
		segments = 3
	}
	out := make([]r2.Vec, segments)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(segments)
		out[i] = r2.Add(c.Center, r2.Vec{X: c.Radius * math.Cos(a), Y: c.Radius * math.Sin(a)})
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the outline.
func (c Contour) Bounds() (min, max r2.Vec) {
	if c.Kind == Circle {
		d := r2.Vec{X: c.Radius, Y: c.Radius}
		return r2.Sub(c.Center, d), r2.Add(c.Center, d)
	}
	if len(c.Points) == 0 {
		return r2.Vec{}, r2.Vec{}
	}
	min, max = c.Points[0], c.Points[0]
	for _, p := range c.Points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// SignedArea returns the shoelace area of a vertex loop. Counter-clockwise
// loops are positive.
func SignedArea(points []r2.Vec) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += r2.Cross(p, q)
	}
	return sum / 2
}

// Orient returns points wound counter-clockwise when ccw is true and
// clockwise otherwise, reversing in place if needed.
func Orient(points []r2.Vec, ccw bool) []r2.Vec {
	if (SignedArea(points) > 0) != ccw {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}
