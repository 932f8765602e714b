package geometry

import (
	"math"

	"github.com/matzehuels/chaostower/pkg/errors"
)

// Point is a 2-D coordinate with a homogeneous Z slot.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Pt returns the point (x, y, 0).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Lerp moves p toward q by fraction t. Z is taken from p.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + t*(q.X-p.X),
		Y: p.Y + t*(q.Y-p.Y),
		Z: p.Z,
	}
}

// Finite reports whether both planar coordinates are finite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// VertexSet is an ordered list of chaos-game target vertices.
type VertexSet []Point

// JumpVector holds one jump fraction per vertex index.
type JumpVector []float64

// RegularPolygon returns the n vertices of a regular polygon inscribed in a circle of
// the given radius. Vertex k sits at angle π/2 + 2πk/n, so vertex 0 is at the top and
// the remaining vertices follow counter-clockwise.
//
// When centered is true the polygon's centroid is the origin. Otherwise the polygon is
// translated so that vertex 0 is the origin.
func RegularPolygon(n int, radius float64, centered bool) (VertexSet, error) {
	if n < 3 {
		return nil, errors.Configuration("polygon needs at least 3 vertices, got %d", n)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, errors.Configuration("polygon radius must be positive and finite, got %v", radius)
	}

	vs := make(VertexSet, n)
	for k := range vs {
		sin, cos := math.Sincos(math.Pi/2 + 2*math.Pi*float64(k)/float64(n))
		vs[k] = Point{X: radius * cos, Y: radius * sin}
	}
	if !centered {
		top := vs[0]
		for k := range vs {
			vs[k].X -= top.X
			vs[k].Y -= top.Y
		}
	}
	return vs, nil
}

// StackMidpoints returns vs followed by the midpoint of every edge (k, k+1 mod n),
// in the same cyclic order as the edges.
func StackMidpoints(vs VertexSet) VertexSet {
	n := len(vs)
	out := make(VertexSet, 0, 2*n)
	out = append(out, vs...)
	for k := range vs {
		out = append(out, vs[k].Lerp(vs[(k+1)%n], 0.5))
	}
	return out
}

// StackCenter returns vs followed by its centroid. An empty set is returned unchanged.
func StackCenter(vs VertexSet) VertexSet {
	if len(vs) == 0 {
		return VertexSet{}
	}
	var c Point
	for _, v := range vs {
		c.X += v.X
		c.Y += v.Y
	}
	c.X /= float64(len(vs))
	c.Y /= float64(len(vs))

	out := make(VertexSet, 0, len(vs)+1)
	out = append(out, vs...)
	return append(out, c)
}

// Broadcast repeats jump n times.
func Broadcast(jump float64, n int) JumpVector {
	jv := make(JumpVector, n)
	for i := range jv {
		jv[i] = jump
	}
	return jv
}

// Bounds returns the axis-aligned bounding box of pts. It returns zero points when pts is empty.
func Bounds(pts []Point) (lo, hi Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
