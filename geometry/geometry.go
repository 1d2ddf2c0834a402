// Package geometry provides the closest-point shapes a SpaceShape can wrap:
// a minimal capability any concrete shape exposes to the r-tree's Shape
// closest-point mode.
package geometry

import "github.com/go-gl/mathgl/mgl32"

// Geometry is the capability a space shape's closest-point and bounding-box
// queries delegate to. Every concrete shape (Line, Sphere, Cuboid) computes
// these in its own object-space coordinates; SpaceShape is responsible for
// the world<->object transform around the call.
type Geometry interface {
	// ClosestPoint returns the point on the geometry's surface or volume
	// nearest to ref, both in object-space coordinates.
	ClosestPoint(ref mgl32.Vec3) mgl32.Vec3

	// AABB returns the geometry's axis-aligned bounding box in object-space
	// coordinates.
	AABB() Cuboid
}

// Cuboid is an axis-aligned box, used both as a concrete Geometry and as
// the AABB type every Geometry's AABB method returns.
type Cuboid struct {
	Min, Max mgl32.Vec3
}

func (c Cuboid) ClosestPoint(ref mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		clamp(ref[0], c.Min[0], c.Max[0]),
		clamp(ref[1], c.Min[1], c.Max[1]),
		clamp(ref[2], c.Min[2], c.Max[2]),
	}
}

func (c Cuboid) AABB() Cuboid { return c }

// Union returns the smallest cuboid containing both a and b.
func Union(a, b Cuboid) Cuboid {
	return Cuboid{
		Min: mgl32.Vec3{min32(a.Min[0], b.Min[0]), min32(a.Min[1], b.Min[1]), min32(a.Min[2], b.Min[2])},
		Max: mgl32.Vec3{max32(a.Max[0], b.Max[0]), max32(a.Max[1], b.Max[1]), max32(a.Max[2], b.Max[2])},
	}
}

// Line is a finite segment from A to B.
type Line struct {
	A, B mgl32.Vec3
}

// ClosestPoint projects ref onto the segment, clamping the projection
// parameter to [0, 1] so the result always lies between A and B.
func (l Line) ClosestPoint(ref mgl32.Vec3) mgl32.Vec3 {
	ab := l.B.Sub(l.A)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return l.A
	}
	t := ref.Sub(l.A).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return l.A.Add(ab.Mul(t))
}

func (l Line) AABB() Cuboid {
	return Cuboid{
		Min: mgl32.Vec3{min32(l.A[0], l.B[0]), min32(l.A[1], l.B[1]), min32(l.A[2], l.B[2])},
		Max: mgl32.Vec3{max32(l.A[0], l.B[0]), max32(l.A[1], l.B[1]), max32(l.A[2], l.B[2])},
	}
}

// Sphere is centered at Center with the given Radius.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) ClosestPoint(ref mgl32.Vec3) mgl32.Vec3 {
	d := ref.Sub(s.Center)
	length := d.Len()
	if length == 0 {
		return s.Center.Add(mgl32.Vec3{s.Radius, 0, 0})
	}
	return s.Center.Add(d.Mul(s.Radius / length))
}

func (s Sphere) AABB() Cuboid {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return Cuboid{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
