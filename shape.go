package space

import (
	"fmt"

	"github.com/bisnad/ofxDabSpace/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// SpaceShape is a three-dimensional object carrying a TRS transform and a
// Geometry, used as the shape an RTree's Shape closest-point mode queries
// instead of a bare position. Its object-space and world-space bounding
// boxes and its transform matrices are cached and only recomputed when the
// transform or the geometry has actually changed.
type SpaceShape struct {
	object *SpaceObject

	geom geometry.Geometry

	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3

	objectToWorld mgl32.Mat4
	worldToObject mgl32.Mat4
	objectAABB    geometry.Cuboid
	worldAABB     geometry.Cuboid

	transformDirty bool
	geometryDirty  bool
	worldAABBDirty bool
}

// NewSpaceShape returns a shape at the origin with identity orientation and
// unit scale, wrapping geom.
func NewSpaceShape(geom geometry.Geometry) *SpaceShape {
	s := &SpaceShape{
		object:         NewSpaceObject(3),
		geom:           geom,
		orientation:    mgl32.QuatIdent(),
		scale:          mgl32.Vec3{1, 1, 1},
		transformDirty: true,
		geometryDirty:  true,
		worldAABBDirty: true,
	}
	return s
}

// Object returns the shape's underlying SpaceObject, used to register it
// with a Space like any other object.
func (s *SpaceShape) Object() *SpaceObject { return s.object }

// Geometry returns the shape's geometry in object-space coordinates.
func (s *SpaceShape) Geometry() geometry.Geometry { return s.geom }

// SetGeometry replaces the shape's geometry, marking its bounding boxes for
// recomputation.
func (s *SpaceShape) SetGeometry(geom geometry.Geometry) {
	s.geom = geom
	s.geometryDirty = true
}

// SetPosition moves the shape and updates its owning SpaceObject's position
// so the change is visible to its Space's algorithm too.
func (s *SpaceShape) SetPosition(pos mgl32.Vec3) error {
	s.position = pos
	s.transformDirty = true
	return s.object.SetPosition(Vector{float64(pos[0]), float64(pos[1]), float64(pos[2])})
}

// ChangePosition offsets the shape's position by delta.
func (s *SpaceShape) ChangePosition(delta mgl32.Vec3) error {
	return s.SetPosition(s.position.Add(delta))
}

// SetOrientation replaces the shape's orientation.
func (s *SpaceShape) SetOrientation(q mgl32.Quat) {
	s.orientation = q
	s.transformDirty = true
}

// SetScale replaces the shape's per-axis scale.
func (s *SpaceShape) SetScale(scale mgl32.Vec3) {
	s.scale = scale
	s.transformDirty = true
}

func (s *SpaceShape) refreshMatrices() {
	if !s.transformDirty {
		return
	}
	t := mgl32.Translate3D(s.position[0], s.position[1], s.position[2])
	r := s.orientation.Mat4()
	sc := mgl32.Scale3D(s.scale[0], s.scale[1], s.scale[2])
	s.objectToWorld = t.Mul4(r).Mul4(sc)
	s.worldToObject = s.objectToWorld.Inv()
	s.transformDirty = false
	s.worldAABBDirty = true
}

// ObjectAABB returns the shape's bounding box in object-space coordinates,
// recomputed only when the geometry has changed since the last call.
func (s *SpaceShape) ObjectAABB() geometry.Cuboid {
	if s.geometryDirty {
		if s.geom != nil {
			s.objectAABB = s.geom.AABB()
		}
		s.geometryDirty = false
		s.worldAABBDirty = true
	}
	return s.objectAABB
}

// AABB returns the shape's bounding box in world-space coordinates,
// recomputed only when the transform or geometry has changed since the
// last call.
func (s *SpaceShape) AABB() geometry.Cuboid {
	s.refreshMatrices()
	_ = s.ObjectAABB()
	if s.worldAABBDirty {
		s.worldAABB = transformCuboid(s.objectAABB, s.objectToWorld)
		s.worldAABBDirty = false
	}
	return s.worldAABB
}

func transformCuboid(c geometry.Cuboid, m mgl32.Mat4) geometry.Cuboid {
	corners := [8]mgl32.Vec3{
		{c.Min[0], c.Min[1], c.Min[2]}, {c.Max[0], c.Min[1], c.Min[2]},
		{c.Min[0], c.Max[1], c.Min[2]}, {c.Max[0], c.Max[1], c.Min[2]},
		{c.Min[0], c.Min[1], c.Max[2]}, {c.Max[0], c.Min[1], c.Max[2]},
		{c.Min[0], c.Max[1], c.Max[2]}, {c.Max[0], c.Max[1], c.Max[2]},
	}
	out := geometry.Cuboid{}
	for i, corner := range corners {
		world := m.Mul4x1(corner.Vec4(1)).Vec3()
		if i == 0 {
			out.Min, out.Max = world, world
			continue
		}
		out = geometry.Union(out, geometry.Cuboid{Min: world, Max: world})
	}
	return out
}

// WorldToObject maps a world-space point into object-space coordinates.
func (s *SpaceShape) WorldToObject(world mgl32.Vec3) mgl32.Vec3 {
	s.refreshMatrices()
	return s.worldToObject.Mul4x1(world.Vec4(1)).Vec3()
}

// ObjectToWorld maps an object-space point into world-space coordinates.
func (s *SpaceShape) ObjectToWorld(object mgl32.Vec3) mgl32.Vec3 {
	s.refreshMatrices()
	return s.objectToWorld.Mul4x1(object.Vec4(1)).Vec3()
}

// ClosestPoint returns the point on the shape's geometry closest to ref,
// both in world-space coordinates. It fails if the shape has no geometry.
func (s *SpaceShape) ClosestPoint(ref mgl32.Vec3) (mgl32.Vec3, error) {
	if s.geom == nil {
		return mgl32.Vec3{}, unsupportedErr("SpaceShape.ClosestPoint", "shape has no geometry")
	}
	objectRef := s.WorldToObject(ref)
	objectClosest := s.geom.ClosestPoint(objectRef)
	return s.ObjectToWorld(objectClosest), nil
}

func (s *SpaceShape) String() string { return s.Info(0) }

func (s *SpaceShape) Info(depth int) string {
	return fmt.Sprintf("SpaceShape[position=%v scale=%v]", s.position, s.scale)
}
