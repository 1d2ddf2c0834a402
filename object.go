package space

import "sync/atomic"

var nextObjectID uint64

// SpaceObject is a point (or shape anchor) in N-space. Its dimension is
// fixed at creation and never changes.
type SpaceObject struct {
	id       uint64
	dim      int
	position Vector
	registry *neighborRegistry
	shape    *SpaceShape
	value    Vector
}

// Value returns the object's carried payload, or nil if SetValue was never
// called. Grid write-back modes deposit this into the grid; it plays no
// role in any other algorithm.
func (o *SpaceObject) Value() Vector { return o.value }

// SetValue replaces the object's carried payload.
func (o *SpaceObject) SetValue(v Vector) { o.value = v }

// Shape returns the object's attached shape, or nil if none was set with
// SetShape. RTree's Shape closest-point mode falls back to treating the
// object as a point when this is nil.
func (o *SpaceObject) Shape() *SpaceShape { return o.shape }

// SetShape attaches a shape used for closest-point neighbor queries in
// place of the object's bare position.
func (o *SpaceObject) SetShape(s *SpaceShape) { o.shape = s }

// NewSpaceObject creates an object of the given dimension at the origin.
func NewSpaceObject(dim int) *SpaceObject {
	return &SpaceObject{
		id:       atomic.AddUint64(&nextObjectID, 1),
		dim:      dim,
		position: NewVector(dim),
		registry: newNeighborRegistry(),
	}
}

// NewSpaceObjectAt creates an object positioned at pos; its dimension is
// fixed to len(pos).
func NewSpaceObjectAt(pos Vector) *SpaceObject {
	o := NewSpaceObject(len(pos))
	copy(o.position, pos)
	return o
}

// ID returns the object's monotonically assigned identity.
func (o *SpaceObject) ID() uint64 { return o.id }

// Dim returns the object's fixed dimension.
func (o *SpaceObject) Dim() int { return o.dim }

// Position returns the object's current position. Callers must not mutate
// positions of objects registered in a space while that space is updating.
func (o *SpaceObject) Position() Vector { return o.position }

// SetPosition replaces the object's position. It returns a
// DimensionMismatchError if len(pos) != o.Dim().
func (o *SpaceObject) SetPosition(pos Vector) error {
	if len(pos) != o.dim {
		return dimErr("SpaceObject.SetPosition", o.dim, len(pos))
	}
	copy(o.position, pos)
	return nil
}

// ChangePosition adds delta to the object's current position. It returns a
// DimensionMismatchError if len(delta) != o.Dim().
func (o *SpaceObject) ChangePosition(delta Vector) error {
	if len(delta) != o.dim {
		return dimErr("SpaceObject.ChangePosition", o.dim, len(delta))
	}
	for i, d := range delta {
		o.position[i] += d
	}
	return nil
}

// NeighborGroup returns the object's neighbor group for the named space, or
// a LookupError wrapping ErrGroupNotFound if the object is not registered
// with that space.
func (o *SpaceObject) NeighborGroup(spaceName string) (*NeighborGroup, error) {
	g, ok := o.registry.get(spaceName)
	if !ok {
		return nil, wrapLookup("SpaceObject.NeighborGroup", "group", spaceName, ErrGroupNotFound)
	}
	return g, nil
}

// Neighbors returns the sorted neighbor relations for the named space, for
// bulk iteration by client code.
func (o *SpaceObject) Neighbors(spaceName string) (NeighborIterator, error) {
	g, err := o.NeighborGroup(spaceName)
	if err != nil {
		return NeighborIterator{}, err
	}
	return NeighborIterator{relations: g.relations}, nil
}

// SetVisible toggles visibility on the named space's group, or on every
// group the object belongs to if spaceName is empty.
func (o *SpaceObject) SetVisible(spaceName string, visible bool) error {
	if spaceName == "" {
		o.registry.setVisibleAll(visible)
		return nil
	}
	g, ok := o.registry.get(spaceName)
	if !ok {
		return wrapLookup("SpaceObject.SetVisible", "group", spaceName, ErrGroupNotFound)
	}
	g.visible = visible
	return nil
}

// NeighborIterator exposes read-only indexed access to a sorted neighbor
// sequence without letting the caller mutate it, matching Relations'
// "read-only indexed accessors... plus the full sequence for bulk
// iteration."
type NeighborIterator struct {
	relations []*NeighborRelation
}

// Len returns the number of neighbor relations.
func (it NeighborIterator) Len() int { return len(it.relations) }

// At returns the relation at position i in ascending-distance order.
func (it NeighborIterator) At(i int) *NeighborRelation { return it.relations[i] }

// All returns every relation, ascending by distance. The returned slice
// must not be mutated by the caller.
func (it NeighborIterator) All() []*NeighborRelation { return it.relations }
