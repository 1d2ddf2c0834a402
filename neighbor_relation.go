package space

import "fmt"

// NeighborRelation is a directed (source -> target) record carrying
// distance, direction, and an application value. Clients only read it. The
// per-tick neighbor phase builds fresh relations, except PermanentNeighbors,
// which rewrites the distance, direction and value of its existing
// relations in place.
type NeighborRelation struct {
	source    *SpaceObject
	target    *SpaceObject
	distance  float64
	direction Vector
	value     Vector
}

// newNeighborRelation builds a relation where value == direction, the
// common case for every algorithm except the grid's synthetic neighbors.
func newNeighborRelation(source, target *SpaceObject, distance float64, direction Vector) *NeighborRelation {
	return &NeighborRelation{
		source:    source,
		target:    target,
		distance:  distance,
		direction: direction,
		value:     direction,
	}
}

// newValuedNeighborRelation builds a relation whose value differs from its
// direction, used by grid neighbor modes.
func newValuedNeighborRelation(source, target *SpaceObject, value, direction Vector, distance float64) *NeighborRelation {
	return &NeighborRelation{
		source:    source,
		target:    target,
		distance:  distance,
		direction: direction,
		value:     value,
	}
}

// Source returns the relation's owning object.
func (r *NeighborRelation) Source() *SpaceObject { return r.source }

// Target returns the relation's neighbor object.
func (r *NeighborRelation) Target() *SpaceObject { return r.target }

// Distance returns the scalar distance between source and target.
func (r *NeighborRelation) Distance() float64 { return r.distance }

// Direction returns the direction vector from source to target.
func (r *NeighborRelation) Direction() Vector { return r.direction }

// Value returns the relation's application value. For every algorithm
// except GridAlg, whose neighbor modes all carry a sampled grid value,
// Value() equals Direction().
func (r *NeighborRelation) Value() Vector { return r.value }

// String renders the relation for debugging; it is informational and not a
// stable wire format.
func (r *NeighborRelation) String() string {
	return fmt.Sprintf("%d->%d dist=%.4f dir=%v val=%v", r.source.ID(), r.target.ID(), r.distance, r.direction, r.value)
}
