package space

import "fmt"

// NeighborGroup is one object's sorted, radius-bounded, cap-bounded
// neighbor list inside one named space. A group is owned exclusively by its
// SpaceProxy; its pointer back to the owning object and its pointer to the
// space are non-owning observers.
type NeighborGroup struct {
	object    *SpaceObject
	space     *Space
	visible   bool
	policy    *AdmissionPolicy
	relations []*NeighborRelation
}

// newNeighborGroup creates an Active group for object inside space,
// attaching policy's back-reference.
func newNeighborGroup(object *SpaceObject, space *Space, visible bool, policy *AdmissionPolicy) *NeighborGroup {
	if policy == nil {
		policy = NewAdmissionPolicy()
	}
	g := &NeighborGroup{
		object:  object,
		space:   space,
		visible: visible,
		policy:  policy,
	}
	policy.setGroup(g)
	return g
}

// Object returns the group's owning object.
func (g *NeighborGroup) Object() *SpaceObject { return g.object }

// Space returns the space this group belongs to.
func (g *NeighborGroup) Space() *Space { return g.space }

// Visible reports whether the group's object currently participates in
// visibility-gated queries for this space.
func (g *NeighborGroup) Visible() bool { return g.visible }

// SetVisible toggles the group's visibility flag.
func (g *NeighborGroup) SetVisible(visible bool) { g.visible = visible }

// Policy returns the group's admission policy.
func (g *NeighborGroup) Policy() *AdmissionPolicy { return g.policy }

// Len returns the number of neighbor relations currently stored.
func (g *NeighborGroup) Len() int { return len(g.relations) }

// TargetAt returns the target object of the relation at sorted position i.
func (g *NeighborGroup) TargetAt(i int) *SpaceObject { return g.relations[i].target }

// DistanceAt returns the distance of the relation at sorted position i.
func (g *NeighborGroup) DistanceAt(i int) float64 { return g.relations[i].distance }

// DirectionAt returns the direction of the relation at sorted position i.
func (g *NeighborGroup) DirectionAt(i int) Vector { return g.relations[i].direction }

// ValueAt returns the value of the relation at sorted position i.
func (g *NeighborGroup) ValueAt(i int) Vector { return g.relations[i].value }

// Relations returns the full sorted sequence for bulk iteration. The
// returned slice must not be mutated by the caller.
func (g *NeighborGroup) Relations() []*NeighborRelation { return g.relations }

// Clear empties the neighbor sequence, the first step of every neighbor
// phase.
func (g *NeighborGroup) Clear() {
	g.relations = g.relations[:0]
}

// Connect authors a direct relation from this group's object to target,
// bypassing the admission policy entirely. It exists for PermanentNeighbors
// topologies, where the client hand-authors links that the
// algorithm only ever refreshes the distance/direction of; it is not the
// path ordinary algorithms use to admit discovered candidates.
func (g *NeighborGroup) Connect(target *SpaceObject) *NeighborRelation {
	direction := target.position.Sub(g.object.position)
	rel := newNeighborRelation(g.object, target, direction.Length(), direction)
	g.relations = append(g.relations, rel)
	return rel
}

// detach releases the group's references immediately before it is
// destroyed.
func (g *NeighborGroup) detach() {
	g.relations = nil
	g.object = nil
	g.space = nil
}

// String renders the group for debugging.
func (g *NeighborGroup) String() string {
	return g.Info(0)
}

// Info renders the group with the given propagation depth: -1 unbounded,
// 0 self only, >0 descends into each relation's string form.
func (g *NeighborGroup) Info(depth int) string {
	s := fmt.Sprintf("NeighborGroup[object=%d visible=%v policy={%s} count=%d]", g.object.ID(), g.visible, g.policy, len(g.relations))
	if depth == 0 {
		return s
	}
	for _, r := range g.relations {
		s += "\n  " + r.String()
	}
	return s
}
