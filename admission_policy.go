package space

import "fmt"

const (
	defaultRadius         = 5.0
	defaultCap            = 10
	defaultReplaceFarther = false
)

// AdmissionPolicy is the configuration carried by a NeighborGroup: radius,
// cap, and replace-farther semantics.
// Every neighbor insertion, regardless of which algorithm discovered the
// candidate, goes through the same sorted-insert contract.
type AdmissionPolicy struct {
	radius         float64
	cap            int
	replaceFarther bool
	group          *NeighborGroup
}

// PolicyOption configures an AdmissionPolicy at construction.
type PolicyOption func(*AdmissionPolicy)

// WithRadius sets the neighbor search radius; negative means unbounded.
func WithRadius(radius float64) PolicyOption {
	return func(p *AdmissionPolicy) { p.radius = radius }
}

// WithCap sets the maximum neighbor-list length; -1 means unbounded, 0
// means the object accepts no neighbors.
func WithCap(cap int) PolicyOption {
	return func(p *AdmissionPolicy) { p.cap = cap }
}

// WithReplaceFarther enables replacing a farther existing neighbor with a
// closer candidate once the list is full.
func WithReplaceFarther(replace bool) PolicyOption {
	return func(p *AdmissionPolicy) { p.replaceFarther = replace }
}

// NewAdmissionPolicy returns a policy with the defaults
// (radius=5.0, cap=10, replace_farther=false) modified by opts.
func NewAdmissionPolicy(opts ...PolicyOption) *AdmissionPolicy {
	p := &AdmissionPolicy{
		radius:         defaultRadius,
		cap:            defaultCap,
		replaceFarther: defaultReplaceFarther,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *AdmissionPolicy) setGroup(g *NeighborGroup) { p.group = g }

// Radius returns the configured neighbor search radius.
func (p *AdmissionPolicy) Radius() float64 { return p.radius }

// Cap returns the configured maximum neighbor-list length.
func (p *AdmissionPolicy) Cap() int { return p.cap }

// ReplaceFarther returns whether a full list may evict its farthest member.
func (p *AdmissionPolicy) ReplaceFarther() bool { return p.replaceFarther }

// SetRadius updates the neighbor search radius.
func (p *AdmissionPolicy) SetRadius(radius float64) { p.radius = radius }

// SetCap updates the maximum neighbor-list length.
func (p *AdmissionPolicy) SetCap(cap int) { p.cap = cap }

// SetReplaceFarther updates the replace-farther-neighbor setting.
func (p *AdmissionPolicy) SetReplaceFarther(replace bool) { p.replaceFarther = replace }

// Full reports whether the group is at capacity and cannot accept a
// replacement (branch 3 of the admission contract, exposed for callers that
// want to short-circuit a search once nothing more can be admitted).
func (p *AdmissionPolicy) Full() bool {
	if p.cap < 0 {
		return false
	}
	if p.replaceFarther {
		return false
	}
	return len(p.group.relations) >= p.cap
}

// Offer computes distance and direction from source/target positions and
// attempts to admit target as a neighbor of source. It returns whether the
// relation was kept.
func (p *AdmissionPolicy) Offer(source, target *SpaceObject) bool {
	if source == target {
		return false
	}
	direction := target.position.Sub(source.position)
	distance := direction.Length()
	return p.OfferWithDistance(source, target, distance, direction)
}

// OfferWithDistance admits target as a neighbor of source using a
// precomputed distance and direction, skipping the position subtraction
// Offer performs.
func (p *AdmissionPolicy) OfferWithDistance(source, target *SpaceObject, distance float64, direction Vector) bool {
	if source == target {
		return false
	}
	if !p.admits(distance) {
		return false
	}
	return p.insert(newNeighborRelation(source, target, distance, direction))
}

// OfferValued admits target as a neighbor of source with an explicit value
// distinct from direction, used by grid neighbor modes where the relation's
// value is a sampled/interpolated grid value rather than a displacement.
func (p *AdmissionPolicy) OfferValued(source, target *SpaceObject, value, direction Vector, distance float64) bool {
	if source == target {
		return false
	}
	if !p.admits(distance) {
		return false
	}
	return p.insert(newValuedNeighborRelation(source, target, value, direction, distance))
}

// admits implements admission-contract branches 1-4: the decision of
// whether a candidate at the given distance could possibly be kept, without
// yet constructing or inserting a relation.
func (p *AdmissionPolicy) admits(distance float64) bool {
	if p.cap == 0 {
		return false // branch 1
	}
	if p.radius >= 0.0 && distance > p.radius {
		return false // branch 2
	}
	relations := p.group.relations
	count := len(relations)
	if p.cap >= 0 && count >= p.cap {
		if !p.replaceFarther {
			return false // branch 3
		}
		if distance >= relations[count-1].distance {
			return false // branch 4
		}
	}
	return true
}

// insert implements admission-contract branch 5: sorted insertion by
// ascending distance, dropping the farthest element if the cap is
// exceeded.
func (p *AdmissionPolicy) insert(rel *NeighborRelation) bool {
	relations := p.group.relations
	count := len(relations)

	insertAt := count
	for i := count - 1; i >= 0; i-- {
		if relations[i].distance > rel.distance {
			insertAt = i
		} else {
			break
		}
	}

	relations = append(relations, nil)
	copy(relations[insertAt+1:], relations[insertAt:count])
	relations[insertAt] = rel
	p.group.relations = relations

	if p.cap >= 0 && len(p.group.relations) > p.cap {
		kept := insertAt < p.cap
		p.group.relations = p.group.relations[:p.cap]
		return kept
	}
	return true
}

// RemoveNeighbor drops every relation targeting the given object.
func (p *AdmissionPolicy) RemoveNeighbor(target *SpaceObject) {
	relations := p.group.relations
	kept := relations[:0]
	for _, r := range relations {
		if r.target != target {
			kept = append(kept, r)
		}
	}
	p.group.relations = kept
}

// RemoveNeighborAt drops the relation at the given sorted-sequence index.
func (p *AdmissionPolicy) RemoveNeighborAt(index int) error {
	relations := p.group.relations
	if index < 0 || index >= len(relations) {
		return lookupErr("AdmissionPolicy.RemoveNeighborAt", "index", fmt.Sprintf("%d", index))
	}
	p.group.relations = append(relations[:index], relations[index+1:]...)
	return nil
}

// RemoveNeighbors clears the sequence entirely.
func (p *AdmissionPolicy) RemoveNeighbors() {
	p.group.relations = p.group.relations[:0]
}

// String renders the policy for debugging.
func (p *AdmissionPolicy) String() string { return p.Info(0) }

// Info renders the policy with the given propagation depth. A depth greater
// than zero additionally lists the current neighbor count against the cap.
func (p *AdmissionPolicy) Info(depth int) string {
	str := fmt.Sprintf("AdmissionPolicy[radius=%v cap=%d replaceFarther=%v]", p.radius, p.cap, p.replaceFarther)
	if depth > 0 && p.group != nil {
		str += fmt.Sprintf(" neighbors=%d/%d", len(p.group.relations), p.cap)
	}
	return str
}
