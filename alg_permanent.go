package space

import (
	"fmt"
	"sort"
)

// PermanentNeighbors retains a hand-authored topology and only recomputes
// distance/direction on existing relations; it never rebuilds a structure
// and never runs candidates through the admission policy.
type PermanentNeighbors struct {
	hdr algHeader
}

// NewPermanentNeighbors returns an unbounded PermanentNeighbors algorithm
// of the given dimension.
func NewPermanentNeighbors(dim int) *PermanentNeighbors {
	return &PermanentNeighbors{hdr: newUnboundedHeader(dim)}
}

func (a *PermanentNeighbors) header() *algHeader { return &a.hdr }

func (a *PermanentNeighbors) Bounded() bool  { return a.hdr.Bounded() }
func (a *PermanentNeighbors) Dim() int       { return a.hdr.Dim() }
func (a *PermanentNeighbors) MinPos() Vector { return a.hdr.MinPos() }
func (a *PermanentNeighbors) MaxPos() Vector { return a.hdr.MaxPos() }

// Resize is a no-op beyond bookkeeping: PermanentNeighbors never consults
// its bounds.
func (a *PermanentNeighbors) Resize(min, max Vector) error {
	a.hdr.setBounds(min, max)
	return nil
}

// UpdateStructure does nothing: there is no structure to rebuild.
func (a *PermanentNeighbors) UpdateStructure(visible []*SpaceProxy) error {
	return nil
}

// UpdateNeighbors recomputes direction = target.pos - source.pos and
// distance = |direction| for every relation already stored on each capable
// proxy, then re-sorts by ascending distance so invariant 1 (non-decreasing
// distances) keeps holding even though the topology itself never changes.
func (a *PermanentNeighbors) UpdateNeighbors(capable []*SpaceProxy) error {
	const op = "PermanentNeighbors.UpdateNeighbors"
	for _, p := range capable {
		group := p.Group()
		for _, rel := range group.relations {
			if rel.source.Dim() != a.hdr.dim || rel.target.Dim() != a.hdr.dim {
				return dimErr(op, a.hdr.dim, rel.target.Dim())
			}
			rel.direction = rel.target.position.Sub(rel.source.position)
			rel.distance = rel.direction.Length()
			rel.value = rel.direction
		}
		sort.SliceStable(group.relations, func(i, j int) bool {
			return group.relations[i].distance < group.relations[j].distance
		})
	}
	return nil
}

func (a *PermanentNeighbors) String() string { return a.Info(0) }

func (a *PermanentNeighbors) Info(depth int) string {
	return fmt.Sprintf("PermanentNeighbors[dim=%d]", a.hdr.dim)
}
