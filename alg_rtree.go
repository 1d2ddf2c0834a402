package space

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// RTreeClosestPointMode selects what an RTree bounds each resident by.
type RTreeClosestPointMode int

const (
	// RTreeAABB bounds every resident by a zero-volume box at its position,
	// the same point semantics every other algorithm uses.
	RTreeAABB RTreeClosestPointMode = iota
	// RTreeShape bounds a resident by its attached SpaceShape's world AABB
	// when it has one, falling back to a point box otherwise, and measures
	// distance to the query as the distance to the shape's closest surface
	// point rather than to its anchor position.
	RTreeShape
)

// RTree indexes the visible set's fixed three-dimensional bounding boxes
// with a quadratic-split r-tree, rebuilt from scratch every tick.
type RTree struct {
	hdr  algHeader
	mode RTreeClosestPointMode
	tree *rtree
}

// NewRTree returns an RTree fixed to three dimensions and bounded by
// [min, max], both of length 3.
func NewRTree(min, max Vector, mode RTreeClosestPointMode) (*RTree, error) {
	const op = "NewRTree"
	if len(min) != 3 || len(max) != 3 {
		return nil, unsupportedErr(op, "r-tree is fixed at dimension 3")
	}
	header, err := newBoundedHeader(min, max)
	if err != nil {
		return nil, err
	}
	return &RTree{hdr: header, mode: mode}, nil
}

func (a *RTree) header() *algHeader { return &a.hdr }

func (a *RTree) Bounded() bool  { return a.hdr.Bounded() }
func (a *RTree) Dim() int       { return a.hdr.Dim() }
func (a *RTree) MinPos() Vector { return a.hdr.MinPos() }
func (a *RTree) MaxPos() Vector { return a.hdr.MaxPos() }

// Resize is rejected: an RTree's domain is fixed at construction.
func (a *RTree) Resize(min, max Vector) error {
	return a.hdr.resizeBoundedGuard("RTree.Resize")
}

// UpdateStructure rebuilds the r-tree from the visible set's bounding
// boxes.
func (a *RTree) UpdateStructure(visible []*SpaceProxy) error {
	a.tree = newRTree(defaultRTreeMinChildren, defaultRTreeMaxChildren)
	for _, p := range visible {
		a.tree.insert(a.boxOf(p), p)
	}
	return nil
}

func (a *RTree) boxOf(p *SpaceProxy) aabb3 {
	if a.mode == RTreeShape {
		if s := p.Object().Shape(); s != nil {
			box := s.AABB()
			return aabb3{
				minX: float64(box.Min[0]), minY: float64(box.Min[1]), minZ: float64(box.Min[2]),
				maxX: float64(box.Max[0]), maxY: float64(box.Max[1]), maxZ: float64(box.Max[2]),
			}
		}
	}
	return boxFromPoint(p.Position())
}

// UpdateNeighbors clears each capable proxy's list, then offers every
// resident whose box overlaps the proxy's query box. In RTreeShape mode the
// admitted distance and direction are measured to the target's closest
// surface point rather than its anchor position.
func (a *RTree) UpdateNeighbors(capable []*SpaceProxy) error {
	const op = "RTree.UpdateNeighbors"
	if a.tree == nil {
		return nil
	}
	for _, p := range capable {
		if p.Object().Dim() != a.hdr.dim {
			return dimErr(op, a.hdr.dim, p.Object().Dim())
		}
		p.Group().Clear()
		box := a.boxOf(p)
		radius := p.NeighborRadius()
		if radius >= 0 {
			box.minX -= radius
			box.minY -= radius
			box.minZ -= radius
			box.maxX += radius
			box.maxY += radius
			box.maxZ += radius
		}
		if a.mode != RTreeShape {
			a.tree.search(box, p.Object(), p.Group().Policy())
			continue
		}
		a.searchShape(p, box)
	}
	return nil
}

// searchShape runs the same box-overlap search as the AABB mode but rewrites
// each candidate's distance and direction to the closest-surface-point
// measurement before offering it to the admission policy, since Offer's
// own position subtraction only knows about anchor points.
func (a *RTree) searchShape(p *SpaceProxy, box aabb3) {
	policy := p.Group().Policy()
	ref := vecToMgl32(p.Position())
	a.tree.searchNode(a.tree.rootIndex, box, p.Object(), &shapeOfferPolicy{policy: policy, ref: ref})
}

// shapeOfferPolicy adapts rtree.searchNode's plain *AdmissionPolicy calls
// into closest-point-aware admission by intercepting Offer.
type shapeOfferPolicy struct {
	policy *AdmissionPolicy
	ref    mgl32.Vec3
}

func (s *shapeOfferPolicy) Full() bool { return s.policy.Full() }

func (s *shapeOfferPolicy) Offer(source, target *SpaceObject) bool {
	if source == target {
		return false
	}
	shape := target.Shape()
	if shape == nil {
		return s.policy.Offer(source, target)
	}
	closest, err := shape.ClosestPoint(s.ref)
	if err != nil {
		return s.policy.Offer(source, target)
	}
	direction := Vector{float64(closest[0]) - float64(s.ref[0]), float64(closest[1]) - float64(s.ref[1]), float64(closest[2]) - float64(s.ref[2])}
	return s.policy.OfferWithDistance(source, target, direction.Length(), direction)
}

func vecToMgl32(v Vector) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3 && i < len(v); i++ {
		out[i] = float32(v[i])
	}
	return out
}

func (a *RTree) String() string { return a.Info(0) }

func (a *RTree) Info(depth int) string {
	return fmt.Sprintf("RTree[min=%v max=%v mode=%d]", a.hdr.minPos, a.hdr.maxPos, a.mode)
}
