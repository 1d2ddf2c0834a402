package space

import "fmt"

// KDTree indexes the visible set with a balanced k-d tree rebuilt from
// scratch every tick and answers neighbor queries with a branch-and-bound
// search that prunes no branch able to hold an admissible candidate.
type KDTree struct {
	hdr  algHeader
	tree *kdtree
}

// NewKDTree returns an unbounded KDTree of the given dimension.
func NewKDTree(dim int) *KDTree {
	return &KDTree{hdr: newUnboundedHeader(dim)}
}

// NewBoundedKDTree returns a KDTree whose domain is fixed at [min, max].
func NewBoundedKDTree(min, max Vector) (*KDTree, error) {
	header, err := newBoundedHeader(min, max)
	if err != nil {
		return nil, err
	}
	return &KDTree{hdr: header}, nil
}

func (a *KDTree) header() *algHeader { return &a.hdr }

func (a *KDTree) Bounded() bool  { return a.hdr.Bounded() }
func (a *KDTree) Dim() int       { return a.hdr.Dim() }
func (a *KDTree) MinPos() Vector { return a.hdr.MinPos() }
func (a *KDTree) MaxPos() Vector { return a.hdr.MaxPos() }

// Resize rejects the call on a bounded KDTree; an unbounded one just
// records the expanded running bounds.
func (a *KDTree) Resize(min, max Vector) error {
	if err := a.hdr.resizeBoundedGuard("KDTree.Resize"); err != nil {
		return err
	}
	a.hdr.setBounds(min, max)
	return nil
}

// UpdateStructure rebuilds the balanced tree from the visible set.
func (a *KDTree) UpdateStructure(visible []*SpaceProxy) error {
	a.tree = buildKDTree(visible, a.hdr.dim)
	return nil
}

// UpdateNeighbors clears each capable proxy's list and searches the tree
// built by UpdateStructure, skipping the proxy itself via
// AdmissionPolicy.Offer's source==target check. With replace-farther on,
// the list ends up holding the cap nearest candidates within the radius.
// With it off, a full list keeps the candidates offered first in tree-visit
// order, which are not necessarily the nearest ones.
func (a *KDTree) UpdateNeighbors(capable []*SpaceProxy) error {
	const op = "KDTree.UpdateNeighbors"
	if a.tree == nil {
		return nil
	}
	for _, p := range capable {
		if p.Object().Dim() != a.hdr.dim {
			return dimErr(op, a.hdr.dim, p.Object().Dim())
		}
		p.Group().Clear()
		a.tree.search(p, p.Group().Policy(), kdSearchOpts{})
	}
	return nil
}

func (a *KDTree) String() string { return a.Info(0) }

func (a *KDTree) Info(depth int) string {
	return fmt.Sprintf("KDTree[dim=%d bounded=%v]", a.hdr.dim, a.hdr.bounded)
}
