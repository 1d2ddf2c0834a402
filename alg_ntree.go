package space

import "fmt"

// NTree indexes a bounded domain with a recursive 2^D partition and answers
// neighbor queries with the ascent/descent search in ntree_visitor.go.
type NTree struct {
	hdr  algHeader
	tree *ntree
}

// NewNTree returns a bounded NTree over [min, max].
func NewNTree(min, max Vector, opts ...NTreeOption) (*NTree, error) {
	header, err := newBoundedHeader(min, max)
	if err != nil {
		return nil, err
	}
	o := newNTreeOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &NTree{
		hdr:  header,
		tree: newNTree(header.dim, header.minPos, header.maxPos, o),
	}, nil
}

func (a *NTree) header() *algHeader { return &a.hdr }

func (a *NTree) Bounded() bool  { return a.hdr.Bounded() }
func (a *NTree) Dim() int       { return a.hdr.Dim() }
func (a *NTree) MinPos() Vector { return a.hdr.MinPos() }
func (a *NTree) MaxPos() Vector { return a.hdr.MaxPos() }

// Resize is rejected: an NTree's domain is fixed at construction.
func (a *NTree) Resize(min, max Vector) error {
	return a.hdr.resizeBoundedGuard("NTree.Resize")
}

// UpdateStructure reassigns the visible set across the partition, keeping
// existing nodes where their subdivision decision is unchanged.
func (a *NTree) UpdateStructure(visible []*SpaceProxy) error {
	a.tree.update(visible)
	return nil
}

// UpdateNeighbors clears each capable proxy's list, then runs the
// ascent/descent search against the partition built by UpdateStructure.
func (a *NTree) UpdateNeighbors(capable []*SpaceProxy) error {
	const op = "NTree.UpdateNeighbors"
	for _, p := range capable {
		if p.Object().Dim() != a.hdr.dim {
			return dimErr(op, a.hdr.dim, p.Object().Dim())
		}
		p.Group().Clear()
		a.tree.searchNeighbors(p, p.Group().Policy())
	}
	return nil
}

func (a *NTree) String() string { return a.Info(0) }

func (a *NTree) Info(depth int) string {
	return fmt.Sprintf("NTree[dim=%d min=%v max=%v maxDepth=%d]", a.hdr.dim, a.hdr.minPos, a.hdr.maxPos, a.tree.opts.maxDepth)
}
