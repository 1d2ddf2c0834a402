package space

import "fmt"

const defaultErrorBound = 0.0

// ANN wraps the same balanced k-d tree KDTree uses but prunes a branch once
// its minimum possible distance exceeds the current worst admitted
// candidate scaled by 1/(1+ErrorBound), trading exactness for fewer nodes
// visited on large visible sets.
type ANN struct {
	hdr        algHeader
	tree       *kdtree
	errorBound float64
}

// ANNOption configures an ANN algorithm at construction.
type ANNOption func(*ANN)

// WithErrorBound sets the approximation factor: 0 behaves like an exact
// search, and larger values prune more aggressively at the cost of
// occasionally missing a true nearest candidate.
func WithErrorBound(bound float64) ANNOption {
	return func(a *ANN) { a.errorBound = bound }
}

// NewANN returns an unbounded ANN of the given dimension.
func NewANN(dim int, opts ...ANNOption) *ANN {
	a := &ANN{hdr: newUnboundedHeader(dim), errorBound: defaultErrorBound}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *ANN) header() *algHeader { return &a.hdr }

func (a *ANN) Bounded() bool  { return a.hdr.Bounded() }
func (a *ANN) Dim() int       { return a.hdr.Dim() }
func (a *ANN) MinPos() Vector { return a.hdr.MinPos() }
func (a *ANN) MaxPos() Vector { return a.hdr.MaxPos() }

func (a *ANN) Resize(min, max Vector) error {
	if err := a.hdr.resizeBoundedGuard("ANN.Resize"); err != nil {
		return err
	}
	a.hdr.setBounds(min, max)
	return nil
}

func (a *ANN) UpdateStructure(visible []*SpaceProxy) error {
	a.tree = buildKDTree(visible, a.hdr.dim)
	return nil
}

func (a *ANN) UpdateNeighbors(capable []*SpaceProxy) error {
	const op = "ANN.UpdateNeighbors"
	if a.tree == nil {
		return nil
	}
	for _, p := range capable {
		if p.Object().Dim() != a.hdr.dim {
			return dimErr(op, a.hdr.dim, p.Object().Dim())
		}
		p.Group().Clear()
		a.tree.search(p, p.Group().Policy(), kdSearchOpts{errorBound: a.errorBound})
	}
	return nil
}

func (a *ANN) String() string { return a.Info(0) }

func (a *ANN) Info(depth int) string {
	return fmt.Sprintf("ANN[dim=%d errorBound=%v]", a.hdr.dim, a.errorBound)
}
