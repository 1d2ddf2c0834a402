package space

// SpaceAlgorithm is the pluggable index that turns a visible set of proxies
// into a structure and a neighbor-capable set into neighbor lists. Every variant — PermanentNeighbors, NTree,
// KDTree, ANN, RTree, Grid — shares this contract; the choice of sum type
// vs. interface does not affect the observable behavior.
type SpaceAlgorithm interface {
	// Bounded reports whether the algorithm's [min, max] domain is fixed at
	// construction. Unbounded algorithms expand to contain every proxy each
	// tick instead.
	Bounded() bool

	// Dim returns the algorithm's fixed dimension.
	Dim() int

	// MinPos and MaxPos return the algorithm's current domain bounds.
	MinPos() Vector
	MaxPos() Vector

	// Resize changes the algorithm's domain. Bounded algorithms reject this
	// with a CapacityError; unbounded algorithms call it whenever the
	// running bounds expand during classification.
	Resize(min, max Vector) error

	// UpdateStructure rebuilds or incrementally updates the internal index
	// over the visible set.
	UpdateStructure(visible []*SpaceProxy) error

	// UpdateNeighbors clears each capable proxy's neighbor list and emits
	// candidates into its admission policy. PermanentNeighbors instead keeps
	// the relations a list already holds and only refreshes them.
	UpdateNeighbors(capable []*SpaceProxy) error

	// String and Info render algorithm-specific diagnostics.
	String() string
	Info(depth int) string
}

// algHeader is the shared state every SpaceAlgorithm variant embeds:
// {bounded, min, max, D}.
type algHeader struct {
	bounded bool
	dim     int
	minPos  Vector
	maxPos  Vector
}

func newBoundedHeader(min, max Vector) (algHeader, error) {
	if len(min) != len(max) {
		return algHeader{}, dimErr("newBoundedHeader", len(min), len(max))
	}
	return algHeader{bounded: true, dim: len(min), minPos: min.Clone(), maxPos: max.Clone()}, nil
}

func newUnboundedHeader(dim int) algHeader {
	return algHeader{bounded: false, dim: dim, minPos: NewVector(dim), maxPos: NewVector(dim)}
}

func (h *algHeader) Bounded() bool  { return h.bounded }
func (h *algHeader) Dim() int       { return h.dim }
func (h *algHeader) MinPos() Vector { return h.minPos }
func (h *algHeader) MaxPos() Vector { return h.maxPos }

// resizeBoundedGuard rejects resize on algorithms whose domain is fixed at
// construction.
func (h *algHeader) resizeBoundedGuard(op string) error {
	if h.bounded {
		return capacityErr(op, "algorithm has a fixed bound and cannot be resized")
	}
	return nil
}

func (h *algHeader) setBounds(min, max Vector) {
	h.minPos = min
	h.maxPos = max
}

// classifyObjects splits proxies into visible and neighbor-capable subsets
// for one tick, classification phase. For a bounded
// algorithm, visibility additionally requires the proxy's position to lie
// within [min, max]; capability additionally requires cap != 0. For an
// unbounded algorithm, every visible proxy is included, capability is
// gated only by cap != 0, and the running bounds are expanded to contain
// every visible proxy's position.
//
// This function pins down first open question explicitly: a
// proxy with cap == 0 is never neighbor-capable, independent of visibility,
// and visibility and capability are computed independently (a proxy can be
// capable without being visible only when unbounded, where capability
// ignores the visibility flag; in the bounded case capability requires
// visibility, being in bounds, and cap != 0).
func classifyObjects(proxies []*SpaceProxy, header *algHeader) (visible, capable []*SpaceProxy, expandedMin, expandedMax Vector, expanded bool) {
	if header.bounded {
		for _, p := range proxies {
			if !p.Visible() {
				continue
			}
			pos := p.Position()
			if !pos.InBounds(header.minPos, header.maxPos) {
				continue
			}
			visible = append(visible, p)
			if p.Policy().Cap() != 0 {
				capable = append(capable, p)
			}
		}
		return visible, capable, nil, nil, false
	}

	min := header.minPos.Clone()
	max := header.maxPos.Clone()
	haveBounds := len(proxies) > 0
	for i, p := range proxies {
		if p.Policy().Cap() != 0 {
			capable = append(capable, p)
		}
		if !p.Visible() {
			continue
		}
		visible = append(visible, p)
		pos := p.Position()
		if i == 0 {
			min = pos.Clone()
			max = pos.Clone()
		} else {
			min = Min(min, pos)
			max = Max(max, pos)
		}
	}
	if haveBounds && (!min.Equal(header.minPos, 0) || !max.Equal(header.maxPos, 0)) {
		return visible, capable, min, max, true
	}
	return visible, capable, nil, nil, false
}
