package space

import (
	"fmt"
	"sort"
)

// GridNeighborMode selects how a GridAlg samples the grid around each
// capable proxy's position.
type GridNeighborMode int

const (
	// GridCellLocation offers the value of the single cell at the proxy's
	// own position.
	GridCellLocation GridNeighborMode = iota
	// GridLocationMode offers the values at every cell neighboring the
	// proxy's position (the same cells an interpolated read would blend).
	GridLocationMode
	// GridAvgLocation offers a single N-linearly interpolated value at the
	// proxy's exact position.
	GridAvgLocation
	// GridAvgRegion offers a single value-weighted centroid location
	// computed over every cell within the proxy's search radius. Only
	// defined at grid dimension 2 or 3.
	GridAvgRegion
	// GridPeakSearch offers the cells with the highest value magnitude
	// within the proxy's search radius, at most cap of them, in
	// descending-magnitude order.
	GridPeakSearch
	// GridCentroidSearch offers a single unweighted centroid of every cell
	// within the proxy's search radius whose value magnitude exceeds zero.
	GridCentroidSearch
)

// GridUpdateMode selects how a GridAlg deposits each capable proxy's own
// carried value back into the grid after neighbor computation.
type GridUpdateMode int

const (
	// GridNoUpdate performs no write-back.
	GridNoUpdate GridUpdateMode = iota
	// GridNearestReplace overwrites the nearest cell's value.
	GridNearestReplace
	// GridNearestAdd adds to the nearest cell's value.
	GridNearestAdd
	// GridAvgReplace overwrites the surrounding cells, weighted by linear
	// interpolation.
	GridAvgReplace
	// GridAvgAdd adds to the surrounding cells, weighted by linear
	// interpolation.
	GridAvgAdd
)

// GridAlg samples or deposits into a SpaceGrid instead of discovering
// neighbors among the proxies themselves. It may own its grid or share one
// created independently, mirroring the grid/gridOwner split in the
// original grid algorithm.
type GridAlg struct {
	hdr          algHeader
	grid         *SpaceGrid
	gridOwner    bool
	neighborMode GridNeighborMode
	updateMode   GridUpdateMode
	tmpObjects   []*SpaceObject
	tmpUsed      int
}

// NewGridAlg creates and owns a new SpaceGrid.
func NewGridAlg(valueDim int, subdivisions []int, minPos, maxPos Vector, neighborMode GridNeighborMode, updateMode GridUpdateMode) (*GridAlg, error) {
	grid, err := NewSpaceGrid(valueDim, subdivisions, minPos, maxPos)
	if err != nil {
		return nil, err
	}
	header, err := newBoundedHeader(minPos, maxPos)
	if err != nil {
		return nil, err
	}
	return &GridAlg{hdr: header, grid: grid, gridOwner: true, neighborMode: neighborMode, updateMode: updateMode}, nil
}

// NewGridAlgWithGrid wraps an existing SpaceGrid the caller continues to
// own, letting several algorithms or spaces share one field.
func NewGridAlgWithGrid(grid *SpaceGrid, neighborMode GridNeighborMode, updateMode GridUpdateMode) (*GridAlg, error) {
	header, err := newBoundedHeader(grid.MinPos(), grid.MaxPos())
	if err != nil {
		return nil, err
	}
	return &GridAlg{hdr: header, grid: grid, gridOwner: false, neighborMode: neighborMode, updateMode: updateMode}, nil
}

func (a *GridAlg) header() *algHeader { return &a.hdr }

func (a *GridAlg) Bounded() bool  { return a.hdr.Bounded() }
func (a *GridAlg) Dim() int       { return a.hdr.Dim() }
func (a *GridAlg) MinPos() Vector { return a.hdr.MinPos() }
func (a *GridAlg) MaxPos() Vector { return a.hdr.MaxPos() }

// GridOwner reports whether this algorithm created the grid it uses, as
// opposed to sharing one constructed externally.
func (a *GridAlg) GridOwner() bool { return a.gridOwner }

// Grid returns the algorithm's grid.
func (a *GridAlg) Grid() *SpaceGrid { return a.grid }

// SetGrid replaces the algorithm's grid with one the caller continues to
// own, failing if its bounds disagree with the algorithm's own.
func (a *GridAlg) SetGrid(grid *SpaceGrid) error {
	if !grid.MinPos().Equal(a.hdr.minPos, 0) || !grid.MaxPos().Equal(a.hdr.maxPos, 0) {
		return unsupportedErr("GridAlg.SetGrid", "replacement grid bounds do not match the algorithm's bounds")
	}
	a.grid = grid
	a.gridOwner = false
	return nil
}

// Resize is rejected: a grid's domain is fixed at construction.
func (a *GridAlg) Resize(min, max Vector) error {
	return a.hdr.resizeBoundedGuard("GridAlg.Resize")
}

// UpdateStructure is a no-op: the grid's lattice never changes shape.
func (a *GridAlg) UpdateStructure(visible []*SpaceProxy) error {
	return nil
}

// UpdateNeighbors samples the grid for each capable proxy per the
// algorithm's neighbor mode, then deposits the proxy's own value back into
// the grid per its update mode.
func (a *GridAlg) UpdateNeighbors(capable []*SpaceProxy) error {
	const op = "GridAlg.UpdateNeighbors"
	a.tmpUsed = 0
	for _, p := range capable {
		if p.Object().Dim() != a.hdr.dim {
			return dimErr(op, a.hdr.dim, p.Object().Dim())
		}
		p.Group().Clear()
		var err error
		switch a.neighborMode {
		case GridCellLocation:
			err = a.cellLocation(p)
		case GridLocationMode:
			err = a.gridLocation(p)
		case GridAvgLocation:
			err = a.avgLocation(p)
		case GridAvgRegion:
			err = a.avgRegion(p)
		case GridPeakSearch:
			err = a.peakSearch(p)
		case GridCentroidSearch:
			err = a.centroidSearch(p)
		default:
			err = unsupportedErr(op, "unknown grid neighbor mode")
		}
		if err != nil {
			return err
		}
		if a.updateMode != GridNoUpdate {
			if err := a.writeBack(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *GridAlg) allocTmp(pos Vector) *SpaceObject {
	if a.tmpUsed >= len(a.tmpObjects) {
		a.tmpObjects = append(a.tmpObjects, NewSpaceObject(a.grid.Dim()))
	}
	obj := a.tmpObjects[a.tmpUsed]
	a.tmpUsed++
	_ = obj.SetPosition(pos)
	return obj
}

func (a *GridAlg) offer(p *SpaceProxy, worldPos, value Vector) {
	source := p.Object()
	tmp := a.allocTmp(worldPos)
	direction := worldPos.Sub(source.Position())
	p.Group().Policy().OfferValued(source, tmp, value, direction, direction.Length())
}

// cellLocation offers the value of the cell containing p's own position,
// placed at p's own position rather than the cell's center: the proxy is
// sampling its own location, not the neighboring cell's, so direction and
// distance are both zero.
func (a *GridAlg) cellLocation(p *SpaceProxy) error {
	idx := a.grid.position2Index(p.Position())
	value, err := a.grid.GridValue(idx)
	if err != nil {
		return err
	}
	a.offer(p, p.Position(), value)
	return nil
}

func (a *GridAlg) gridLocation(p *SpaceProxy) error {
	f := a.grid.position2IndexF(p.Position())
	indices, _ := a.grid.corners(f)
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		flat := a.grid.flatten(idx)
		if seen[flat] {
			continue
		}
		seen[flat] = true
		value, err := a.grid.GridValue(idx)
		if err != nil {
			return err
		}
		a.offer(p, a.grid.index2Position(idx), value)
	}
	return nil
}

func (a *GridAlg) avgLocation(p *SpaceProxy) error {
	value, err := a.grid.Value(p.Position())
	if err != nil {
		return err
	}
	a.offer(p, p.Position(), value)
	return nil
}

func (a *GridAlg) searchBox(p *SpaceProxy) (Vector, Vector) {
	radius := p.NeighborRadius()
	if radius < 0 {
		return a.grid.MinPos(), a.grid.MaxPos()
	}
	pos := p.Position()
	boxMin := make(Vector, a.grid.Dim())
	boxMax := make(Vector, a.grid.Dim())
	for i := range pos {
		boxMin[i] = pos[i] - radius
		boxMax[i] = pos[i] + radius
	}
	return boxMin, boxMax
}

// avgRegion offers the sum-weighted centroid of every cell in the search
// region together with the mean of their values, defined only at grid
// dimension 2 or 3. The weight is each cell's signed component sum, not its
// magnitude, matching the field's net value rather than its size.
func (a *GridAlg) avgRegion(p *SpaceProxy) error {
	const op = "GridAlg.avgRegion"
	if a.grid.Dim() != 2 && a.grid.Dim() != 3 {
		return unsupportedErr(op, "average-region grid neighbor mode requires grid dimension 2 or 3")
	}
	boxMin, boxMax := a.searchBox(p)
	indices := a.grid.indicesInBox(boxMin, boxMax)
	if len(indices) == 0 {
		return nil
	}
	centroid := NewVector(a.grid.Dim())
	value := NewVector(a.grid.ValueDim())
	totalWeight := 0.0
	for _, idx := range indices {
		cellValue, err := a.grid.GridValue(idx)
		if err != nil {
			return err
		}
		weight := cellValue.Sum()
		centroid = centroid.Add(a.grid.index2Position(idx).Scale(weight))
		value = value.Add(cellValue)
		totalWeight += weight
	}
	if totalWeight <= 0 {
		return nil
	}
	centroid = centroid.Scale(1 / totalWeight)
	value = value.Scale(1 / float64(len(indices)))
	a.offer(p, centroid, value)
	return nil
}

// centroidSearch offers the unweighted centroid, and the mean value, of
// every cell in the search region whose value magnitude is nonzero. Like
// avgRegion but with no dimension restriction and no sum-weighting.
func (a *GridAlg) centroidSearch(p *SpaceProxy) error {
	boxMin, boxMax := a.searchBox(p)
	indices := a.grid.indicesInBox(boxMin, boxMax)
	centroid := NewVector(a.grid.Dim())
	value := NewVector(a.grid.ValueDim())
	count := 0
	for _, idx := range indices {
		cellValue, err := a.grid.GridValue(idx)
		if err != nil {
			return err
		}
		if cellValue.Length() == 0 {
			continue
		}
		centroid = centroid.Add(a.grid.index2Position(idx))
		value = value.Add(cellValue)
		count++
	}
	if count == 0 {
		return nil
	}
	centroid = centroid.Scale(1 / float64(count))
	value = value.Scale(1 / float64(count))
	a.offer(p, centroid, value)
	return nil
}

// peakSearch keeps the cap cells with the highest |value| in the search
// region and offers them in descending-magnitude order, bypassing the
// admission policy's usual ascending-distance sort since this mode ranks by
// value, not by distance.
func (a *GridAlg) peakSearch(p *SpaceProxy) error {
	boxMin, boxMax := a.searchBox(p)
	indices := a.grid.indicesInBox(boxMin, boxMax)

	type candidate struct {
		idx       []int
		value     Vector
		magnitude float64
	}
	var candidates []candidate
	for _, idx := range indices {
		value, err := a.grid.GridValue(idx)
		if err != nil {
			return err
		}
		magnitude := value.Length()
		if magnitude == 0 {
			continue
		}
		candidates = append(candidates, candidate{idx: idx, value: value, magnitude: magnitude})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].magnitude > candidates[j].magnitude })

	capLimit := p.Group().Policy().Cap()
	if capLimit >= 0 && len(candidates) > capLimit {
		candidates = candidates[:capLimit]
	}

	group := p.Group()
	source := p.Object()
	for _, c := range candidates {
		pos := a.grid.index2Position(c.idx)
		tmp := a.allocTmp(pos)
		direction := pos.Sub(source.Position())
		group.relations = append(group.relations, newValuedNeighborRelation(source, tmp, c.value, direction, direction.Length()))
	}
	return nil
}

func (a *GridAlg) writeBack(p *SpaceProxy) error {
	value := p.Object().Value()
	if value == nil {
		return nil
	}
	pos := p.Position()
	switch a.updateMode {
	case GridNearestReplace:
		return a.grid.SetValue(pos, value, GridNearest)
	case GridNearestAdd:
		return a.grid.ChangeValue(pos, value, GridNearest)
	case GridAvgReplace:
		return a.grid.SetValue(pos, value, GridInterpol)
	case GridAvgAdd:
		return a.grid.ChangeValue(pos, value, GridInterpol)
	default:
		return nil
	}
}

func (a *GridAlg) String() string { return a.Info(0) }

func (a *GridAlg) Info(depth int) string {
	return fmt.Sprintf("GridAlg[dim=%d subdivisions=%v neighborMode=%d updateMode=%d owner=%v]",
		a.grid.Dim(), a.grid.SubdivisionCount(), a.neighborMode, a.updateMode, a.gridOwner)
}
