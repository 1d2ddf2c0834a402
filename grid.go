package space

import "github.com/sirupsen/logrus"

// GridValueSetMode selects how SpaceGrid.SetValue/ChangeValue distributes a
// value at a fractional position across cells.
type GridValueSetMode int

const (
	// GridNearest writes only to the single closest cell.
	GridNearest GridValueSetMode = iota
	// GridInterpol distributes the write across the 2^gridDim cells
	// surrounding the position, weighted by linear interpolation.
	GridInterpol
)

// SpaceGrid is a dense N-dimensional grid of fixed-length value vectors
// spanning [minPos, maxPos], addressed either by per-axis grid index or by
// a continuous position that is scaled into grid space.
type SpaceGrid struct {
	gridDim       int
	valueDim      int
	subdivisions  []int
	stride        []int
	minPos        Vector
	maxPos        Vector
	positionScale Vector
	values        []Vector
	log           *logrus.Entry
}

// SetLogger scopes the grid's rescale diagnostics to the given logrus
// entry. Without this, rescales are never logged.
func (g *SpaceGrid) SetLogger(entry *logrus.Entry) { g.log = entry }

// NewSpaceGrid returns a grid with valueDim-length values at every cell of
// a gridDim-dimensional lattice sized by subdivisions, spanning
// [minPos, maxPos].
func NewSpaceGrid(valueDim int, subdivisions []int, minPos, maxPos Vector) (*SpaceGrid, error) {
	const op = "NewSpaceGrid"
	gridDim := len(subdivisions)
	if len(minPos) != gridDim || len(maxPos) != gridDim {
		return nil, dimErr(op, gridDim, len(minPos))
	}
	total := 1
	stride := make([]int, gridDim)
	for i := 0; i < gridDim; i++ {
		if subdivisions[i] <= 0 {
			return nil, unsupportedErr(op, "every subdivision count must be positive")
		}
		stride[i] = total
		total *= subdivisions[i]
	}
	g := &SpaceGrid{
		gridDim:       gridDim,
		valueDim:      valueDim,
		subdivisions:  append([]int(nil), subdivisions...),
		stride:        stride,
		minPos:        minPos.Clone(),
		maxPos:        maxPos.Clone(),
		positionScale: NewVector(gridDim),
		values:        make([]Vector, total),
	}
	for i := range g.values {
		g.values[i] = NewVector(valueDim)
	}
	g.rescale()
	return g, nil
}

func (g *SpaceGrid) rescale() {
	for i := 0; i < g.gridDim; i++ {
		span := g.maxPos[i] - g.minPos[i]
		if span == 0 {
			g.positionScale[i] = 0
			continue
		}
		g.positionScale[i] = float64(g.subdivisions[i]) / span
	}
	if g.log != nil {
		g.log.WithField("min", g.minPos).WithField("max", g.maxPos).Debug("grid rescaled")
	}
}

// Dim returns the grid's spatial dimension.
func (g *SpaceGrid) Dim() int { return g.gridDim }

// ValueDim returns the length of the value vector stored at each cell.
func (g *SpaceGrid) ValueDim() int { return g.valueDim }

// SubdivisionCount returns the per-axis cell count.
func (g *SpaceGrid) SubdivisionCount() []int { return g.subdivisions }

// MinPos returns the grid's minimum spanned position.
func (g *SpaceGrid) MinPos() Vector { return g.minPos }

// MaxPos returns the grid's maximum spanned position.
func (g *SpaceGrid) MaxPos() Vector { return g.maxPos }

// SetMinPos changes the grid's minimum spanned position, rescaling the
// position-to-index mapping. Cell contents are unchanged.
func (g *SpaceGrid) SetMinPos(pos Vector) error {
	if len(pos) != g.gridDim {
		return dimErr("SpaceGrid.SetMinPos", g.gridDim, len(pos))
	}
	g.minPos = pos.Clone()
	g.rescale()
	return nil
}

// SetMaxPos changes the grid's maximum spanned position, rescaling the
// position-to-index mapping. Cell contents are unchanged.
func (g *SpaceGrid) SetMaxPos(pos Vector) error {
	if len(pos) != g.gridDim {
		return dimErr("SpaceGrid.SetMaxPos", g.gridDim, len(pos))
	}
	g.maxPos = pos.Clone()
	g.rescale()
	return nil
}

// position2IndexF returns the fractional grid index of pos, measured so that
// the integer value i falls on cell i's centre (see index2Position), clamped
// to the valid [0, subdivisions[i]-1] range per axis.
func (g *SpaceGrid) position2IndexF(pos Vector) []float64 {
	idx := make([]float64, g.gridDim)
	for i := 0; i < g.gridDim; i++ {
		f := (pos[i]-g.minPos[i])*g.positionScale[i] - 0.5
		max := float64(g.subdivisions[i] - 1)
		if f < 0 {
			f = 0
		} else if f > max {
			f = max
		}
		idx[i] = f
	}
	return idx
}

// position2Index returns the index of the cell containing pos, which is the
// cell whose centre is nearest to it.
func (g *SpaceGrid) position2Index(pos Vector) []int {
	f := g.position2IndexF(pos)
	idx := make([]int, g.gridDim)
	for i, v := range f {
		idx[i] = int(v + 0.5)
	}
	return idx
}

// index2Position returns the world position of a grid index's cell center.
func (g *SpaceGrid) index2Position(idx []int) Vector {
	pos := make(Vector, g.gridDim)
	for i := 0; i < g.gridDim; i++ {
		if g.positionScale[i] == 0 {
			pos[i] = g.minPos[i]
			continue
		}
		pos[i] = g.minPos[i] + (float64(idx[i])+0.5)/g.positionScale[i]
	}
	return pos
}

// indicesInBox returns every grid index overlapping [boxMin, boxMax],
// clamped to the grid's own range, as the cartesian product of each axis's
// clamped index interval.
func (g *SpaceGrid) indicesInBox(boxMin, boxMax Vector) [][]int {
	minIdx := g.position2Index(boxMin)
	maxIdx := g.position2Index(boxMax)
	var result [][]int
	cur := make([]int, g.gridDim)
	var recurse func(axis int)
	recurse = func(axis int) {
		if axis == g.gridDim {
			result = append(result, append([]int(nil), cur...))
			return
		}
		lo, hi := minIdx[axis], maxIdx[axis]
		if lo > hi {
			lo, hi = hi, lo
		}
		for v := lo; v <= hi; v++ {
			cur[axis] = v
			recurse(axis + 1)
		}
	}
	recurse(0)
	return result
}

func (g *SpaceGrid) flatten(idx []int) int {
	flat := 0
	for i := 0; i < g.gridDim; i++ {
		flat += idx[i] * g.stride[i]
	}
	return flat
}

// GridValue returns the value stored at the given per-axis index. The
// returned Vector must not be mutated by the caller.
func (g *SpaceGrid) GridValue(idx []int) (Vector, error) {
	if err := g.checkIndex(idx); err != nil {
		return nil, err
	}
	return g.values[g.flatten(idx)], nil
}

// SetGridValue overwrites the value stored at the given per-axis index.
func (g *SpaceGrid) SetGridValue(idx []int, value Vector) error {
	if err := g.checkIndex(idx); err != nil {
		return err
	}
	if len(value) != g.valueDim {
		return dimErr("SpaceGrid.SetGridValue", g.valueDim, len(value))
	}
	g.values[g.flatten(idx)] = value.Clone()
	return nil
}

func (g *SpaceGrid) checkIndex(idx []int) error {
	if len(idx) != g.gridDim {
		return dimErr("SpaceGrid index", g.gridDim, len(idx))
	}
	for i, v := range idx {
		if v < 0 || v >= g.subdivisions[i] {
			return lookupErr("SpaceGrid index", "cell", "out of range")
		}
	}
	return nil
}

// SetValues overwrites every cell with the same value.
func (g *SpaceGrid) SetValues(value Vector) error {
	if len(value) != g.valueDim {
		return dimErr("SpaceGrid.SetValues", g.valueDim, len(value))
	}
	for i := range g.values {
		g.values[i] = value.Clone()
	}
	return nil
}

// ChangeValues adds value to every cell.
func (g *SpaceGrid) ChangeValues(value Vector) error {
	if len(value) != g.valueDim {
		return dimErr("SpaceGrid.ChangeValues", g.valueDim, len(value))
	}
	for i := range g.values {
		g.values[i] = g.values[i].Add(value)
	}
	return nil
}

// corners returns the grid indices and interpolation weights of the
// 2^gridDim cells surrounding the fractional index f.
func (g *SpaceGrid) corners(f []float64) ([][]int, []float64) {
	base := make([]int, g.gridDim)
	frac := make([]float64, g.gridDim)
	for i, v := range f {
		base[i] = int(v)
		if base[i] >= g.subdivisions[i]-1 {
			base[i] = g.subdivisions[i] - 2
			if base[i] < 0 {
				base[i] = 0
			}
		}
		frac[i] = v - float64(base[i])
	}
	count := 1 << g.gridDim
	indices := make([][]int, count)
	weights := make([]float64, count)
	for k := 0; k < count; k++ {
		idx := make([]int, g.gridDim)
		weight := 1.0
		for axis := 0; axis < g.gridDim; axis++ {
			if (k>>axis)&1 == 0 {
				idx[axis] = base[axis]
				weight *= 1 - frac[axis]
			} else {
				idx[axis] = base[axis] + 1
				if idx[axis] >= g.subdivisions[axis] {
					idx[axis] = g.subdivisions[axis] - 1
				}
				weight *= frac[axis]
			}
		}
		indices[k] = idx
		weights[k] = weight
	}
	return indices, weights
}

// Value returns the N-linearly interpolated value at pos.
func (g *SpaceGrid) Value(pos Vector) (Vector, error) {
	if len(pos) != g.gridDim {
		return nil, dimErr("SpaceGrid.Value", g.gridDim, len(pos))
	}
	f := g.position2IndexF(pos)
	indices, weights := g.corners(f)
	result := NewVector(g.valueDim)
	for k, idx := range indices {
		if weights[k] == 0 {
			continue
		}
		result = result.Add(g.values[g.flatten(idx)].Scale(weights[k]))
	}
	return result, nil
}

// SetValue writes value at pos, either to the single nearest cell or
// distributed across the surrounding cells weighted by interpolation.
func (g *SpaceGrid) SetValue(pos, value Vector, mode GridValueSetMode) error {
	return g.writeValue(pos, value, mode, false)
}

// ChangeValue adds value at pos, either to the single nearest cell or
// distributed across the surrounding cells weighted by interpolation.
func (g *SpaceGrid) ChangeValue(pos, value Vector, mode GridValueSetMode) error {
	return g.writeValue(pos, value, mode, true)
}

func (g *SpaceGrid) writeValue(pos, value Vector, mode GridValueSetMode, add bool) error {
	if len(pos) != g.gridDim {
		return dimErr("SpaceGrid.writeValue", g.gridDim, len(pos))
	}
	if len(value) != g.valueDim {
		return dimErr("SpaceGrid.writeValue", g.valueDim, len(value))
	}
	if mode == GridNearest {
		idx := g.position2Index(pos)
		flat := g.flatten(idx)
		if add {
			g.values[flat] = g.values[flat].Add(value)
		} else {
			g.values[flat] = value.Clone()
		}
		return nil
	}
	f := g.position2IndexF(pos)
	indices, weights := g.corners(f)
	for k, idx := range indices {
		flat := g.flatten(idx)
		contribution := value.Scale(weights[k])
		if add {
			g.values[flat] = g.values[flat].Add(contribution)
		} else {
			g.values[flat] = contribution
		}
	}
	return nil
}
