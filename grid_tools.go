package space

import "github.com/go-gl/mathgl/mgl32"

// BuildDistanceField samples shape's closest-surface-point distance at
// every cell of grid and writes the result in place, overwriting whatever
// values the grid previously held. grid must be three-dimensional with a
// one-component value, matching SpaceShape's fixed dimensionality.
func BuildDistanceField(grid *SpaceGrid, shape *SpaceShape) error {
	const op = "BuildDistanceField"
	if grid.Dim() != 3 {
		return unsupportedErr(op, "distance fields are only supported over a three-dimensional grid")
	}
	if grid.ValueDim() != 1 {
		return unsupportedErr(op, "distance fields require a grid with one-component values")
	}
	indices := grid.indicesInBox(grid.MinPos(), grid.MaxPos())
	for _, idx := range indices {
		pos := grid.index2Position(idx)
		world := mgl32.Vec3{float32(pos[0]), float32(pos[1]), float32(pos[2])}
		closest, err := shape.ClosestPoint(world)
		if err != nil {
			return err
		}
		dist := float64(world.Sub(closest).Len())
		if err := grid.SetGridValue(idx, Vector{dist}); err != nil {
			return err
		}
	}
	return nil
}
