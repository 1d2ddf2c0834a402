package space

import (
	"math"
	"testing"

	"github.com/bisnad/ofxDabSpace/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// An exact ANN (ErrorBound 0) must agree with KDTree on a small, well
// separated point set: zero approximation tolerance should never prune a
// branch that could contain the true nearest candidate.
func TestANNMatchesExactSearchAtZeroErrorBound(t *testing.T) {
	points := []Vector{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {5, 5, 5}, {-3, -3, -3}, {20, 20, 20}}

	kd := NewKDTree(3)
	kdSpace := NewSpace("kd", kd)
	ann := NewANN(3, WithErrorBound(0))
	annSpace := NewSpace("ann", ann)

	kdObjects := make([]*SpaceObject, len(points))
	annObjects := make([]*SpaceObject, len(points))
	for i, p := range points {
		kdObjects[i] = NewSpaceObjectAt(p)
		if err := kdSpace.AddObject(kdObjects[i], true, NewAdmissionPolicy(WithCap(2), WithRadius(-1))); err != nil {
			t.Fatal(err)
		}
		annObjects[i] = NewSpaceObjectAt(p)
		if err := annSpace.AddObject(annObjects[i], true, NewAdmissionPolicy(WithCap(2), WithRadius(-1))); err != nil {
			t.Fatal(err)
		}
	}

	if err := kdSpace.Update(); err != nil {
		t.Fatal(err)
	}
	if err := annSpace.Update(); err != nil {
		t.Fatal(err)
	}

	for i := range points {
		kdNeighbors, err := kdObjects[i].Neighbors("kd")
		if err != nil {
			t.Fatal(err)
		}
		annNeighbors, err := annObjects[i].Neighbors("ann")
		if err != nil {
			t.Fatal(err)
		}
		if kdNeighbors.Len() != annNeighbors.Len() {
			t.Fatalf("point %d: kd found %d neighbors, ann found %d", i, kdNeighbors.Len(), annNeighbors.Len())
		}
		for j := 0; j < kdNeighbors.Len(); j++ {
			if math.Abs(kdNeighbors.At(j).Distance()-annNeighbors.At(j).Distance()) > 1e-9 {
				t.Fatalf("point %d neighbor %d: kd distance %v, ann distance %v",
					i, j, kdNeighbors.At(j).Distance(), annNeighbors.At(j).Distance())
			}
		}
	}
}

// RTreeShape mode must measure distance to a target's closest surface point
// rather than to its anchor position.
func TestRTreeShapeModeUsesClosestSurfacePoint(t *testing.T) {
	alg, err := NewRTree(Vector{-10, -10, -10}, Vector{10, 10, 10}, RTreeShape)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("rtree-shape", alg)

	observer := NewSpaceObjectAt(Vector{0, 0, 0})
	if err := s.AddObject(observer, true, NewAdmissionPolicy(WithCap(1), WithRadius(20))); err != nil {
		t.Fatal(err)
	}

	line := geometry.Line{A: mgl32.Vec3{5, -5, 0}, B: mgl32.Vec3{5, 5, 0}}
	shape := NewSpaceShape(line)
	if err := s.AddObject(shape.Object(), true, NewAdmissionPolicy()); err != nil {
		t.Fatal(err)
	}
	shape.Object().SetShape(shape)

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := observer.Neighbors("rtree-shape")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 1 {
		t.Fatalf("expected one neighbor, got %d", neighbors.Len())
	}
	rel := neighbors.At(0)
	if math.Abs(rel.Distance()-5.0) > 1e-4 {
		t.Fatalf("expected distance 5 (to the line's closest point), got %v", rel.Distance())
	}
}

// GridAvgLocation must return the exact N-linearly interpolated value at the
// query position, not merely one of the surrounding cells' raw values.
func TestGridAvgLocationInterpolates(t *testing.T) {
	grid, err := NewSpaceGrid(1, []int{2, 2}, Vector{0, 0}, Vector{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{0, 0}, Vector{0}); err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{1, 0}, Vector{10}); err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{0, 1}, Vector{0}); err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{1, 1}, Vector{10}); err != nil {
		t.Fatal(err)
	}

	alg, err := NewGridAlgWithGrid(grid, GridAvgLocation, GridNoUpdate)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("grid-avg", alg)

	// Cell centres lie at 0.25 and 0.75 on each axis; x = 0.625 is three
	// quarters of the way from cell 0's centre to cell 1's, y = 0.25 is on
	// row 0's centre.
	proxy := NewSpaceObjectAt(Vector{0.625, 0.25})
	if err := s.AddObject(proxy, true, NewAdmissionPolicy(WithCap(1), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := proxy.Neighbors("grid-avg")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 1 {
		t.Fatalf("expected one synthetic neighbor, got %d", neighbors.Len())
	}
	want := 7.5
	if math.Abs(neighbors.At(0).Value()[0]-want) > 1e-9 {
		t.Fatalf("expected interpolated value %v, got %v", want, neighbors.At(0).Value()[0])
	}
}

// GridNearestReplace write-back must land in the nearest cell and leave
// others untouched.
func TestGridWriteBackNearestReplace(t *testing.T) {
	grid, err := NewSpaceGrid(1, []int{4, 4}, Vector{0, 0}, Vector{4, 4})
	if err != nil {
		t.Fatal(err)
	}

	alg, err := NewGridAlgWithGrid(grid, GridCellLocation, GridNearestReplace)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("grid-write", alg)

	proxy := NewSpaceObjectAt(Vector{1.1, 1.1})
	proxy.SetValue(Vector{42})
	if err := s.AddObject(proxy, true, NewAdmissionPolicy(WithCap(1), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	idx := grid.position2Index(Vector{1.1, 1.1})
	value, err := grid.GridValue(idx)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(value[0]-42) > 1e-9 {
		t.Fatalf("expected the nearest cell to hold 42, got %v", value[0])
	}

	other, err := grid.GridValue([]int{3, 3})
	if err != nil {
		t.Fatal(err)
	}
	if other[0] != 0 {
		t.Fatalf("expected untouched cell to remain zero, got %v", other[0])
	}
}

// GridAvgRegion must weight each cell's contribution to the centroid by its
// signed component sum, not its magnitude, and must emit the mean of the
// scanned values rather than a re-interpolated read at the centroid.
func TestGridAvgRegionWeightsBySignedSum(t *testing.T) {
	grid, err := NewSpaceGrid(2, []int{2, 2}, Vector{0, 0}, Vector{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	// (0,0) and (1,0) both have sum 2 despite very different magnitudes;
	// the other two cells stay zero.
	if err := grid.SetGridValue([]int{0, 0}, Vector{1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{1, 0}, Vector{3, -1}); err != nil {
		t.Fatal(err)
	}

	alg, err := NewGridAlgWithGrid(grid, GridAvgRegion, GridNoUpdate)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("grid-avg-region", alg)

	proxy := NewSpaceObjectAt(Vector{1, 1})
	if err := s.AddObject(proxy, true, NewAdmissionPolicy(WithCap(1), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := proxy.Neighbors("grid-avg-region")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 1 {
		t.Fatalf("expected one synthetic neighbor, got %d", neighbors.Len())
	}
	rel := neighbors.At(0)
	// Equal-sum cells split the weight evenly regardless of magnitude, so
	// the centroid sits midway between the two cell centers.
	wantDir := Vector{0, -0.5}
	if !rel.Direction().Equal(wantDir, 1e-9) {
		t.Fatalf("expected centroid direction %v, got %v", wantDir, rel.Direction())
	}
	// The value is the mean over all four scanned cells, not just the
	// weighted two: (1+3, 1-1)/4.
	wantValue := Vector{1, 0}
	if !rel.Value().Equal(wantValue, 1e-9) {
		t.Fatalf("expected mean value %v, got %v", wantValue, rel.Value())
	}
}

// GridAvgRegion must decline to offer anything when the total signed-sum
// weight is non-positive, matching the original's totalSumValue > 0 guard.
func TestGridAvgRegionSkipsWhenWeightNonPositive(t *testing.T) {
	grid, err := NewSpaceGrid(2, []int{2, 2}, Vector{0, 0}, Vector{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{0, 0}, Vector{3, -4}); err != nil {
		t.Fatal(err)
	}

	alg, err := NewGridAlgWithGrid(grid, GridAvgRegion, GridNoUpdate)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("grid-avg-region-neg", alg)

	proxy := NewSpaceObjectAt(Vector{1, 1})
	if err := s.AddObject(proxy, true, NewAdmissionPolicy(WithCap(1), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := proxy.Neighbors("grid-avg-region-neg")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 0 {
		t.Fatalf("expected no neighbor when total weight is non-positive, got %d", neighbors.Len())
	}
}

// GridPeakSearch must keep exactly the cap cells with the highest |value|
// and emit them sorted by descending |value|, not the local maxima an
// axis-adjacency scan would find.
func TestGridPeakSearchKeepsTopCellsByMagnitude(t *testing.T) {
	grid, err := NewSpaceGrid(1, []int{5}, Vector{0}, Vector{5})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := grid.SetGridValue([]int{i}, Vector{float64(i + 1)}); err != nil {
			t.Fatal(err)
		}
	}

	alg, err := NewGridAlgWithGrid(grid, GridPeakSearch, GridNoUpdate)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("grid-peak", alg)

	proxy := NewSpaceObjectAt(Vector{2.5})
	if err := s.AddObject(proxy, true, NewAdmissionPolicy(WithCap(2), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := proxy.Neighbors("grid-peak")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 2 {
		t.Fatalf("expected the 2 highest-magnitude cells, got %d", neighbors.Len())
	}
	if got := neighbors.At(0).Value()[0]; got != 5 {
		t.Fatalf("expected the highest-magnitude cell (5) first, got %v", got)
	}
	if got := neighbors.At(1).Value()[0]; got != 4 {
		t.Fatalf("expected the second-highest-magnitude cell (4) second, got %v", got)
	}
}

// GridCentroidSearch must average the unweighted position and value of
// every cell with nonzero magnitude, counting a sum-zero cell the same as
// any other, unlike AvgRegion's sum-weighting.
func TestGridCentroidSearchAveragesNonzeroCells(t *testing.T) {
	grid, err := NewSpaceGrid(2, []int{2, 2}, Vector{0, 0}, Vector{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{0, 0}, Vector{1, 1}); err != nil {
		t.Fatal(err)
	}
	// This cell's components sum to zero but its magnitude is nonzero, so
	// CentroidSearch must still count it, unlike AvgRegion's weighting.
	if err := grid.SetGridValue([]int{1, 0}, Vector{-2, 2}); err != nil {
		t.Fatal(err)
	}

	alg, err := NewGridAlgWithGrid(grid, GridCentroidSearch, GridNoUpdate)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("grid-centroid", alg)

	proxy := NewSpaceObjectAt(Vector{1, 1})
	if err := s.AddObject(proxy, true, NewAdmissionPolicy(WithCap(1), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := proxy.Neighbors("grid-centroid")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 1 {
		t.Fatalf("expected one synthetic neighbor, got %d", neighbors.Len())
	}
	rel := neighbors.At(0)
	wantDir := Vector{0, -0.5}
	if !rel.Direction().Equal(wantDir, 1e-9) {
		t.Fatalf("expected unweighted centroid direction %v, got %v", wantDir, rel.Direction())
	}
	wantValue := Vector{-0.5, 1.5}
	if !rel.Value().Equal(wantValue, 1e-9) {
		t.Fatalf("expected mean value %v, got %v", wantValue, rel.Value())
	}
}
