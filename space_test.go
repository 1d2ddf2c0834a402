package space

import (
	"math"
	"testing"

	"github.com/bisnad/ofxDabSpace/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

func closeVec(a, b Vector, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// S1 — Permanent pair.
func TestScenarioPermanentPair(t *testing.T) {
	alg := NewPermanentNeighbors(3)
	s := NewSpace("s1", alg)

	a := NewSpaceObjectAt(Vector{0, 0, 0})
	b := NewSpaceObjectAt(Vector{3, 4, 0})
	if err := s.AddObject(a, true, NewAdmissionPolicy()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddObject(b, true, NewAdmissionPolicy()); err != nil {
		t.Fatal(err)
	}

	groupA, err := a.NeighborGroup("s1")
	if err != nil {
		t.Fatal(err)
	}
	groupA.Connect(b)

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := a.Neighbors("s1")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 1 {
		t.Fatalf("expected exactly one relation, got %d", neighbors.Len())
	}
	rel := neighbors.At(0)
	if math.Abs(rel.Distance()-5.0) > 1e-9 {
		t.Fatalf("expected distance 5.0, got %v", rel.Distance())
	}
	if !closeVec(rel.Direction(), Vector{3, 4, 0}, 1e-9) {
		t.Fatalf("expected direction (3,4,0), got %v", rel.Direction())
	}
}

// S2 — Symmetric two-object k-NN.
func TestScenarioSymmetricKNN(t *testing.T) {
	alg := NewKDTree(3)
	s := NewSpace("s2", alg)

	a := NewSpaceObjectAt(Vector{0, 0, 0})
	b := NewSpaceObjectAt(Vector{1, 0, 0})
	policy := func() *AdmissionPolicy { return NewAdmissionPolicy(WithCap(1), WithRadius(10)) }
	if err := s.AddObject(a, true, policy()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddObject(b, true, policy()); err != nil {
		t.Fatal(err)
	}

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	for _, pair := range []struct {
		self, other *SpaceObject
	}{{a, b}, {b, a}} {
		neighbors, err := pair.self.Neighbors("s2")
		if err != nil {
			t.Fatal(err)
		}
		if neighbors.Len() != 1 {
			t.Fatalf("expected exactly one neighbor, got %d", neighbors.Len())
		}
		if neighbors.At(0).Target() != pair.other {
			t.Fatalf("expected the other object as neighbor")
		}
		if math.Abs(neighbors.At(0).Distance()-1.0) > 1e-9 {
			t.Fatalf("expected distance 1, got %v", neighbors.At(0).Distance())
		}
	}
}

// S3 — Cap and replace.
func TestScenarioCapAndReplace(t *testing.T) {
	min, max := Vector{-10, -10, -10}, Vector{10, 10, 10}
	alg, err := NewNTree(min, max)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("s3", alg)

	source := NewSpaceObjectAt(Vector{0, 0, 0})
	if err := s.AddObject(source, true, NewAdmissionPolicy(WithCap(2), WithRadius(1.0), WithReplaceFarther(true))); err != nil {
		t.Fatal(err)
	}

	distances := []float64{0.1, 0.2, 0.3, 0.4}
	candidates := make([]*SpaceObject, len(distances))
	for i, d := range distances {
		candidates[i] = NewSpaceObjectAt(Vector{d, 0, 0})
		if err := s.AddObject(candidates[i], true, NewAdmissionPolicy()); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := source.Neighbors("s3")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 2 {
		t.Fatalf("expected cap of 2, got %d", neighbors.Len())
	}
	if neighbors.At(0).Target() != candidates[0] || neighbors.At(1).Target() != candidates[1] {
		t.Fatalf("expected the two closest candidates in ascending order, got %v then %v",
			neighbors.At(0).Target(), neighbors.At(1).Target())
	}
}

// S4 — Bounded clipping.
func TestScenarioBoundedClipping(t *testing.T) {
	alg, err := NewNTree(Vector{0, 0}, Vector{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("s4", alg)

	inBounds := NewSpaceObjectAt(Vector{0.5, 0.5})
	outOfBounds := NewSpaceObjectAt(Vector{1.5, 0.5})
	if err := s.AddObject(inBounds, true, NewAdmissionPolicy(WithCap(5), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}
	if err := s.AddObject(outOfBounds, true, NewAdmissionPolicy(WithCap(5), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := inBounds.Neighbors("s4")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 0 {
		t.Fatalf("expected no neighbors since the only candidate is out of bounds, got %d", neighbors.Len())
	}
}

// S5 — Grid CellLocation.
func TestScenarioGridCellLocation(t *testing.T) {
	grid, err := NewSpaceGrid(2, []int{2, 2}, Vector{0, 0}, Vector{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{0, 0}, Vector{5, 0}); err != nil {
		t.Fatal(err)
	}
	if err := grid.SetGridValue([]int{1, 1}, Vector{0, 7}); err != nil {
		t.Fatal(err)
	}

	alg, err := NewGridAlgWithGrid(grid, GridCellLocation, GridNoUpdate)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSpace("s5", alg)

	proxy := NewSpaceObjectAt(Vector{0.1, 0.1})
	if err := s.AddObject(proxy, true, NewAdmissionPolicy(WithCap(1), WithRadius(-1))); err != nil {
		t.Fatal(err)
	}

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}

	neighbors, err := proxy.Neighbors("s5")
	if err != nil {
		t.Fatal(err)
	}
	if neighbors.Len() != 1 {
		t.Fatalf("expected one synthetic neighbor, got %d", neighbors.Len())
	}
	rel := neighbors.At(0)
	if !closeVec(rel.Value(), Vector{5, 0}, 1e-9) {
		t.Fatalf("expected value (5,0), got %v", rel.Value())
	}
	if !closeVec(rel.Direction(), Vector{0, 0}, 1e-9) {
		t.Fatalf("expected direction (0,0), got %v", rel.Direction())
	}
	if math.Abs(rel.Distance()) > 1e-9 {
		t.Fatalf("expected distance 0, got %v", rel.Distance())
	}
}

// S6 — Shape closest point.
func TestScenarioShapeClosestPoint(t *testing.T) {
	line := geometry.Line{A: mgl32.Vec3{0, 0, 0}, B: mgl32.Vec3{1, 0, 0}}
	shape := NewSpaceShape(line)
	if err := shape.SetPosition(mgl32.Vec3{0, 0.5, 0}); err != nil {
		t.Fatal(err)
	}

	closest, err := shape.ClosestPoint(mgl32.Vec3{0.5, 1.0, 0})
	if err != nil {
		t.Fatal(err)
	}
	want := mgl32.Vec3{0.5, 0.5, 0}
	for i := 0; i < 3; i++ {
		if math.Abs(float64(closest[i]-want[i])) > 1e-5 {
			t.Fatalf("expected closest point %v, got %v", want, closest)
		}
	}
}
