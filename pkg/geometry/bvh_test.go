package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rayt-go/rayt/pkg/core"
)

func randomSpheres(random *rand.Rand, count int) []Shape {
	shapes := make([]Shape, count)
	for i := range shapes {
		center := core.RandomVec3Range(random, -20, 20)
		shapes[i] = NewSphere(center, 0.2+random.Float64(), nil)
	}
	return shapes
}

func TestBVH_MatchesShapeList(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	shapes := randomSpheres(random, 200)
	list := NewShapeList(shapes...)
	bvh := NewBVH(shapes)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.RandomVec3Range(random, -30, 30)
		direction := core.RandomInUnitSphere(random)
		if direction.NearZero() {
			continue
		}
		ray := core.NewRay(origin, direction)

		listHit, listOk := list.Hit(ray, 0.001, math.MaxFloat64)
		bvhHit, bvhOk := bvh.Hit(ray, 0.001, math.MaxFloat64)
		if listOk != bvhOk {
			t.Fatalf("Ray %v: list hit=%t, BVH hit=%t", ray, listOk, bvhOk)
		}
		if listOk {
			hits++
			if listHit.T != bvhHit.T {
				t.Fatalf("Ray %v: list t=%f, BVH t=%f", ray, listHit.T, bvhHit.T)
			}
		}
	}

	if hits == 0 {
		t.Fatal("Test setup error: no rays hit anything")
	}
}

func TestBVH_LeafThresholdBoundary(t *testing.T) {
	shapes := make([]Shape, 0, leafThreshold+1)
	for i := 0; i < leafThreshold; i++ {
		shapes = append(shapes, NewSphere(core.NewVec3(float64(i)*3, 0, 0), 1, nil))
	}

	stats := NewBVH(shapes).getStats()
	if stats.totalNodes != 1 || stats.leafNodes != 1 {
		t.Errorf("Expected a single leaf for %d shapes, got %d nodes and %d leaves",
			len(shapes), stats.totalNodes, stats.leafNodes)
	}

	shapes = append(shapes, NewSphere(core.NewVec3(float64(leafThreshold)*3, 0, 0), 1, nil))
	stats = NewBVH(shapes).getStats()
	if stats.leafNodes < 2 {
		t.Errorf("Expected split for %d shapes, got %d leaves", len(shapes), stats.leafNodes)
	}
	if stats.totalShapes != len(shapes) {
		t.Errorf("Expected %d shapes in leaves, got %d", len(shapes), stats.totalShapes)
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	ray := core.NewRay(core.Zero, core.NewVec3(0, 0, -1))
	if _, isHit := bvh.Hit(ray, 0.001, math.MaxFloat64); isHit {
		t.Error("Expected empty BVH to miss")
	}
	if box := bvh.BoundingBox(); box != (core.AABB{}) {
		t.Errorf("Expected zero bounding box, got %v", box)
	}
}

func TestBVH_CoincidentCentersStayInOneLeaf(t *testing.T) {
	shapes := make([]Shape, 20)
	for i := range shapes {
		shapes[i] = NewSphere(core.Zero, float64(i+1), nil)
	}
	stats := NewBVH(shapes).getStats()
	if stats.leafNodes != 1 {
		t.Errorf("Expected one leaf for concentric spheres, got %d", stats.leafNodes)
	}
}

func TestBVH_MatchesShapeListForSmallDirections(t *testing.T) {
	shapes := []Shape{NewSphere(core.NewVec3(0, 0, -1000), 5, nil)}
	list := NewShapeList(shapes...)
	bvh := NewBVH(shapes)

	// Unnormalized rays whose x component is tiny but drifts into the sphere
	rays := []core.Ray{
		core.NewRay(core.NewVec3(-5.5, 0, 0), core.NewVec3(1e-9, 0, -1e-6)),
		core.NewRay(core.NewVec3(5.5, 0, 0), core.NewVec3(-1e-9, 0, -1e-6)),
		core.NewRay(core.NewVec3(0, -5.2, 0), core.NewVec3(0, 5e-10, -1e-6)),
	}

	for _, ray := range rays {
		listHit, listOk := list.Hit(ray, 0.001, math.MaxFloat64)
		bvhHit, bvhOk := bvh.Hit(ray, 0.001, math.MaxFloat64)
		if !listOk {
			t.Fatalf("Ray %v: expected the list to find a hit", ray)
		}
		if !bvhOk {
			t.Fatalf("Ray %v: BVH missed a hit the list found at t=%g", ray, listHit.T)
		}
		if listHit.T != bvhHit.T {
			t.Errorf("Ray %v: list t=%g, BVH t=%g", ray, listHit.T, bvhHit.T)
		}
	}
}
