package geometry

import (
	"math"
	"testing"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/material"
)

func TestShapeList_ReturnsNearestHit(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	blue := material.NewLambertian(core.NewVec3(0, 0, 1))

	// Two overlapping spheres along the -Z axis
	far := NewSphere(core.NewVec3(0, 0, -5), 2.0, red)
	near := NewSphere(core.NewVec3(0, 0, -3), 1.5, blue)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	farHit, _ := far.Hit(ray, 0.001, math.MaxFloat64)
	nearHit, _ := near.Hit(ray, 0.001, math.MaxFloat64)
	expectedT := math.Min(farHit.T, nearHit.T)

	for _, order := range [][]Shape{{far, near}, {near, far}} {
		list := NewShapeList(order...)
		hit, isHit := list.Hit(ray, 0.001, math.MaxFloat64)
		if !isHit {
			t.Fatal("Expected hit, but got miss")
		}
		if hit.T != expectedT {
			t.Errorf("Expected nearest t=%f, got t=%f", expectedT, hit.T)
		}
		if hit.Material != blue {
			t.Error("Expected the nearer sphere's material")
		}
	}
}

func TestShapeList_EmptyAndMiss(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	empty := NewShapeList()
	if _, isHit := empty.Hit(ray, 0.001, math.MaxFloat64); isHit {
		t.Error("Expected empty list to miss")
	}

	list := NewShapeList()
	list.Add(NewSphere(core.NewVec3(0, 0, -5), 1, nil))
	if _, isHit := list.Hit(ray, 0.001, math.MaxFloat64); isHit {
		t.Error("Expected ray to miss the only sphere")
	}

	box := list.BoundingBox()
	if box.Min != core.NewVec3(-1, -1, -6) || box.Max != core.NewVec3(1, 1, -4) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}
