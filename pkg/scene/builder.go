package scene

import (
	"fmt"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
	"github.com/rayt-go/rayt/pkg/material"
)

// ShapeBuilder assembles a single shape by choosing a material first and then
// the geometry that uses it:
//
//	shape, err := NewShapeBuilder().Metal(albedo, 0.1).Sphere(center, 0.5).Build()
type ShapeBuilder struct {
	material material.Material
	shape    geometry.Shape
	err      error
}

// NewShapeBuilder creates an empty builder
func NewShapeBuilder() *ShapeBuilder {
	return &ShapeBuilder{}
}

// Lambertian selects a diffuse material
func (b *ShapeBuilder) Lambertian(albedo core.Color) *ShapeBuilder {
	b.material = material.NewLambertian(albedo)
	return b
}

// Metal selects a reflective material
func (b *ShapeBuilder) Metal(albedo core.Color, fuzz float64) *ShapeBuilder {
	b.material = material.NewMetal(albedo, fuzz)
	return b
}

// Dielectric selects a refractive material
func (b *ShapeBuilder) Dielectric(refractiveIndex float64) *ShapeBuilder {
	b.material = material.NewDielectric(refractiveIndex)
	return b
}

// Material selects an existing material, allowing it to be shared between shapes
func (b *ShapeBuilder) Material(mat material.Material) *ShapeBuilder {
	b.material = mat
	return b
}

// Sphere creates a sphere with the selected material. The material is consumed.
func (b *ShapeBuilder) Sphere(center core.Point3, radius float64) *ShapeBuilder {
	if b.material == nil {
		b.err = fmt.Errorf("sphere at %v has no material", center)
		return b
	}
	b.shape = geometry.NewSphere(center, radius, b.material)
	b.material = nil
	return b
}

// Build returns the shape, or an error if no shape was completed
func (b *ShapeBuilder) Build() (geometry.Shape, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.shape == nil {
		return nil, fmt.Errorf("no shape specified")
	}
	return b.shape, nil
}

// MustBuild is like Build but panics on error. It is meant for scenes built
// from constant values.
func (b *ShapeBuilder) MustBuild() geometry.Shape {
	shape, err := b.Build()
	if err != nil {
		panic(err)
	}
	return shape
}
