package scene

import (
	"golang.org/x/image/colornames"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
	"github.com/rayt-go/rayt/pkg/material"
)

// NewDefaultScene creates a small scene with spheres, a ground sphere, and camera
func NewDefaultScene() *Scene {
	samplingConfig := core.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 64,
		MaxDepth:        50,
	}

	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.YAxis,
		VFov:        40.0,
		AspectRatio: samplingConfig.AspectRatio(),
		Aperture:    0.05,
	}

	s := NewScene(cameraConfig, samplingConfig)

	// Create materials
	lambertianGround := material.NewLambertian(core.ColorFromStd(colornames.Olivedrab))
	lambertianRed := material.NewLambertian(core.ColorFromStd(colornames.Firebrick))
	lambertianBlue := material.NewLambertian(core.ColorFromStd(colornames.Steelblue))
	metalSilver := material.NewMetal(core.ColorFromStd(colornames.Silver), 0.0)
	metalGold := material.NewMetal(core.ColorFromStd(colornames.Goldenrod), 0.3)
	materialGlass := material.NewDielectric(1.5)

	b := func() *ShapeBuilder { return NewShapeBuilder() }

	s.Add(
		b().Material(lambertianGround).Sphere(core.NewVec3(0, -1000, -1), 1000).MustBuild(),
		b().Material(lambertianRed).Sphere(core.NewVec3(0, 0.5, -1), 0.5).MustBuild(),
		b().Material(metalSilver).Sphere(core.NewVec3(-1, 0.5, -1), 0.5).MustBuild(),
		b().Material(metalGold).Sphere(core.NewVec3(1, 0.5, -1), 0.5).MustBuild(),
		b().Material(materialGlass).Sphere(core.NewVec3(0.5, 0.25, -0.5), 0.25).MustBuild(),

		// Hollow glass sphere with blue sphere inside
		b().Material(materialGlass).Sphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25).MustBuild(),
		b().Material(materialGlass).Sphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24).MustBuild(),
		b().Material(lambertianBlue).Sphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20).MustBuild(),
	)

	return s
}
