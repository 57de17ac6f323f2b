package scene

import (
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
)

// NewRandomScene creates the classic cover scene: a large ground sphere, a 22x22
// grid of small randomly placed spheres with random materials, and three large
// spheres (glass, diffuse, metal). The layout is drawn from random.
func NewRandomScene(random *rand.Rand) *Scene {
	samplingConfig := core.DefaultSamplingConfig()

	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.YAxis,
		VFov:        20.0,
		AspectRatio: samplingConfig.AspectRatio(),
		Aperture:    0.025,
	}

	s := NewScene(cameraConfig, samplingConfig)

	// Ground
	s.Add(NewShapeBuilder().
		Lambertian(core.Full(0.5)).
		Sphere(core.NewVec3(0, -1000, 0), 1000).
		MustBuild())

	// Small spheres
	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choice := core.RandomVec3(random)
			center := core.NewVec3(float64(a)+0.9*choice.X, 0.2, float64(b)+0.9*choice.Y)
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			builder := NewShapeBuilder()
			switch materialChoice := choice.Z; {
			case materialChoice < 0.8:
				albedo := core.RandomVec3(random).MultiplyVec(core.RandomVec3(random))
				builder.Lambertian(albedo)
			case materialChoice < 0.95:
				albedo := core.RandomVec3Range(random, 0.5, 1.0)
				builder.Metal(albedo, random.Float64())
			default:
				builder.Dielectric(1.5)
			}
			s.Add(builder.Sphere(center, 0.2).MustBuild())
		}
	}

	// Big spheres
	s.Add(
		NewShapeBuilder().Dielectric(1.5).Sphere(core.NewVec3(0, 1, 0), 1.0).MustBuild(),
		NewShapeBuilder().Lambertian(core.NewVec3(0.4, 0.2, 0.1)).Sphere(core.NewVec3(-4, 1, 0), 1.0).MustBuild(),
		NewShapeBuilder().Metal(core.NewVec3(0.7, 0.6, 0.5), 0.0).Sphere(core.NewVec3(4, 1, 0), 1.0).MustBuild(),
	)

	return s
}
