package scene

import (
	"math"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
	"github.com/rayt-go/rayt/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS
	lp := l + 0.3963377774*a + 0.2158037573*b
	mp := l - 0.1055613458*a - 0.0638541728*b
	sp := l - 0.0894841775*a - 1.2914855480*b

	lp = lp * lp * lp
	mp = mp * mp * mp
	sp = sp * sp * sp

	// LMS -> linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lp-3.3077115913*mp+0.2309699292*sp,
		-1.2684380046*lp+2.6097574011*mp-0.3413193965*sp,
		-0.0041960863*lp-0.7034186147*mp+1.7076147010*sp,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a 10x10 grid of rainbow metal spheres
func NewSphereGridScene() *Scene {
	samplingConfig := core.SamplingConfig{
		Width:           640,
		Height:          360,
		SamplesPerPixel: 32,
		MaxDepth:        40,
	}

	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		Up:          core.YAxis,
		VFov:        40.0,
		AspectRatio: samplingConfig.AspectRatio(),
		Aperture:    0.02,
	}

	s := NewScene(cameraConfig, samplingConfig)

	// Gray ground
	s.Add(NewShapeBuilder().
		Lambertian(core.Full(0.5)).
		Sphere(core.NewVec3(4.5, -1000, 4.5), 1000).
		MustBuild())

	gridSize := 10
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Min(0.35, spacing*0.35)

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz)

			s.Add(NewShapeBuilder().Material(metal).Sphere(position, sphereRadius).MustBuild())
		}
	}

	return s
}
