package scene

import (
	"fmt"
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
	"github.com/rayt-go/rayt/pkg/integrator"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene
	World          geometry.Shape   // Aggregate over Shapes, built by Preprocess
	Integrator     *integrator.PathTracingIntegrator
	SamplingConfig core.SamplingConfig
	UseBVH         bool // Build a BVH instead of a linear list
}

// NewScene creates an empty scene with the given camera and the default sky
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig core.SamplingConfig) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         make([]geometry.Shape, 0),
		Integrator:     integrator.NewPathTracingIntegrator(nil),
		SamplingConfig: samplingConfig,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// SetImageSize changes the output resolution and rebuilds the camera so the
// image plane keeps the new aspect ratio
func (s *Scene) SetImageSize(width, height int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	if width > 0 && height > 0 {
		s.CameraConfig.AspectRatio = s.SamplingConfig.AspectRatio()
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
}

// Preprocess validates the scene and builds the world aggregate
func (s *Scene) Preprocess() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid sampling config: %w", err)
	}
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}
	if s.Integrator == nil {
		s.Integrator = integrator.NewPathTracingIntegrator(nil)
	}

	if s.UseBVH {
		s.World = geometry.NewBVH(s.Shapes)
	} else {
		s.World = geometry.NewShapeList(s.Shapes...)
	}
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetSamplingConfig returns the resolution and sampling settings
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// Trace estimates the radiance arriving along ray. Preprocess must have been called.
func (s *Scene) Trace(ray core.Ray, maxBounces int, random *rand.Rand) core.Color {
	return s.Integrator.RayColor(ray, s.World, maxBounces, random)
}

// Ready reports whether Preprocess has built the world aggregate
func (s *Scene) Ready() error {
	if s.World == nil {
		return fmt.Errorf("world not built: call Preprocess before rendering")
	}
	return nil
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
