package scene

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
	"github.com/rayt-go/rayt/pkg/integrator"
	"github.com/rayt-go/rayt/pkg/material"
	"github.com/rayt-go/rayt/pkg/renderer"
)

func testCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 1),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.YAxis,
		VFov:        90,
		AspectRatio: 2,
	}
}

func TestScene_Preprocess(t *testing.T) {
	t.Run("builds list by default", func(t *testing.T) {
		s := NewScene(testCameraConfig(), core.DefaultSamplingConfig())
		s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.One)))
		if err := s.Preprocess(); err != nil {
			t.Fatalf("Preprocess() error = %v", err)
		}
		if _, ok := s.World.(*geometry.ShapeList); !ok {
			t.Errorf("Expected *geometry.ShapeList, got %T", s.World)
		}
	})

	t.Run("builds BVH on request", func(t *testing.T) {
		s := NewScene(testCameraConfig(), core.DefaultSamplingConfig())
		s.UseBVH = true
		if err := s.Preprocess(); err != nil {
			t.Fatalf("Preprocess() error = %v", err)
		}
		if _, ok := s.World.(*geometry.BVH); !ok {
			t.Errorf("Expected *geometry.BVH, got %T", s.World)
		}
	})

	t.Run("rejects invalid sampling", func(t *testing.T) {
		config := core.DefaultSamplingConfig()
		config.SamplesPerPixel = 0
		s := NewScene(testCameraConfig(), config)
		if err := s.Preprocess(); err == nil {
			t.Error("Expected error for zero samples per pixel")
		}
	})

	t.Run("rejects missing camera", func(t *testing.T) {
		s := &Scene{SamplingConfig: core.DefaultSamplingConfig()}
		if err := s.Preprocess(); err == nil {
			t.Error("Expected error for missing camera")
		}
	})

	t.Run("fills in integrator", func(t *testing.T) {
		s := &Scene{Camera: geometry.NewCamera(testCameraConfig()), SamplingConfig: core.DefaultSamplingConfig()}
		if err := s.Preprocess(); err != nil {
			t.Fatalf("Preprocess() error = %v", err)
		}
		if s.Integrator == nil {
			t.Error("Expected default integrator")
		}
	})
}

func TestScene_TraceEmptyWorld(t *testing.T) {
	s := NewScene(testCameraConfig(), core.DefaultSamplingConfig())
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}

	random := rand.New(rand.NewSource(42))
	got := s.Trace(core.NewRay(core.Zero, core.YAxis), 50, random)
	if got != core.NewVec3(0.5, 0.7, 1.0) {
		t.Errorf("Expected sky color looking up, got %v", got)
	}
}

func TestScene_RenderRequiresPreprocess(t *testing.T) {
	sampling := core.SamplingConfig{Width: 4, Height: 2, SamplesPerPixel: 1, MaxDepth: 2}
	s := NewScene(testCameraConfig(), sampling)
	s.Add(NewShapeBuilder().Lambertian(core.Full(0.5)).Sphere(core.Zero, 0.5).MustBuild())

	if err := s.Ready(); err == nil {
		t.Error("Ready() should fail before Preprocess")
	}

	config := renderer.DefaultConfig()
	config.ProgressInterval = 0
	config.Seed = 42
	_, _, err := renderer.NewRaytracer(s, config, &silentLogger{}).Render()
	if err == nil || !strings.Contains(err.Error(), "Preprocess") {
		t.Fatalf("Expected a Preprocess error, got %v", err)
	}

	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	if err := s.Ready(); err != nil {
		t.Errorf("Ready() after Preprocess: %v", err)
	}
	if _, _, err := renderer.NewRaytracer(s, config, &silentLogger{}).Render(); err != nil {
		t.Errorf("Render() after Preprocess: %v", err)
	}
}

type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

func TestScene_TraceUsesIntegratorBackground(t *testing.T) {
	s := NewScene(testCameraConfig(), core.DefaultSamplingConfig())
	s.Integrator = integrator.NewPathTracingIntegrator(integrator.NewUniformBackground(core.NewVec3(0.2, 0.3, 0.4)))
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}

	got := s.Trace(core.NewRay(core.Zero, core.XAxis), 5, rand.New(rand.NewSource(1)))
	if got != core.NewVec3(0.2, 0.3, 0.4) {
		t.Errorf("Expected uniform background, got %v", got)
	}
}

func TestScene_SetImageSize(t *testing.T) {
	s := NewScene(testCameraConfig(), core.DefaultSamplingConfig())
	s.SetImageSize(100, 100)

	if s.SamplingConfig.Width != 100 || s.SamplingConfig.Height != 100 {
		t.Errorf("Unexpected size %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected aspect ratio 1, got %v", s.CameraConfig.AspectRatio)
	}

	// A square image with a 90 degree fov looking down -Z from z=1 spans [-1,1] on both axes
	random := rand.New(rand.NewSource(42))
	ray := s.Camera.GetRay(1, 1, random)
	corner := ray.Origin.Add(ray.Direction)
	if math.Abs(corner.X-1) > 1e-9 || math.Abs(corner.Y-1) > 1e-9 {
		t.Errorf("Expected top-right corner at (1,1,0), got %v", corner)
	}
}

func TestScene_BVHMatchesList(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	listScene := NewRandomScene(rand.New(rand.NewSource(7)))
	bvhScene := NewRandomScene(rand.New(rand.NewSource(7)))
	bvhScene.UseBVH = true

	if err := listScene.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	if err := bvhScene.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(13, 2, 3).Add(core.RandomVec3Range(random, -1, 1))
		direction := core.RandomInUnitSphere(random).Subtract(core.NewVec3(0.5, 0.05, 0.1))
		ray := core.NewRay(origin, direction)

		listHit, listOk := listScene.World.Hit(ray, 0.001, math.MaxFloat64)
		bvhHit, bvhOk := bvhScene.World.Hit(ray, 0.001, math.MaxFloat64)
		if listOk != bvhOk {
			t.Fatalf("Ray %d: list hit %v, BVH hit %v", i, listOk, bvhOk)
		}
		if listOk && listHit.T != bvhHit.T {
			t.Fatalf("Ray %d: list t=%v, BVH t=%v", i, listHit.T, bvhHit.T)
		}
	}
}
