package integrator

import (
	"math"
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
)

// DefaultTMin keeps a freshly scattered ray from hitting the surface it left
const DefaultTMin = 0.001

// PathTracingIntegrator implements unidirectional path tracing with no light
// sampling: every path ends by escaping to the background, being absorbed, or
// running out of bounces.
type PathTracingIntegrator struct {
	background Background
	tMin       float64
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	if background == nil {
		background = NewSkyBackground()
	}
	return &PathTracingIntegrator{
		background: background,
		tMin:       DefaultTMin,
	}
}

// Background returns the radiance source for escaping rays
func (pt *PathTracingIntegrator) Background() Background {
	return pt.background
}

// RayColor follows one path, multiplying attenuations into a running throughput.
// This is the loop form of
//
//	trace(ray, n) = background            on a miss
//	              = black                 on a hit with n == 0 or absorption
//	              = albedo * trace(scattered, n-1)
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, maxBounces int, random *rand.Rand) core.Color {
	throughput := core.One

	for bounces := maxBounces; ; bounces-- {
		hit, isHit := world.Hit(ray, pt.tMin, math.MaxFloat64)
		if !isHit {
			return throughput.MultiplyVec(pt.background.Color(ray.Direction))
		}

		// Bounce budget exhausted
		if bounces <= 0 {
			return core.Vec3{}
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}
}
