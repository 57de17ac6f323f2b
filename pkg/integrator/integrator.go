package integrator

import (
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from the given world,
	// allowing at most maxBounces scattering events
	RayColor(ray core.Ray, world geometry.Shape, maxBounces int, random *rand.Rand) core.Color
}
