package material

import (
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
)

// Material interface for surfaces that can scatter rays.
// Implementations are immutable and safe to share between shapes and goroutines.
type Material interface {
	// Scatter returns the bounced ray and its attenuation, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Point3 // Point of intersection
	Normal   core.Vec3   // Unit surface normal, pointing out of the shape
	T        float64     // Parameter t along the ray
	Material Material    // Material of the hit object
}
