package material

import (
	"math"
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Clear glass never absorbs, so the attenuation is always white.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	direction := rayIn.Direction
	reflected := direction.Reflect(hit.Normal)

	// Normals always point outward, so the sign of d·n tells entering from exiting
	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if dot := direction.Dot(hit.Normal); dot > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dot / direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dot / direction.Length()
	}

	if refracted, ok := direction.Negate().Refract(outwardNormal, niOverNt); ok {
		if random.Float64() > Reflectance(cosine, d.RefractiveIndex) {
			return ScatterResult{
				Scattered:   core.NewRay(hit.Point, refracted),
				Attenuation: core.One,
			}, true
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: core.One,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
