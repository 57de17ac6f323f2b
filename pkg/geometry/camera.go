package geometry

import (
	"math"
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Point3 // Eye position
	LookAt      core.Point3 // Point the camera looks at; also the focal plane
	Up          core.Vec3   // Up direction hint
	VFov        float64     // Vertical field of view in degrees
	AspectRatio float64     // Width / height
	Aperture    float64     // Lens diameter (0 = pinhole)
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	origin       core.Point3
	u            core.Vec3 // Full horizontal span of the image plane
	v            core.Vec3 // Full vertical span of the image plane
	screenOrigin core.Point3
	lensRadius   float64
}

// NewCamera derives the image-plane basis from a look-at configuration.
// The image plane passes through LookAt, so objects at that distance are in focus.
func NewCamera(config CameraConfig) *Camera {
	w := config.Center.Subtract(config.LookAt)
	halfHeight := math.Tan(config.VFov*math.Pi/180.0*0.5) * w.Length()
	halfWidth := config.AspectRatio * halfHeight

	uUnit := config.Up.Cross(w).Normalize()
	vUnit := w.Cross(uUnit).Normalize()
	halfU := uUnit.Multiply(halfWidth)
	halfV := vUnit.Multiply(halfHeight)

	return &Camera{
		origin:       config.Center,
		u:            halfU.Multiply(2),
		v:            halfV.Multiply(2),
		screenOrigin: config.LookAt.Subtract(halfU).Subtract(halfV),
		lensRadius:   config.Aperture / 2.0,
	}
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the bottom-left corner. The lens offset reuses the x and y of a
// unit-ball sample, which is slightly denser toward the center than a true disk.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	r := core.RandomInUnitSphere(random).Multiply(c.lensRadius)
	origin := c.origin.Add(c.u.Multiply(r.X)).Add(c.v.Multiply(r.Y))
	target := c.screenOrigin.Add(c.u.Multiply(s)).Add(c.v.Multiply(t))
	return core.NewRay(origin, target.Subtract(origin))
}
