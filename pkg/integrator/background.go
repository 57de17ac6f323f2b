package integrator

import "github.com/rayt-go/rayt/pkg/core"

// Background supplies the radiance of rays that escape the scene
type Background interface {
	Color(direction core.Vec3) core.Color
}

// GradientBackground blends vertically from Bottom (looking straight down)
// to Top (looking straight up)
type GradientBackground struct {
	Bottom core.Color
	Top    core.Color
}

// NewGradientBackground creates a vertical gradient sky
func NewGradientBackground(bottom, top core.Color) *GradientBackground {
	return &GradientBackground{Bottom: bottom, Top: top}
}

// NewSkyBackground returns the default white-to-sky-blue gradient
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.One, core.NewVec3(0.5, 0.7, 1.0))
}

// Color maps the direction's y from [-1,1] to a blend factor in [0,1]
func (g *GradientBackground) Color(direction core.Vec3) core.Color {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}

// UniformBackground returns the same radiance in every direction
type UniformBackground struct {
	Emission core.Color
}

// NewUniformBackground creates a constant background
func NewUniformBackground(emission core.Color) *UniformBackground {
	return &UniformBackground{Emission: emission}
}

// Color implements Background
func (u *UniformBackground) Color(direction core.Vec3) core.Color {
	return u.Emission
}
