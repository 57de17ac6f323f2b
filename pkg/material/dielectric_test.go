package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rayt-go/rayt/pkg/core"
)

func TestDielectric_BasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		T:        1.0,
		Material: glass,
	}

	hasReflection := false
	hasRefraction := false
	for seed := int64(0); seed < 1000 && (!hasReflection || !hasRefraction); seed++ {
		random := rand.New(rand.NewSource(seed))
		result, scattered := glass.Scatter(ray, hit, random)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.One {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}

		// Reflection heads back up, refraction continues down
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected to see Schlick reflection in at least some cases")
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass heading out at a grazing angle: d·n > 0 marks an exit
	rayDirection := core.NewVec3(1, 0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, -0.1, 0), rayDirection)
	hit := HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		T:        1.0,
		Material: glass,
	}
	expected := rayDirection.Reflect(hit.Normal)

	for i := 0; i < 50; i++ {
		random := rand.New(rand.NewSource(int64(i)))
		result, scattered := glass.Scatter(ray, hit, random)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
			t.Fatalf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestDielectric_UnitIndexDoesNotBend(t *testing.T) {
	air := NewDielectric(1.0)
	normal := core.NewVec3(0, 1, 0)
	random := rand.New(rand.NewSource(42))

	t.Run("normal incidence always refracts straight through", func(t *testing.T) {
		for _, direction := range []core.Vec3{core.NewVec3(0, -2, 0), core.NewVec3(0, 3, 0)} {
			ray := core.NewRay(direction.Negate(), direction)
			hit := HitRecord{Point: core.Zero, Normal: normal, Material: air}
			for i := 0; i < 100; i++ {
				result, _ := air.Scatter(ray, hit, random)
				got := result.Scattered.Direction
				if got.Subtract(direction.Normalize()).Length() > 1e-10 {
					t.Fatalf("Expected %v, got %v", direction.Normalize(), got)
				}
			}
		}
	})

	t.Run("oblique refraction keeps the incoming direction", func(t *testing.T) {
		direction := core.NewVec3(1, -1, 0.5).Normalize()
		ray := core.NewRay(direction.Negate(), direction)
		hit := HitRecord{Point: core.Zero, Normal: normal, Material: air}
		reflected := direction.Reflect(normal)

		refractions := 0
		for i := 0; i < 500; i++ {
			result, _ := air.Scatter(ray, hit, random)
			got := result.Scattered.Direction
			switch {
			case got.Subtract(direction).Length() < 1e-10:
				refractions++
			case got.Subtract(reflected).Length() < 1e-10:
			default:
				t.Fatalf("Direction %v is neither refraction %v nor reflection %v", got, direction, reflected)
			}
		}
		if refractions == 0 {
			t.Error("Expected refractions with unit refractive index")
		}
	})
}

func TestReflectanceFunction(t *testing.T) {
	// Normal incidence for glass: ((1-1.5)/(1+1.5))² = 0.04
	r0 := Reflectance(1.0, 1.5)
	if math.Abs(r0-0.04) > 1e-12 {
		t.Errorf("Normal incidence reflectance = %.4f, expected 0.04", r0)
	}

	// The ratio and its reciprocal give the same R0
	if math.Abs(Reflectance(1.0, 1.0/1.5)-r0) > 1e-12 {
		t.Error("Expected reflectance to be symmetric in the refractive index")
	}

	r90 := Reflectance(0.0, 1.5)
	if math.Abs(r90-1.0) > 1e-12 {
		t.Errorf("Grazing incidence reflectance = %.3f, expected 1.0", r90)
	}

	r45 := Reflectance(math.Sqrt2/2, 1.5)
	if r45 <= r0 || r45 >= r90 {
		t.Errorf("Reflectance should increase with angle: R(0°)=%.3f, R(45°)=%.3f, R(90°)=%.3f", r0, r45, r90)
	}
}
