package scene

import (
	"fmt"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
	"github.com/rayt-go/rayt/pkg/loaders"
	"github.com/rayt-go/rayt/pkg/material"
)

// NewPBRTScene creates a scene from a PBRT file
func NewPBRTScene(filepath string) (*Scene, error) {
	pbrtScene, err := loaders.LoadPBRT(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load PBRT file: %w", err)
	}
	return FromPBRT(pbrtScene)
}

// FromPBRT converts a parsed PBRT scene. Only spheres and the diffuse,
// conductor and dielectric materials are supported.
func FromPBRT(pbrtScene *loaders.PBRTScene) (*Scene, error) {
	samplingConfig, err := convertSamplingConfig(pbrtScene)
	if err != nil {
		return nil, fmt.Errorf("failed to convert sampling config: %w", err)
	}

	cameraConfig, err := convertCamera(pbrtScene, samplingConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to convert camera: %w", err)
	}

	scene := NewScene(cameraConfig, samplingConfig)

	// Shapes that share a material statement share the converted material
	materials := make(map[*loaders.PBRTStatement]material.Material)

	for _, pbrtShape := range pbrtScene.Shapes {
		if pbrtShape.Material == nil {
			return nil, fmt.Errorf("line %d: shape has no material", pbrtShape.Statement.Line)
		}

		mat, ok := materials[pbrtShape.Material]
		if !ok {
			mat, err = convertMaterial(pbrtShape.Material)
			if err != nil {
				return nil, fmt.Errorf("line %d: failed to convert material: %w", pbrtShape.Material.Line, err)
			}
			materials[pbrtShape.Material] = mat
		}

		shape, err := convertShape(pbrtShape, mat)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to convert shape: %w", pbrtShape.Statement.Line, err)
		}
		scene.Add(shape)
	}

	return scene, nil
}

// convertSamplingConfig reads Film, Sampler and Integrator settings on top of the defaults
func convertSamplingConfig(pbrtScene *loaders.PBRTScene) (core.SamplingConfig, error) {
	config := core.DefaultSamplingConfig()

	if film := pbrtScene.Film; film != nil {
		width, ok, err := getInt(film, "xresolution")
		if err != nil {
			return config, fmt.Errorf("line %d: %w", film.Line, err)
		}
		if ok {
			if width <= 0 || width > 8192 {
				return config, fmt.Errorf("line %d: invalid image width %d: must be between 1 and 8192", film.Line, width)
			}
			config.Width = width
		}

		height, ok, err := getInt(film, "yresolution")
		if err != nil {
			return config, fmt.Errorf("line %d: %w", film.Line, err)
		}
		if ok {
			if height <= 0 || height > 8192 {
				return config, fmt.Errorf("line %d: invalid image height %d: must be between 1 and 8192", film.Line, height)
			}
			config.Height = height
		}
	}

	if sampler := pbrtScene.Sampler; sampler != nil {
		spp, ok, err := getInt(sampler, "pixelsamples")
		if err != nil {
			return config, fmt.Errorf("line %d: %w", sampler.Line, err)
		}
		if ok {
			if spp <= 0 {
				return config, fmt.Errorf("line %d: invalid pixel samples %d: must be positive", sampler.Line, spp)
			}
			config.SamplesPerPixel = spp
		}
	}

	if integrator := pbrtScene.Integrator; integrator != nil {
		depth, ok, err := getInt(integrator, "maxdepth")
		if err != nil {
			return config, fmt.Errorf("line %d: %w", integrator.Line, err)
		}
		if ok {
			if depth < 0 {
				return config, fmt.Errorf("line %d: invalid max depth %d: must not be negative", integrator.Line, depth)
			}
			config.MaxDepth = depth
		}
	}

	return config, nil
}

// getInt accepts both "integer" and "float" declarations
func getInt(stmt *loaders.PBRTStatement, name string) (int, bool, error) {
	if stmt.Parameters[name].Type == "float" {
		value, ok, err := stmt.GetFloatParam(name)
		return int(value), ok, err
	}
	return stmt.GetIntParam(name)
}

// convertCamera converts PBRT camera to our camera system. The PBRT fov is
// used as the vertical field of view.
func convertCamera(pbrtScene *loaders.PBRTScene, samplingConfig core.SamplingConfig) (geometry.CameraConfig, error) {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.YAxis,
		VFov:        90.0,
		AspectRatio: samplingConfig.AspectRatio(),
		Aperture:    0.0,
	}

	if pbrtScene.LookAt != nil {
		cameraConfig.Center = pbrtScene.LookAt.Eye
		cameraConfig.LookAt = pbrtScene.LookAt.Target
		cameraConfig.Up = pbrtScene.LookAt.Up
	}
	if cameraConfig.Center == cameraConfig.LookAt {
		return cameraConfig, fmt.Errorf("camera eye and target must differ")
	}

	camera := pbrtScene.Camera
	if camera == nil {
		return cameraConfig, nil
	}
	if camera.Subtype != "perspective" {
		return cameraConfig, fmt.Errorf("line %d: unsupported camera type: %s", camera.Line, camera.Subtype)
	}

	fov, ok, err := camera.GetFloatParam("fov")
	if err != nil {
		return cameraConfig, fmt.Errorf("line %d: %w", camera.Line, err)
	}
	if ok {
		if fov <= 0 || fov >= 180 {
			return cameraConfig, fmt.Errorf("line %d: invalid camera FOV %f: must be between 0 and 180 degrees", camera.Line, fov)
		}
		cameraConfig.VFov = fov
	}

	lensRadius, ok, err := camera.GetFloatParam("lensradius")
	if err != nil {
		return cameraConfig, fmt.Errorf("line %d: %w", camera.Line, err)
	}
	if ok {
		if lensRadius < 0 {
			return cameraConfig, fmt.Errorf("line %d: invalid lens radius %f: must not be negative", camera.Line, lensRadius)
		}
		cameraConfig.Aperture = 2 * lensRadius
	}

	return cameraConfig, nil
}

// convertMaterial converts a PBRT material to our material system
func convertMaterial(stmt *loaders.PBRTStatement) (material.Material, error) {
	switch stmt.Subtype {
	case "diffuse":
		albedo, ok, err := stmt.GetColorParam("reflectance")
		if err != nil {
			return nil, err
		}
		if !ok {
			albedo = core.Full(0.5)
		}
		return material.NewLambertian(albedo), nil

	case "conductor":
		albedo, ok, err := stmt.GetColorParam("reflectance")
		if err != nil {
			return nil, err
		}
		if !ok {
			albedo = core.NewVec3(0.7, 0.6, 0.5)
		}

		roughness, ok, err := stmt.GetFloatParam("roughness")
		if err != nil {
			return nil, err
		}
		if !ok {
			roughness = 0
		}
		if roughness < 0 || roughness > 1 {
			return nil, fmt.Errorf("invalid metal roughness %f: must be between 0 and 1", roughness)
		}
		return material.NewMetal(albedo, roughness), nil

	case "dielectric":
		eta, ok, err := stmt.GetFloatParam("eta")
		if err != nil {
			return nil, err
		}
		if !ok {
			eta = 1.5
		}
		if eta <= 0 {
			return nil, fmt.Errorf("invalid dielectric IOR %f: must be positive", eta)
		}
		return material.NewDielectric(eta), nil

	default:
		return nil, fmt.Errorf("unsupported material type: %s", stmt.Subtype)
	}
}

// convertShape converts a PBRT shape to our shape system
func convertShape(pbrtShape loaders.PBRTShape, mat material.Material) (geometry.Shape, error) {
	stmt := pbrtShape.Statement

	switch stmt.Subtype {
	case "sphere":
		radius, ok, err := stmt.GetFloatParam("radius")
		if err != nil {
			return nil, err
		}
		if !ok {
			radius = 1.0
		}
		if radius == 0 {
			return nil, fmt.Errorf("invalid sphere radius: must be non-zero")
		}
		return NewShapeBuilder().Material(mat).Sphere(pbrtShape.Translation, radius).Build()

	default:
		return nil, fmt.Errorf("unsupported shape type: %s", stmt.Subtype)
	}
}
