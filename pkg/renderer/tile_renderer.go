package renderer

import (
	"image"
	"math/rand"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
)

// TileRenderer renders the pixels of individual tiles into a shared image
type TileRenderer struct {
	scene    Scene
	camera   *geometry.Camera
	sampling core.SamplingConfig
	gamma    float64
	progress *Progress
}

// NewTileRenderer creates a tile renderer for the scene's camera and sampling settings
func NewTileRenderer(scene Scene, gamma float64, progress *Progress) *TileRenderer {
	return &TileRenderer{
		scene:    scene,
		camera:   scene.GetCamera(),
		sampling: scene.GetSamplingConfig(),
		gamma:    gamma,
		progress: progress,
	}
}

// RenderTile renders every pixel of the tile into img. Tiles never overlap,
// so concurrent calls with different tiles may share img.
func (tr *TileRenderer) RenderTile(tile *Tile, img *image.RGBA) RenderStats {
	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := tr.samplePixel(x, y, tile.Random)
			img.SetRGBA(x, y, pixel.GammaCorrect(tr.gamma).ToRGBA())

			if tr.progress != nil {
				tr.progress.Add(1)
			}
		}
	}

	pixelCount := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:  pixelCount,
		TotalSamples: pixelCount * tr.sampling.SamplesPerPixel,
	}
}

// samplePixel averages SamplesPerPixel jittered camera rays through pixel (x, y).
// Image row 0 is the top, while image-plane t = 0 is the bottom.
func (tr *TileRenderer) samplePixel(x, y int, random *rand.Rand) core.Color {
	width, height := tr.sampling.Width, tr.sampling.Height

	// A single column or row has no span to divide by
	uSpan := float64(max(width-1, 1))
	vSpan := float64(max(height-1, 1))

	var ps PixelStats
	for sample := 0; sample < tr.sampling.SamplesPerPixel; sample++ {
		u := (float64(x) + random.Float64()) / uSpan
		v := (float64(height-1-y) + random.Float64()) / vSpan
		ray := tr.camera.GetRay(u, v, random)
		ps.AddSample(tr.scene.Trace(ray, tr.sampling.MaxDepth, random))
	}
	return ps.GetColor()
}
