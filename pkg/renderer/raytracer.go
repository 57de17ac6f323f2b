package renderer

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/rayt-go/rayt/pkg/core"
	"github.com/rayt-go/rayt/pkg/geometry"
)

// Scene is what the renderer needs from a scene
type Scene interface {
	GetCamera() *geometry.Camera
	GetSamplingConfig() core.SamplingConfig
	// Trace estimates the radiance arriving along ray using at most maxBounces scattering events
	Trace(ray core.Ray, maxBounces int, random *rand.Rand) core.Color
}

// Preparable is implemented by scenes that must be prepared before they can be traced
type Preparable interface {
	Ready() error
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains the renderer settings that do not belong to a scene
type Config struct {
	NumWorkers       int     // Number of parallel workers (0 = use CPU count)
	TileSize         int     // Size of each square tile in pixels
	Gamma            float64 // Display gamma applied before 8-bit conversion
	Seed             int64   // Base seed for tile generators (0 = seed from the clock)
	ProgressInterval int     // Log progress every this many pixels (0 = never)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers:       0,
		TileSize:         32,
		Gamma:            2.2,
		Seed:             0,
		ProgressInterval: 1000,
	}
}

// Validate reports settings the renderer cannot work with
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("invalid tile size %d: must be positive", c.TileSize)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("invalid gamma %f: must be positive", c.Gamma)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("invalid worker count %d: must not be negative", c.NumWorkers)
	}
	return nil
}

// Raytracer renders a scene into an 8-bit image using a pool of tile workers
type Raytracer struct {
	scene  Scene
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger logs to stdout.
func NewRaytracer(scene Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Render traces every pixel of the scene and returns the finished image
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}
	sampling := rt.scene.GetSamplingConfig()
	if err := sampling.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}
	if rt.scene.GetCamera() == nil {
		return nil, RenderStats{}, fmt.Errorf("scene has no camera")
	}
	if p, ok := rt.scene.(Preparable); ok {
		if err := p.Ready(); err != nil {
			return nil, RenderStats{}, fmt.Errorf("scene not ready: %w", err)
		}
	}

	baseSeed := rt.config.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	width, height := sampling.Width, sampling.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	tiles := NewTileGrid(width, height, rt.config.TileSize, baseSeed)
	progress := NewProgress(width*height, rt.config.ProgressInterval, rt.logger)
	tileRenderer := NewTileRenderer(rt.scene, rt.config.Gamma, progress)

	workerPool := NewWorkerPool(tileRenderer, img, len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d (%d tiles, %d workers)...\n",
		width, height, sampling.SamplesPerPixel, sampling.MaxDepth, len(tiles), workerPool.GetNumWorkers())

	startTime := time.Now()
	workerPool.Start()
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}
	workerPool.Stop()

	stats := RenderStats{
		SamplesPerPixel: sampling.SamplesPerPixel,
		Workers:         workerPool.GetNumWorkers(),
		Tiles:           len(tiles),
	}
	for {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			return nil, RenderStats{}, result.Error
		}
		stats.add(result.Stats)
	}
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Render completed in %v (%.0f samples/s, average luminance %.3f)\n",
		stats.Duration, stats.SamplesPerSecond(), CalculateAverageLuminance(img))

	return img, stats, nil
}
