package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rayt-go/rayt/pkg/output"
	"github.com/rayt-go/rayt/pkg/renderer"
	"github.com/rayt-go/rayt/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	height    int
	spp       int
	depth     int
	workers   int
	seed      int64
	useBVH    bool
	output    string
	list      bool
	help      bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rayt", flag.ContinueOnError)
	fs.StringVar(&opts.sceneName, "scene", "random", "Scene: built-in name, 'pbrt:<name>', or path to a .pbrt file")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum bounce depth (-1 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of render workers (0 = all CPUs)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed for scene layout and sampling (0 = time based)")
	fs.BoolVar(&opts.useBVH, "bvh", true, "Use a bounding volume hierarchy")
	fs.StringVar(&opts.output, "output", "", "Output image path (.png, .bmp or .tiff); default output/<scene>/render_<timestamp>.png")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "rayt - offline path tracer")
		fmt.Fprintln(fs.Output(), "Usage: rayt [options]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Run with -list to see available scenes.")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		fs.SetOutput(os.Stdout)
		fs.Usage()
		return opts, nil
	}
	if opts.width < 0 || opts.height < 0 {
		return opts, fmt.Errorf("image size must not be negative")
	}
	if (opts.width == 0) != (opts.height == 0) {
		return opts, fmt.Errorf("-width and -height must be given together")
	}
	if opts.spp < 0 {
		return opts, fmt.Errorf("samples per pixel must not be negative")
	}
	if opts.workers < 0 {
		return opts, fmt.Errorf("worker count must not be negative")
	}
	if opts.output != "" {
		if _, err := output.FormatFromPath(opts.output); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// layoutSeedMask keeps the scene layout stream apart from the render tiles,
// which are seeded seed+tileID
const layoutSeedMask = 0x5DEECE66D

// layoutRandom returns the generator for randomly laid out scenes
func layoutRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed ^ layoutSeedMask))
}

// createScene loads the scene and applies command line overrides
func createScene(opts options) (*scene.Scene, error) {
	s, err := scene.Load(opts.sceneName, layoutRandom(opts.seed))
	if err != nil {
		return nil, err
	}

	if opts.width > 0 && opts.height > 0 {
		s.SetImageSize(opts.width, opts.height)
	}
	if opts.spp > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth >= 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	s.UseBVH = opts.useBVH

	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to prepare scene: %w", err)
	}
	return s, nil
}

// outputPath returns the explicit output path or a timestamped one under output/<scene>
func outputPath(opts options, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}
	return filepath.Join("output", sceneDirName(opts.sceneName), fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// sceneDirName turns a scene name or file path into a directory name
func sceneDirName(sceneName string) string {
	name := strings.TrimPrefix(sceneName, "pbrt:")
	if strings.HasSuffix(strings.ToLower(name), ".pbrt") {
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if name == "" {
		return "scene"
	}
	return name
}

func printScenes() error {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, group := range scenes.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.help {
		return nil
	}
	if opts.list {
		return printScenes()
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Loading scene %q...\n", opts.sceneName)
	s, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Scene has %d primitives\n", s.GetPrimitiveCount())

	config := renderer.DefaultConfig()
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	img, _, err := renderer.NewRaytracer(s, config, logger).Render()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	filename := outputPath(opts, time.Now())
	if err := output.Save(filename, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
