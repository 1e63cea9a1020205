package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	aspect    float64
	samples   int
	depth     int
	seed      int64
	workers   int
	out       string
	format    string
	compare   string
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneName, "scene", scene.RandomSceneName, "Scene type: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.Float64Var(&opts.aspect, "aspect", 0, "Aspect ratio width/height (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum bounce depth (negative = scene default)")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed for scene layout and sampling")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = all CPUs)")
	fs.StringVar(&opts.out, "out", "", "Output file, or - for stdout (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.format, "format", "", "Image format: "+formatNames()+" (default from -out extension)")
	fs.StringVar(&opts.compare, "compare", "", "Reference image to compare the render against")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return opts, fs, nil
}

func formatNames() string {
	names := make([]string, 0, len(output.Formats()))
	for _, f := range output.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene_type>/render_<timestamp>.png")
	fmt.Fprintln(w, "Use -out - to write a PPM image to stdout")
}

// run renders one image as described by args. Log output goes to stderr so
// that an image written to stdout stays clean.
func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.help {
		printHelp(stdout, fs)
		return nil
	}

	logger := log.New(stderr, "", 0)
	logger.Println("Starting Sphere Raytracer...")

	selectedScene, err := createScene(opts.sceneName, opts.seed)
	if err != nil {
		return err
	}
	if err := applyOptions(selectedScene, opts); err != nil {
		return err
	}

	outPath, format, err := resolveOutput(opts, selectedScene.Name, time.Now())
	if err != nil {
		return err
	}

	config := selectedScene.GetSamplingConfig()
	logger.Printf("Rendering %s scene at %dx%d, %d samples, depth %d, seed %d",
		selectedScene.Name, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, config.Seed)

	// Ctrl-C stops the render between scanlines
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(selectedScene, logger)
	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f on %d workers", stats.AverageSamples(), stats.Workers)

	if opts.compare != "" {
		if err := compareWith(opts.compare, frame, logger); err != nil {
			return err
		}
	}

	if outPath == "-" {
		return output.Write(stdout, frame, format)
	}
	if err := writeFile(outPath, frame, format); err != nil {
		return err
	}
	logger.Printf("Render saved as %s", outPath)
	return nil
}

// createScene creates a scene based on the scene name
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	return scene.Create(sceneType, seed)
}

// applyOptions overrides the scene defaults with the flags that were given
func applyOptions(s *scene.Scene, opts *options) error {
	config := s.GetSamplingConfig()

	width := config.Width
	if opts.width > 0 {
		width = opts.width
	}
	aspect := float64(config.Width) / float64(config.Height)
	if opts.aspect > 0 {
		aspect = opts.aspect
	}
	s.SetImageSize(width, max(int(float64(width)/aspect), 1))

	if opts.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depth >= 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	s.SamplingConfig.NumWorkers = opts.workers

	return s.SamplingConfig.Validate()
}

// resolveOutput picks the destination and encoding. Stdout defaults to PPM
// and files default to the format of their extension.
func resolveOutput(opts *options, sceneName string, now time.Time) (string, output.Format, error) {
	path := opts.out
	if path == "" {
		path = filepath.Join(createOutputDir(sceneName), fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
	}

	if opts.format != "" {
		format, err := output.ParseFormat(opts.format)
		return path, format, err
	}
	if path == "-" {
		return path, output.PPM, nil
	}
	format, err := output.FormatFromPath(path)
	return path, format, err
}

// createOutputDir returns the directory renders of a scene are saved to
func createOutputDir(sceneType string) string {
	return filepath.Join("output", sceneType)
}

func writeFile(path string, frame *renderer.Frame, format output.Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := output.Write(file, frame, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// compareWith logs how many pixels of frame differ from the reference image
func compareWith(path string, frame *renderer.Frame, logger *log.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening reference image: %w", err)
	}
	defer file.Close()

	reference, err := output.Read(file)
	if err != nil {
		return fmt.Errorf("error reading reference image: %w", err)
	}
	diff, err := frame.DiffCount(reference)
	if err != nil {
		return err
	}
	logger.Printf("Pixels differing from %s: %d of %d", path, diff, len(frame.Pixels))
	return nil
}
