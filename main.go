package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"h3vector/internal/cache"
	"h3vector/internal/debug"
	"h3vector/internal/export"
	"h3vector/internal/geo"
	"h3vector/internal/grid"
	"h3vector/internal/render"
	"h3vector/internal/session"
	"h3vector/internal/ui"
)

// options are the parsed command line settings
type options struct {
	resolution int
	region     string
	bbox       string
	colorMode  string
	width      float64
	height     float64
	padding    float64
	exportList string
	exportDir  string
	cacheDir   string
	basemap    bool
	outline    bool
	debugLog   string
	logLevel   string
}

func main() {
	// A missing .env is fine; the process environment still applies
	_ = godotenv.Load(".env")

	var opts options

	help := flag.Bool("h", false, "Show help message")
	flag.IntVar(&opts.resolution, "res", envInt("H3VEC_RESOLUTION", 1), "H3 resolution (0-15)")
	flag.StringVar(&opts.region, "region", envString("H3VEC_REGION", geo.GlobalName), "Region name")
	flag.StringVar(&opts.bbox, "bbox", "", "Custom region as west,south,east,north (overrides -region)")
	flag.StringVar(&opts.colorMode, "color", envString("H3VEC_COLOR_MODE", render.ColorFixed.String()), "Color mode: fixed, random or pentagon")
	flag.Float64Var(&opts.width, "w", 800, "Drawing width used by the projection and SVG export")
	flag.Float64Var(&opts.height, "height", 500, "Drawing height used by the projection and SVG export")
	flag.Float64Var(&opts.padding, "pad", 50, "Drawing padding")
	flag.StringVar(&opts.exportList, "export", "", "Export without the UI, comma separated formats (geojson,svg,kml,shp)")
	flag.StringVar(&opts.exportDir, "out", envString("H3VEC_EXPORT_DIR", "."), "Export directory")
	flag.StringVar(&opts.cacheDir, "cache", envString("H3VEC_CACHE_DIR", ""), "Cache directory for basemap data (default: ~/.h3vector/data)")
	flag.BoolVar(&opts.outline, "outline", envBool("H3VEC_OUTLINE", false), "Draw the dashed outline of the sampled area")
	flag.BoolVar(&opts.basemap, "basemap", false, "Download and draw Natural Earth coastlines and borders")
	flag.StringVar(&opts.debugLog, "d", "", "Debug log file (e.g., debug.log)")
	flag.StringVar(&opts.logLevel, "log-level", envString("LOG_LEVEL", "debug"), "Debug log level: debug, info, warn or error")
	flag.Parse()

	if *help {
		fmt.Println("h3vector - H3 hexagon grid visualizer")
		fmt.Println("\nUsage: h3vector [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		fmt.Printf("\nRegions: %s\n", strings.Join(regionNames(), ", "))
		os.Exit(0)
	}

	// Set up debug logging if requested
	if opts.debugLog != "" {
		logFile, err := os.Create(opts.debugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutputLevel(logFile, debug.ParseLevel(opts.logLevel))
			debug.L().Info("h3vector debug log started", "resolution", opts.resolution, "region", opts.region)
		}
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.resolution < 0 || opts.resolution > grid.MaxResolution {
		return fmt.Errorf("resolution must be between 0 and %d", grid.MaxResolution)
	}
	if opts.width <= 2*opts.padding || opts.height <= 2*opts.padding || opts.padding < 0 {
		return errors.New("drawing size must exceed twice the padding")
	}

	mode, err := render.ParseColorMode(opts.colorMode)
	if err != nil {
		return err
	}

	catalog, region, err := resolveRegion(opts.region, opts.bbox)
	if err != nil {
		return err
	}

	var basemap []*geo.Feature
	if opts.basemap {
		basemap, err = loadBasemap(opts.cacheDir)
		if err != nil {
			return err
		}
	}

	provider := grid.NewH3()

	if opts.exportList != "" {
		formats, err := export.ParseFormats(opts.exportList)
		if err != nil {
			return err
		}
		return exportHeadless(provider, opts, region, mode, basemap, formats)
	}

	app, err := ui.NewApp(provider, ui.Config{
		Resolution: opts.resolution,
		Region:     region,
		ColorMode:  mode,
		Catalog:    catalog,
		Basemap:    basemap,
		Outline:    opts.outline,
		ExportDir:  opts.exportDir,
		Width:      opts.width,
		Height:     opts.height,
		Padding:    opts.padding,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = app.Run()
	}()

	return err
}

// resolveRegion builds the catalog and picks the starting region. A bbox
// adds a "custom" region to the catalog and selects it.
func resolveRegion(name, bbox string) (*geo.Catalog, geo.Region, error) {
	var extra []geo.Region
	if bbox != "" {
		custom, err := parseBBox(bbox)
		if err != nil {
			return nil, geo.Region{}, err
		}
		extra = append(extra, custom)
		name = custom.Name
	}

	catalog, err := geo.NewCatalog(extra...)
	if err != nil {
		return nil, geo.Region{}, err
	}

	region, err := catalog.Lookup(name)
	if err != nil {
		return nil, geo.Region{}, err
	}
	return catalog, region, nil
}

// parseBBox parses "west,south,east,north"
func parseBBox(s string) (geo.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.Region{}, fmt.Errorf("bbox %q: want west,south,east,north", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.Region{}, fmt.Errorf("bbox %q: %w", s, err)
		}
		v[i] = f
	}

	region := geo.NewRegion(geo.CustomName, v[0], v[1], v[2], v[3])
	if err := region.Validate(); err != nil {
		return geo.Region{}, err
	}
	return region, nil
}

// loadBasemap fetches missing Natural Earth layers and loads what is cached
func loadBasemap(cacheDir string) ([]*geo.Feature, error) {
	fmt.Println("Checking Natural Earth data...")
	manager, err := cache.NewManager(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	manager.SetProgress(os.Stdout)

	if manager.EnsureData(context.Background()) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no basemap data available, continuing without it")
	}

	features := geo.NewShapefileLoader(manager.GetCacheDir()).LoadBasemap()
	fmt.Printf("Loaded %d basemap features\n", len(features))
	return features, nil
}

// exportHeadless samples once and writes every requested format
func exportHeadless(provider grid.Provider, opts options, region geo.Region, mode render.ColorMode, basemap []*geo.Feature, formats []export.Format) error {
	params := session.Params{Resolution: opts.resolution, Region: region}
	result := session.Generate(context.Background(), provider, params)
	if result.Err != nil {
		return fmt.Errorf("generation failed: %w", result.Err)
	}
	fmt.Println(result.Stats.Summary())

	projection := geo.NewProjection(region, opts.width, opts.height, opts.padding)
	scene, err := render.BuildScene(provider, result.Cells, projection, render.Options{
		ColorMode:   mode,
		ShowOutline: opts.outline,
		Basemap:     basemap,
	})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	writer := export.NewWriter(opts.exportDir, provider)
	job := export.Job{
		Cells:      result.Cells,
		Resolution: opts.resolution,
		Region:     region.Name,
		Scene:      scene,
	}
	for _, format := range formats {
		path, err := writer.Export(format, job)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", path)
	}
	return nil
}

func regionNames() []string {
	names := make([]string, len(geo.DefaultRegions))
	for i, r := range geo.DefaultRegions {
		names[i] = r.Name
	}
	return names
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring %s=%q: %v\n", key, v, err)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring %s=%q: %v\n", key, v, err)
		return fallback
	}
	return n
}
