package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sdfworld/config"
	"sdfworld/core"
	"sdfworld/export"
	"sdfworld/noise"
	"sdfworld/server"
	"sdfworld/vdt"
)

func main() {
	var (
		settingsPath = flag.String("config", config.DefaultPath, "Settings file (.json or .toml)")
		width        = flag.Int("width", 0, "Volume width in voxels")
		height       = flag.Int("height", 0, "Volume height in voxels")
		depth        = flag.Int("depth", 0, "Volume depth in voxels")
		seed         = flag.Uint("seed", 0, "Noise seed")
		workers      = flag.Int("workers", 0, "Goroutines for seeding and conversion (0 = all CPUs)")
		clamp        = flag.Bool("clamp", false, "Clamp density samples into the volume")
		out          = flag.String("out", "", "Write the field to this raw volume file")
		format       = flag.String("format", "", "Volume format: r32f or r16f")
		serve        = flag.Bool("serve", false, "Serve the field to preview clients")
		port         = flag.Int("port", 0, "Preview server port")
		verbose      = flag.Bool("v", false, "Log per-sweep progress")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := core.Logger()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Error("failed to load settings", "err", err)
		os.Exit(1)
	}

	// flags given on the command line override the settings file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			settings.World.Width = *width
		case "height":
			settings.World.Height = *height
		case "depth":
			settings.World.Depth = *depth
		case "seed":
			settings.World.Seed = uint32(*seed)
		case "workers":
			settings.Build.Workers = *workers
		case "clamp":
			settings.World.ClampSamples = *clamp
		case "out":
			settings.Export.Path = *out
		case "format":
			settings.Export.Format = *format
		case "serve":
			settings.Server.Enabled = *serve
		case "port":
			settings.Server.Port = *port
		}
	})
	if err := settings.Validate(); err != nil {
		log.Error("invalid settings", "err", err)
		os.Exit(1)
	}

	if err := run(settings); err != nil {
		log.Error("world generation failed", "err", err)
		os.Exit(1)
	}
}

func run(settings config.Settings) error {
	fmt.Println("=== Procedural World SDF ===")
	fmt.Printf("Volume: %s\n", settings.World.Dims())
	fmt.Printf("Seed: %d\n", settings.World.Seed)

	terrain := core.NewTerrain(noise.NewPerlin(settings.World.Seed, settings.World.NoisePeriod))
	terrain.ClampSamples = settings.World.ClampSamples

	builder := &vdt.Builder{Density: terrain, Workers: settings.Build.Workers}

	start := time.Now()
	field, err := builder.Build(settings.World.Dims())
	if err != nil {
		return err
	}
	stats := field.Stats()
	fmt.Printf("Build: %.3fs\n", time.Since(start).Seconds())
	fmt.Printf("Distance range: %.4f to %.4f (%.1f%% solid)\n", stats.Min, stats.Max, stats.SolidFraction()*100)

	if settings.Export.Path != "" {
		format, err := export.ParseFormat(settings.Export.Format)
		if err != nil {
			return err
		}
		if err := export.Save(settings.Export.Path, field, format); err != nil {
			return err
		}
		fmt.Printf("Saved %s (%s)\n", settings.Export.Path, format)
	}

	if settings.Server.Enabled {
		addr := fmt.Sprintf(":%d", settings.Server.Port)
		fmt.Printf("Preview server on http://localhost%s/field\n", addr)
		return server.New(field).ListenAndServe(addr)
	}
	return nil
}
