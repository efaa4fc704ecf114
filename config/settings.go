package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sdfworld/core"
	"sdfworld/export"
	"sdfworld/noise"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "settings.json"

type Settings struct {
	World  WorldSettings  `json:"world" toml:"world"`
	Build  BuildSettings  `json:"build" toml:"build"`
	Export ExportSettings `json:"export" toml:"export"`
	Server ServerSettings `json:"server" toml:"server"`
}

type WorldSettings struct {
	Width       int    `json:"width" toml:"width"`
	Height      int    `json:"height" toml:"height"`
	Depth       int    `json:"depth" toml:"depth"`
	Seed        uint32 `json:"seed" toml:"seed"`
	NoisePeriod int    `json:"noisePeriod" toml:"noisePeriod"`

	// ClampSamples clamps density sample points into the volume.
	ClampSamples bool `json:"clampSamples" toml:"clampSamples"`
}

type BuildSettings struct {
	// Workers for seeding and conversion; 0 uses every CPU.
	Workers int `json:"workers" toml:"workers"`
}

type ExportSettings struct {
	// Path of the raw volume; empty disables export.
	Path   string `json:"path" toml:"path"`
	Format string `json:"format" toml:"format"`
}

type ServerSettings struct {
	Enabled bool `json:"enabled" toml:"enabled"`
	Port    int  `json:"port" toml:"port"`
}

// Default returns the settings used when no file is present: a 256^3
// volume with seed 42.
func Default() Settings {
	return Settings{
		World: WorldSettings{
			Width:       256,
			Height:      256,
			Depth:       256,
			Seed:        42,
			NoisePeriod: noise.DefaultPeriod,
		},
		Export: ExportSettings{
			Format: "r32f",
		},
		Server: ServerSettings{
			Port: 8080,
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error. Files ending in .toml are decoded as TOML, anything else as
// JSON.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			core.Logger().Warn("no settings file found, using defaults", "path", path)
			return s, nil
		}
		return s, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return s, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	core.Logger().Info("loaded settings",
		"path", path,
		"dims", s.World.Dims().String(),
		"seed", s.World.Seed)
	return s, nil
}

// Dims returns the configured volume size.
func (w WorldSettings) Dims() core.Dims {
	return core.Dims{W: w.Width, H: w.Height, D: w.Depth}
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if err := s.World.Dims().Validate(); err != nil {
		return err
	}
	if s.World.NoisePeriod < 1 {
		return fmt.Errorf("noise period must be positive, got %d", s.World.NoisePeriod)
	}
	if s.Build.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", s.Build.Workers)
	}
	if _, err := export.ParseFormat(s.Export.Format); err != nil {
		return err
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", s.Server.Port)
	}
	return nil
}

// Save writes s as indented JSON.
func Save(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
