// Package config loads and validates the immutable run configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config is the read-only configuration for one batch run. It is
// constructed once at startup and passed by reference into the
// pipeline; nothing mutates it afterwards.
type Config struct {
	// ImagesDir is the directory scanned for candidate images.
	ImagesDir string `toml:"images_dir"`

	// OutputDir is where reports and run-scoped staging live.
	OutputDir string `toml:"output_dir"`

	// ReportJSON is the JSON report file name inside OutputDir.
	ReportJSON string `toml:"report_json"`

	// ReportHTML is the HTML report file name inside OutputDir.
	// Empty disables the HTML report.
	ReportHTML string `toml:"report_html"`

	// PaletteSize is the maximum number of colours per palette.
	PaletteSize int `toml:"palette_size"`

	// MaxFrames caps frames sampled per animation. 0 samples all.
	MaxFrames int `toml:"max_frames"`

	// Concurrency bounds how many images are processed at once.
	Concurrency int `toml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ImagesDir:   ".",
		OutputDir:   "swatch-out",
		ReportJSON:  "palettes.json",
		ReportHTML:  "palettes.html",
		PaletteSize: 8,
		MaxFrames:   10,
		Concurrency: 5,
	}
}

// Load reads the configuration file at path over the defaults. A
// missing file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path, intended to be read
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run
// with.
func (c *Config) Validate() error {
	if c.ImagesDir == "" {
		return errors.New("images_dir must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.ReportJSON == "" {
		return errors.New("report_json must not be empty")
	}
	if c.PaletteSize < 1 || c.PaletteSize > 256 {
		return fmt.Errorf("palette_size must be between 1 and 256, got %d", c.PaletteSize)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("max_frames must not be negative, got %d", c.MaxFrames)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

// Sample returns the annotated sample configuration file.
func Sample() string {
	return sampleConfig
}
