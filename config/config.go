// Package config holds the pre-processing defaults and the loaders used by
// the CLI and the browser host.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file and default values.
const (
	EnvMaxWidth  = "OCRPREP_MAX_WIDTH"
	EnvMaxHeight = "OCRPREP_MAX_HEIGHT"
	EnvQuality   = "OCRPREP_QUALITY"
	EnvDebug     = "OCRPREP_DEBUG"
)

// Config defines the bounding box and JPEG quality used to prepare images
// for OCR.
type Config struct {
	// MaxWidth is the bounding box width in pixels.
	MaxWidth int `json:"max_width" yaml:"max_width"`
	// MaxHeight is the bounding box height in pixels.
	MaxHeight int `json:"max_height" yaml:"max_height"`
	// Quality is the JPEG quality (0-100).
	Quality int `json:"quality" yaml:"quality"`
	// Debug enables [DEBUG] tracing in the processor.
	Debug bool `json:"debug" yaml:"debug"`
}

// Default returns the settings used for screenshots and camera captures.
// OCR does not need high resolution, so anything above 1600px is reduced.
func Default() Config {
	return Config{
		MaxWidth:  1600,
		MaxHeight: 1600,
		Quality:   85,
	}
}

// Validate reports whether the bounding box is positive and the quality is
// in range.
func (c Config) Validate() error {
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return errors.Errorf("invalid bounding box: %dx%d", c.MaxWidth, c.MaxHeight)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return errors.Errorf("invalid quality: %d", c.Quality)
	}
	return nil
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and finally the OCRPREP_* environment variables.
//
// Arguments:
// - path: Optional YAML file path.
//
// Returns:
// - The merged Config.
// - error if the file cannot be read or parsed, or an override is malformed.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "failed to read config")
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvMaxWidth, &cfg.MaxWidth},
		{EnvMaxHeight, &cfg.MaxHeight},
		{EnvQuality, &cfg.Quality},
	}
	for _, v := range ints {
		raw := strings.TrimSpace(os.Getenv(v.key))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", v.key)
		}
		*v.dst = value
	}

	if raw := strings.TrimSpace(os.Getenv(EnvDebug)); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvDebug)
		}
		cfg.Debug = value
	}
	return nil
}
