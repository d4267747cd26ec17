package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS         = 30
	DefaultParticles   = 10
	DefaultDPI         = 300
	DefaultVideoDPI    = 100
	DefaultImageFormat = "png"
	DefaultFFmpeg      = "ffmpeg"
	DefaultLogLevel    = "info"

	// ResultDirName is created under the CSV directory when no output
	// directory is configured.
	ResultDirName = "result"
)

var (
	ErrInvalidFPS       = errors.New("config: fps must be positive")
	ErrInvalidParticles = errors.New("config: particle count must not be negative")
	ErrInvalidDPI       = errors.New("config: dpi must be positive")
	ErrInvalidFormat    = errors.New("config: unsupported image format")
)

type Config struct {
	CSVDir      string `yaml:"csv_dir"`
	OutputDir   string `yaml:"output_dir"`
	FPS         int    `yaml:"fps"`
	Particles   int    `yaml:"particles"`
	DPI         int    `yaml:"dpi"`
	VideoDPI    int    `yaml:"video_dpi"`
	ImageFormat string `yaml:"image_format"`
	FFmpeg      string `yaml:"ffmpeg"`
	Workers     int    `yaml:"workers"`
	Preview     bool   `yaml:"preview"`
	LogLevel    string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		CSVDir:      ".",
		FPS:         DefaultFPS,
		Particles:   DefaultParticles,
		DPI:         DefaultDPI,
		VideoDPI:    DefaultVideoDPI,
		ImageFormat: DefaultImageFormat,
		FFmpeg:      DefaultFFmpeg,
		LogLevel:    DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the fields set in the YAML file at path onto cfg.
// Fields the file omits keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid field. A particle count of zero means
// the count is taken from each file.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, c.FPS)
	}
	if c.Particles < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidParticles, c.Particles)
	}
	if c.DPI <= 0 || c.VideoDPI <= 0 {
		return fmt.Errorf("%w: dpi=%d video_dpi=%d", ErrInvalidDPI, c.DPI, c.VideoDPI)
	}
	switch strings.ToLower(c.ImageFormat) {
	case "png", "svg":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.ImageFormat)
	}
	return nil
}

// ResultDir is where every generated artifact is written.
func (c *Config) ResultDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(c.CSVDir, ResultDirName)
}

// ImageExt returns the static figure extension including the dot.
func (c *Config) ImageExt() string {
	return "." + strings.ToLower(c.ImageFormat)
}
