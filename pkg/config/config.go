// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/user/clipmerge/pkg/adapters/authorizer"
	"github.com/user/clipmerge/pkg/clipmerge"
	"github.com/user/clipmerge/pkg/orchestrator"
	"github.com/user/clipmerge/pkg/ports"
)

// Library backends.
const (
	LibraryDir   = "dir"
	LibraryMinIO = "minio"
)

// Config represents the full configuration for clipmerge.
type Config struct {
	// Input
	FirstVideo  string `yaml:"first_video"`
	SecondVideo string `yaml:"second_video"`
	Audio       string `yaml:"audio"`

	// Output
	OutputDir        string  `yaml:"output_dir"`
	OutputPrefix     string  `yaml:"output_prefix"`
	Container        string  `yaml:"container"`
	Preset           string  `yaml:"preset"`
	NetworkOptimized bool    `yaml:"network_optimized"`
	FPS              float64 `yaml:"fps"`

	// Tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Library
	Library LibraryConfig `yaml:"library"`

	// Debug
	Debug            bool   `yaml:"debug"`
	DebugDir         string `yaml:"debug_dir"`
	TimelinePNGWidth int    `yaml:"timeline_png_width"`
}

// LibraryConfig selects where exported videos are saved.
type LibraryConfig struct {
	Type string `yaml:"type"` // "dir" or "minio"
	Auth string `yaml:"auth"` // "prompt", "granted" or "denied"
	Dir  string `yaml:"dir"`

	MinIO MinIOConfig `yaml:"minio"`
}

// MinIOConfig holds the bucket connection. Credentials usually come from the environment.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	d := orchestrator.DefaultConfig()
	return Config{
		FirstVideo:  d.FirstVideoPath,
		SecondVideo: d.SecondVideoPath,
		Audio:       d.AudioPath,

		OutputDir:        d.OutputDir,
		OutputPrefix:     d.OutputPrefix,
		Container:        string(d.Container),
		Preset:           string(d.Preset),
		NetworkOptimized: d.NetworkOptimized,
		FPS:              d.FrameRate,

		Library: LibraryConfig{
			Type: LibraryDir,
			Auth: string(authorizer.ModePrompt),
			Dir:  "./library",
			MinIO: MinIOConfig{
				Bucket: "clipmerge",
			},
		},

		DebugDir:         "./debug",
		TimelinePNGWidth: d.TimelinePNGWidth,
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv reads a .env file if present and applies environment overrides.
// Variables already set in the environment take precedence over the file.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	c.ApplyEnv()
	return nil
}

// ApplyEnv overrides library and tool settings from CLIPMERGE_* and MINIO_* variables.
func (c *Config) ApplyEnv() {
	setString(&c.FFmpegPath, "CLIPMERGE_FFMPEG_PATH")
	setString(&c.FFprobePath, "CLIPMERGE_FFPROBE_PATH")
	setString(&c.Library.Type, "CLIPMERGE_LIBRARY")
	setString(&c.Library.Auth, "CLIPMERGE_LIBRARY_AUTH")
	setString(&c.Library.Dir, "CLIPMERGE_LIBRARY_DIR")

	m := &c.Library.MinIO
	setString(&m.Endpoint, "MINIO_ENDPOINT")
	setString(&m.AccessKey, "MINIO_ACCESS_KEY")
	setString(&m.SecretKey, "MINIO_SECRET_KEY")
	setString(&m.Region, "MINIO_REGION")
	setString(&m.Bucket, "MINIO_BUCKET")
	setString(&m.Prefix, "MINIO_PREFIX")
	setBool(&m.UseSSL, "MINIO_USE_SSL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.FirstVideo == "" || c.SecondVideo == "" || c.Audio == "" {
		return errors.New("first_video, second_video and audio are required")
	}
	if !ports.Container(c.Container).Valid() {
		return fmt.Errorf("unsupported container %q (use mov or mp4)", c.Container)
	}
	if !ports.QualityPreset(c.Preset).Valid() {
		return fmt.Errorf("unknown preset %q (use highest, high, medium or low)", c.Preset)
	}
	if c.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %v", c.FPS)
	}
	if !authorizer.Mode(c.Library.Auth).Valid() {
		return fmt.Errorf("unknown library auth mode %q", c.Library.Auth)
	}

	switch c.Library.Type {
	case LibraryDir:
		if c.Library.Dir == "" {
			return errors.New("library.dir is required for the dir library")
		}
	case LibraryMinIO:
		m := c.Library.MinIO
		if m.Endpoint == "" || m.Bucket == "" {
			return errors.New("library.minio.endpoint and library.minio.bucket are required")
		}
	default:
		return fmt.Errorf("unknown library type %q (use dir or minio)", c.Library.Type)
	}
	return nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return clipmerge.NewConfigBuilder().
		WithClips(c.FirstVideo, c.SecondVideo).
		WithAudio(c.Audio).
		WithOutputDir(c.OutputDir).
		WithOutputPrefix(c.OutputPrefix).
		WithContainer(ports.Container(c.Container)).
		WithQualityPreset(ports.QualityPreset(c.Preset)).
		WithNetworkOptimized(c.NetworkOptimized).
		WithFrameRate(c.FPS).
		WithTimelinePNGWidth(c.TimelinePNGWidth).
		Build()
}
