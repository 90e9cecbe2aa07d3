// SPDX-License-Identifier: EPL-2.0

// Package config handles application configuration management.
//
// Values come from, in increasing precedence: built-in defaults, the YAML
// file named by BOBWAVE_CONFIG, and environment variables. A .env file in
// the working directory is loaded into the environment first; variables
// already set are not overridden.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/bobwave"
	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/codec"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Audio  AudioConfig  `yaml:"audio"`
	// LogLevel is "info" or "debug".
	LogLevel string `yaml:"log_level"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address string `yaml:"address"`
	// Environment is "development" or "production"; it selects the gin mode.
	Environment    string `yaml:"environment"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// AudioConfig holds the engine settings.
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
	// MaxLayers caps layers per project; 0 disables the cap.
	MaxLayers    int    `yaml:"max_layers"`
	ExportFormat string `yaml:"export_format"`
	// MaxOffsetSeconds is the latest start of a layer in the mix.
	MaxOffsetSeconds int `yaml:"max_offset_seconds"`
}

const (
	maxChannels      = 8
	maxOffsetSeconds = 3600
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:        ":5000",
			Environment:    "development",
			MaxUploadBytes: 32 << 20,
		},
		Audio: AudioConfig{
			SampleRate:       audio.CD.SampleRate,
			Channels:         audio.CD.Channels,
			MaxLayers:        bobwave.DefaultMaxLayers,
			ExportFormat:     string(codec.FormatWAV),
			MaxOffsetSeconds: int(bobwave.DefaultMaxOffset.Seconds()),
		},
		LogLevel: "info",
	}
}

// Load reads .env, the optional YAML file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("BOBWAVE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) loadEnv() error {
	c.Server.Address = getEnv("BOBWAVE_ADDRESS", c.Server.Address)
	c.Server.Environment = getEnv("BOBWAVE_ENV", c.Server.Environment)
	c.Audio.ExportFormat = getEnv("BOBWAVE_EXPORT_FORMAT", c.Audio.ExportFormat)
	c.LogLevel = getEnv("BOBWAVE_LOG_LEVEL", c.LogLevel)

	var err error
	if c.Server.MaxUploadBytes, err = envInt64("BOBWAVE_MAX_UPLOAD_BYTES", c.Server.MaxUploadBytes); err != nil {
		return err
	}
	if c.Audio.SampleRate, err = envInt("BOBWAVE_SAMPLE_RATE", c.Audio.SampleRate); err != nil {
		return err
	}
	if c.Audio.Channels, err = envInt("BOBWAVE_CHANNELS", c.Audio.Channels); err != nil {
		return err
	}
	if c.Audio.MaxLayers, err = envInt("BOBWAVE_MAX_LAYERS", c.Audio.MaxLayers); err != nil {
		return err
	}
	if c.Audio.MaxOffsetSeconds, err = envInt("BOBWAVE_MAX_OFFSET_SECONDS", c.Audio.MaxOffsetSeconds); err != nil {
		return err
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.Address == "":
		return fmt.Errorf("%w: empty server address", ErrInvalidConfig)
	case c.Server.Environment != "development" && c.Server.Environment != "production":
		return fmt.Errorf("%w: environment %q", ErrInvalidConfig, c.Server.Environment)
	case c.Server.MaxUploadBytes <= 0:
		return fmt.Errorf("%w: max upload bytes %d", ErrInvalidConfig, c.Server.MaxUploadBytes)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	case c.Audio.Channels < 1 || c.Audio.Channels > maxChannels:
		return fmt.Errorf("%w: channels %d not in 1..%d", ErrInvalidConfig, c.Audio.Channels, maxChannels)
	case c.Audio.MaxLayers < 0:
		return fmt.Errorf("%w: max layers %d", ErrInvalidConfig, c.Audio.MaxLayers)
	case c.Audio.MaxOffsetSeconds < 1 || c.Audio.MaxOffsetSeconds > maxOffsetSeconds:
		return fmt.Errorf("%w: max offset %ds not in 1..%d", ErrInvalidConfig, c.Audio.MaxOffsetSeconds, maxOffsetSeconds)
	case codec.ParseFormat(c.Audio.ExportFormat) != codec.FormatWAV:
		return fmt.Errorf("%w: export format %q", ErrInvalidConfig, c.Audio.ExportFormat)
	case c.LogLevel != "info" && c.LogLevel != "debug":
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// EngineOptions converts the audio settings to engine options.
func (c *Config) EngineOptions() bobwave.Options {
	maxLayers := c.Audio.MaxLayers
	if maxLayers == 0 {
		maxLayers = bobwave.Unlimited
	}

	return bobwave.Options{
		Layout:       audio.Layout{SampleRate: c.Audio.SampleRate, Channels: c.Audio.Channels},
		MaxLayers:    maxLayers,
		ExportFormat: codec.ParseFormat(c.Audio.ExportFormat),
		MaxOffset:    time.Duration(c.Audio.MaxOffsetSeconds) * time.Second,
	}
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	v, err := envInt64(key, int64(defaultValue))
	return int(v), err
}

func envInt64(key string, defaultValue int64) (int64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, value)
	}

	return n, nil
}
