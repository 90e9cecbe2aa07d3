// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/bobwave"
	"github.com/ik5/bobwave/audio"
	"github.com/ik5/bobwave/codec"
)

// Load reads the process environment and working directory, so these tests
// use t.Setenv and t.Chdir and cannot run in parallel.

var envKeys = []string{
	"BOBWAVE_CONFIG",
	"BOBWAVE_ADDRESS",
	"BOBWAVE_ENV",
	"BOBWAVE_MAX_UPLOAD_BYTES",
	"BOBWAVE_SAMPLE_RATE",
	"BOBWAVE_CHANNELS",
	"BOBWAVE_MAX_LAYERS",
	"BOBWAVE_EXPORT_FORMAT",
	"BOBWAVE_LOG_LEVEL",
	"BOBWAVE_MAX_OFFSET_SECONDS",
}

func cleanEnv(t *testing.T) {
	t.Helper()

	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != ":5000" {
		t.Errorf("Address = %q, want :5000", cfg.Server.Address)
	}
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.Server.MaxUploadBytes)
	}
	if cfg.Audio.SampleRate != 44100 || cfg.Audio.Channels != 2 {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Audio.MaxLayers != 5 {
		t.Errorf("MaxLayers = %d, want 5", cfg.Audio.MaxLayers)
	}
	if cfg.Audio.MaxOffsetSeconds != 600 {
		t.Errorf("MaxOffsetSeconds = %d, want 600", cfg.Audio.MaxOffsetSeconds)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true by default")
	}
}

func TestLoad_Precedence(t *testing.T) {
	cleanEnv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "bobwave.yaml")
	yml := `
server:
  address: ":7000"
  environment: production
audio:
  sample_rate: 48000
  channels: 1
  max_layers: 8
log_level: debug
`
	if err := os.WriteFile(file, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BOBWAVE_CONFIG", file)
	t.Setenv("BOBWAVE_SAMPLE_RATE", "22050")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != ":7000" {
		t.Errorf("Address = %q, want the file value", cfg.Server.Address)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want the file value")
	}
	if cfg.Audio.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want the env value", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 || cfg.Audio.MaxLayers != 8 {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Audio.ExportFormat != "wav" {
		t.Errorf("ExportFormat = %q, want default kept", cfg.Audio.ExportFormat)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	cleanEnv(t)

	if err := os.WriteFile(".env", []byte("BOBWAVE_ADDRESS=:9999\nBOBWAVE_MAX_LAYERS=0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv only fills variables that are unset.
	if err := os.Unsetenv("BOBWAVE_ADDRESS"); err != nil {
		t.Fatal(err)
	}
	if err := os.Unsetenv("BOBWAVE_MAX_LAYERS"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("BOBWAVE_ADDRESS")
		os.Unsetenv("BOBWAVE_MAX_LAYERS")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != ":9999" {
		t.Errorf("Address = %q, want :9999 from .env", cfg.Server.Address)
	}
	if cfg.Audio.MaxLayers != 0 {
		t.Errorf("MaxLayers = %d, want 0 from .env", cfg.Audio.MaxLayers)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric rate", key: "BOBWAVE_SAMPLE_RATE", value: "fast"},
		{name: "zero rate", key: "BOBWAVE_SAMPLE_RATE", value: "0"},
		{name: "too many channels", key: "BOBWAVE_CHANNELS", value: "9"},
		{name: "negative cap", key: "BOBWAVE_MAX_LAYERS", value: "-1"},
		{name: "mp3 export", key: "BOBWAVE_EXPORT_FORMAT", value: "mp3"},
		{name: "unknown env", key: "BOBWAVE_ENV", value: "staging"},
		{name: "unknown level", key: "BOBWAVE_LOG_LEVEL", value: "trace"},
		{name: "zero upload", key: "BOBWAVE_MAX_UPLOAD_BYTES", value: "0"},
		{name: "zero max offset", key: "BOBWAVE_MAX_OFFSET_SECONDS", value: "0"},
		{name: "huge max offset", key: "BOBWAVE_MAX_OFFSET_SECONDS", value: "10000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoad_BadFile(t *testing.T) {
	cleanEnv(t)

	t.Setenv("BOBWAVE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Load() with missing config file error = nil")
	}

	file := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(file, []byte("server: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOBWAVE_CONFIG", file)
	if _, err := Load(); err == nil {
		t.Error("Load() with malformed config file error = nil")
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Audio.SampleRate = 48000
	cfg.Audio.Channels = 1

	opts := cfg.EngineOptions()
	if opts.Layout != (audio.Layout{SampleRate: 48000, Channels: 1}) {
		t.Errorf("Layout = %v", opts.Layout)
	}
	if opts.MaxLayers != 5 || opts.ExportFormat != codec.FormatWAV {
		t.Errorf("opts = %+v", opts)
	}
	if opts.MaxOffset != 10*time.Minute {
		t.Errorf("MaxOffset = %v, want 10m", opts.MaxOffset)
	}

	cfg.Audio.MaxLayers = 0
	if got := cfg.EngineOptions().MaxLayers; got != bobwave.Unlimited {
		t.Errorf("MaxLayers = %d, want Unlimited", got)
	}

	if _, err := bobwave.New(cfg.EngineOptions()); err != nil {
		t.Errorf("bobwave.New(EngineOptions()) error = %v", err)
	}
}
