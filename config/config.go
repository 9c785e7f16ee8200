// Package config loads settings for the web dashboard from an optional YAML
// file and RIDERSHIP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "RIDERSHIP"

// Config is the complete dashboard configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Batches BatchConfig   `yaml:"batches"`
	Logging LoggingConfig `yaml:"logging"`
	Chart   ChartConfig   `yaml:"chart"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr" envconfig:"ADDR" validate:"required"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"gt=0"`
}

// IngestConfig controls per-batch file loading.
type IngestConfig struct {
	// Workers bounds concurrent file decoding; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" envconfig:"WORKERS" validate:"gte=0"`
}

// BatchConfig bounds the in-memory store of uploaded batches.
type BatchConfig struct {
	Capacity int           `yaml:"capacity" envconfig:"CAPACITY" validate:"gt=0"`
	TTL      time.Duration `yaml:"ttl" envconfig:"TTL" validate:"gt=0"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// ChartConfig holds rendering options.
type ChartConfig struct {
	// FontPath is an optional TTF/OTF font with Hangul glyphs.
	FontPath string `yaml:"font_path" envconfig:"FONT_PATH" validate:"omitempty,file"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxUploadBytes: 256 << 20,
		},
		Batches: BatchConfig{
			Capacity: 64,
			TTL:      time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load starts from Default, applies the YAML file at path if it exists, then
// applies environment variables, and validates the result. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config from env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
