// Package config loads starmap configuration in three layers: built-in
// defaults, an optional YAML file, then STARMAP_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/litescript/ls-starmap/internal/octant"
	"github.com/litescript/ls-starmap/internal/territory"
	"github.com/litescript/ls-starmap/internal/validation"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates sections: STARMAP_SERVER__ADDR -> server.addr.
const EnvPrefix = "STARMAP_"

// PathEnvVar overrides the config file location.
const PathEnvVar = "STARMAP_CONFIG"

// DefaultPaths are searched in order when no path is given.
var DefaultPaths = []string{
	"starmap.yaml",
	"starmap.yml",
}

// Config is the complete runtime configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Log       LogConfig        `koanf:"log"`
	Octant    OctantConfig     `koanf:"octant"`
	Territory territory.Config `koanf:"territory"`
	Catalog   CatalogConfig    `koanf:"catalog"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required,hostname_port"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// CORSOrigins lists origins allowed by CORS and the event stream.
	CORSOrigins []string `koanf:"cors_origins"`

	// SynthesizeRPM limits territory synthesis requests per client IP per
	// minute. Zero disables the limit.
	SynthesizeRPM int `koanf:"synthesize_rpm" validate:"min=0"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// OctantConfig sizes the octant grid.
type OctantConfig struct {
	Radius float64 `koanf:"radius" validate:"gt=0"`
}

// CatalogConfig selects the star catalog.
type CatalogConfig struct {
	// File is an optional YAML catalog; empty uses the built-in catalog.
	File string `koanf:"file"`

	// DefaultLuminosity replaces missing luminosity values, in solar units.
	DefaultLuminosity float64 `koanf:"default_luminosity" validate:"gt=0"`

	// EventBuffer bounds the territory change history.
	EventBuffer int `koanf:"event_buffer" validate:"min=1,max=10000"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8088",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			CORSOrigins:     []string{"*"},
			SynthesizeRPM:   60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Octant: OctantConfig{
			Radius: octant.DefaultRadius,
		},
		Territory: territory.DefaultConfig(),
		Catalog: CatalogConfig{
			DefaultLuminosity: 1.0,
			EventBuffer:       100,
		},
	}
}

// Load builds the configuration. An explicit path must exist; otherwise
// STARMAP_CONFIG and DefaultPaths are tried and a missing file is fine.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps STARMAP_TERRITORY__MIN_RADIUS to territory.min_radius.
// The config path variable itself is not a setting.
func envTransformFunc(key string) string {
	if key == PathEnvVar {
		return ""
	}
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

// Validate checks struct constraints, then the territory tuning.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if err := c.Territory.Validate(); err != nil {
		return err
	}
	return nil
}
