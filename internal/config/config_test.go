package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starmap/internal/validation"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(PathEnvVar, "")
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 130.0, cfg.Octant.Radius)
	assert.Equal(t, 8, cfg.Territory.LatSteps)
	assert.Equal(t, 12, cfg.Territory.LonSteps)
	assert.Equal(t, 5.0, cfg.Territory.MinRadius)
}

func TestLoad_FileOverrides(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `server:
  addr: "0.0.0.0:9000"
  read_timeout: 2s
  cors_origins: ["http://localhost:3000"]
  synthesize_rpm: 0
territory:
  lat_steps: 10
catalog:
  default_luminosity: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 0, cfg.Server.SynthesizeRPM)
	assert.Equal(t, 10, cfg.Territory.LatSteps)
	assert.Equal(t, 0.5, cfg.Catalog.DefaultLuminosity)

	// Untouched keys keep their defaults
	assert.Equal(t, 12, cfg.Territory.LonSteps)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_DefaultPathDiscovery(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("starmap.yaml", []byte("octant:\n  radius: 50\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.Octant.Radius)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STARMAP_OCTANT__RADIUS", "200")
	t.Setenv("STARMAP_SERVER__WRITE_TIMEOUT", "45s")
	t.Setenv("STARMAP_LOG__FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Octant.Radius)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
	t.Setenv("STARMAP_LOG__LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("STARMAP_LOG__LEVEL", "loud")

	_, err := Load("")
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "log.level", verr.Fields[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad addr", func(c *Config) { c.Server.Addr = "nowhere" }},
		{"zero radius", func(c *Config) { c.Octant.Radius = 0 }},
		{"zero timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"negative rate limit", func(c *Config) { c.Server.SynthesizeRPM = -1 }},
		{"lat steps", func(c *Config) { c.Territory.LatSteps = 1 }},
		{"zero luminosity", func(c *Config) { c.Catalog.DefaultLuminosity = 0 }},
		{"event buffer", func(c *Config) { c.Catalog.EventBuffer = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "territory.min_radius", envTransformFunc("STARMAP_TERRITORY__MIN_RADIUS"))
	assert.Equal(t, "server.addr", envTransformFunc("STARMAP_SERVER__ADDR"))
	assert.Equal(t, "", envTransformFunc(PathEnvVar))
}
