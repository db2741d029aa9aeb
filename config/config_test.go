package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/pkg/buffer"
	"github.com/c360/ringbuf/pkg/tlsutil"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	rc, ok := cfg.Ring(DefaultRing)
	require.True(t, ok)
	assert.Equal(t, 1000, rc.Capacity)
	assert.Equal(t, buffer.DropOldest, rc.Policy())
	assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait.Std())
}

func TestLoader_LoadYAML(t *testing.T) {
	cfg, err := NewLoader().LoadFile("testdata/base.yaml")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "logs.>", cfg.NATS.Subject)
	assert.Equal(t, 3*time.Second, cfg.NATS.ReconnectWait.Std())
	// Untouched defaults survive the merge.
	assert.Equal(t, -1, cfg.NATS.MaxReconnects)
	assert.Equal(t, 5*time.Second, cfg.NATS.Timeout.Std())
	assert.Equal(t, 5, cfg.NATS.ConnectAttempts)

	require.Len(t, cfg.Rings, 2)
	assert.Equal(t, 100, cfg.Rings["default"].Capacity)
	assert.Equal(t, VariantDynamic, cfg.Rings["errors"].Variant)
	assert.Equal(t, 20, cfg.Rings["errors"].Capacity)
}

func TestLoader_Layers(t *testing.T) {
	loader := NewLoader()
	loader.AddLayer("testdata/base.yaml")
	loader.AddLayer("testdata/production.json")

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9100, cfg.Metrics.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	def := cfg.Rings["default"]
	assert.Equal(t, 5000, def.Capacity)
	assert.True(t, def.Metrics)
	assert.Equal(t, VariantStatic, def.Variant, "fields absent from the override are kept")
	assert.Equal(t, 20, cfg.Rings["errors"].Capacity)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("RINGTAIL_NATS_URLS", "nats://a:4222,nats://b:4222")
	t.Setenv("RINGTAIL_LOG_LEVEL", "debug")
	t.Setenv("RINGTAIL_METRICS_PORT", "9200")

	cfg, err := NewLoader().LoadFile("testdata/base.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"nats://a:4222", "nats://b:4222"}, cfg.NATS.URLs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9200, cfg.Metrics.Port)
}

func TestLoader_EnvOverrides_BadPort(t *testing.T) {
	t.Setenv("RINGTAIL_METRICS_PORT", "nine")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.yaml")},
		{"unsupported extension", write("cfg.toml", "x = 1")},
		{"malformed json", write("bad.json", `{"rings": {`)},
		{"malformed yaml", write("bad.yaml", "rings: [unclosed")},
		{"invalid ring", write("zero.yaml", "rings:\n  default:\n    capacity: 0\n")},
		{"unknown policy", write("policy.json", `{"rings": {"default": {"capacity": 3, "overflow_policy": "spill"}}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadFile(tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestLoader_ValidationDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rings:\n  default:\n    capacity: 0\n"), 0o600))

	loader := NewLoader()
	loader.EnableValidation(false)
	cfg, err := loader.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Rings["default"].Capacity)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad version", func(c *Config) { c.Version = "1.0" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"metrics port", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Port = 0 }},
		{"nats scheme", func(c *Config) { c.NATS.URLs = []string{"http://localhost:4222"} }},
		{"connect attempts", func(c *Config) { c.NATS.ConnectAttempts = -1 }},
		{"nats tls key", func(c *Config) { c.NATS.TLS = tlsutil.ClientConfig{Enabled: true, CertFile: "c.pem"} }},
		{"metrics tls cert", func(c *Config) { c.Metrics.TLS = tlsutil.ServerConfig{Enabled: true} }},
		{"no rings", func(c *Config) { c.Rings = nil }},
		{"empty ring name", func(c *Config) { c.Rings[""] = RingConfig{Capacity: 1} }},
		{"zero capacity", func(c *Config) { c.Rings["x"] = RingConfig{Capacity: 0} }},
		{"bad variant", func(c *Config) { c.Rings["x"] = RingConfig{Variant: "sparse", Capacity: 1} }},
		{"bad policy", func(c *Config) { c.Rings["x"] = RingConfig{Capacity: 1, OverflowPolicy: "spill"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfig)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestRingConfig_Policy(t *testing.T) {
	assert.Equal(t, buffer.DropOldest, RingConfig{}.Policy())
	assert.Equal(t, buffer.DropNewest, RingConfig{OverflowPolicy: "drop_newest"}.Policy())
	assert.Equal(t, buffer.Block, RingConfig{OverflowPolicy: "block"}.Policy())
	assert.Equal(t, buffer.DropOldest, RingConfig{OverflowPolicy: "spill"}.Policy())
}

func TestConfig_Ring_FallsBackToDefault(t *testing.T) {
	cfg := Defaults()
	rc, ok := cfg.Ring("missing")
	require.True(t, ok)
	assert.Equal(t, cfg.Rings[DefaultRing], rc)

	cfg.Rings = map[string]RingConfig{"only": {Capacity: 2}}
	_, ok = cfg.Ring("missing")
	assert.False(t, ok)
}

func TestConfig_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg := Defaults()
	cfg.Version = "2.1.0"
	cfg.Rings["burst"] = RingConfig{Variant: VariantDynamic, Capacity: 8, OverflowPolicy: "block"}

	for _, name := range []string{"saved.json", "saved.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, cfg.SaveToFile(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			loaded, err := NewLoader().LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestConfig_StringMasksSecrets(t *testing.T) {
	cfg := Defaults()
	cfg.NATS.Password = "hunter2"
	cfg.NATS.Token = "s3cret"

	out := cfg.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "s3cret")
	assert.Equal(t, "hunter2", cfg.NATS.Password, "String must not modify the receiver")
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{`"5s"`, 5 * time.Second},
		{`"1m30s"`, 90 * time.Second},
		{`"2d"`, 48 * time.Hour},
		{`1000`, time.Microsecond},
		{`""`, 0},
	}
	for _, tt := range tests {
		var d Duration
		require.NoError(t, d.UnmarshalJSON([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, d.Std(), tt.in)
	}

	var d Duration
	assert.Error(t, d.UnmarshalJSON([]byte(`"soon"`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`"xd"`)))
}
