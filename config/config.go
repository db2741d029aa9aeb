package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/ringbuf/errors"
	"github.com/c360/ringbuf/pkg/buffer"
	"github.com/c360/ringbuf/pkg/tlsutil"
)

// Ring variants
const (
	VariantStatic  = "static"
	VariantDynamic = "dynamic"
)

// DefaultRing is the ring name used when a caller does not pick one.
const DefaultRing = "default"

// Config represents the complete application configuration
type Config struct {
	Version string                `json:"version,omitempty" yaml:"version,omitempty"` // Semantic version, e.g. "1.0.0"
	Logging LoggingConfig         `json:"logging" yaml:"logging"`
	Metrics MetricsConfig         `json:"metrics" yaml:"metrics"`
	NATS    NATSConfig            `json:"nats" yaml:"nats"`
	Rings   map[string]RingConfig `json:"rings" yaml:"rings"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool                 `json:"enabled" yaml:"enabled"`
	Port    int                  `json:"port,omitempty" yaml:"port,omitempty"`
	Path    string               `json:"path,omitempty" yaml:"path,omitempty"`
	TLS     tlsutil.ServerConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// NATSConfig defines NATS connection settings
type NATSConfig struct {
	URLs          []string `json:"urls,omitempty" yaml:"urls,omitempty"`
	Subject       string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	MaxReconnects int      `json:"max_reconnects,omitempty" yaml:"max_reconnects,omitempty"`
	ReconnectWait Duration `json:"reconnect_wait,omitempty" yaml:"reconnect_wait,omitempty"`
	Timeout       Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Username      string   `json:"username,omitempty" yaml:"username,omitempty"`
	Password      string   `json:"password,omitempty" yaml:"password,omitempty"`
	Token         string   `json:"token,omitempty" yaml:"token,omitempty"`

	// ConnectAttempts bounds the initial connection. Reconnects after that
	// follow MaxReconnects.
	ConnectAttempts int                  `json:"connect_attempts,omitempty" yaml:"connect_attempts,omitempty"`
	TLS             tlsutil.ClientConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// RingConfig describes one named ring.
type RingConfig struct {
	Variant        string `json:"variant,omitempty" yaml:"variant,omitempty"` // static or dynamic
	Capacity       int    `json:"capacity" yaml:"capacity"`
	OverflowPolicy string `json:"overflow_policy,omitempty" yaml:"overflow_policy,omitempty"`
	Metrics        bool   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Policy returns the buffer overflow policy. Unknown names, which Validate
// rejects, map to DropOldest.
func (r RingConfig) Policy() buffer.OverflowPolicy {
	policy, _ := buffer.ParseOverflowPolicy(r.OverflowPolicy)
	return policy
}

// Validate checks a single ring entry.
func (r RingConfig) Validate() error {
	switch r.Variant {
	case "", VariantStatic, VariantDynamic:
	default:
		return fmt.Errorf("unknown variant %q", r.Variant)
	}
	if r.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", r.Capacity)
	}
	if _, ok := buffer.ParseOverflowPolicy(r.OverflowPolicy); !ok {
		return fmt.Errorf("unknown overflow policy %q", r.OverflowPolicy)
	}
	return nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Port: 9090,
			Path: "/metrics",
		},
		NATS: NATSConfig{
			URLs:          []string{"nats://localhost:4222"},
			MaxReconnects: -1,
			ReconnectWait: Duration(2 * time.Second),
			Timeout:       Duration(5 * time.Second),

			ConnectAttempts: 5,
		},
		Rings: map[string]RingConfig{
			DefaultRing: {
				Variant:        VariantStatic,
				Capacity:       1000,
				OverflowPolicy: "drop_oldest",
			},
		},
	}
}

// Ring returns the named ring, falling back to DefaultRing.
func (c *Config) Ring(name string) (RingConfig, bool) {
	if rc, ok := c.Rings[name]; ok {
		return rc, true
	}
	rc, ok := c.Rings[DefaultRing]
	return rc, ok
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Version != "" {
		if _, _, _, err := parseSemVer(c.Version); err != nil {
			return invalid(fmt.Errorf("version: %w", err))
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid(fmt.Errorf("logging.level %q is not a slog level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return invalid(fmt.Errorf("logging.format %q must be text or json", c.Logging.Format))
	}

	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return invalid(fmt.Errorf("metrics.port %d out of range", c.Metrics.Port))
	}

	if err := c.Metrics.TLS.Validate(); err != nil {
		return invalid(fmt.Errorf("metrics.tls: %w", err))
	}
	if err := c.NATS.TLS.Validate(); err != nil {
		return invalid(fmt.Errorf("nats.tls: %w", err))
	}
	if c.NATS.ConnectAttempts < 0 {
		return invalid(fmt.Errorf("nats.connect_attempts %d cannot be negative", c.NATS.ConnectAttempts))
	}
	for _, url := range c.NATS.URLs {
		if !strings.HasPrefix(url, "nats://") && !strings.HasPrefix(url, "tls://") {
			return invalid(fmt.Errorf("nats.urls: %q must use nats:// or tls://", url))
		}
	}

	if len(c.Rings) == 0 {
		return invalid(fmt.Errorf("%w: at least one ring", errors.ErrMissingConfig))
	}
	// Sorted so the reported ring is stable.
	for _, name := range slices.Sorted(maps.Keys(c.Rings)) {
		if name == "" {
			return invalid(fmt.Errorf("ring name cannot be empty"))
		}
		if err := c.Rings[name].Validate(); err != nil {
			return invalid(fmt.Errorf("ring %s: %w", name, err))
		}
	}

	return nil
}

func invalid(err error) error {
	return errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "Config", "Validate", "validate config")
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = &Config{}
	}
	return &SafeConfig{
		config: cfg,
	}
}

// Get returns a deep copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically updates the configuration after validation
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.WrapInvalid(errors.ErrMissingConfig, "SafeConfig", "Update", "check config")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg.Clone()
	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}

	// Use JSON marshaling/unmarshaling for deep copy
	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}

	return &clone
}

// SaveToFile writes the configuration as JSON or YAML, chosen by extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.WrapFatal(err, "Config", "SaveToFile", "encode config")
	}

	return errors.Wrap(writeConfigFile(path, data), "Config", "SaveToFile", "write config")
}

// String returns a JSON representation of the config with secrets masked.
func (c *Config) String() string {
	redacted := c.Clone()
	if redacted.NATS.Password != "" {
		redacted.NATS.Password = "***"
	}
	if redacted.NATS.Token != "" {
		redacted.NATS.Token = "***"
	}
	data, _ := json.MarshalIndent(redacted, "", "  ")
	return string(data)
}

// parseSemVer parses a semantic version string (e.g., "1.2.3")
// Returns major, minor, patch, error
func parseSemVer(version string) (int, int, int, error) {
	if version == "" {
		return 0, 0, 0, fmt.Errorf("version cannot be empty")
	}

	version = strings.TrimPrefix(version, "v")

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("version must be in format 'major.minor.patch', got '%s'", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid version component '%s'", part)
		}
		nums[i] = n
	}

	return nums[0], nums[1], nums[2], nil
}
