package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/engine"
)

const (
	// DefaultPreviewPort is the default preview server port.
	DefaultPreviewPort = 7070

	// DefaultPreviewHost is the default preview server host.
	DefaultPreviewHost = "localhost"

	// DefaultInterval is the default demo tick interval.
	DefaultInterval = "500ms"

	// DefaultMaxCounter is the counter value after which the demo stops.
	DefaultMaxCounter = 10

	// DefaultSnapshotPath is the default bbolt snapshot file.
	DefaultSnapshotPath = ".vtree/snapshots.db"
)

// FileNames are the configuration file names looked up by Load, in order.
var FileNames = []string{"vtree.json", "vtree.yaml", "vtree.yml"}

// Snapshot drivers.
const (
	DriverNone = "none"
	DriverBolt = "bolt"
	DriverS3   = "s3"
)

// Config represents the complete vtree configuration.
type Config struct {
	// Demo contains the demo application settings.
	Demo DemoConfig `json:"demo" yaml:"demo"`

	// Engine contains reconciliation settings.
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Preview contains the preview server settings.
	Preview PreviewConfig `json:"preview" yaml:"preview"`

	// Snapshot contains the snapshot store settings.
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DemoConfig contains the demo application settings.
type DemoConfig struct {
	// Interval is the tick interval (e.g., "1s").
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`

	// MaxCounter stops ticking once the counter exceeds it.
	MaxCounter int `json:"maxCounter,omitempty" yaml:"maxCounter,omitempty"`
}

// EngineConfig contains reconciliation settings.
type EngineConfig struct {
	// StrictTags turns skipped tag mismatches into errors.
	StrictTags bool `json:"strictTags,omitempty" yaml:"strictTags,omitempty"`

	// Children is "positional" or "length-aware".
	Children string `json:"children,omitempty" yaml:"children,omitempty"`
}

// PreviewConfig contains the preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
}

// SnapshotConfig contains the snapshot store settings.
type SnapshotConfig struct {
	// Driver is "none", "bolt" or "s3".
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`

	// Path is the bbolt database file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Bucket is the S3 bucket.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is the S3 key prefix.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region overrides the AWS region.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint points at an S3-compatible service.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the first of FileNames found in dir. When
// none exists the defaults are returned.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("VT020").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("VT020").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("VT020").
			WithDetail(fmt.Sprintf("Failed to parse %s: %v", filepath.Base(path), err)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path, as YAML or JSON
// by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("VT020").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("VT020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Demo.Interval == "" {
		c.Demo.Interval = DefaultInterval
	}
	if c.Demo.MaxCounter == 0 {
		c.Demo.MaxCounter = DefaultMaxCounter
	}

	if c.Engine.Children == "" {
		c.Engine.Children = engine.ChildrenPositional.String()
	}

	if c.Preview.Host == "" {
		c.Preview.Host = DefaultPreviewHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPreviewPort
	}

	if c.Snapshot.Driver == "" {
		c.Snapshot.Driver = DriverNone
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = DefaultSnapshotPath
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "vtree"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Demo.IntervalDuration(); err != nil {
		return invalid("demo.interval %q: must be a positive duration such as 500ms or 1s", c.Demo.Interval)
	}
	if c.Demo.MaxCounter < 0 {
		return invalid("demo.maxCounter must not be negative")
	}
	if _, err := c.Engine.ChildrenMode(); err != nil {
		return invalid("engine.children %q: must be positional or length-aware", c.Engine.Children)
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return invalid("preview.port must be between 0 and 65535")
	}
	switch c.Snapshot.Driver {
	case DriverNone, DriverBolt:
	case DriverS3:
		if c.Snapshot.Bucket == "" {
			return invalid("snapshot.bucket is required for the s3 driver")
		}
	default:
		return invalid("snapshot.driver %q: must be none, bolt or s3", c.Snapshot.Driver)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return invalid("log.level %q: must be debug, info, warn or error", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format %q: must be text or json", c.Log.Format)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New("VT021").WithDetail(fmt.Sprintf(format, args...))
}

// IntervalDuration parses Interval.
func (d DemoConfig) IntervalDuration() (time.Duration, error) {
	v, err := time.ParseDuration(d.Interval)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return v, nil
}

// ChildrenMode parses Children.
func (e EngineConfig) ChildrenMode() (engine.ChildrenMode, error) {
	return engine.ParseChildrenMode(e.Children)
}

// Address returns host:port.
func (p PreviewConfig) Address() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// URL returns the preview URL.
func (p PreviewConfig) URL() string {
	return "http://" + p.Address()
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}
