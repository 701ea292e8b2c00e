package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtree.json"

	// DefaultListen is the default inspector address.
	DefaultListen = ":7070"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vtree"

	// DefaultSnapshotDir is the default directory of the file snapshot backend.
	DefaultSnapshotDir = ".vtree/snapshots"

	// DefaultTick is the default clock interval of the serve command.
	DefaultTick = time.Second
)

// Snapshot backends.
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config represents vtree.json.
type Config struct {
	// Listen is the inspector's listen address.
	Listen string `json:"listen,omitempty"`

	// Log configures the slog handler.
	Log LogConfig `json:"log,omitempty"`

	// Metrics configures Prometheus collectors.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Oplog configures the environment op recorder.
	Oplog OplogConfig `json:"oplog,omitempty"`

	// Snapshot selects where rendered HTML snapshots are stored.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// Tick is the clock interval of the serve command, e.g. "500ms".
	Tick string `json:"tick,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Namespace is the Prometheus namespace of every collector.
	Namespace string `json:"namespace,omitempty"`
}

// OplogConfig contains op recorder settings.
type OplogConfig struct {
	// Capacity is the number of recent ops retained.
	Capacity int `json:"capacity,omitempty"`

	// Buffer is the channel buffer of each live subscriber.
	Buffer int `json:"buffer,omitempty"`
}

// SnapshotConfig contains snapshot storage settings.
type SnapshotConfig struct {
	// Backend is "file" or "s3".
	Backend string `json:"backend,omitempty"`

	// Dir is the directory of the file backend.
	Dir string `json:"dir,omitempty"`

	// S3 configures the s3 backend.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config contains S3 backend settings. Credentials fall back to the
// AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables.
type S3Config struct {
	Bucket          string `json:"bucket,omitempty"`
	Prefix          string `json:"prefix,omitempty"`
	Region          string `json:"region,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	PathStyle       bool   `json:"pathStyle,omitempty"`
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads vtree.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if !Exists(dir) {
		cfg := New()
		cfg.configPath = path
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigRead).
				WithDetail("No " + ConfigFileName + " found at " + path).
				Wrap(err)
		}
		return nil, errors.New(errors.CodeConfigRead).Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigRead).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Oplog.Capacity == 0 {
		c.Oplog.Capacity = 1024
	}
	if c.Oplog.Buffer == 0 {
		c.Oplog.Buffer = 256
	}
	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = BackendFile
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
	if c.Snapshot.S3.Region == "" {
		c.Snapshot.S3.Region = "us-east-1"
	}
	if c.Tick == "" {
		c.Tick = DefaultTick.String()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Oplog.Capacity < 0 || c.Oplog.Buffer < 0 {
		return invalid("oplog.capacity and oplog.buffer must not be negative")
	}
	switch c.Snapshot.Backend {
	case BackendFile:
	case BackendS3:
		if c.Snapshot.S3.Bucket == "" {
			return invalid("snapshot.s3.bucket is required for the s3 backend").
				WithSuggestion(`Set "snapshot": {"s3": {"bucket": "..."}} in ` + ConfigFileName)
		}
	default:
		return invalid("snapshot.backend must be file or s3, got %q", c.Snapshot.Backend)
	}
	if d, err := time.ParseDuration(c.Tick); err != nil || d <= 0 {
		return invalid("tick must be a positive duration, got %q", c.Tick)
	}
	return nil
}

func invalid(format string, args ...any) *errors.Error {
	return errors.New(errors.CodeConfigInvalid).WithDetailf(format, args...)
}

// TickInterval returns the parsed Tick, or DefaultTick if it does not parse.
func (c *Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.Tick)
	if err != nil || d <= 0 {
		return DefaultTick
	}
	return d
}

// SnapshotDir returns the snapshot directory resolved against the config
// file's directory.
func (c *Config) SnapshotDir() string {
	if filepath.IsAbs(c.Snapshot.Dir) || c.Dir() == "" {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, invalid("log.level must be debug, info, warn or error, got %q", s)
	}
	return level, nil
}

// Handler returns the slog handler described by the log settings.
func (l LogConfig) Handler(w io.Writer) slog.Handler {
	level, err := ParseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
