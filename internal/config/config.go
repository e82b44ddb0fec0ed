package config

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/engine"
)

const (
	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultApp is the demo app served and rendered when none is named.
	DefaultApp = "counter"

	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "vtree"

	// DefaultMetricsPath is where the preview server exposes metrics.
	DefaultMetricsPath = "/metrics"
)

// FileNames lists the configuration files Load looks for, in order.
var FileNames = []string{"vtree.json", "vtree.yaml", "vtree.yml", "vtree.toml"}

// Config represents a vtree configuration file.
type Config struct {
	// Engine tunes the render engine.
	Engine EngineConfig `json:"engine" yaml:"engine" toml:"engine"`

	// Log configures the diagnostics logger.
	Log LogConfig `json:"log" yaml:"log" toml:"log"`

	// Preview configures the preview server.
	Preview PreviewConfig `json:"preview" yaml:"preview" toml:"preview"`

	// Snapshot configures where rendered HTML is stored.
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot" toml:"snapshot"`

	// Metrics configures the Prometheus collectors.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" toml:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// EngineConfig mirrors engine.Config.
type EngineConfig struct {
	// MaxRerenders bounds a component's render loop (default: 10).
	MaxRerenders int `json:"maxRerenders,omitempty" yaml:"maxRerenders,omitempty" toml:"max_rerenders,omitempty"`

	// DisposeOnUnmount removes instances of unmounted components (default: true).
	DisposeOnUnmount *bool `json:"disposeOnUnmount,omitempty" yaml:"disposeOnUnmount,omitempty" toml:"dispose_on_unmount,omitempty"`

	// HookMismatch is "warn" or "reset".
	HookMismatch string `json:"hookMismatch,omitempty" yaml:"hookMismatch,omitempty" toml:"hook_mismatch,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`

	// App is the demo app to serve.
	App string `json:"app,omitempty" yaml:"app,omitempty" toml:"app,omitempty"`
}

// SnapshotConfig contains snapshot storage settings.
type SnapshotConfig struct {
	// Target is a directory or an s3://bucket/prefix URL.
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`

	// Region is the S3 region.
	Region string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`

	// PathStyle forces path-style S3 addressing.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty" toml:"path_style,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It uses the first of FileNames present in the directory.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New(errors.CodeConfigNotFound).
		WithDetail("No vtree.json, vtree.yaml or vtree.toml found in " + dir)
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension: .json, .yaml/.yml or .toml.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New(errors.CodeConfigFormat).Wrap(err)
	}

	cfg := &Config{}
	if err := decode(path, data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigFormat).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file syntax")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return errors.Newf(errors.CategoryConfig, "unsupported config extension %q", filepath.Ext(path))
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return errors.New(errors.CodeConfigFormat).Wrap(err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return errors.New(errors.CodeConfigFormat).Wrap(err)
		}
		if err := enc.Close(); err != nil {
			return errors.New(errors.CodeConfigFormat).Wrap(err)
		}
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.New(errors.CodeConfigFormat).Wrap(err)
		}
	default:
		return errors.Newf(errors.CategoryConfig, "unsupported config extension %q", filepath.Ext(path))
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.New(errors.CodeConfigFormat).Wrap(err)
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
	// Engine
	if c.Engine.MaxRerenders == 0 {
		c.Engine.MaxRerenders = engine.DefaultMaxRerenders
	}
	if c.Engine.DisposeOnUnmount == nil {
		dispose := true
		c.Engine.DisposeOnUnmount = &dispose
	}
	if c.Engine.HookMismatch == "" {
		c.Engine.HookMismatch = engine.HookMismatchWarn.String()
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Preview
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.App == "" {
		c.Preview.App = DefaultApp
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("preview.port must be between 0 and 65535")
	}
	if c.Engine.MaxRerenders < 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("engine.maxRerenders must not be negative")
	}
	if _, ok := engine.ParseHookMismatchPolicy(c.Engine.HookMismatch); !ok {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("engine.hookMismatch %q is not warn or reset", c.Engine.HookMismatch)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("log.level %q is not debug, info, warn or error", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("log.format %q is not text or json", c.Log.Format)
	}
	if t := c.Snapshot.Target; strings.Contains(t, "://") && !strings.HasPrefix(t, "s3://") {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("snapshot.target %q: only s3:// URLs are supported", t)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("metrics.path must start with /")
	}
	return nil
}

// Address returns the preview server listen address.
func (c *Config) Address() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// EngineOptions maps the engine section onto engine options.
func (c *Config) EngineOptions() []engine.Option {
	opts := []engine.Option{engine.WithMaxRerenders(c.Engine.MaxRerenders)}
	if c.Engine.DisposeOnUnmount != nil {
		opts = append(opts, engine.WithDisposeOnUnmount(*c.Engine.DisposeOnUnmount))
	}
	if p, ok := engine.ParseHookMismatchPolicy(c.Engine.HookMismatch); ok {
		opts = append(opts, engine.WithHookMismatch(p))
	}
	return opts
}

// NewLogger builds a logger writing to w as the log section describes.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a vtree config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No vtree config found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadOptional loads the project config found from dir upwards, or
// returns the defaults when there is none.
func LoadOptional(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}
