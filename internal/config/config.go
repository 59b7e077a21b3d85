package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/md2pdf-server/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigPath = errors.New("config path cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Defaults.
const (
	DefaultAddr              = ":3001"
	DefaultMaxBodyBytes      = 50 << 20
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultLoadTimeout       = 30 * time.Second
	DefaultIdleWindow        = 500 * time.Millisecond
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
)

// Config holds the service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Browser BrowserConfig `yaml:"browser"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr              string   `yaml:"addr"`
	MaxBodyBytes      int64    `yaml:"maxBodyBytes"`
	ShutdownTimeout   Duration `yaml:"shutdownTimeout"`
	ReadHeaderTimeout Duration `yaml:"readHeaderTimeout"`
	CORSOrigins       []string `yaml:"corsOrigins"`
}

// BrowserConfig defines how rendering browsers are launched and driven.
type BrowserConfig struct {
	Bin           string   `yaml:"bin"` // empty = ROD_BROWSER_BIN, then lookup
	NoSandbox     bool     `yaml:"noSandbox"`
	LoadTimeout   Duration `yaml:"loadTimeout"`
	IdleWindow    Duration `yaml:"idleWindow"`
	MaxConcurrent int      `yaml:"maxConcurrent"` // 0 = unbounded
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Duration is a time.Duration written as "30s" or "500ms" in YAML.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in Go notation.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              DefaultAddr,
			MaxBodyBytes:      DefaultMaxBodyBytes,
			ShutdownTimeout:   Duration(DefaultShutdownTimeout),
			ReadHeaderTimeout: Duration(DefaultReadHeaderTimeout),
			CORSOrigins:       []string{"*"},
		},
		Browser: BrowserConfig{
			NoSandbox:   true,
			LoadTimeout: Duration(DefaultLoadTimeout),
			IdleWindow:  Duration(DefaultIdleWindow),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig, so omitted keys keep their
// defaults. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidValue)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.maxBodyBytes must be positive, got %d", ErrInvalidValue, c.Server.MaxBodyBytes)
	}
	if err := positive("server.shutdownTimeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if err := positive("server.readHeaderTimeout", c.Server.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := positive("browser.loadTimeout", c.Browser.LoadTimeout); err != nil {
		return err
	}
	if err := positive("browser.idleWindow", c.Browser.IdleWindow); err != nil {
		return err
	}
	if c.Browser.IdleWindow >= c.Browser.LoadTimeout {
		return fmt.Errorf("%w: browser.idleWindow (%s) must be shorter than browser.loadTimeout (%s)",
			ErrInvalidValue, c.Browser.IdleWindow.Std(), c.Browser.LoadTimeout.Std())
	}
	if c.Browser.MaxConcurrent < 0 {
		return fmt.Errorf("%w: browser.maxConcurrent must not be negative, got %d", ErrInvalidValue, c.Browser.MaxConcurrent)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}
	return nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

func positive(field string, d Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, field, d.Std())
	}
	return nil
}
