package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "md2pdf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Server.Addr != ":3001" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":3001")
	}
	if cfg.Server.MaxBodyBytes != 50<<20 {
		t.Errorf("Server.MaxBodyBytes = %d, want 50MiB", cfg.Server.MaxBodyBytes)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("Server.CORSOrigins = %v, want [*]", cfg.Server.CORSOrigins)
	}
	if !cfg.Browser.NoSandbox {
		t.Error("Browser.NoSandbox = false, want true")
	}
	if cfg.Browser.LoadTimeout.Std() != 30*time.Second {
		t.Errorf("Browser.LoadTimeout = %s, want 30s", cfg.Browser.LoadTimeout.Std())
	}
	if cfg.Browser.IdleWindow.Std() != 500*time.Millisecond {
		t.Errorf("Browser.IdleWindow = %s, want 500ms", cfg.Browser.IdleWindow.Std())
	}
	if cfg.Browser.MaxConcurrent != 0 {
		t.Errorf("Browser.MaxConcurrent = %d, want 0", cfg.Browser.MaxConcurrent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  addr: "127.0.0.1:8080"
  corsOrigins:
    - https://app.example.com
browser:
  bin: /usr/bin/chromium
  loadTimeout: 45s
  maxConcurrent: 4
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Browser.Bin != "/usr/bin/chromium" {
		t.Errorf("Browser.Bin = %q", cfg.Browser.Bin)
	}
	if cfg.Browser.LoadTimeout.Std() != 45*time.Second {
		t.Errorf("Browser.LoadTimeout = %s, want 45s", cfg.Browser.LoadTimeout.Std())
	}
	if cfg.Browser.MaxConcurrent != 4 {
		t.Errorf("Browser.MaxConcurrent = %d, want 4", cfg.Browser.MaxConcurrent)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}

	// Omitted keys keep defaults.
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Server.MaxBodyBytes = %d, want default", cfg.Server.MaxBodyBytes)
	}
	if cfg.Browser.IdleWindow.Std() != DefaultIdleWindow {
		t.Errorf("Browser.IdleWindow = %s, want default", cfg.Browser.IdleWindow.Std())
	}
	if !cfg.Browser.NoSandbox {
		t.Error("Browser.NoSandbox lost its default")
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default", cfg.Log.Format)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		path    string
		wantErr error
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: ErrEmptyConfigPath,
		},
		{
			name:    "missing file",
			path:    filepath.Join(os.TempDir(), "md2pdf-server-does-not-exist.yaml"),
			wantErr: ErrConfigNotFound,
		},
		{
			name:    "unknown key",
			content: "server:\n  port: 3001\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "bad duration",
			content: "browser:\n  loadTimeout: soon\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "invalid value",
			content: "browser:\n  maxConcurrent: -1\n",
			wantErr: ErrInvalidValue,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := tt.path
			if path == "" && tt.wantErr != ErrEmptyConfigPath {
				path = writeConfig(t, tt.content)
			}

			_, err := LoadConfig(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.maxBodyBytes"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "server.shutdownTimeout"},
		{"negative header timeout", func(c *Config) { c.Server.ReadHeaderTimeout = Duration(-time.Second) }, "server.readHeaderTimeout"},
		{"zero load timeout", func(c *Config) { c.Browser.LoadTimeout = 0 }, "browser.loadTimeout"},
		{"zero idle window", func(c *Config) { c.Browser.IdleWindow = 0 }, "browser.idleWindow"},
		{"idle window not shorter than timeout", func(c *Config) {
			c.Browser.IdleWindow = Duration(time.Minute)
		}, "must be shorter"},
		{"negative concurrency", func(c *Config) { c.Browser.MaxConcurrent = -2 }, "browser.maxConcurrent"},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"uppercase log level", func(c *Config) { c.Log.Level = "DEBUG" }, ""},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("Validate() = %v, want ErrInvalidValue", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Marshal(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Browser.LoadTimeout = Duration(90 * time.Second)

	out, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "1m30s") {
		t.Errorf("Marshal() output does not render durations in Go notation:\n%s", out)
	}

	path := writeConfig(t, string(out))
	back, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() of marshaled config: %v", err)
	}
	if back.Browser.LoadTimeout != cfg.Browser.LoadTimeout {
		t.Errorf("round trip LoadTimeout = %s, want %s", back.Browser.LoadTimeout.Std(), cfg.Browser.LoadTimeout.Std())
	}
}
