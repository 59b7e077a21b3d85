package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/md2pdf-server/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath    string // MD2PDF_CONFIG
	Addr          string // MD2PDF_ADDR
	LogLevel      string // MD2PDF_LOG_LEVEL
	MaxConcurrent *int   // MD2PDF_MAX_CONCURRENT
	BrowserBin    string // ROD_BROWSER_BIN
}

// knownEnvVars lists valid MD2PDF_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2PDF_CONFIG":         true,
	"MD2PDF_ADDR":           true,
	"MD2PDF_LOG_LEVEL":      true,
	"MD2PDF_MAX_CONCURRENT": true,
}

// loadEnvConfig reads the recognized variables through lookup.
func loadEnvConfig(lookup func(string) (string, bool)) (*envConfig, error) {
	get := func(name string) string {
		v, _ := lookup(name)
		return strings.TrimSpace(v)
	}

	cfg := &envConfig{
		ConfigPath: get("MD2PDF_CONFIG"),
		Addr:       get("MD2PDF_ADDR"),
		LogLevel:   get("MD2PDF_LOG_LEVEL"),
		BrowserBin: get("ROD_BROWSER_BIN"),
	}

	if raw := get("MD2PDF_MAX_CONCURRENT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: MD2PDF_MAX_CONCURRENT=%q (want a non-negative integer)", config.ErrInvalidValue, raw)
		}
		cfg.MaxConcurrent = &n
	}
	return cfg, nil
}

// warnUnknownEnvVars logs unrecognized MD2PDF_* variables (typos).
func warnUnknownEnvVars(logger *log.Logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "MD2PDF_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable", "name", name)
		}
	}
}

// applyEnvConfig overrides file values with environment values.
// ROD_BROWSER_BIN only fills an empty browser.bin.
// Precedence: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.MaxConcurrent != nil {
		cfg.Browser.MaxConcurrent = *env.MaxConcurrent
	}
	if env.BrowserBin != "" && cfg.Browser.Bin == "" {
		cfg.Browser.Bin = env.BrowserBin
	}
}
