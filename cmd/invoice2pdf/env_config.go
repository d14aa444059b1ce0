package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/config"
)

const envPrefix = "INVOICE2PDF_"

// envConfig holds configuration from environment variables.
// Container deployments set these instead of shipping a YAML file.
type envConfig struct {
	ConfigPath string // INVOICE2PDF_CONFIG
	Address    string // INVOICE2PDF_ADDR
	Engine     string // INVOICE2PDF_ENGINE
	Binary     string // INVOICE2PDF_BINARY
	Timeout    string // INVOICE2PDF_TIMEOUT, ignored unless a positive duration
	Workers    int    // INVOICE2PDF_WORKERS, ignored unless positive
	WorkDir    string // INVOICE2PDF_WORK_DIR
	LogLevel   string // INVOICE2PDF_LOG_LEVEL
	LogFormat  string // INVOICE2PDF_LOG_FORMAT
}

// knownEnvVars lists valid INVOICE2PDF_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"INVOICE2PDF_CONFIG":     true,
	"INVOICE2PDF_ADDR":       true,
	"INVOICE2PDF_ENGINE":     true,
	"INVOICE2PDF_BINARY":     true,
	"INVOICE2PDF_TIMEOUT":    true,
	"INVOICE2PDF_WORKERS":    true,
	"INVOICE2PDF_WORK_DIR":   true,
	"INVOICE2PDF_LOG_LEVEL":  true,
	"INVOICE2PDF_LOG_FORMAT": true,
}

// loadEnvConfig reads every recognized INVOICE2PDF_* value.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("INVOICE2PDF_CONFIG"),
		Address:    getenv("INVOICE2PDF_ADDR"),
		Engine:     getenv("INVOICE2PDF_ENGINE"),
		Binary:     getenv("INVOICE2PDF_BINARY"),
		WorkDir:    getenv("INVOICE2PDF_WORK_DIR"),
		LogLevel:   getenv("INVOICE2PDF_LOG_LEVEL"),
		LogFormat:  getenv("INVOICE2PDF_LOG_FORMAT"),
	}

	if timeout := getenv("INVOICE2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = timeout
		}
	}

	if workers := getenv("INVOICE2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized INVOICE2PDF_*
// variable in environ.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with the set environment
// values. Priority: CLI flags > env vars > config file > defaults
// (flags are applied afterwards).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Address != "" {
		cfg.Server.Address = env.Address
	}
	if env.Engine != "" {
		cfg.Converter.Engine = env.Engine
	}
	if env.Binary != "" {
		cfg.Converter.Binary = env.Binary
	}
	if env.Timeout != "" {
		cfg.Converter.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Converter.Workers = env.Workers
	}
	if env.WorkDir != "" {
		cfg.Converter.WorkDir = env.WorkDir
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
