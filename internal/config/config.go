package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Defaults applied by DefaultConfig.
const (
	DefaultAddress      = "0.0.0.0:3000"
	DefaultReadTimeout  = "15s"
	DefaultWriteTimeout = "60s"
	DefaultMaxBodyBytes = 1 << 20
	DefaultEngine       = "html2pdf"
	DefaultBinary       = "html2pdf"
	DefaultTimeout      = "30s"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// MaxWorkers caps converter.workers. Each worker may hold an external process.
const MaxWorkers = 64

// appDirName is the directory under os.UserConfigDir searched by LoadConfig.
const appDirName = "go-invoice2pdf"

// Config holds the service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Converter ConverterConfig `yaml:"converter"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  string          `yaml:"readTimeout"`
	WriteTimeout string          `yaml:"writeTimeout"`
	MaxBodyBytes int64           `yaml:"maxBodyBytes"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig defines per-client throttling. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// Enabled reports whether rate limiting is configured.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerSecond > 0
}

// ConverterConfig defines how PDFs are produced.
type ConverterConfig struct {
	Engine  string `yaml:"engine"`  // "html2pdf", "chrome", "native"
	Binary  string `yaml:"binary"`  // html2pdf executable name or path
	Timeout string `yaml:"timeout"` // Go duration
	Workers int    `yaml:"workers"` // 0 = auto
	WorkDir string `yaml:"workDir"` // "" = os.TempDir()
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      DefaultAddress,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			MaxBodyBytes: DefaultMaxBodyBytes,
			CORSOrigins:  []string{"*"},
		},
		Converter: ConverterConfig{
			Engine:  DefaultEngine,
			Binary:  DefaultBinary,
			Timeout: DefaultTimeout,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks every field. Called by LoadConfig, and again by callers
// after applying flag overrides.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return fmt.Errorf("%w: server.address: must not be empty", ErrInvalidValue)
	}
	if _, err := parsePositiveDuration("server.readTimeout", c.Server.ReadTimeout); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("server.writeTimeout", c.Server.WriteTimeout); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.maxBodyBytes: must be positive, got %d", ErrInvalidValue, c.Server.MaxBodyBytes)
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: server.rateLimit.requestsPerSecond: must not be negative", ErrInvalidValue)
	}
	if c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: server.rateLimit.burst: must not be negative", ErrInvalidValue)
	}

	switch c.Converter.Engine {
	case "html2pdf", "chrome", "native":
	default:
		return fmt.Errorf("%w: converter.engine: %q (must be html2pdf, chrome, or native)", ErrInvalidValue, c.Converter.Engine)
	}
	if c.Converter.Engine == "html2pdf" && strings.TrimSpace(c.Converter.Binary) == "" {
		return fmt.Errorf("%w: converter.binary: required for the html2pdf engine", ErrInvalidValue)
	}
	if _, err := parsePositiveDuration("converter.timeout", c.Converter.Timeout); err != nil {
		return err
	}
	if c.Converter.Workers < 0 || c.Converter.Workers > MaxWorkers {
		return fmt.Errorf("%w: converter.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Converter.Workers)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format: %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// ReadTimeout returns server.readTimeout as a duration.
// Call Validate first; an invalid value yields zero.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// WriteTimeout returns server.writeTimeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// ConversionTimeout returns converter.timeout as a duration.
func (c *Config) ConversionTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Converter.Timeout)
	return d
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is operator-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
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

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath tries name.yaml then name.yml, first in the current
// directory, then in the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(dir, appDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
