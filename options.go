package invoice2pdf

import (
	"log/slog"
	"time"
)

// Engine names accepted by WithEngine.
const (
	EngineHTML2PDF = "html2pdf"
	EngineChrome   = "chrome"
	EngineNative   = "native"
)

// DefaultBinary is the html2pdf executable looked up on PATH.
const DefaultBinary = "html2pdf"

// Margin is the page margin in inches applied by every engine.
const Margin = 0.4

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout time.Duration
	engine  string
	binary  string
	workDir string
	runner  CommandRunner
	logger  *slog.Logger
}

// WithTimeout sets the per-conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("invoice2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the PDF engine: EngineHTML2PDF, EngineChrome or
// EngineNative. NewConverter rejects other names with ErrUnknownEngine.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithBinary sets the html2pdf executable name or path.
func WithBinary(binary string) Option {
	return func(c *Converter) {
		c.cfg.binary = binary
	}
}

// WithWorkDir sets the directory for transient files. Empty means
// os.TempDir().
func WithWorkDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.workDir = dir
	}
}

// WithCommandRunner replaces how the html2pdf engine runs commands.
func WithCommandRunner(r CommandRunner) Option {
	return func(c *Converter) {
		c.cfg.runner = r
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}
