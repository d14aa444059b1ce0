package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/hints"
)

// loadSettings builds the effective configuration:
// CLI flags > env vars > config file > defaults.
// The result is not validated; callers merge their flags first.
func loadSettings(common commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// userConfigPaths returns where a config name would live in the user
// config directory. Paths are returned as-is.
func userConfigPaths(name string) []string {
	if strings.ContainsAny(name, "/\\") {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-invoice2pdf", name+".yaml")}
}

// mergeConverterFlags applies non-empty converter flags to cfg.
func mergeConverterFlags(f converterFlags, cfg *config.Config) {
	if f.engine != "" {
		cfg.Converter.Engine = f.engine
	}
	if f.binary != "" {
		cfg.Converter.Binary = f.binary
	}
	if f.timeout != "" {
		cfg.Converter.Timeout = f.timeout
	}
	if f.workDir != "" {
		cfg.Converter.WorkDir = f.workDir
	}
}

// converterOptions translates a validated config into library options.
func converterOptions(cfg *config.Config, log *slog.Logger) []invoice2pdf.Option {
	opts := []invoice2pdf.Option{
		invoice2pdf.WithEngine(cfg.Converter.Engine),
		invoice2pdf.WithBinary(cfg.Converter.Binary),
		invoice2pdf.WithTimeout(cfg.ConversionTimeout()),
		invoice2pdf.WithLogger(log),
	}
	if cfg.Converter.WorkDir != "" {
		opts = append(opts, invoice2pdf.WithWorkDir(cfg.Converter.WorkDir))
	}
	return opts
}

// withHint appends an actionable hint to known conversion errors.
func withHint(err error, cfg *config.Config) error {
	if err == nil {
		return nil
	}

	var hint string
	switch {
	case errors.Is(err, invoice2pdf.ErrConverterNotFound):
		hint = hints.ForBinaryNotFound(cfg.Converter.Binary)
	case errors.Is(err, invoice2pdf.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, invoice2pdf.ErrConversionTimeout):
		hint = hints.ForTimeout()
	case errors.Is(err, invoice2pdf.ErrTransientIO):
		hint = hints.ForWorkDir()
	}

	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
