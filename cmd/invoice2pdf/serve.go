package main

import (
	"context"
	"fmt"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/logger"
	"github.com/alnah/go-invoice2pdf/internal/server"
)

// runServe starts the HTTP service and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional)
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, env.Stderr)

	if cfg.Converter.Engine == invoice2pdf.EngineHTML2PDF {
		if _, err := env.LookPath(cfg.Converter.Binary); err != nil {
			log.Warn("converter binary not found, conversions will fail",
				"binary", cfg.Converter.Binary, "error", err)
		}
	}

	size := invoice2pdf.ResolvePoolSize(cfg.Converter.Workers)
	pool := invoice2pdf.NewConverterPool(size, converterOptions(cfg, log)...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing converter pool", "error", err)
		}
	}()

	log.Debug("converter pool ready", "engine", cfg.Converter.Engine, "workers", size)

	srv := server.New(pool, cfg, log)
	return withHint(srv.Run(ctx), cfg)
}

// mergeServeFlags applies non-empty serve flags to cfg. --verbose lowers
// the log level to debug unless --log-level is given.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	mergeConverterFlags(f.converter, cfg)

	if f.addr != "" {
		cfg.Server.Address = f.addr
	}
	if f.workers != 0 {
		cfg.Converter.Workers = f.workers
	}
	switch {
	case f.logLevel != "":
		cfg.Log.Level = f.logLevel
	case f.common.verbose:
		cfg.Log.Level = "debug"
	case f.common.quiet:
		cfg.Log.Level = "error"
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
}
