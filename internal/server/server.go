// Package server exposes invoice conversion over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/logger"
)

// Timeouts not exposed in the config file.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// ConverterPool hands out converters. *invoice2pdf.ConverterPool implements it.
type ConverterPool interface {
	Acquire(ctx context.Context) (*invoice2pdf.Converter, error)
	Release(conv *invoice2pdf.Converter)
	Size() int
}

var _ ConverterPool = (*invoice2pdf.ConverterPool)(nil)

// Server routes HTTP requests to the converter pool.
type Server struct {
	cfg    *config.Config
	pool   ConverterPool
	logger *slog.Logger
	router chi.Router
}

// New builds a Server. cfg must already be validated.
func New(pool ConverterPool, cfg *config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{
		cfg:    cfg,
		pool:   pool,
		logger: log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(middleware.RequestLogger(&requestLogFormatter{logger: s.logger}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{requestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))
	if rl := s.cfg.Server.RateLimit; rl.Enabled() {
		r.Use(newRateLimiter(rl.RequestsPerSecond, rl.Burst, s.logger).middleware)
	}

	r.Get("/", s.handleWelcome)
	r.Get("/health", s.handleHealth)
	r.Post("/create_invoice", s.handleCreateInvoice)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// httpServer wraps the router with the configured timeouts.
func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s,
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout(),
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. In-flight requests get
// shutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.httpServer()

	s.logger.Info("server listening", "address", ln.Addr().String(), "workers", s.pool.Size())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
