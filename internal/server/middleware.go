package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/alnah/go-invoice2pdf/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied request IDs.
const maxRequestIDLength = 128

// requestID reuses a well-formed X-Request-ID header or generates a UUID,
// echoes it back and stores it in the request context for logging.
// It is never used to build file names.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := logger.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}

// requestLogFormatter plugs the service logger into chi's RequestLogger.
// Entries carry the request ID, and middleware.Recoverer reports panics
// through them.
type requestLogFormatter struct {
	logger *slog.Logger
}

var (
	_ middleware.LogFormatter = (*requestLogFormatter)(nil)
	_ middleware.LogEntry     = (*requestLogEntry)(nil)
)

func (f *requestLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &requestLogEntry{
		logger: logger.WithContext(r.Context(), f.logger),
		method: r.Method,
		path:   r.URL.Path,
		client: r.RemoteAddr,
	}
}

type requestLogEntry struct {
	logger *slog.Logger
	method string
	path   string
	client string
}

// Write logs the completed request; the level follows the status code.
func (e *requestLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	if status == 0 {
		status = http.StatusOK
	}

	attrs := []any{
		"status", status,
		"method", e.method,
		"path", e.path,
		"bytes", bytes,
		"latency_ms", elapsed.Milliseconds(),
		"client_ip", e.client,
	}

	switch {
	case status >= 500:
		e.logger.Error("request completed", attrs...)
	case status >= 400:
		e.logger.Warn("request completed", attrs...)
	default:
		e.logger.Info("request completed", attrs...)
	}
}

func (e *requestLogEntry) Panic(v any, stack []byte) {
	e.logger.Error("panic recovered",
		"error", fmt.Sprint(v),
		"method", e.method,
		"path", e.path,
		"stack", string(stack),
	)
}

// staleClientAfter is how long an idle client's limiter is kept.
const staleClientAfter = 10 * time.Minute

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	logger    *slog.Logger
	now       func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(rps float64, burst int, log *slog.Logger) *rateLimiter {
	if burst < 1 {
		burst = max(1, int(rps))
	}
	return &rateLimiter{
		clients:   make(map[string]*clientLimiter),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		logger:    log,
		now:       time.Now,
	}
}

// allow reports whether ip may make a request now.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > staleClientAfter {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > staleClientAfter {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			logger.WithContext(r.Context(), rl.logger).Warn("rate limit exceeded", "client_ip", ip)
			w.Header().Set("Retry-After", "1")
			respondText(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr, which middleware.RealIP has
// already replaced with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
