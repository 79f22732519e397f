package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wolfman30/onboardai/internal/demorequest"
	httpmiddleware "github.com/wolfman30/onboardai/internal/http/middleware"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	DemoRequests       *demorequest.Handler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimiter throttles public POSTs per client IP. Nil disables it.
	RateLimiter *httpmiddleware.RateLimiter

	// Ready, if set, backs /ready (e.g. a database ping).
	Ready func(ctx context.Context) error
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", health)
	r.Get("/ready", ready(cfg.Ready))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.DemoRequests != nil {
		r.Route("/api", func(api chi.Router) {
			api.Use(middleware.Timeout(30 * time.Second))

			// Admin listing is registered before the mount so the pattern
			// takes precedence over the public sub-router.
			api.With(httpmiddleware.AdminJWT(cfg.AdminAuthSecret)).
				Get("/admin/demo-requests", cfg.DemoRequests.ListDemoRequests)

			api.Mount("/", limitPosts(cfg.RateLimiter)(cfg.DemoRequests.Routes()))
		})
	}

	return r
}

// limitPosts applies the rate limiter to POST requests only.
func limitPosts(limiter *httpmiddleware.RateLimiter) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	limited := httpmiddleware.RateLimit(limiter)
	return func(next http.Handler) http.Handler {
		guarded := limited(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				guarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "ok")
}

func ready(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				writeStatus(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		writeStatus(w, http.StatusOK, "ready")
	}
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
