package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loan-decision/metrics"
)

type RouterConfig struct {
	Loans       *LoanHandler
	Health      *HealthHandler
	RateLimiter *RateLimiter
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Static      fs.FS
}

// NewRouter wires every endpoint. Only the loan API is rate limited.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", cfg.Health.Healthz)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	if cfg.Static != nil {
		fileServer := http.FileServer(http.FS(cfg.Static))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFileFS(w, req, cfg.Static, "index.html")
		})
	}

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(RateLimitMiddleware(cfg.RateLimiter, cfg.Metrics))
		}
		cfg.Loans.Register(r)
	})

	return r
}
