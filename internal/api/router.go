package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig contains all dependencies needed to construct the HTTP
// router, for dependency injection and testability.
type RouterConfig struct {
	// Store holds submitted and running battles (required).
	Store *BattleStore

	// RateLimiter is an optional pre-configured rate limiter. If nil, a new
	// one is created from RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig configures the rate limiter when RateLimiter is nil.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default allowed origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for
	// benchmarks and tests).
	DisableLogging bool
}

type routerHandlers struct {
	store *BattleStore
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function opens no listeners, so it's safe to use with
// httptest.NewServer. When cfg.RateLimiter is nil it creates a limiter,
// which starts that limiter's cleanup goroutine.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{store: cfg.Store}

	r.Route("/api/battles", func(r chi.Router) {
		r.Post("/", h.handleSubmitBattle)
		r.Get("/", h.handleListBattles)
		r.Get("/{id}", h.handleGetBattle)
		r.Get("/{id}/events", h.handleGetEvents)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
