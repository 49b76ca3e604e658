// Package httptransport is the thin HTTP layer. Handlers decode requests,
// delegate to the domain services and translate errors into the shared JSON
// envelope; no business logic lives here.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthlink/internal/account"
	"healthlink/internal/auth"
	"healthlink/internal/auth/token"
	"healthlink/internal/identity"
	"healthlink/internal/platform/metrics"
	"healthlink/internal/platform/middleware"
	"healthlink/internal/seed"
	"healthlink/pkg/platform/httputil"
)

const defaultLookupTimeout = 10 * time.Second

// Config carries the wired services for the HTTP layer. HealthCheck is nil
// when no storage is configured; Development gates the seed endpoint.
type Config struct {
	Accounts      *account.Service
	Auth          *auth.Authenticator
	Tokens        *token.Service
	Identity      identity.Provider
	Seed          *seed.Service
	Metrics       *metrics.Metrics
	HealthCheck   func(ctx context.Context) error
	Development   bool
	LookupTimeout time.Duration
}

// Handler handles all API endpoints.
type Handler struct {
	logger        *slog.Logger
	accounts      *account.Service
	authn         *auth.Authenticator
	tokens        *token.Service
	identity      identity.Provider
	seed          *seed.Service
	metrics       *metrics.Metrics
	health        func(ctx context.Context) error
	development   bool
	lookupTimeout time.Duration
}

// New creates the HTTP handler set.
func New(cfg Config, logger *slog.Logger) *Handler {
	h := &Handler{
		logger:        logger,
		accounts:      cfg.Accounts,
		authn:         cfg.Auth,
		tokens:        cfg.Tokens,
		identity:      cfg.Identity,
		seed:          cfg.Seed,
		metrics:       cfg.Metrics,
		health:        cfg.HealthCheck,
		development:   cfg.Development,
		lookupTimeout: cfg.LookupTimeout,
	}
	if h.lookupTimeout <= 0 {
		h.lookupTimeout = defaultLookupTimeout
	}
	return h
}

// NewRouter wires all public endpoints with the shared middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.Logger(h.logger))

	r.Get("/healthz", h.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		api.Post("/auth/signup", h.handleSignup)
		api.Post("/auth/signin", h.handleSignIn)
		api.With(middleware.RequireAuth(h.tokens, h.logger)).Get("/auth/me", h.handleMe)
		api.Post("/identity/lookup", h.handleIdentityLookup)
		api.Post("/dev/seed", h.handleSeed)
	})
	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"storage": "unconfigured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.health(ctx); err != nil {
		h.logger.ErrorContext(r.Context(), "health check failed",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "degraded",
			"storage": "unreachable",
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": "ok",
	})
}
