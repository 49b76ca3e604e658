package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"healthlink/internal/account"
	"healthlink/internal/audit"
	"healthlink/internal/auth"
	"healthlink/internal/auth/token"
	"healthlink/internal/identity"
	"healthlink/internal/lockout"
	"healthlink/internal/platform/config"
	"healthlink/internal/platform/httpserver"
	"healthlink/internal/platform/logger"
	"healthlink/internal/platform/metrics"
	"healthlink/internal/seed"
	"healthlink/internal/storage/postgres"
	httptransport "healthlink/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	m := metrics.New(prometheus.DefaultRegisterer)

	var provider identity.Provider
	if cfg.NationalIDAPIURL != "" {
		provider = identity.NewHTTPProvider(cfg.NationalIDAPIURL, cfg.LookupTimeout)
	} else {
		provider = identity.NewSimulatedProvider()
	}
	resolver := identity.NewResolver(provider, cfg.SimulationMode(), log)

	tokens := token.NewService(cfg.JWTSigningKey, cfg.TokenTTL)
	locks := lockout.New()

	transportCfg := httptransport.Config{
		Tokens:        tokens,
		Identity:      provider,
		Metrics:       m,
		Development:   cfg.Development(),
		LookupTimeout: cfg.LookupTimeout,
	}

	if cfg.SimulationMode() {
		log.Warn("DATABASE_URL not set, running in simulation mode")
		transportCfg.Accounts = account.NewSimulatedService(resolver, log, account.WithMetrics(m))
		transportCfg.Auth = auth.NewSimulatedAuthenticator(log, auth.WithMetrics(m))
		transportCfg.Seed = seed.NewSimulatedService(log)
	} else {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ensure := func(ctx context.Context) error { return postgres.EnsureSchema(ctx, db) }
		recorder := audit.NewRecorder(audit.NewPostgresStore(db), log)
		orgs := account.NewPostgresOrganizationStore(db)
		users := account.NewPostgresUserStore(db)

		transportCfg.Accounts = account.NewService(orgs, users, resolver, log,
			account.WithSchemaEnsurer(ensure),
			account.WithAuditRecorder(recorder),
			account.WithMetrics(m),
		)
		transportCfg.Auth = auth.NewAuthenticator(users, orgs, log,
			auth.WithLockout(locks),
			auth.WithAuditRecorder(recorder),
			auth.WithMetrics(m),
			auth.WithDevPasswordBypass(cfg.DevPasswordBypass),
		)
		transportCfg.Seed = seed.NewService(orgs, users, log,
			seed.WithSchemaEnsurer(ensure),
			seed.WithAuditRecorder(recorder),
		)
		transportCfg.HealthCheck = db.PingContext
	}

	handler := httptransport.New(transportCfg, log)
	router := httptransport.NewRouter(handler)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting healthlink server",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"simulation", cfg.SimulationMode(),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
