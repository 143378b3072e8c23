package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"contacthub/internal/audit"
	auditstore "contacthub/internal/audit/store"
	"contacthub/internal/auth/revocation"
	contacthandler "contacthub/internal/contacts/handler"
	contactservice "contacthub/internal/contacts/service"
	contactstore "contacthub/internal/contacts/store"
	"contacthub/internal/jwttoken"
	"contacthub/internal/platform/config"
	"contacthub/internal/platform/httpserver"
	"contacthub/internal/platform/logger"
	"contacthub/internal/platform/metrics"
	"contacthub/internal/platform/postgres"
	"contacthub/internal/platform/redis"
	httptransport "contacthub/internal/transport/http"
	"contacthub/internal/transport/http/shared"
	userhandler "contacthub/internal/users/handler"
	userservice "contacthub/internal/users/service"
	userstore "contacthub/internal/users/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "contacthub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New(cfg.Development)
	if cfg.Development {
		shared.EnableStackTraces()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	tokens := jwttoken.New(cfg.JWTSigningKey, "contacthub", cfg.TokenTTL)

	// Store selection: postgres when DATABASE_URL is set, otherwise in-memory
	// (dev/test only; state dies with the process).
	var (
		users     userservice.UserStore
		contacts  contactservice.ContactStore
		auditRepo audit.Store
		trl       interface {
			Revoke(ctx context.Context, jti string, ttl time.Duration) error
			IsRevoked(ctx context.Context, jti string) (bool, error)
		}
		pgTRL *revocation.PostgresTRL
		db    *postgres.Client
	)

	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		users = userstore.NewPostgres(db.DB)
		contacts = contactstore.NewPostgres(db.DB)
		auditRepo = auditstore.NewPostgres(db.DB)
		pgTRL = revocation.NewPostgresTRL(db.DB)
		trl = pgTRL
		log.Info("postgres stores initialized")
	} else {
		users = userstore.NewMemory()
		contacts = contactstore.NewMemory()
		auditRepo = auditstore.NewMemory()
		trl = revocation.NewMemoryTRL()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// Redis, when configured, takes over the token revocation list so that
	// logouts propagate across replicas without a database round-trip.
	rdb, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		trl = revocation.NewRedisTRL(rdb.Client)
		log.Info("redis revocation list initialized")
	}

	auditPublisher := audit.NewPublisher(auditRepo)

	userSvc := userservice.New(users, tokens,
		userservice.WithLogger(log),
		userservice.WithMetrics(m),
		userservice.WithAuditPublisher(auditPublisher),
		userservice.WithTokenRevoker(trl),
	)
	contactSvc := contactservice.New(contacts,
		contactservice.WithLogger(log),
		contactservice.WithMetrics(m),
		contactservice.WithAuditPublisher(auditPublisher),
	)

	deps := httptransport.Deps{
		Logger:   log,
		Metrics:  m,
		Users:    userhandler.New(userSvc, tokens, trl, log),
		Contacts: contacthandler.New(contactSvc, tokens, trl, log),
	}
	if db != nil {
		deps.Database = db
	}
	router := httptransport.NewRouter(deps)

	srv := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	if pgTRL != nil && rdb == nil {
		// Expired revocation rows are harmless but accumulate; sweep hourly.
		g.Go(func() error {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					deleted, err := pgTRL.DeleteExpired(gctx)
					if err != nil {
						log.Warn("revocation cleanup failed", "error", err)
						continue
					}
					if deleted > 0 {
						log.Info("revocation cleanup", "deleted", deleted)
					}
				}
			}
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
