// Package httptransport assembles the public HTTP surface from the module
// routers. Business logic lives in the per-module service packages; this layer
// only mounts and orders middleware.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	contacthandler "contacthub/internal/contacts/handler"
	"contacthub/internal/platform/metrics"
	"contacthub/internal/platform/middleware"
	"contacthub/internal/transport/http/shared"
	userhandler "contacthub/internal/users/handler"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Users    *userhandler.Handler
	Contacts *contacthandler.Handler
	Database HealthChecker
}

// NewRouter wires the global middleware chain and mounts the module routers.
// Middleware order matters: recovery outermost, then request id so every log
// line and latency sample carries one.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(deps.Metrics))

	r.Mount("/api/users", deps.Users.Routes())
	r.Mount("/api/contacts", deps.Contacts.Routes())

	r.Get("/healthz", handleHealth(deps.Database))

	return r
}

func handleHealth(db HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Health(ctx); err != nil {
				status = map[string]string{"status": "degraded", "database": err.Error()}
				code = http.StatusServiceUnavailable
			}
		}
		shared.WriteJSON(w, code, status)
	}
}
