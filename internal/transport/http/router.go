package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"privacyguard/internal/platform/metrics"
	"privacyguard/internal/platform/middleware"
	"privacyguard/internal/transport/http/shared"
)

// RouterDeps bundles everything the router mounts. Health is optional; when
// set it is consulted by /healthz for a deep check of backing services.
type RouterDeps struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	JWTValidator middleware.JWTValidator

	Process  *ProcessHandler
	Deletion *DeletionHandler
	Consent  *ConsentHandler
	Audit    *AuditHandler

	Health func(ctx context.Context) error
}

// NewRouter wires the middleware chain and all endpoints. Ordering matters:
// recovery wraps everything, request metadata is captured before logging, and
// authentication guards only the versioned API so probes stay unauthenticated.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))

	r.Get("/healthz", handleHealth(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.Timeout(30 * time.Second))
		v1.Use(middleware.ContentTypeJSON)
		v1.Use(middleware.LatencyMiddleware(deps.Metrics))
		v1.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))

		deps.Process.Register(v1)
		deps.Deletion.Register(v1)
		deps.Consent.Register(v1)
		deps.Audit.Register(v1)
	})

	return r
}

func handleHealth(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				shared.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"reason": err.Error(),
				})
				return
			}
		}
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
