package server

import (
	"net/http"

	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	httpmiddleware "goa.design/goa/v3/http/middleware"

	"simontech/internal/config"
	"simontech/internal/metrics"
)

// Handlers groups the endpoints mounted by New.
type Handlers struct {
	Inquiry *InquiryHandler
	Health  *HealthHandler
	Static  http.Handler
	Metrics http.Handler
}

// New mounts the API, health, metrics and static routes on a goa muxer and
// wraps them in the middleware chain:
// Security -> CORS -> Prometheus -> Recovery -> RequestID -> RequestContext -> Logging -> Mux.
func New(cfg *config.Config, h Handlers, logger *zap.Logger) http.Handler {
	mux := goahttp.NewMuxer()

	mux.Handle(http.MethodPost, InquiryPath, h.Inquiry.Create)
	mux.Handle(http.MethodGet, HealthPath, h.Health.Check)
	if h.Metrics != nil {
		mux.Handle(http.MethodGet, metrics.Path, h.Metrics.ServeHTTP)
	}

	// Everything else is the single-page application.
	for _, method := range []string{http.MethodGet, http.MethodHead} {
		mux.Handle(method, "/", h.Static.ServeHTTP)
		mux.Handle(method, "/{*path}", h.Static.ServeHTTP)
	}

	var handler http.Handler = mux
	handler = requestLogging(logger)(handler)
	handler = httpmiddleware.PopulateRequestContext()(handler)
	handler = httpmiddleware.RequestID()(handler)
	handler = recovery(logger)(handler)
	handler = metrics.PrometheusMiddleware(handler)
	handler = newCORS(&cfg.CORS).Handler(handler)
	handler = securityHeaders(cfg)(handler)

	return handler
}
