package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
	"github.com/dmitrymomot/notifydispatch/pkg/httpserver"
	"github.com/dmitrymomot/notifydispatch/pkg/logger"
	"github.com/dmitrymomot/notifydispatch/pkg/requestid"
)

const defaultMaxBodyBytes = 1 << 20

type router struct {
	handler       EventHandler
	logger        *slog.Logger
	checks        []httpserver.Check
	registry      *prometheus.Registry
	maxBodyBytes  int64
	handleTimeout time.Duration
}

// RouterOption configures NewRouter.
type RouterOption func(*router)

func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(r *router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReadinessChecks adds probes served on /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) RouterOption {
	return func(r *router) { r.checks = append(r.checks, checks...) }
}

// WithMetrics instruments the router and serves reg on /metrics.
func WithMetrics(reg *prometheus.Registry) RouterOption {
	return func(r *router) { r.registry = reg }
}

func WithMaxBodyBytes(n int64) RouterOption {
	return func(r *router) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

// WithHandleTimeout bounds the time spent handling one event.
func WithHandleTimeout(d time.Duration) RouterOption {
	return func(r *router) { r.handleTimeout = d }
}

// NewRouter builds the inbound HTTP surface:
//
//	POST /events         accept one event, 202 on success
//	GET  /health/live    liveness
//	GET  /health/ready   readiness
//	GET  /metrics        Prometheus, when WithMetrics is set
func NewRouter(h EventHandler, opts ...RouterOption) http.Handler {
	rt := &router{
		handler:      h,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(rt)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	if rt.registry != nil {
		r.Use(newHTTPMetrics(rt.registry).middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{Registry: rt.registry}))
	}

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(rt.logger, rt.checks...))
	r.Post("/events", rt.postEvent)

	return r
}

func (rt *router) postEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rt.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "unreadable_body", "failed to read request body")
		return
	}

	ev, err := decodeEvent(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_event", err.Error())
		return
	}

	ctx := r.Context()
	if rt.handleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.handleTimeout)
		defer cancel()
	}

	if err := rt.handler.Handle(ctx, ev); err != nil {
		status, code := statusFor(err)
		rt.logger.LogAttrs(ctx, slog.LevelError, "Event handling failed",
			logger.Event(ev.Name),
			logger.Error(err))
		writeError(w, status, code, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, response{Data: map[string]string{"status": "accepted"}})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, dispatch.ErrOrganizationResolution):
		return http.StatusUnprocessableEntity, "organization_unresolved"
	case errors.Is(err, dispatch.ErrAssembly):
		return http.StatusUnprocessableEntity, "assembly_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusBadGateway, "dispatch_failed"
	}
}
