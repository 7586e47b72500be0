package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dxpr/content-intel/logging"
)

// NewRouter assembles the API routes. The router owns panic recovery and
// request logging; handler errors flow through the envelope responder.
func NewRouter(h *Handlers, logger logging.Logger) chi.Router {
	if logger == nil {
		logger = logging.Nop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/entity-types", h.EntityTypes)
		r.Get("/entity-types/{type}/bundles", h.Bundles)
		r.Get("/entity-types/{type}/bundles/{bundle}/fields", h.Fields)
		r.Get("/plugins", h.Plugins)
		r.Get("/entities", h.Entities)
		r.Get("/entities/{type}/{id}/summary", h.Summary)
		r.Get("/entities/{type}/{id}/intel", h.Intel)
		r.Post("/intel/batch", h.IntelBatch)
	})
	r.Get("/metrics", h.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, &Response{Error: &Error{
			Code:    "route_not_found",
			Message: "no such route",
		}})
	})
	return r
}

func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Debug("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(started)))
		})
	}
}
