package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, h.withMetrics, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)

		if h.registry != nil {
			r.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
		}
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/states/", h.listStates)
		r.Get("/api/states/{id}", h.fetchState)
		r.With(h.verifyHashing).Put("/api/states/{id}", h.pushState)
		r.Delete("/api/states/{id}", h.deleteState)
		r.Get("/api/states/{id}/version", h.getStateVersion)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}
