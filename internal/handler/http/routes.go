package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the task service:
//
//	POST /api/auth/login   exchange an account for a bearer token
//	GET  /api/version      build version, plain text
//	GET  /api/tasks/lists  lists of the authenticated account
//	POST /api/tasks/batch  execute a batch of actions, integrity checked
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/tasks/lists", h.getTaskLists)
		r.With(h.batchHashing).Post("/api/tasks/batch", h.executeBatch)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
