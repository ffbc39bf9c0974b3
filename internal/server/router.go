package server

import (
	"net/http"

	"github.com/elsouk/elsouk/internal/api"
	"github.com/elsouk/elsouk/internal/api/handlers"
	"github.com/elsouk/elsouk/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	SearchHandler  *handlers.SearchHandler
	ListingHandler *handlers.ListingHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))
	r.Use(middleware.Identity)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/search", cfg.SearchHandler.Search)
	r.Get("/search/quick", cfg.SearchHandler.QuickSearch)

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", cfg.ListingHandler.List)
		r.Get("/{id}", cfg.ListingHandler.Get)
	})

	return r
}
