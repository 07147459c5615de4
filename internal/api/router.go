package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/keyscan/internal/scanner"
)

// NewRouter creates a chi router with all API routes mounted.
// exclude is the file every scan skips.
func NewRouter(sc *scanner.Scanner, exclude string, authEnabled bool, token string) chi.Router {
	h := NewHandler(sc, exclude)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/search", h.Search)
	r.Get("/search/stream", h.SearchStream)
	r.Get("/files", h.Files)

	return r
}
