// Package http serves the dashdoc search page through net/http.
package http

import (
	"log/slog"
	"net/http"

	"github.com/fwojciec/dashdoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler adapts a dashdoc.Responder to net/http.
type Handler struct {
	router    chi.Router
	responder *dashdoc.Responder
	logger    *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(responder *dashdoc.Responder, logger *slog.Logger) *Handler {
	h := &Handler{
		router:    chi.NewRouter(),
		responder: responder,
		logger:    logger,
	}

	h.router.Use(middleware.Recoverer)
	h.router.Get("/healthz", h.handleHealth)

	// Every other path and method gets the search page.
	h.router.HandleFunc("/*", h.handleSearch)
	h.router.NotFound(h.handleSearch)
	h.router.MethodNotAllowed(h.handleSearch)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// handleSearch renders the search page for the request target. The path is
// ignored; only GET requests carry a query, anything else gets the default
// page.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	target := ""
	if r.Method == http.MethodGet {
		target = r.URL.RequestURI()
	}

	resp, err := h.responder.Render(r.Context(), target)
	if err != nil {
		h.logger.Error("render", "method", r.Method, "target", target, "err", err)
	}

	w.Header().Set("Content-Type", dashdoc.ContentType)
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok\n"))
}
