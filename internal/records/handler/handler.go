// Package handler exposes the raw record collections for inspection. These
// endpoints mirror the upstream agency feeds after normalization, which makes
// load problems diagnosable without touching the upstreams.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orlof/internal/platform/middleware"
	"orlof/internal/records"
	"orlof/pkg/platform/httputil"
)

// Handler handles raw record endpoints.
type Handler struct {
	logger *slog.Logger
	store  records.Store
}

// New creates a new records Handler.
func New(store records.Store, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store}
}

// Register registers the record routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/records/individuals", h.handleIndividuals)
	r.Get("/records/children", h.handleChildren)
	r.Get("/records/incomes", h.handleIncomes)
	r.Get("/records/birth-estimates", h.handleBirthEstimates)
}

func (h *Handler) handleIndividuals(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Registry(r.Context())
	h.respond(w, r, "individuals", entries, err)
}

func (h *Handler) handleChildren(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Children(r.Context())
	h.respond(w, r, "children", entries, err)
}

func (h *Handler) handleIncomes(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Incomes(r.Context())
	h.respond(w, r, "incomes", entries, err)
}

func (h *Handler) handleBirthEstimates(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.BirthEstimates(r.Context())
	h.respond(w, r, "birth_estimates", entries, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, collection string, entries any, err error) {
	ctx := r.Context()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records",
			"request_id", middleware.GetRequestID(ctx),
			"collection", collection,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}
