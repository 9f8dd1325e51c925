// Package handler exposes the combined profile endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orlof/internal/platform/middleware"
	"orlof/internal/profile"
	dErrors "orlof/pkg/domain-errors"
	"orlof/pkg/platform/httputil"
)

// defaultBirthMonth is the ranking query's month filter when the caller
// provides none.
const defaultBirthMonth = "05.2020"

// Service defines the profile operations the handler depends on.
type Service interface {
	BuildAll(ctx context.Context) ([]profile.CombinedProfile, error)
	ByIdentity(ctx context.Context, identityNumber string) (profile.CombinedProfile, error)
	HighestIncomeWithBirthInMonth(ctx context.Context, monthPattern string) (*profile.CombinedProfile, error)
}

// Handler handles profile endpoints.
type Handler struct {
	logger  *slog.Logger
	profile Service
}

// New creates a new profile Handler.
func New(profile Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, profile: profile}
}

// Register registers the profile routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/profiles", h.handleListProfiles)
	r.Get("/profiles/richest-parent", h.handleRichestParent)
	r.Get("/profiles/{identity}", h.handleProfileByIdentity)
}

func (h *Handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.profile.BuildAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build profiles",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profiles)
}

func (h *Handler) handleProfileByIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := chi.URLParam(r, "identity")
	if identity == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "identity is required"))
		return
	}

	p, err := h.profile.ByIdentity(ctx, identity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build profile",
			"request_id", middleware.GetRequestID(ctx),
			"identity", identity,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleRichestParent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	month := r.URL.Query().Get("birthMonth")
	if month == "" {
		month = defaultBirthMonth
	}

	best, err := h.profile.HighestIncomeWithBirthInMonth(ctx, month)
	if err != nil {
		h.logger.ErrorContext(ctx, "ranking query failed",
			"request_id", middleware.GetRequestID(ctx),
			"birth_month", month,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if best == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no parent matches the given birth month"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, best)
}
