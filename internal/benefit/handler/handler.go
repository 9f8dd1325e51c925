// Package handler exposes the benefit calculation endpoint.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orlof/internal/benefit"
	"orlof/internal/platform/middleware"
	dErrors "orlof/pkg/domain-errors"
	"orlof/pkg/platform/httputil"
)

// Service defines the calculation operations the handler depends on.
type Service interface {
	Calculate(ctx context.Context, req benefit.CalculationRequest) (benefit.CalculationResponse, error)
}

// Handler handles calculation endpoints.
type Handler struct {
	logger  *slog.Logger
	benefit Service
}

// New creates a new benefit Handler.
func New(benefit Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, benefit: benefit}
}

// Register registers the calculation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/calculations", h.handleCalculate)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req benefit.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid calculation request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.benefit.Calculate(ctx, req)
	if err != nil {
		switch {
		case dErrors.Is(err, dErrors.CodeValidation), dErrors.Is(err, dErrors.CodeBadRequest):
			h.logger.WarnContext(ctx, "calculation request rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
		case dErrors.Is(err, dErrors.CodeMissingIncome):
			h.logger.WarnContext(ctx, "calculation for identity without income record",
				"request_id", requestID,
			)
			httputil.WriteError(w, err)
		default:
			h.logger.ErrorContext(ctx, "calculation failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "calculation failed"))
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
