package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sentinelai/sentinel/internal/handler/dto"
	"github.com/sentinelai/sentinel/internal/service"
)

// WaitlistHandler handles early-access waitlist signups.
type WaitlistHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
}

// NewWaitlistHandler creates a new WaitlistHandler.
func NewWaitlistHandler(svc *service.AccountService, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		svc:    svc,
		logger: logger,
	}
}

// Join handles POST /api/waitlist.
// A repeat signup is acknowledged, not rejected, so the landing page form
// never shows an error to an already-registered visitor.
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req dto.WaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	err := h.svc.JoinWaitlist(r.Context(), req.Email)
	switch {
	case err == nil:
		h.logger.Info("waitlist_joined")
		writeJSON(w, http.StatusCreated, dto.WaitlistResponse{Status: "ok"})
	case errors.Is(err, service.ErrAlreadyOnWaitlist):
		writeJSON(w, http.StatusOK, dto.WaitlistResponse{Status: "exists"})
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email address")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
