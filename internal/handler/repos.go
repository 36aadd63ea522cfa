package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sentinelai/sentinel/internal/auth"
	"github.com/sentinelai/sentinel/internal/handler/dto"
	"github.com/sentinelai/sentinel/internal/service"
)

// RepoHandler handles repository connection endpoints.
type RepoHandler struct {
	svc    *service.RepoService
	logger *slog.Logger
}

// NewRepoHandler creates a new RepoHandler.
func NewRepoHandler(svc *service.RepoService, logger *slog.Logger) *RepoHandler {
	return &RepoHandler{
		svc:    svc,
		logger: logger,
	}
}

// Connect handles POST /api/repos/connect.
// Connecting an already-linked repository returns the existing connection
// with 200 instead of 201.
func (h *RepoHandler) Connect(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountIDFromContext(r.Context())
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.ConnectRepoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Connect(r.Context(), accountID, req.RepoFullName)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
		h.logger.Info("repo_connected",
			"account_id", accountID,
			"repo", result.Connection.RepoFullName,
		)
	}

	writeJSON(w, status, dto.ToRepoConnectionResponse(result.Connection))
}

// List handles GET /api/repos.
func (h *RepoHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountIDFromContext(r.Context())
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conns, err := h.svc.List(r.Context(), accountID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRepoListResponse(conns))
}

// handleServiceError maps service errors to HTTP responses.
func (h *RepoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRepoName):
		writeError(w, http.StatusBadRequest, "INVALID_REPO_NAME", "Repository name must look like owner/repo")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
