package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sentinelai/sentinel/internal/handler/dto"
	"github.com/sentinelai/sentinel/internal/news"
)

// NewsHandler serves the aggregated news list.
type NewsHandler struct {
	svc    *news.Service
	logger *slog.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(svc *news.Service, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/news.
// Unparsable page values fall back to defaults; out-of-range values are clamped.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 0
	if p := query.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			page = parsed
		}
	}

	pageSize := 0
	if ps := query.Get("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil {
			pageSize = parsed
		}
	}

	result, err := h.svc.GetPage(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("news_fetch_failed", "error", err)
		writeError(w, http.StatusBadGateway, "FEEDS_UNAVAILABLE", "News feeds are temporarily unavailable")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNewsResponse(
		result.Items, result.Page, result.PageSize, result.Total, result.TotalPages,
	))
}
