package handler

import (
	"net/http"
	"os"
	"path/filepath"
)

// reportFileName is the sample report shipped in the static directory.
const reportFileName = "sentinelai-sample-report.pdf"

// ReportHandler serves the sample security report.
type ReportHandler struct {
	staticDir string
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(staticDir string) *ReportHandler {
	return &ReportHandler{staticDir: staticDir}
}

// Get handles GET /api/report.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, reportFileName)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "REPORT_NOT_FOUND", "Sample report is not available")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+reportFileName+`"`)
	http.ServeFile(w, r, path)
}
