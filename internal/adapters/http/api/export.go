package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	service "github.com/okian/edgefinder/internal/app"
	"github.com/okian/edgefinder/pkg/logger"
)

// ExportDependencies defines the interface for the daily export.
type ExportDependencies interface {
	Export(ctx context.Context) ([]ExportRow, error)
}

// ExportHandler handles export requests.
type ExportHandler struct {
	deps ExportDependencies
	log  logger.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies, log logger.Logger) *ExportHandler {
	return &ExportHandler{deps: deps, log: log}
}

type exportResponse struct {
	Games []ExportRow `json:"games"`
}

// HandleGetExport handles GET /export?format={json|csv} requests.
func (h *ExportHandler) HandleGetExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("unknown format %q", format)))
		return
	}
	rows, err := h.deps.Export(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	if format != "csv" {
		writeJSON(w, http.StatusOK, exportResponse{Games: rows})
		return
	}

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, rows); err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
