package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/report"
)

// ReportBuilder generates a sales report artifact pair.
type ReportBuilder interface {
	Build(rangeToken string) (*report.Report, error)
}

type salesReportQuery struct {
	Range string `validate:"oneof=7d 30d"`
}

// SalesReportResponse is the payload for GET /ml/reports/sales.
type SalesReportResponse struct {
	Range       string `json:"range"`
	CSVURL      string `json:"csvUrl"`
	PNGURL      string `json:"pngUrl"`
	GeneratedAt string `json:"generatedAt"`
	TotalSales  int    `json:"totalSales"`
	TotalOrders int    `json:"totalOrders"`
}

// Only names the builder itself produces are served back.
var artifactNamePattern = regexp.MustCompile(`^sales_(report|chart)_(7d|30d)_\d{8}_\d{6}_[0-9a-f]{8}\.(csv|png)$`)

// ReportHandler handles sales report generation and artifact downloads.
type ReportHandler struct {
	builder  ReportBuilder
	dir      string
	validate *validator.Validate
}

func NewReportHandler(builder ReportBuilder, dir string) *ReportHandler {
	return &ReportHandler{
		builder:  builder,
		dir:      dir,
		validate: validator.New(),
	}
}

// GetSalesReport handles GET /ml/reports/sales?range=7d|30d (default 7d).
func (h *ReportHandler) GetSalesReport(w http.ResponseWriter, r *http.Request) {
	rangeToken := r.URL.Query().Get("range")
	if rangeToken == "" {
		rangeToken = "7d"
	}
	if err := h.validate.Struct(salesReportQuery{Range: rangeToken}); err != nil {
		respondWithError(w, http.StatusBadRequest, "range must be one of 7d, 30d")
		return
	}

	rep, err := h.builder.Build(rangeToken)
	if err != nil {
		log.Error().Err(err).Str("range", rangeToken).Msg("handler: failed to generate sales report")
		respondWithError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	respondWithJSON(w, http.StatusOK, SalesReportResponse{
		Range:       rangeToken,
		CSVURL:      "/ml/reports/download/" + rep.CSVFilename,
		PNGURL:      "/ml/reports/download/" + rep.ChartFilename,
		GeneratedAt: rep.GeneratedAt.Format(time.RFC3339),
		TotalSales:  rep.TotalSales,
		TotalOrders: rep.TotalOrders,
	})
}

// DownloadReport handles GET /ml/reports/download/{filename}, streaming
// the raw artifact bytes. Names that are not artifact names — including
// anything path-like — are rejected before touching the filesystem.
func (h *ReportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != filepath.Base(filename) || !artifactNamePattern.MatchString(filename) {
		respondWithError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	path := filepath.Join(h.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		respondWithError(w, http.StatusNotFound, "report file not found")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}
