package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pulselabs/trendpulse/internal/scan"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

// TrendsHandler serves ranked momentum results
type TrendsHandler struct {
	scanService *scan.Service
	cacheTTL    time.Duration
	logger      *logger.Logger
}

// NewTrendsHandler creates a new trends handler
func NewTrendsHandler(scanService *scan.Service, cacheTTL time.Duration, log *logger.Logger) *TrendsHandler {
	return &TrendsHandler{
		scanService: scanService,
		cacheTTL:    cacheTTL,
		logger:      log,
	}
}

// GetTrends returns the latest ranked tickers
// GET /api/trends
func (h *TrendsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.scanService.Results(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to produce scan results")
		respondError(w, http.StatusBadGateway, "Failed to fetch trend data")
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheTTL.Seconds())))
	respondJSON(w, http.StatusOK, result)
}
