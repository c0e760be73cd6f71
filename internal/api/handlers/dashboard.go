package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vvadla/upi-tracker/internal/analytics"
	"github.com/vvadla/upi-tracker/internal/api/middleware"
	infraBQ "github.com/vvadla/upi-tracker/internal/infra/bigquery"
)

// DashboardHandler serves the aggregated dashboard payload and the
// spending forecast. Every request recomputes from a fresh ledger load;
// there is no cached aggregate state.
type DashboardHandler struct {
	repo            infraBQ.LedgerRepository
	forecastHorizon int
	log             zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(repo infraBQ.LedgerRepository, forecastHorizon int, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{repo: repo, forecastHorizon: forecastHorizon, log: log}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ledger, err := infraBQ.LoadLedger(r.Context(), h.repo)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	dashboard := analytics.BuildDashboard(ledger)

	if dashboard.ExcludedRecords > 0 {
		h.log.Warn().
			Int("excluded_records", dashboard.ExcludedRecords).
			Msg("Transactions excluded from time-keyed aggregations")
	}

	middleware.WriteJSON(w, http.StatusOK, dashboard)
}

// GetForecast handles GET /api/forecast?months=N
func (h *DashboardHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	horizon := h.forecastHorizon
	if monthsStr := r.URL.Query().Get("months"); monthsStr != "" {
		months, err := strconv.Atoi(monthsStr)
		if err != nil || months < 1 {
			middleware.WriteError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		horizon = months
	}

	ledger, err := infraBQ.LoadLedger(r.Context(), h.repo)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	points, err := analytics.SpendingForecast(ledger, horizon)
	if err != nil {
		if errors.Is(err, analytics.ErrInsufficientHistory) {
			middleware.WriteError(w, http.StatusUnprocessableEntity, "Not enough history for a forecast; record at least two months of transactions")
			return
		}
		h.log.Error().Err(err).Msg("Forecast failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute forecast")
		return
	}

	for i := range points {
		points[i].Amount = analytics.Round(points[i].Amount)
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"forecast": points,
		"horizon":  horizon,
	})
}
