package handler

import (
	"net/http"

	"github.com/mileagehawk/mileagehawk-data/internal/api/respond"
)

// CronScrapePrices runs the daily ingestion synchronously and reports its
// result. Guarded by the cron secret.
// @Summary Trigger price ingestion
// @Description Runs the seats.aero ingestion pipeline and returns the run summary.
// @Tags cron
// @Produce json
// @Security CronAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/cron/scrape-prices [post]
func (h *Handler) CronScrapePrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.pipelines.Scrape(r.Context())
	if err != nil {
		h.logger.Error("Scrape run failed", "error", err)
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "SCRAPE_FAILED", "Scrape run failed", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"source":        result.Source,
		"sourcesTotal":  result.RoutesTotal,
		"sourcesOk":     result.RoutesSuccess,
		"sourcesFailed": result.RoutesFailed,
		"pricesFound":   result.PricesFound,
		"durationMs":    result.DurationMs,
		"errors":        result.Errors,
	})
}

// CronAggregatePrices rolls today's prices into the history table.
// @Summary Trigger daily aggregation
// @Description Aggregates today's prices into per-day min/avg/max history rows.
// @Tags cron
// @Produce json
// @Security CronAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/cron/aggregate-prices [post]
func (h *Handler) CronAggregatePrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.pipelines.Aggregate(r.Context())
	if err != nil {
		h.logger.Error("Aggregation run failed", "error", err)
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "AGGREGATE_FAILED", "Aggregation run failed", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"aggregated": result.Aggregated,
		"errors":     result.Errors,
	})
}

// CronCheckAlerts evaluates active alerts against today's prices.
// @Summary Trigger alert evaluation
// @Description Matches active alerts against today's cheapest prices and dispatches notifications.
// @Tags cron
// @Produce json
// @Security CronAuth
// @Success 200 {object} alerts.Result
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/cron/check-alerts [post]
func (h *Handler) CronCheckAlerts(w http.ResponseWriter, r *http.Request) {
	result, err := h.pipelines.Alerts(r.Context())
	if err != nil {
		h.logger.Error("Alert run failed", "error", err)
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "ALERTS_FAILED", "Alert run failed", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, result)
}
