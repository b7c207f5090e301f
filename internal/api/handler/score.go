package handler

import (
	"net/http"
	"strconv"

	"github.com/mileagehawk/mileagehawk-data/internal/api/respond"
	"github.com/mileagehawk/mileagehawk-data/internal/deals"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

// GetDealScore scores a price point. With routeId and airlineId it scores
// against the trailing 30-day average, falling back to the regional
// thresholds; without them it uses the thresholds directly.
// @Summary Score a price point
// @Description Classifies an AMEX-point price into a deal tier for a region and cabin.
// @Tags deals
// @Produce json
// @Param points query int true "Price in AMEX points"
// @Param cabin query string true "Cabin class" Enums(ECONOMY_PLUS, BUSINESS, FIRST)
// @Param region query string true "Destination region"
// @Param routeId query string false "Route ID for history-based scoring"
// @Param airlineId query string false "Airline ID for history-based scoring"
// @Success 200 {object} deals.Score
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/score [get]
func (h *Handler) GetDealScore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	points, err := strconv.Atoi(q.Get("points"))
	if err != nil || points <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_POINTS", "points must be a positive integer")
		return
	}

	cabin := model.CabinClass(q.Get("cabin"))
	if !cabin.Valid() {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CABIN", "cabin must be ECONOMY_PLUS, BUSINESS or FIRST")
		return
	}

	region := model.Region(q.Get("region"))

	routeID := q.Get("routeId")
	airlineID := q.Get("airlineId")
	if routeID != "" && airlineID != "" {
		score, err := deals.ScoreWithHistory(r.Context(), h.store, routeID, airlineID, cabin, points, region)
		if err != nil {
			h.logger.Error("History scoring failed", "route_id", routeID, "error", err)
			respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to score price")
			return
		}
		respond.WriteJSONObject(w, http.StatusOK, score)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, deals.ScoreFromThresholds(points, cabin, region))
}
