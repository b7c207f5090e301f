package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mileagehawk/mileagehawk-data/internal/api/respond"
	"github.com/mileagehawk/mileagehawk-data/internal/cache"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

// airlineView is the public shape of an airline row.
type airlineView struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	Code                    string   `json:"code"`
	LoyaltyProgram          string   `json:"loyaltyProgram"`
	LoyaltyCurrency         string   `json:"loyaltyCurrency"`
	AmexTransferRatio       float64  `json:"amexTransferRatio"`
	CapitalOneTransferRatio *float64 `json:"capitalOneTransferRatio"`
	Alliance                *string  `json:"alliance"`
	HasLiveSource           bool     `json:"hasLiveSource"`
	IsActive                bool     `json:"isActive"`
}

// GetAirlines returns every transfer partner, chart-only partners included.
// @Summary List transfer partners
// @Description Returns all airlines with their transfer ratios and loyalty program details.
// @Tags reference
// @Produce json
// @Success 200 {array} airlineView
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/airlines [get]
func (h *Handler) GetAirlines(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "airlines:all"
	ttl := cache.TTLReference

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	airlines, err := h.store.AllAirlines(r.Context())
	if err != nil {
		h.logger.Error("Load airlines failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to load airlines")
		return
	}

	views := make([]airlineView, len(airlines))
	for i, a := range airlines {
		views[i] = toAirlineView(a)
	}
	data, err := json.Marshal(views)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode airlines")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

func toAirlineView(a model.Airline) airlineView {
	return airlineView{
		ID:                      a.ID,
		Name:                    a.Name,
		Code:                    a.Code,
		LoyaltyProgram:          a.LoyaltyProgram,
		LoyaltyCurrency:         a.LoyaltyCurrency,
		AmexTransferRatio:       a.AmexTransferRatio,
		CapitalOneTransferRatio: a.CapitalOneTransferRatio,
		Alliance:                a.Alliance,
		HasLiveSource:           a.SeatsAeroCode != nil,
		IsActive:                a.IsActive,
	}
}
