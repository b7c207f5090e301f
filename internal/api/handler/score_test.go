package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mileagehawk/mileagehawk-data/internal/cache"
	"github.com/mileagehawk/mileagehawk-data/internal/config"
	"github.com/mileagehawk/mileagehawk-data/internal/deals"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

type fakeHandlerStore struct {
	airlines []model.Airline
	avg      *int
}

func (f *fakeHandlerStore) AllAirlines(ctx context.Context) ([]model.Airline, error) {
	return f.airlines, nil
}

func (f *fakeHandlerStore) ThirtyDayAverage(ctx context.Context, routeID, airlineID string, cabin model.CabinClass) (*int, error) {
	return f.avg, nil
}

func newTestHandler(store Store) *Handler {
	return New(nil, store, cache.New(false), &config.Config{},
		slog.New(slog.DiscardHandler), Pipelines{})
}

func TestGetDealScoreThresholdPath(t *testing.T) {
	h := newTestHandler(&fakeHandlerStore{})

	req := httptest.NewRequest("GET", "/api/v1/score?points=30000&cabin=BUSINESS&region=EUROPE", nil)
	rec := httptest.NewRecorder()
	h.GetDealScore(rec, req)

	require.Equal(t, 200, rec.Code)
	var score deals.Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	assert.Equal(t, model.TierAmazing, score.Tier)
}

func TestGetDealScoreHistoryPath(t *testing.T) {
	avg := 80000
	h := newTestHandler(&fakeHandlerStore{avg: &avg})

	req := httptest.NewRequest("GET",
		"/api/v1/score?points=40000&cabin=BUSINESS&region=EUROPE&routeId=AUS-LHR&airlineId=ba", nil)
	rec := httptest.NewRecorder()
	h.GetDealScore(rec, req)

	require.Equal(t, 200, rec.Code)
	var score deals.Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	assert.Equal(t, model.TierUnicorn, score.Tier)
	require.NotNil(t, score.ThirtyDayAvg)
	assert.Equal(t, 80000, *score.ThirtyDayAvg)
}

func TestGetDealScoreValidation(t *testing.T) {
	h := newTestHandler(&fakeHandlerStore{})

	t.Run("missing points", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetDealScore(rec, httptest.NewRequest("GET", "/api/v1/score?cabin=BUSINESS&region=EUROPE", nil))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("bad cabin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetDealScore(rec, httptest.NewRequest("GET", "/api/v1/score?points=30000&cabin=COACH&region=EUROPE", nil))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("unknown region scores fair", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetDealScore(rec, httptest.NewRequest("GET", "/api/v1/score?points=30000&cabin=BUSINESS&region=ATLANTIS", nil))
		require.Equal(t, 200, rec.Code)
		var score deals.Score
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
		assert.Equal(t, model.TierFair, score.Tier)
		assert.Nil(t, score.ThirtyDayAvg)
	})
}

func TestGetAirlines(t *testing.T) {
	code := "delta"
	h := newTestHandler(&fakeHandlerStore{airlines: []model.Airline{
		{ID: "delta", Name: "Delta Air Lines", Code: "DL", LoyaltyProgram: "SkyMiles",
			AmexTransferRatio: 1.0, SeatsAeroCode: &code, IsActive: true},
		{ID: "ei", Name: "Aer Lingus", Code: "EI", LoyaltyProgram: "AerClub",
			AmexTransferRatio: 1.0, IsActive: true},
	}})

	req := httptest.NewRequest("GET", "/api/v1/airlines", nil)
	rec := httptest.NewRecorder()
	h.GetAirlines(rec, req)

	require.Equal(t, 200, rec.Code)
	var views []airlineView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.True(t, views[0].HasLiveSource)
	assert.False(t, views[1].HasLiveSource)
}
