package deals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

func TestTierForScore(t *testing.T) {
	assert.Equal(t, model.TierUnicorn, TierForScore(50))
	assert.Equal(t, model.TierAmazing, TierForScore(49.9))
	assert.Equal(t, model.TierAmazing, TierForScore(35))
	assert.Equal(t, model.TierGreat, TierForScore(20))
	assert.Equal(t, model.TierGood, TierForScore(10))
	assert.Equal(t, model.TierFair, TierForScore(9.9))
	assert.Equal(t, model.TierFair, TierForScore(0))
}

func TestScoreFromThresholdsTypicalPrice(t *testing.T) {
	// Europe Business midpoint is (55000+80000)/2 = 67500. A price above the
	// midpoint and above both deal thresholds is fair with score 0.
	s := ScoreFromThresholds(75000, model.CabinBusiness, model.RegionEurope)
	assert.Equal(t, model.TierFair, s.Tier)
	assert.Equal(t, 0.0, s.Score)
	require.NotNil(t, s.ThirtyDayAvg)
	assert.Equal(t, 67500, *s.ThirtyDayAvg)
	assert.Nil(t, s.Savings)
	assert.Nil(t, s.SavingsPercent)
}

func TestScoreFromThresholdsExceptionalDeal(t *testing.T) {
	// 30000 is under Europe Business exceptionalDeal (35000), so the tier is
	// amazing regardless of the raw score.
	s := ScoreFromThresholds(30000, model.CabinBusiness, model.RegionEurope)
	assert.Equal(t, model.TierAmazing, s.Tier)
	assert.InDelta(t, 55.6, s.Score, 0.1)
	require.NotNil(t, s.Savings)
	assert.Equal(t, 37500, *s.Savings)
}

func TestScoreFromThresholdsGoodDealBoundary(t *testing.T) {
	// A price exactly at goodDeal classifies as great, never good.
	s := ScoreFromThresholds(50000, model.CabinBusiness, model.RegionEurope)
	assert.Equal(t, model.TierGreat, s.Tier)
}

func TestScoreFromThresholdsScoreFloor(t *testing.T) {
	// Above goodDeal but with score >= 10: Europe Business at 60000 scores
	// (67500-60000)/67500*100 = 11.1, which lands in the good tier.
	s := ScoreFromThresholds(60000, model.CabinBusiness, model.RegionEurope)
	assert.Equal(t, model.TierGood, s.Tier)
	assert.InDelta(t, 11.1, s.Score, 0.1)
}

func TestScoreFromThresholdsUnknownRegion(t *testing.T) {
	s := ScoreFromThresholds(50000, model.CabinBusiness, model.Region("NORTH_POLE"))
	assert.Equal(t, model.TierFair, s.Tier)
	assert.Equal(t, 0.0, s.Score)
	assert.Nil(t, s.ThirtyDayAvg)
	assert.Nil(t, s.Savings)
	assert.Nil(t, s.SavingsPercent)
}

type fakeHistory struct {
	avg *int
	err error
}

func (f *fakeHistory) ThirtyDayAverage(ctx context.Context, routeID, airlineID string, cabin model.CabinClass) (*int, error) {
	return f.avg, f.err
}

func TestScoreWithHistoryUsesTrailingAverage(t *testing.T) {
	avg := 80000
	s, err := ScoreWithHistory(context.Background(), &fakeHistory{avg: &avg},
		"AUS-LHR", "ba", model.CabinBusiness, 40000, model.RegionEurope)
	require.NoError(t, err)

	// 50% below the trailing average: unicorn.
	assert.Equal(t, model.TierUnicorn, s.Tier)
	assert.InDelta(t, 50.0, s.Score, 0.001)
	require.NotNil(t, s.ThirtyDayAvg)
	assert.Equal(t, 80000, *s.ThirtyDayAvg)
	require.NotNil(t, s.Savings)
	assert.Equal(t, 40000, *s.Savings)
	require.NotNil(t, s.SavingsPercent)
	assert.Equal(t, 50.0, *s.SavingsPercent)
}

func TestScoreWithHistoryPriceAboveAverage(t *testing.T) {
	avg := 50000
	s, err := ScoreWithHistory(context.Background(), &fakeHistory{avg: &avg},
		"AUS-LHR", "ba", model.CabinBusiness, 60000, model.RegionEurope)
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.Score)
	assert.Equal(t, model.TierFair, s.Tier)
	assert.Nil(t, s.Savings)
	assert.Nil(t, s.SavingsPercent)
}

func TestScoreWithHistoryFallsBackWithoutHistory(t *testing.T) {
	s, err := ScoreWithHistory(context.Background(), &fakeHistory{},
		"AUS-LHR", "ba", model.CabinBusiness, 30000, model.RegionEurope)
	require.NoError(t, err)
	assert.Equal(t, model.TierAmazing, s.Tier)
	require.NotNil(t, s.ThirtyDayAvg)
	assert.Equal(t, 67500, *s.ThirtyDayAvg)
}

func TestScoreWithHistoryPropagatesStoreError(t *testing.T) {
	_, err := ScoreWithHistory(context.Background(), &fakeHistory{err: errors.New("boom")},
		"AUS-LHR", "ba", model.CabinBusiness, 30000, model.RegionEurope)
	assert.Error(t, err)
}
