// Package deals scores price points against either a trailing 30-day
// average or the static regional threshold tables, producing a 0-100+ score
// and a five-tier classification.
package deals

import (
	"context"
	"fmt"
	"math"

	"github.com/mileagehawk/mileagehawk-data/internal/catalog"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

// Score is the shared output of both scoring paths.
type Score struct {
	// Score is the percentage below the reference average (0-100+).
	Score float64        `json:"score"`
	Tier  model.DealTier `json:"tier"`
	// ThirtyDayAvg is the reference average used: the real trailing average
	// on the history path, the typical-range midpoint on the threshold path,
	// nil for unknown regions.
	ThirtyDayAvg *int `json:"thirtyDayAvg"`
	// Savings and SavingsPercent are nil unless the price beats the average.
	Savings        *int     `json:"savings"`
	SavingsPercent *float64 `json:"savingsPercent"`
}

// TierForScore maps a score to its tier via the fixed cut points.
func TierForScore(score float64) model.DealTier {
	switch {
	case score >= 50:
		return model.TierUnicorn
	case score >= 35:
		return model.TierAmazing
	case score >= 20:
		return model.TierGreat
	case score >= 10:
		return model.TierGood
	}
	return model.TierFair
}

// HistoryStore supplies the trailing 30-day average of daily average prices
// for a (route, airline, cabin) group, nil when no history exists.
type HistoryStore interface {
	ThirtyDayAverage(ctx context.Context, routeID, airlineID string, cabin model.CabinClass) (*int, error)
}

// ScoreWithHistory scores a price against the trailing 30-day average,
// falling back to the static regional thresholds when no history exists.
func ScoreWithHistory(
	ctx context.Context,
	store HistoryStore,
	routeID, airlineID string,
	cabin model.CabinClass,
	amexPoints int,
	region model.Region,
) (Score, error) {
	avg, err := store.ThirtyDayAverage(ctx, routeID, airlineID, cabin)
	if err != nil {
		return Score{}, fmt.Errorf("thirty day average: %w", err)
	}

	if avg != nil && *avg > 0 {
		return scoreAgainstAverage(amexPoints, *avg), nil
	}
	return ScoreFromThresholds(amexPoints, cabin, region), nil
}

// scoreAgainstAverage is the history path: score = max(0, (avg-price)/avg*100)
// with tier straight from the score table.
func scoreAgainstAverage(amexPoints, avg int) Score {
	savings := avg - amexPoints
	savingsPercent := float64(savings) / float64(avg) * 100
	score := math.Max(0, savingsPercent)

	avgCopy := avg
	out := Score{
		Score:        score,
		Tier:         TierForScore(score),
		ThirtyDayAvg: &avgCopy,
	}
	if savings > 0 {
		out.Savings = &savings
		rounded := math.Round(savingsPercent*10) / 10
		out.SavingsPercent = &rounded
	}
	return out
}

// ScoreFromThresholds is the synchronous fallback: it compares against the
// midpoint of the region+cabin typical range, then overrides the tier with
// the explicit deal thresholds. Precedence is deliberate: exceptionalDeal
// beats goodDeal beats the score floor beats the score table, so a price
// exactly at goodDeal classifies as "great", never "good". Unknown regions
// score zero rather than erroring.
func ScoreFromThresholds(amexPoints int, cabin model.CabinClass, region model.Region) Score {
	threshold, ok := catalog.ThresholdFor(region, cabin)
	if !ok {
		return Score{Score: 0, Tier: model.TierFair}
	}

	typicalAvg := float64(threshold.TypicalRange[0]+threshold.TypicalRange[1]) / 2
	savings := typicalAvg - float64(amexPoints)
	savingsPercent := savings / typicalAvg * 100
	score := math.Max(0, savingsPercent)

	var tier model.DealTier
	switch {
	case amexPoints <= threshold.ExceptionalDeal:
		tier = model.TierAmazing
	case amexPoints <= threshold.GoodDeal:
		tier = model.TierGreat
	case score >= 10:
		tier = model.TierGood
	default:
		tier = TierForScore(score)
	}

	avgRounded := int(math.Round(typicalAvg))
	out := Score{
		Score:        score,
		Tier:         tier,
		ThirtyDayAvg: &avgRounded,
	}
	if savings > 0 {
		s := int(math.Round(savings))
		out.Savings = &s
		p := math.Round(savingsPercent*10) / 10
		out.SavingsPercent = &p
	}
	return out
}
