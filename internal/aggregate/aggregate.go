// Package aggregate rolls the day's normalized prices up into per-day
// price-history records: one min/avg/max/count row per
// (route, airline, cabin) group. Re-running recomputes full groups from the
// raw rows, so repeated runs for the same day converge on identical values.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

// Group is one (route, airline, cabin) aggregate computed by the store's
// grouped query.
type Group struct {
	RouteID    string
	AirlineID  string
	CabinClass model.CabinClass
	MinPrice   int
	AvgPrice   int
	MaxPrice   int
	SampleSize int
}

// Store is the persistence surface the aggregator needs. DailyPriceGroups
// must aggregate in the database (a single grouped query), not row by row.
type Store interface {
	DailyPriceGroups(ctx context.Context, dayStart, dayEnd time.Time) ([]Group, error)
	UpsertHistoryDay(ctx context.Context, day model.HistoryDay) error
}

// Result reports an aggregation run.
type Result struct {
	Aggregated int
	Errors     []string
}

// Run aggregates all prices scraped during the current UTC day into
// price-history rows keyed by today's date. A failed group upsert is
// recorded and does not stop the remaining groups; only the grouped query
// itself failing is fatal.
func Run(ctx context.Context, store Store, logger *slog.Logger) (Result, error) {
	var result Result
	if logger == nil {
		logger = slog.Default()
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	logger.Info("Aggregation starting", "date", dayStart.Format("2006-01-02"))

	groups, err := store.DailyPriceGroups(ctx, dayStart, dayEnd)
	if err != nil {
		return result, fmt.Errorf("group daily prices: %w", err)
	}
	logger.Info("Found price groups", "count", len(groups))

	for _, g := range groups {
		day := model.HistoryDay{
			RouteID:    g.RouteID,
			AirlineID:  g.AirlineID,
			CabinClass: g.CabinClass,
			Date:       dayStart,
			MinPrice:   g.MinPrice,
			AvgPrice:   g.AvgPrice,
			MaxPrice:   g.MaxPrice,
			SampleSize: g.SampleSize,
		}
		if err := store.UpsertHistoryDay(ctx, day); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("aggregate %s/%s/%s: %v", g.RouteID, g.AirlineID, g.CabinClass, err))
			continue
		}
		result.Aggregated++
	}

	logger.Info("Aggregation complete", "aggregated", result.Aggregated, "errors", len(result.Errors))
	return result, nil
}

// HistoryWindow is the trailing window the deal scorer averages over.
const HistoryWindow = 30 * 24 * time.Hour
