// Package scrape orchestrates the daily ingestion run: it walks every
// seats.aero source through the bulk-availability endpoint, filters records
// down to the monitored routes, converts program miles to transfer-currency
// point equivalents, and upserts the normalized prices.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mileagehawk/mileagehawk-data/internal/catalog"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
	"github.com/mileagehawk/mileagehawk-data/internal/provider/seatsaero"
)

const (
	// SourceName tags every normalized price row with its ingestion source.
	SourceName = "seats_aero"

	// maxPagesPerSource bounds pagination per source per run so a buggy
	// provider cursor cannot stall the job. 20 pages of 500 records caps a
	// source at 10K records.
	maxPagesPerSource = 20

	// defaultPause is the inter-source pause respecting the provider quota.
	defaultPause = 500 * time.Millisecond
)

// Source is the bulk-availability contract the runner consumes,
// implemented by seatsaero.Client.
type Source interface {
	GetBulkAvailability(ctx context.Context, source, cursor string) (*seatsaero.BulkPage, error)
	RemainingCalls() int
}

// Store is the persistence surface the runner needs.
type Store interface {
	ActiveRoutes(ctx context.Context) ([]model.Route, error)
	SourceAirlines(ctx context.Context) ([]model.Airline, error)
	UpsertDailyPrice(ctx context.Context, price model.DailyPrice) error
	StartScrapeLog(ctx context.Context, source string) (string, error)
	FinishScrapeLog(ctx context.Context, id string, status model.ScrapeStatus, result Result, errorMessage *string) error
}

// Runner executes one ingestion run end to end.
type Runner struct {
	Client Source
	Store  Store
	Logger *slog.Logger

	// Pause between sources; zero means defaultPause.
	Pause time.Duration
}

// Run performs the daily scrape. Per-source failures are accumulated into
// the result; only a failure before any source is processed (log creation,
// route/airline preload) is returned as an error, with the log row marked
// FAILED.
func (s *Runner) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	result := Result{Source: SourceName}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logID, err := s.Store.StartScrapeLog(ctx, SourceName)
	if err != nil {
		return result, fmt.Errorf("create scrape log: %w", err)
	}

	fail := func(cause error) (Result, error) {
		result.DurationMs = time.Since(start).Milliseconds()
		msg := cause.Error()
		if finErr := s.Store.FinishScrapeLog(ctx, logID, model.ScrapeFailed, result, &msg); finErr != nil {
			logger.Error("finish scrape log failed", "error", finErr)
		}
		return result, cause
	}

	airlines, err := s.Store.SourceAirlines(ctx)
	if err != nil {
		return fail(fmt.Errorf("load source airlines: %w", err))
	}
	airlineBySource := make(map[string]model.Airline, len(airlines))
	for _, a := range airlines {
		if a.SeatsAeroCode != nil {
			airlineBySource[*a.SeatsAeroCode] = a
		}
	}

	routes, err := s.Store.ActiveRoutes(ctx)
	if err != nil {
		return fail(fmt.Errorf("load active routes: %w", err))
	}

	routeLookup := make(map[string]model.Route, len(routes))
	originCodes := make(map[string]struct{})
	destCodes := make(map[string]struct{})
	for _, r := range routes {
		routeLookup[catalog.RouteSlug(r.OriginCode, r.DestinationCode)] = r
		originCodes[r.OriginCode] = struct{}{}
		destCodes[r.DestinationCode] = struct{}{}
	}

	logger.Info("Scrape starting",
		"routes", len(routeLookup), "origins", len(originCodes), "destinations", len(destCodes))

	sources := catalog.Sources()
	result.RoutesTotal = len(sources)

	for i, source := range sources {
		if ctx.Err() != nil {
			return fail(ctx.Err())
		}

		airline, ok := airlineBySource[source]
		if !ok {
			logger.Warn("No airline found for source", "source", source)
			result.RoutesFailed++
			result.AddErrorf("no airline configured for source %s", source)
			continue
		}

		matches, err := s.processSource(ctx, source, airline, routeLookup, originCodes, destCodes, &result)
		if err != nil {
			result.RoutesFailed++
			result.AddErrorf("failed source %s: %v", source, err)
			logger.Error("Source failed", "source", source, "error", err)
		} else {
			result.RoutesSuccess++
			logger.Info("Source complete", "source", source, "prices", matches,
				"quota_remaining", s.Client.RemainingCalls())
		}

		// Brief pause between sources to respect the provider quota; acts as
		// the run's interruption point.
		if i < len(sources)-1 {
			if err := sleep(ctx, s.pause()); err != nil {
				return fail(err)
			}
		}
	}

	result.DurationMs = time.Since(start).Milliseconds()

	status := model.ScrapeCompleted
	if result.RoutesFailed > 0 {
		status = model.ScrapePartial
	}
	var errMsg *string
	if len(result.Errors) > 0 {
		joined := strings.Join(result.Errors, "; ")
		errMsg = &joined
	}
	if err := s.Store.FinishScrapeLog(ctx, logID, status, result, errMsg); err != nil {
		logger.Error("finish scrape log failed", "error", err)
	}

	logger.Info("Scrape complete", "summary", result.Summary())
	return result, nil
}

// processSource paginates a single source and upserts every matching cabin
// price. Returns the number of prices written.
func (s *Runner) processSource(
	ctx context.Context,
	source string,
	airline model.Airline,
	routeLookup map[string]model.Route,
	originCodes, destCodes map[string]struct{},
	result *Result,
) (int, error) {
	if airline.AmexTransferRatio <= 0 {
		return 0, fmt.Errorf("airline %s has non-positive transfer ratio %v", airline.Code, airline.AmexTransferRatio)
	}

	matches := 0
	cursor := ""
	for page := 0; page < maxPagesPerSource; page++ {
		resp, err := s.Client.GetBulkAvailability(ctx, source, cursor)
		if err != nil {
			return matches, err
		}

		for _, avail := range resp.Data {
			origin, destination := seatsaero.RouteCodes(avail)

			// Cheap set membership check before the per-cabin parse.
			if _, ok := originCodes[origin]; !ok {
				continue
			}
			if _, ok := destCodes[destination]; !ok {
				continue
			}
			route, ok := routeLookup[catalog.RouteSlug(origin, destination)]
			if !ok {
				continue
			}

			travelDate, err := time.Parse("2006-01-02", avail.Date)
			if err != nil {
				continue
			}

			for _, cab := range seatsaero.ParseAvailability(avail) {
				amexPoints, err := catalog.AmexPoints(cab.MileageCost, airline.AmexTransferRatio)
				if err != nil {
					return matches, err
				}
				c1Points, err := catalog.CapitalOnePoints(cab.MileageCost, airline.CapitalOneTransferRatio)
				if err != nil {
					return matches, err
				}

				price := model.DailyPrice{
					RouteID:                    route.ID,
					AirlineID:                  airline.ID,
					CabinClass:                 cab.CabinClass,
					MileageCost:                cab.MileageCost,
					AmexPointsEquivalent:       amexPoints,
					CapitalOnePointsEquivalent: c1Points,
					AvailabilityCount:          cab.RemainingSeats,
					IsDirect:                   cab.IsDirect,
					TravelDate:                 travelDate,
					Source:                     SourceName,
					SourceID:                   avail.ID,
					ScrapedAt:                  time.Now().UTC(),
				}
				if err := s.Store.UpsertDailyPrice(ctx, price); err != nil {
					return matches, fmt.Errorf("upsert price %s/%s/%s: %w",
						route.ID, airline.Code, cab.CabinClass, err)
				}
				result.PricesFound++
				matches++
			}
		}

		cursor = resp.NextCursor()
		if cursor == "" {
			return matches, nil
		}
	}
	return matches, nil
}

func (s *Runner) pause() time.Duration {
	if s.Pause > 0 {
		return s.Pause
	}
	return defaultPause
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
