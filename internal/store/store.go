// Package store implements the pipeline's persistence interfaces on top of
// the pgx connection pool. All queries run through the prepared statements
// registered in internal/db.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mileagehawk/mileagehawk-data/internal/aggregate"
	"github.com/mileagehawk/mileagehawk-data/internal/db"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
	"github.com/mileagehawk/mileagehawk-data/internal/scrape"
)

// Store is the concrete persistence layer.
type Store struct {
	pool *db.Pool
}

// New wraps a connection pool.
func New(pool *db.Pool) *Store {
	return &Store{pool: pool}
}

// --------------------------------------------------------------------------
// Reference data
// --------------------------------------------------------------------------

// ActiveRoutes returns every monitored route with its endpoint cities.
func (s *Store) ActiveRoutes(ctx context.Context) ([]model.Route, error) {
	rows, err := s.pool.Query(ctx, "active_routes")
	if err != nil {
		return nil, fmt.Errorf("query active routes: %w", err)
	}
	defer rows.Close()

	var routes []model.Route
	for rows.Next() {
		var r model.Route
		if err := rows.Scan(&r.ID, &r.OriginCode, &r.OriginCity,
			&r.DestinationCode, &r.DestinationCity,
			&r.DestinationRegion, &r.IsActive); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// SourceAirlines returns active airlines that have a live ingestion source.
func (s *Store) SourceAirlines(ctx context.Context) ([]model.Airline, error) {
	return s.queryAirlines(ctx, "active_source_airlines")
}

// AllAirlines returns every airline, chart-only partners included.
func (s *Store) AllAirlines(ctx context.Context) ([]model.Airline, error) {
	return s.queryAirlines(ctx, "all_airlines")
}

func (s *Store) queryAirlines(ctx context.Context, stmt string) ([]model.Airline, error) {
	rows, err := s.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query airlines: %w", err)
	}
	defer rows.Close()

	var airlines []model.Airline
	for rows.Next() {
		var a model.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.LoyaltyProgram,
			&a.LoyaltyCurrency, &a.AmexTransferRatio, &a.CapitalOneTransferRatio,
			&a.Alliance, &a.SeatsAeroCode, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan airline: %w", err)
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

// --------------------------------------------------------------------------
// Ingestion
// --------------------------------------------------------------------------

// UpsertDailyPrice writes one normalized price, overwriting any existing row
// with the same natural key.
func (s *Store) UpsertDailyPrice(ctx context.Context, p model.DailyPrice) error {
	_, err := s.pool.Exec(ctx, "upsert_daily_price",
		p.RouteID, p.AirlineID, p.CabinClass, p.MileageCost,
		p.AmexPointsEquivalent, p.CapitalOnePointsEquivalent,
		p.AvailabilityCount, p.IsDirect, p.TravelDate, p.Source,
		p.SourceID, p.BookingURL, p.ScrapedAt)
	if err != nil {
		return fmt.Errorf("upsert daily price: %w", err)
	}
	return nil
}

// StartScrapeLog opens a RUNNING log row and returns its ID.
func (s *Store) StartScrapeLog(ctx context.Context, source string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, "insert_scrape_log", source).Scan(&id); err != nil {
		return "", fmt.Errorf("insert scrape log: %w", err)
	}
	return id, nil
}

// FinishScrapeLog closes a log row with its final status and counters.
func (s *Store) FinishScrapeLog(ctx context.Context, id string, status model.ScrapeStatus, result scrape.Result, errorMessage *string) error {
	_, err := s.pool.Exec(ctx, "finish_scrape_log",
		id, status, result.RoutesTotal, result.RoutesSuccess,
		result.RoutesFailed, result.PricesFound, result.DurationMs, errorMessage)
	if err != nil {
		return fmt.Errorf("finish scrape log: %w", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Aggregation
// --------------------------------------------------------------------------

// DailyPriceGroups returns min/avg/max equivalent points per
// (route, airline, cabin) over prices scraped in [dayStart, dayEnd).
func (s *Store) DailyPriceGroups(ctx context.Context, dayStart, dayEnd time.Time) ([]aggregate.Group, error) {
	rows, err := s.pool.Query(ctx, "daily_price_groups", dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("query daily price groups: %w", err)
	}
	defer rows.Close()

	var groups []aggregate.Group
	for rows.Next() {
		var g aggregate.Group
		if err := rows.Scan(&g.RouteID, &g.AirlineID, &g.CabinClass,
			&g.MinPrice, &g.AvgPrice, &g.MaxPrice, &g.SampleSize); err != nil {
			return nil, fmt.Errorf("scan price group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// UpsertHistoryDay writes one day's aggregate, overwriting a re-run's row.
func (s *Store) UpsertHistoryDay(ctx context.Context, day model.HistoryDay) error {
	_, err := s.pool.Exec(ctx, "upsert_price_history",
		day.RouteID, day.AirlineID, day.CabinClass, day.Date,
		day.MinPrice, day.AvgPrice, day.MaxPrice, day.SampleSize)
	if err != nil {
		return fmt.Errorf("upsert price history: %w", err)
	}
	return nil
}

// ThirtyDayAverage returns the trailing average daily price for a
// (route, airline, cabin), or nil when there is no history yet.
func (s *Store) ThirtyDayAverage(ctx context.Context, routeID, airlineID string, cabin model.CabinClass) (*int, error) {
	since := time.Now().UTC().Add(-aggregate.HistoryWindow)
	var avg *int
	err := s.pool.QueryRow(ctx, "thirty_day_average", routeID, airlineID, cabin, since).Scan(&avg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query thirty day average: %w", err)
	}
	return avg, nil
}

// --------------------------------------------------------------------------
// Alerts
// --------------------------------------------------------------------------

// ActiveAlerts returns every active alert joined with its user and route.
func (s *Store) ActiveAlerts(ctx context.Context) ([]model.ActiveAlert, error) {
	rows, err := s.pool.Query(ctx, "active_alerts")
	if err != nil {
		return nil, fmt.Errorf("query active alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.ActiveAlert
	for rows.Next() {
		var a model.ActiveAlert
		var channels []string
		if err := rows.Scan(&a.ID, &a.UserID, &a.RouteID, &a.CabinClass,
			&a.AirlineID, &a.ThresholdPoints, &channels, &a.IsActive, &a.LastTriggeredAt,
			&a.User.Email, &a.User.Name, &a.User.Phone, &a.User.Timezone,
			&a.User.QuietHoursStart, &a.User.QuietHoursEnd,
			&a.Route.OriginCode, &a.Route.OriginCity,
			&a.Route.DestinationCode, &a.Route.DestinationCity,
			&a.Route.DestinationRegion); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.User.ID = a.UserID
		a.Route.ID = a.RouteID
		a.Channels = make([]model.Channel, len(channels))
		for i, c := range channels {
			a.Channels[i] = model.Channel(c)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// TodayPricesForRoutes returns today's prices for the given routes, cheapest
// first by equivalent points, with the airline's display fields joined in.
func (s *Store) TodayPricesForRoutes(ctx context.Context, routeIDs []string) ([]model.DailyPrice, error) {
	rows, err := s.pool.Query(ctx, "today_prices_for_routes", routeIDs, todayStart())
	if err != nil {
		return nil, fmt.Errorf("query today's prices: %w", err)
	}
	defer rows.Close()

	var prices []model.DailyPrice
	for rows.Next() {
		var p model.DailyPrice
		if err := rows.Scan(&p.ID, &p.RouteID, &p.AirlineID, &p.CabinClass,
			&p.MileageCost, &p.AmexPointsEquivalent, &p.CapitalOnePointsEquivalent,
			&p.AvailabilityCount, &p.IsDirect, &p.TravelDate, &p.Source,
			&p.SourceID, &p.BookingURL, &p.ScrapedAt,
			&p.AirlineName, &p.LoyaltyProgram); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// TodayTriggeredAlertIDs returns which of the given alerts already triggered
// today.
func (s *Store) TodayTriggeredAlertIDs(ctx context.Context, alertIDs []string) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx, "today_triggered_alerts", alertIDs, todayStart())
	if err != nil {
		return nil, fmt.Errorf("query triggered alerts: %w", err)
	}
	defer rows.Close()

	triggered := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan triggered alert: %w", err)
		}
		triggered[id] = struct{}{}
	}
	return triggered, rows.Err()
}

// InsertTriggerRecord creates an alert-history row with
// notification_sent=false and returns its ID.
func (s *Store) InsertTriggerRecord(ctx context.Context, alertID, priceID string, channel model.Channel) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, "insert_alert_history", alertID, priceID, channel).Scan(&id); err != nil {
		return "", fmt.Errorf("insert alert history: %w", err)
	}
	return id, nil
}

// UpdateTriggerSent records the dispatch outcome on a trigger row.
func (s *Store) UpdateTriggerSent(ctx context.Context, triggerID string, sent bool) error {
	if _, err := s.pool.Exec(ctx, "update_alert_history_sent", triggerID, sent); err != nil {
		return fmt.Errorf("update alert history: %w", err)
	}
	return nil
}

// TouchLastTriggered stamps last_triggered_at on an alert.
func (s *Store) TouchLastTriggered(ctx context.Context, alertID string) error {
	if _, err := s.pool.Exec(ctx, "touch_alert_last_triggered", alertID); err != nil {
		return fmt.Errorf("touch alert: %w", err)
	}
	return nil
}

// todayStart is midnight UTC of the current day. Dedup and "today's prices"
// both fence on it.
func todayStart() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
