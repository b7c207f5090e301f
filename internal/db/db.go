// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mileagehawk/mileagehawk-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the pipeline and API
// use. Prepared statements eliminate parse overhead on every run.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Reference data
		"active_routes": `
			SELECT r.id, r.origin_code, o.city, r.destination_code, d.city,
			       r.destination_region, r.is_active
			FROM routes r
			JOIN airports o ON o.code = r.origin_code
			JOIN airports d ON d.code = r.destination_code
			WHERE r.is_active = true`,
		"active_source_airlines": `
			SELECT id, name, code, loyalty_program, loyalty_currency,
			       amex_transfer_ratio, capital_one_transfer_ratio,
			       alliance, seats_aero_code, is_active
			FROM airlines
			WHERE is_active = true AND seats_aero_code IS NOT NULL`,
		"all_airlines": `
			SELECT id, name, code, loyalty_program, loyalty_currency,
			       amex_transfer_ratio, capital_one_transfer_ratio,
			       alliance, seats_aero_code, is_active
			FROM airlines
			ORDER BY name`,

		// Ingestion
		"upsert_daily_price": `
			INSERT INTO daily_mileage_prices (
				id, route_id, airline_id, cabin_class, mileage_cost,
				amex_points_equivalent, capital_one_points_equivalent,
				availability_count, is_direct, travel_date, source,
				source_id, booking_url, scraped_at
			) VALUES (
				gen_random_uuid()::text, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
			)
			ON CONFLICT (route_id, airline_id, cabin_class, travel_date, source) DO UPDATE SET
				mileage_cost = EXCLUDED.mileage_cost,
				amex_points_equivalent = EXCLUDED.amex_points_equivalent,
				capital_one_points_equivalent = EXCLUDED.capital_one_points_equivalent,
				availability_count = EXCLUDED.availability_count,
				is_direct = EXCLUDED.is_direct,
				source_id = EXCLUDED.source_id,
				booking_url = EXCLUDED.booking_url,
				scraped_at = EXCLUDED.scraped_at`,
		"insert_scrape_log": `
			INSERT INTO scrape_logs (id, source, status, routes_total, routes_success,
				routes_failed, prices_found, duration_ms, started_at)
			VALUES (gen_random_uuid()::text, $1, 'RUNNING', 0, 0, 0, 0, 0, NOW())
			RETURNING id`,
		"finish_scrape_log": `
			UPDATE scrape_logs SET
				status = $2, routes_total = $3, routes_success = $4,
				routes_failed = $5, prices_found = $6, duration_ms = $7,
				error_message = $8, completed_at = NOW()
			WHERE id = $1`,

		// Aggregation
		"daily_price_groups": `
			SELECT route_id, airline_id, cabin_class,
			       MIN(amex_points_equivalent),
			       ROUND(AVG(amex_points_equivalent))::int,
			       MAX(amex_points_equivalent),
			       COUNT(*)
			FROM daily_mileage_prices
			WHERE scraped_at >= $1 AND scraped_at < $2
			GROUP BY route_id, airline_id, cabin_class`,
		"upsert_price_history": `
			INSERT INTO price_history (id, route_id, airline_id, cabin_class, date,
				min_price, avg_price, max_price, sample_size)
			VALUES (gen_random_uuid()::text, $1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (route_id, airline_id, cabin_class, date) DO UPDATE SET
				min_price = EXCLUDED.min_price,
				avg_price = EXCLUDED.avg_price,
				max_price = EXCLUDED.max_price,
				sample_size = EXCLUDED.sample_size`,
		"thirty_day_average": `
			SELECT ROUND(AVG(avg_price))::int
			FROM price_history
			WHERE route_id = $1 AND airline_id = $2 AND cabin_class = $3
			  AND date >= $4`,

		// Alerts
		"active_alerts": `
			SELECT a.id, a.user_id, a.route_id, a.cabin_class, a.airline_id,
			       a.threshold_points, a.alert_channels, a.is_active, a.last_triggered_at,
			       u.email, u.name, u.phone, u.timezone, u.quiet_hours_start, u.quiet_hours_end,
			       r.origin_code, o.city, r.destination_code, d.city, r.destination_region
			FROM user_alerts a
			JOIN users u ON u.id = a.user_id
			JOIN routes r ON r.id = a.route_id
			JOIN airports o ON o.code = r.origin_code
			JOIN airports d ON d.code = r.destination_code
			WHERE a.is_active = true`,
		"today_prices_for_routes": `
			SELECT p.id, p.route_id, p.airline_id, p.cabin_class, p.mileage_cost,
			       p.amex_points_equivalent, p.capital_one_points_equivalent,
			       p.availability_count, p.is_direct, p.travel_date, p.source,
			       p.source_id, p.booking_url, p.scraped_at,
			       al.name, al.loyalty_program
			FROM daily_mileage_prices p
			JOIN airlines al ON al.id = p.airline_id
			WHERE p.route_id = ANY($1) AND p.scraped_at >= $2
			ORDER BY p.amex_points_equivalent ASC`,
		"today_triggered_alerts": `
			SELECT DISTINCT user_alert_id
			FROM alert_history
			WHERE user_alert_id = ANY($1) AND triggered_at >= $2`,
		"insert_alert_history": `
			INSERT INTO alert_history (id, user_alert_id, daily_mileage_price_id,
				channel, notification_sent, triggered_at)
			VALUES (gen_random_uuid()::text, $1, $2, $3, false, NOW())
			RETURNING id`,
		"update_alert_history_sent": `
			UPDATE alert_history SET notification_sent = $2 WHERE id = $1`,
		"touch_alert_last_triggered": `
			UPDATE user_alerts SET last_triggered_at = NOW() WHERE id = $1`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
