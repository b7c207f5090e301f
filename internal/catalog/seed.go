package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedResult tracks counts and errors from a reference-data seed.
type SeedResult struct {
	AirportsUpserted int
	AirlinesUpserted int
	RoutesUpserted   int
	Errors           []string
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf("airports=%d airlines=%d routes=%d errors=%d",
		r.AirportsUpserted, r.AirlinesUpserted, r.RoutesUpserted, len(r.Errors))
}

// Seed upserts the airport, airline and route reference data. Routes are the
// cross product of origins and destinations, keyed by their "AUS-LHR" slug
// so reseeding is idempotent.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) SeedResult {
	var result SeedResult

	logger.Info("Seeding airports...")
	for _, a := range Airports {
		_, err := pool.Exec(ctx, `
			INSERT INTO airports (code, name, city, country, region, latitude, longitude, is_origin)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				city = EXCLUDED.city,
				country = EXCLUDED.country,
				region = EXCLUDED.region,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude,
				is_origin = EXCLUDED.is_origin,
				updated_at = NOW()`,
			a.Code, a.Name, a.City, a.Country, string(a.Region), a.Latitude, a.Longitude, a.IsOrigin,
		)
		if err != nil {
			result.AddErrorf("upsert airport %s: %v", a.Code, err)
		} else {
			result.AirportsUpserted++
		}
	}

	logger.Info("Seeding airlines...")
	for _, a := range Airlines {
		_, err := pool.Exec(ctx, `
			INSERT INTO airlines (
				id, code, name, loyalty_program, loyalty_currency,
				amex_transfer_ratio, capital_one_transfer_ratio, alliance,
				seats_aero_code, is_active
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				loyalty_program = EXCLUDED.loyalty_program,
				loyalty_currency = EXCLUDED.loyalty_currency,
				amex_transfer_ratio = EXCLUDED.amex_transfer_ratio,
				capital_one_transfer_ratio = EXCLUDED.capital_one_transfer_ratio,
				alliance = EXCLUDED.alliance,
				seats_aero_code = EXCLUDED.seats_aero_code,
				is_active = EXCLUDED.is_active,
				updated_at = NOW()`,
			a.Code, a.Code, a.Name, a.LoyaltyProgram, a.LoyaltyCurrency,
			a.AmexTransferRatio, a.CapitalOneTransferRatio, a.Alliance,
			a.SeatsAeroCode, a.IsActive,
		)
		if err != nil {
			result.AddErrorf("upsert airline %s: %v", a.Code, err)
		} else {
			result.AirlinesUpserted++
		}
	}

	logger.Info("Seeding routes...")
	for _, origin := range OriginCodes {
		for _, dest := range DestinationAirports() {
			slug := RouteSlug(origin, dest.Code)
			_, err := pool.Exec(ctx, `
				INSERT INTO routes (id, origin_code, destination_code, destination_region, is_active)
				VALUES ($1,$2,$3,$4,true)
				ON CONFLICT (id) DO UPDATE SET
					destination_region = EXCLUDED.destination_region,
					updated_at = NOW()`,
				slug, origin, dest.Code, string(dest.Region),
			)
			if err != nil {
				result.AddErrorf("upsert route %s: %v", slug, err)
			} else {
				result.RoutesUpserted++
			}
		}
	}

	logger.Info("Reference data seed complete", "summary", result.Summary())
	return result
}
