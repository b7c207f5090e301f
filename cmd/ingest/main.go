// Command ingest is the MileageHawk pipeline CLI.
//
// Usage:
//
//	mileagehawk-ingest seed
//	mileagehawk-ingest scrape
//	mileagehawk-ingest aggregate
//	mileagehawk-ingest alerts
//	mileagehawk-ingest score --points 42000 --cabin BUSINESS --region EUROPE
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mileagehawk/mileagehawk-data/internal/aggregate"
	"github.com/mileagehawk/mileagehawk-data/internal/alerts"
	"github.com/mileagehawk/mileagehawk-data/internal/catalog"
	"github.com/mileagehawk/mileagehawk-data/internal/config"
	"github.com/mileagehawk/mileagehawk-data/internal/db"
	"github.com/mileagehawk/mileagehawk-data/internal/deals"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
	"github.com/mileagehawk/mileagehawk-data/internal/notify"
	"github.com/mileagehawk/mileagehawk-data/internal/provider/seatsaero"
	"github.com/mileagehawk/mileagehawk-data/internal/scrape"
	"github.com/mileagehawk/mileagehawk-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "mileagehawk-ingest",
		Short: "MileageHawk pipeline CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(scrapeCmd())
	root.AddCommand(aggregateCmd())
	root.AddCommand(alertsCmd())
	root.AddCommand(scoreCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed airports, airlines and routes from the built-in catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result := catalog.Seed(ctx, pool.Pool, logger)
				logger.Info("Seed finished",
					"duration", time.Since(start).Round(time.Second),
					"airports", result.AirportsUpserted,
					"airlines", result.AirlinesUpserted,
					"routes", result.RoutesUpserted)
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// scrape command
// --------------------------------------------------------------------------

func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Ingest award prices from seats.aero",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if cfg.SeatsAeroAPIKey == "" {
					return fmt.Errorf("SEATS_AERO_API_KEY is required")
				}
				client := seatsaero.NewClient(seatsaero.BaseURL, cfg.SeatsAeroAPIKey, cfg.SeatsAeroRequestsMin)
				runner := &scrape.Runner{Client: client, Store: store.New(pool), Logger: logger}

				start := time.Now()
				result, err := runner.Run(ctx)
				logger.Info("Scrape finished",
					"duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("scrape error", "error", e)
				}
				return err
			})
		},
	}
}

// --------------------------------------------------------------------------
// aggregate command
// --------------------------------------------------------------------------

func aggregateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Roll today's prices into daily history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result, err := aggregate.Run(ctx, store.New(pool), logger)
				if err != nil {
					return err
				}
				logger.Info("Aggregation finished",
					"duration", time.Since(start).Round(time.Second),
					"aggregated", result.Aggregated, "errors", len(result.Errors))
				for _, e := range result.Errors {
					logger.Error("aggregate error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// alerts command
// --------------------------------------------------------------------------

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Evaluate active alerts and dispatch notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				dispatcher := &notify.Dispatcher{
					Quiet:  &notify.QuietHours{Logger: logger},
					Logger: logger,
				}
				if s := notify.NewResendSender(cfg.ResendAPIKey, cfg.ResendFromEmail, cfg.AppURL); s != nil {
					dispatcher.Email = s
				}
				if s := notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber); s != nil {
					dispatcher.SMS = s
				}

				evaluator := &alerts.Evaluator{Store: store.New(pool), Notifier: dispatcher, Logger: logger}
				start := time.Now()
				result, err := evaluator.Run(ctx)
				if err != nil {
					return err
				}
				logger.Info("Alerts finished",
					"duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("alert error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// score command
// --------------------------------------------------------------------------

func scoreCmd() *cobra.Command {
	var (
		points int
		cabin  string
		region string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a price point against the regional thresholds",
		RunE: func(cmd *cobra.Command, args []string) error {
			if points <= 0 {
				return fmt.Errorf("--points must be positive")
			}
			cc := model.CabinClass(cabin)
			if !cc.Valid() {
				return fmt.Errorf("invalid cabin %q", cabin)
			}
			score := deals.ScoreFromThresholds(points, cc, model.Region(region))
			out, err := json.MarshalIndent(score, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().IntVar(&points, "points", 0, "Price in AMEX points")
	cmd.Flags().StringVar(&cabin, "cabin", "BUSINESS", "Cabin class (ECONOMY_PLUS, BUSINESS, FIRST)")
	cmd.Flags().StringVar(&region, "region", "EUROPE", "Destination region")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithDB handles config loading, DB connection, and context cancellation.
func runWithDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
