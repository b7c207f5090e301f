// Package alerts evaluates active price subscriptions against today's
// ingested prices and fans matched alerts out to their delivery channels.
// The evaluator runs a fixed number of store round-trips per invocation
// regardless of how many alerts exist.
package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
	"github.com/mileagehawk/mileagehawk-data/internal/notify"
)

// Store is the persistence surface the evaluator needs.
type Store interface {
	// ActiveAlerts returns every active alert joined with its user and route.
	ActiveAlerts(ctx context.Context) ([]model.ActiveAlert, error)
	// TodayPricesForRoutes returns today's prices for the given routes,
	// ordered by amex_points_equivalent ascending.
	TodayPricesForRoutes(ctx context.Context, routeIDs []string) ([]model.DailyPrice, error)
	// TodayTriggeredAlertIDs returns which of the given alerts already have a
	// trigger record today.
	TodayTriggeredAlertIDs(ctx context.Context, alertIDs []string) (map[string]struct{}, error)
	// InsertTriggerRecord creates an alert-history row with
	// notification_sent=false and returns its ID.
	InsertTriggerRecord(ctx context.Context, alertID, priceID string, channel model.Channel) (string, error)
	// UpdateTriggerSent records the dispatch outcome on a trigger row.
	UpdateTriggerSent(ctx context.Context, triggerID string, sent bool) error
	// TouchLastTriggered stamps last_triggered_at on an alert.
	TouchLastTriggered(ctx context.Context, alertID string) error
}

// Notifier dispatches one notification and reports whether it was handled.
type Notifier interface {
	Send(ctx context.Context, n notify.Notification) bool
}

// Result summarizes one evaluation run.
type Result struct {
	AlertsChecked     int      `json:"alertsChecked"`
	AlertsTriggered   int      `json:"alertsTriggered"`
	NotificationsSent int      `json:"notificationsSent"`
	Errors            []string `json:"errors,omitempty"`
}

// AddErrorf appends a formatted error to the result.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary renders a one-line run summary for logs.
func (r *Result) Summary() string {
	return fmt.Sprintf("checked=%d triggered=%d sent=%d errors=%d",
		r.AlertsChecked, r.AlertsTriggered, r.NotificationsSent, len(r.Errors))
}

// Evaluator matches alerts against today's cheapest prices.
type Evaluator struct {
	Store    Store
	Notifier Notifier
	Logger   *slog.Logger
}

// Run performs one evaluation pass. The store is hit a constant number of
// times for the read side: one alert load, one price load, one dedup load.
// Writes happen only for alerts that actually trigger.
func (e *Evaluator) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	alerts, err := e.Store.ActiveAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active alerts: %w", err)
	}
	res.AlertsChecked = len(alerts)
	if len(alerts) == 0 {
		logger.Info("No active alerts to evaluate")
		return res, nil
	}

	routeIDs := uniqueRouteIDs(alerts)
	prices, err := e.Store.TodayPricesForRoutes(ctx, routeIDs)
	if err != nil {
		return nil, fmt.Errorf("load today's prices: %w", err)
	}
	index := buildPriceIndex(prices)

	triggered, err := e.Store.TodayTriggeredAlertIDs(ctx, alertIDs(alerts))
	if err != nil {
		return nil, fmt.Errorf("load triggered alerts: %w", err)
	}

	for _, alert := range alerts {
		price, ok := index[alertKey(alert)]
		// A match only fires strictly below the threshold.
		if !ok || price.AmexPointsEquivalent >= alert.ThresholdPoints {
			continue
		}
		if _, done := triggered[alert.ID]; done {
			continue
		}
		triggered[alert.ID] = struct{}{}
		res.AlertsTriggered++

		recorded, sent := e.dispatch(ctx, alert, price, res)
		res.NotificationsSent += sent
		if recorded > 0 {
			if err := e.Store.TouchLastTriggered(ctx, alert.ID); err != nil {
				res.AddErrorf("alert %s: stamp last_triggered: %v", alert.ID, err)
			}
		}
	}

	logger.Info("Alert evaluation complete", "summary", res.Summary())
	return res, nil
}

// dispatch sends the match on every channel the alert subscribes to. Each
// channel gets its own trigger row, created before the send so a crash
// mid-dispatch leaves an auditable notification_sent=false record. It
// returns the number of trigger rows created and the number of deliveries
// that were handled; the alert counts as triggered once any row exists,
// even if every delivery fails.
func (e *Evaluator) dispatch(ctx context.Context, alert model.ActiveAlert, price model.DailyPrice, res *Result) (recorded, sent int) {
	for _, channel := range alert.Channels {
		triggerID, err := e.Store.InsertTriggerRecord(ctx, alert.ID, price.ID, channel)
		if err != nil {
			res.AddErrorf("alert %s channel %s: create trigger: %v", alert.ID, channel, err)
			continue
		}
		recorded++

		ok := e.Notifier.Send(ctx, buildNotification(alert, price, channel))
		if ok {
			sent++
		} else {
			res.AddErrorf("alert %s channel %s: delivery failed", alert.ID, channel)
		}
		if err := e.Store.UpdateTriggerSent(ctx, triggerID, ok); err != nil {
			res.AddErrorf("alert %s channel %s: update trigger: %v", alert.ID, channel, err)
		}
	}
	return recorded, sent
}

func buildNotification(alert model.ActiveAlert, price model.DailyPrice, channel model.Channel) notify.Notification {
	return notify.Notification{
		AlertID:   alert.ID,
		UserID:    alert.User.ID,
		UserEmail: alert.User.Email,
		UserName:  alert.User.Name,
		UserPhone: alert.User.Phone,
		Channel:   channel,

		Origin:          alert.Route.OriginCode,
		OriginCity:      alert.Route.OriginCity,
		Destination:     alert.Route.DestinationCode,
		DestinationCity: alert.Route.DestinationCity,
		CabinClass:      alert.CabinClass,
		AirlineName:     price.AirlineName,
		LoyaltyProgram:  price.LoyaltyProgram,

		MileageCost:          price.MileageCost,
		AmexPointsEquivalent: price.AmexPointsEquivalent,
		ThresholdPoints:      alert.ThresholdPoints,
		TravelDate:           price.TravelDate.Format("2006-01-02"),
		BookingURL:           price.BookingURL,

		Timezone:        alert.User.Timezone,
		QuietHoursStart: alert.User.QuietHoursStart,
		QuietHoursEnd:   alert.User.QuietHoursEnd,
	}
}

// buildPriceIndex maps lookup keys to the cheapest matching price. Prices
// arrive ordered by equivalent points ascending, so first-seen wins. Every
// price is indexed twice: once under its airline and once under the
// any-airline wildcard.
func buildPriceIndex(prices []model.DailyPrice) map[string]model.DailyPrice {
	index := make(map[string]model.DailyPrice, len(prices)*2)
	for _, p := range prices {
		exact := priceKey(p.RouteID, p.CabinClass, p.AirlineID)
		if _, ok := index[exact]; !ok {
			index[exact] = p
		}
		wild := priceKey(p.RouteID, p.CabinClass, "*")
		if _, ok := index[wild]; !ok {
			index[wild] = p
		}
	}
	return index
}

func alertKey(a model.ActiveAlert) string {
	airline := "*"
	if a.AirlineID != nil {
		airline = *a.AirlineID
	}
	return priceKey(a.RouteID, a.CabinClass, airline)
}

func priceKey(routeID string, cabin model.CabinClass, airlineID string) string {
	return strings.Join([]string{routeID, string(cabin), airlineID}, "|")
}

func alertIDs(alerts []model.ActiveAlert) []string {
	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.ID
	}
	return ids
}

func uniqueRouteIDs(alerts []model.ActiveAlert) []string {
	seen := make(map[string]struct{}, len(alerts))
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		if _, ok := seen[a.RouteID]; ok {
			continue
		}
		seen[a.RouteID] = struct{}{}
		ids = append(ids, a.RouteID)
	}
	return ids
}
