// Package notify dispatches triggered alerts to their delivery channels:
// email via Resend, SMS via Twilio, and a push stub. SMS and push honor the
// subscriber's quiet hours; email is asynchronous by nature and always goes
// out.
package notify

import (
	"context"
	"log/slog"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

// Notification is the payload for one (alert, channel) delivery attempt.
type Notification struct {
	AlertID   string
	UserID    string
	UserEmail string
	UserName  *string
	UserPhone *string
	Channel   model.Channel

	Origin          string
	OriginCity      string
	Destination     string
	DestinationCity string
	CabinClass      model.CabinClass
	AirlineName     string
	LoyaltyProgram  string

	MileageCost          int
	AmexPointsEquivalent int
	ThresholdPoints      int
	TravelDate           string // "2006-01-02"
	BookingURL           *string

	Timezone        *string
	QuietHoursStart *int
	QuietHoursEnd   *int
}

// EmailSender delivers an email alert. Implemented by ResendSender.
type EmailSender interface {
	Send(ctx context.Context, n Notification) error
}

// SMSSender delivers a text alert. Implemented by TwilioSender.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Dispatcher routes notifications to their channel. A nil sender means that
// channel's provider credentials are not configured.
type Dispatcher struct {
	Email  EmailSender
	SMS    SMSSender
	Quiet  *QuietHours
	Logger *slog.Logger
}

// Send attempts delivery on the notification's channel and reports whether
// it was handled. A quiet-hour suppressed SMS or push is a successful no-op:
// it returns true without any outbound call. Provider errors and missing
// configuration return false; they never panic past this boundary.
func (d *Dispatcher) Send(ctx context.Context, n Notification) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger().Error("Notification send panicked",
				"channel", n.Channel, "alert_id", n.AlertID, "panic", r)
			handled = false
		}
	}()
	switch n.Channel {
	case model.ChannelEmail:
		return d.sendEmail(ctx, n)
	case model.ChannelSMS:
		return d.sendSMS(ctx, n)
	case model.ChannelPush:
		return d.sendPush(n)
	}
	d.logger().Error("Unknown notification channel", "channel", n.Channel, "alert_id", n.AlertID)
	return false
}

func (d *Dispatcher) sendEmail(ctx context.Context, n Notification) bool {
	// Email ignores quiet hours: it waits in the inbox.
	if d.Email == nil {
		d.logger().Error("Email sender not configured", "alert_id", n.AlertID)
		return false
	}
	if err := d.Email.Send(ctx, n); err != nil {
		d.logger().Error("Email send failed", "alert_id", n.AlertID, "error", err)
		return false
	}
	return true
}

func (d *Dispatcher) sendSMS(ctx context.Context, n Notification) bool {
	if d.quiet().IsSuppressed(n.Timezone, n.QuietHoursStart, n.QuietHoursEnd) {
		d.logger().Info("SMS suppressed by quiet hours", "alert_id", n.AlertID, "user_id", n.UserID)
		return true
	}
	if d.SMS == nil {
		d.logger().Error("SMS sender not configured", "alert_id", n.AlertID)
		return false
	}
	if n.UserPhone == nil || *n.UserPhone == "" {
		d.logger().Warn("No phone number for user, skipping SMS", "user_id", n.UserID)
		return false
	}
	if err := d.SMS.Send(ctx, *n.UserPhone, buildSMSBody(n)); err != nil {
		d.logger().Error("SMS send failed", "alert_id", n.AlertID, "error", err)
		return false
	}
	return true
}

func (d *Dispatcher) sendPush(n Notification) bool {
	if d.quiet().IsSuppressed(n.Timezone, n.QuietHoursStart, n.QuietHoursEnd) {
		d.logger().Info("Push suppressed by quiet hours", "alert_id", n.AlertID, "user_id", n.UserID)
		return true
	}
	// Web push is not implemented yet; report the attempt as failed so the
	// trigger record stays honest.
	d.logger().Info("Push notifications not yet implemented", "alert_id", n.AlertID)
	return false
}

func (d *Dispatcher) quiet() *QuietHours {
	if d.Quiet != nil {
		return d.Quiet
	}
	return &QuietHours{Logger: d.Logger}
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
